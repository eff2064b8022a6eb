package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/mercatoapp/mercato-backend/pkg/db/models"
)

const (
	// MinItemQuantity and MaxItemQuantity bound the quantity accepted on a
	// single add. An accumulated line total may exceed the maximum; only the
	// per-request value is validated.
	MinItemQuantity = 1
	MaxItemQuantity = 99
)

// AddItemRequest is the payload accepted by the add endpoint. Quantity is
// optional and means one unit when omitted; callers decode into
// DefaultAddItemRequest so the absent field keeps that default while an
// explicit zero still fails the range check.
type AddItemRequest struct {
	ProductID    uuid.UUID `json:"product_id" validate:"required"`
	Quantity     int       `json:"quantity" validate:"min=1,max=99"`
	NeedsCutlery bool      `json:"needs_cutlery"`
}

// DefaultAddItemRequest returns the request with its defaults pre-filled.
func DefaultAddItemRequest() AddItemRequest {
	return AddItemRequest{Quantity: 1}
}

// ItemDTO is one cart line as served to clients. Price and Subtotal are
// fixed-point decimal strings.
type ItemDTO struct {
	ID           uuid.UUID `json:"id"`
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ImageURL     string    `json:"image_url"`
	Quantity     int       `json:"quantity"`
	Price        string    `json:"price"`
	Subtotal     string    `json:"subtotal"`
	NeedsCutlery bool      `json:"needs_cutlery"`
	AddedAt      time.Time `json:"added_at"`
}

// CartDTO is the aggregated cart view.
type CartDTO struct {
	ID         uuid.UUID `json:"id"`
	Items      []ItemDTO `json:"items"`
	TotalItems int       `json:"total_items"`
	Total      string    `json:"total"`
}

// MutationResponse is returned by the add/remove/clear endpoints: an
// acknowledgement plus the recomputed aggregate counters.
type MutationResponse struct {
	Success        bool   `json:"success"`
	CartTotalItems int    `json:"cart_total_items"`
	CartTotal      string `json:"cart_total"`
}

func cartToDTO(cart *models.Cart) *CartDTO {
	dto := &CartDTO{
		ID:         cart.ID,
		Items:      make([]ItemDTO, 0, len(cart.Items)),
		TotalItems: cart.TotalItems(),
		Total:      cart.Total().StringFixed(2),
	}
	for _, item := range cart.Items {
		line := ItemDTO{
			ID:           item.ID,
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			Price:        item.Price.StringFixed(2),
			Subtotal:     item.Subtotal().StringFixed(2),
			NeedsCutlery: item.NeedsCutlery,
			AddedAt:      item.AddedAt,
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
			line.ImageURL = item.Product.ImageURL
		}
		dto.Items = append(dto.Items, line)
	}
	return dto
}

func mutationResponse(cart *models.Cart) *MutationResponse {
	return &MutationResponse{
		Success:        true,
		CartTotalItems: cart.TotalItems(),
		CartTotal:      cart.Total().StringFixed(2),
	}
}
