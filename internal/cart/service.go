package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercatoapp/mercato-backend/pkg/db"
	"github.com/mercatoapp/mercato-backend/pkg/db/models"
	pkgerrors "github.com/mercatoapp/mercato-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	FindItem(ctx context.Context, cartID, productID uuid.UUID) (*models.CartItem, error)
	CreateItem(ctx context.Context, item *models.CartItem) error
	UpdateItem(ctx context.Context, item *models.CartItem) error
	DeleteItemOwned(ctx context.Context, itemID, cartID uuid.UUID) (int64, error)
	DeleteItems(ctx context.Context, cartID uuid.UUID) error
	FindActiveProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
}

// Service exposes the cart aggregate operations.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*MutationResponse, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*MutationResponse, error)
	Clear(ctx context.Context, userID uuid.UUID) (*MutationResponse, error)
}

type service struct {
	tx          txRunner
	repoFactory func(tx *gorm.DB) cartRepository
}

// ServiceParams bundles the cart service dependencies.
type ServiceParams struct {
	TxRunner    txRunner
	RepoFactory func(tx *gorm.DB) cartRepository
}

// NewService constructs the cart service.
func NewService(params ServiceParams) (Service, error) {
	if params.TxRunner == nil {
		return nil, fmt.Errorf("tx runner is required")
	}
	factory := params.RepoFactory
	if factory == nil {
		return nil, fmt.Errorf("repo factory is required")
	}
	return &service{
		tx:          params.TxRunner,
		repoFactory: factory,
	}, nil
}

// NewServiceWithDB wires the service to the default repository implementation.
func NewServiceWithDB(client *db.Client) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	base := NewRepository(client.DB())
	return NewService(ServiceParams{
		TxRunner: client,
		RepoFactory: func(tx *gorm.DB) cartRepository {
			return base.WithTx(tx)
		},
	})
}

// Get returns the user's cart, creating an empty one on first access.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	repo := s.repoFactory(nil)
	cart, err := repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	return cartToDTO(cart), nil
}

// AddItem merges the product into the cart. An existing line for the same
// product accumulates quantity; the unit price and the cutlery flag are
// refreshed from the current values on every touch.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*MutationResponse, error) {
	if req.Quantity < MinItemQuantity || req.Quantity > MaxItemQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("quantity must be between %d and %d", MinItemQuantity, MaxItemQuantity))
	}

	var resp *MutationResponse
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repoFactory(tx)

		cart, err := repo.GetOrCreate(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}

		product, err := repo.FindActiveProduct(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
		}

		if err := s.upsertItem(ctx, repo, cart, product, req); err != nil {
			return err
		}

		fresh, err := repo.FindByUserID(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload cart")
		}
		resp = mutationResponse(fresh)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *service) upsertItem(ctx context.Context, repo cartRepository, cart *models.Cart, product *models.Product, req AddItemRequest) error {
	item, err := repo.FindItem(ctx, cart.ID, product.ID)
	switch {
	case err == nil:
		// Accumulated quantity is intentionally not re-clamped to the
		// per-request maximum.
		item.Quantity += req.Quantity
		item.Price = product.Price
		item.NeedsCutlery = req.NeedsCutlery
		if err := repo.UpdateItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart item")
		}
		return nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		fresh := &models.CartItem{
			CartID:       cart.ID,
			ProductID:    product.ID,
			Quantity:     req.Quantity,
			Price:        product.Price,
			NeedsCutlery: req.NeedsCutlery,
		}
		createErr := repo.CreateItem(ctx, fresh)
		if createErr == nil {
			return nil
		}
		// Lost the insert race against a concurrent add of the same
		// product: merge into the winner's row instead.
		if db.IsUniqueViolation(createErr, "uq_cart_items_cart_product") {
			existing, findErr := repo.FindItem(ctx, cart.ID, product.ID)
			if findErr != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, findErr, "reload cart item")
			}
			existing.Quantity += req.Quantity
			existing.Price = product.Price
			existing.NeedsCutlery = req.NeedsCutlery
			if err := repo.UpdateItem(ctx, existing); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart item")
			}
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, createErr, "create cart item")

	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup cart item")
	}
}

// RemoveItem deletes one line from the user's cart. Lines belonging to other
// carts are invisible here and report not found.
func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*MutationResponse, error) {
	var resp *MutationResponse
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repoFactory(tx)

		cart, err := repo.GetOrCreate(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}

		removed, err := repo.DeleteItemOwned(ctx, itemID, cart.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart item")
		}
		if removed == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}

		fresh, err := repo.FindByUserID(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload cart")
		}
		resp = mutationResponse(fresh)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Clear removes every line while keeping the cart row in place.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) (*MutationResponse, error) {
	var resp *MutationResponse
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repoFactory(tx)

		cart, err := repo.GetOrCreate(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}
		if err := repo.DeleteItems(ctx, cart.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
		}

		fresh, err := repo.FindByUserID(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload cart")
		}
		resp = mutationResponse(fresh)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
