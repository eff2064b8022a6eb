package catalog

import (
	"github.com/google/uuid"

	"github.com/mercatoapp/mercato-backend/pkg/db/models"
	"github.com/mercatoapp/mercato-backend/pkg/enums"
)

// ProductDTO is the client view of one fast-food product.
type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	ImageURL    string    `json:"image_url"`
	IsPromo     bool      `json:"is_promo"`
}

// CategoryDTO groups the active products of one menu category.
type CategoryDTO struct {
	ID       uuid.UUID    `json:"id"`
	Name     string       `json:"name"`
	Slug     string       `json:"slug"`
	Emoji    string       `json:"emoji"`
	Products []ProductDTO `json:"products"`
}

// RestaurantDTO summarizes a restaurant for listings and the home feed.
type RestaurantDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	ImageURL     string    `json:"image_url"`
	Rating       string    `json:"rating"`
	DeliveryTime string    `json:"delivery_time"`
	Dishes       []DishDTO `json:"dishes,omitempty"`
}

// DishDTO is one restaurant dish.
type DishDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	ImageURL  string    `json:"image_url"`
	IsPopular bool      `json:"is_popular"`
}

// AisleDTO groups market products by aisle.
type AisleDTO struct {
	ID       uuid.UUID          `json:"id"`
	Name     string             `json:"name"`
	Products []MarketProductDTO `json:"products"`
}

// MarketProductDTO is one supermarket item.
type MarketProductDTO struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Brand       string            `json:"brand"`
	NetContent  string            `json:"net_content"`
	UnitMeasure enums.UnitMeasure `json:"unit_measure"`
	Price       string            `json:"price"`
	ImageURL    string            `json:"image_url"`
	IsOrganic   bool              `json:"is_organic"`
}

// LabDTO groups medicines by laboratory.
type LabDTO struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Medicines []MedicineDTO `json:"medicines"`
}

// MedicineDTO is one pharmacy item.
type MedicineDTO struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	Presentation         string    `json:"presentation"`
	ActiveComponent      string    `json:"active_component"`
	RequiresPrescription bool      `json:"requires_prescription"`
	Price                string    `json:"price"`
	Stock                int       `json:"stock"`
	ImageURL             string    `json:"image_url"`
}

// LiquorTypeDTO groups bottles by liquor type.
type LiquorTypeDTO struct {
	ID      uuid.UUID   `json:"id"`
	Name    string      `json:"name"`
	Bottles []BottleDTO `json:"bottles"`
}

// BottleDTO is one liquor store item.
type BottleDTO struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	AlcoholPercentage string    `json:"alcohol_percentage"`
	VolumeML          int       `json:"volume_ml"`
	Origin            string    `json:"origin"`
	Price             string    `json:"price"`
	ImageURL          string    `json:"image_url"`
}

// PetTypeDTO groups pet products by animal.
type PetTypeDTO struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Products []PetProductDTO `json:"products"`
}

// PetProductDTO is one pet shop item.
type PetProductDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	LifeStage   enums.LifeStage `json:"life_stage"`
	Description string          `json:"description"`
	Price       string          `json:"price"`
	ImageURL    string          `json:"image_url"`
}

// HomeDTO is the landing feed: a handful of highlights from two verticals.
type HomeDTO struct {
	TopRestaurants   []RestaurantDTO    `json:"top_restaurants"`
	FeaturedProducts []MarketProductDTO `json:"featured_products"`
}

func productToDTO(p models.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		ImageURL:    p.ImageURL,
		IsPromo:     p.IsPromo,
	}
}

func restaurantToDTO(r models.Restaurant, categoryName string, withDishes bool) RestaurantDTO {
	dto := RestaurantDTO{
		ID:           r.ID,
		Name:         r.Name,
		Category:     categoryName,
		ImageURL:     r.CoverImageURL,
		Rating:       r.Rating.StringFixed(1),
		DeliveryTime: r.DeliveryTime,
	}
	if withDishes {
		dto.Dishes = make([]DishDTO, 0, len(r.Dishes))
		for _, dish := range r.Dishes {
			dto.Dishes = append(dto.Dishes, DishDTO{
				ID:        dish.ID,
				Name:      dish.Name,
				Price:     dish.Price.StringFixed(2),
				ImageURL:  dish.ImageURL,
				IsPopular: dish.IsPopular,
			})
		}
	}
	return dto
}

func marketProductToDTO(p models.MarketProduct) MarketProductDTO {
	return MarketProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		NetContent:  p.NetContent.StringFixed(2),
		UnitMeasure: p.UnitMeasure,
		Price:       p.Price.StringFixed(2),
		ImageURL:    p.ImageURL,
		IsOrganic:   p.IsOrganic,
	}
}
