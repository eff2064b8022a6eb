package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/mercatoapp/mercato-backend/pkg/db/models"
)

// Repository serves the read-only catalog queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListCategoriesWithProducts returns active menu categories in display order,
// each with its active products.
func (r *Repository) ListCategoriesWithProducts(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("position ASC")
		}).
		Where("is_active = ?", true).
		Order("position ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// ListRestaurants returns every restaurant with its dishes.
func (r *Repository) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.WithContext(ctx).
		Preload("Dishes").
		Order("rating DESC").
		Find(&restaurants).Error
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

// TopRestaurantsByRating returns the highest rated restaurants.
func (r *Repository) TopRestaurantsByRating(ctx context.Context, limit int) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.WithContext(ctx).
		Order("rating DESC").
		Limit(limit).
		Find(&restaurants).Error
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

// ListRestaurantCategories returns all cuisine buckets.
func (r *Repository) ListRestaurantCategories(ctx context.Context) ([]models.RestaurantCategory, error) {
	var categories []models.RestaurantCategory
	if err := r.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// ListAisles returns all market aisles.
func (r *Repository) ListAisles(ctx context.Context) ([]models.Aisle, error) {
	var aisles []models.Aisle
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&aisles).Error; err != nil {
		return nil, err
	}
	return aisles, nil
}

// ListMarketProducts returns all grocery items.
func (r *Repository) ListMarketProducts(ctx context.Context) ([]models.MarketProduct, error) {
	var products []models.MarketProduct
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FeaturedMarketProducts returns a small sample for the home feed.
func (r *Repository) FeaturedMarketProducts(ctx context.Context, limit int) ([]models.MarketProduct, error) {
	var products []models.MarketProduct
	if err := r.db.WithContext(ctx).Order("name ASC").Limit(limit).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListLabs returns all pharmacy labs.
func (r *Repository) ListLabs(ctx context.Context) ([]models.Lab, error) {
	var labs []models.Lab
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&labs).Error; err != nil {
		return nil, err
	}
	return labs, nil
}

// ListMedicines returns all pharmacy items.
func (r *Repository) ListMedicines(ctx context.Context) ([]models.Medicine, error) {
	var medicines []models.Medicine
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&medicines).Error; err != nil {
		return nil, err
	}
	return medicines, nil
}

// ListLiquorTypes returns all liquor buckets.
func (r *Repository) ListLiquorTypes(ctx context.Context) ([]models.LiquorType, error) {
	var types []models.LiquorType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// ListBottles returns all liquor items.
func (r *Repository) ListBottles(ctx context.Context) ([]models.Bottle, error) {
	var bottles []models.Bottle
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&bottles).Error; err != nil {
		return nil, err
	}
	return bottles, nil
}

// ListPetTypes returns all pet buckets.
func (r *Repository) ListPetTypes(ctx context.Context) ([]models.PetType, error) {
	var types []models.PetType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// ListPetProducts returns all pet shop items.
func (r *Repository) ListPetProducts(ctx context.Context) ([]models.PetProduct, error) {
	var products []models.PetProduct
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
