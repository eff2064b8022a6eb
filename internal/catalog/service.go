package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercatoapp/mercato-backend/pkg/db/models"
	pkgerrors "github.com/mercatoapp/mercato-backend/pkg/errors"
)

const (
	homeRestaurantLimit = 4
	homeProductLimit    = 4
)

type catalogRepository interface {
	ListCategoriesWithProducts(ctx context.Context) ([]models.Category, error)
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	TopRestaurantsByRating(ctx context.Context, limit int) ([]models.Restaurant, error)
	ListRestaurantCategories(ctx context.Context) ([]models.RestaurantCategory, error)
	ListAisles(ctx context.Context) ([]models.Aisle, error)
	ListMarketProducts(ctx context.Context) ([]models.MarketProduct, error)
	FeaturedMarketProducts(ctx context.Context, limit int) ([]models.MarketProduct, error)
	ListLabs(ctx context.Context) ([]models.Lab, error)
	ListMedicines(ctx context.Context) ([]models.Medicine, error)
	ListLiquorTypes(ctx context.Context) ([]models.LiquorType, error)
	ListBottles(ctx context.Context) ([]models.Bottle, error)
	ListPetTypes(ctx context.Context) ([]models.PetType, error)
	ListPetProducts(ctx context.Context) ([]models.PetProduct, error)
}

// Service assembles the browse endpoints for every vertical.
type Service struct {
	repo catalogRepository
}

// NewService constructs a catalog service over the given repository.
func NewService(repo catalogRepository) *Service {
	return &Service{repo: repo}
}

// NewServiceWithDB wires the service to the default repository.
func NewServiceWithDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// Menu returns the active store categories with their active products.
func (s *Service) Menu(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategoriesWithProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load catalog")
	}

	out := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dto := CategoryDTO{
			ID:       c.ID,
			Name:     c.Name,
			Slug:     c.Slug,
			Emoji:    c.Emoji,
			Products: make([]ProductDTO, 0, len(c.Products)),
		}
		for _, p := range c.Products {
			dto.Products = append(dto.Products, productToDTO(p))
		}
		out = append(out, dto)
	}
	return out, nil
}

// Home returns the landing feed highlights.
func (s *Service) Home(ctx context.Context) (*HomeDTO, error) {
	restaurants, err := s.repo.TopRestaurantsByRating(ctx, homeRestaurantLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load top restaurants")
	}
	products, err := s.repo.FeaturedMarketProducts(ctx, homeProductLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load featured products")
	}
	categoryNames, err := s.restaurantCategoryNames(ctx)
	if err != nil {
		return nil, err
	}

	feed := &HomeDTO{
		TopRestaurants:   make([]RestaurantDTO, 0, len(restaurants)),
		FeaturedProducts: make([]MarketProductDTO, 0, len(products)),
	}
	for _, r := range restaurants {
		feed.TopRestaurants = append(feed.TopRestaurants, restaurantToDTO(r, categoryNames[r.CategoryID], false))
	}
	for _, p := range products {
		feed.FeaturedProducts = append(feed.FeaturedProducts, marketProductToDTO(p))
	}
	return feed, nil
}

// Restaurants returns every restaurant with its dishes, best rated first.
func (s *Service) Restaurants(ctx context.Context) ([]RestaurantDTO, error) {
	restaurants, err := s.repo.ListRestaurants(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load restaurants")
	}
	categoryNames, err := s.restaurantCategoryNames(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]RestaurantDTO, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, restaurantToDTO(r, categoryNames[r.CategoryID], true))
	}
	return out, nil
}

// Market returns the grocery vertical grouped by aisle.
func (s *Service) Market(ctx context.Context) ([]AisleDTO, error) {
	aisles, err := s.repo.ListAisles(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load aisles")
	}
	products, err := s.repo.ListMarketProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load market products")
	}

	byAisle := make(map[uuid.UUID][]MarketProductDTO, len(aisles))
	for _, p := range products {
		byAisle[p.AisleID] = append(byAisle[p.AisleID], marketProductToDTO(p))
	}

	out := make([]AisleDTO, 0, len(aisles))
	for _, a := range aisles {
		dto := AisleDTO{ID: a.ID, Name: a.Name, Products: byAisle[a.ID]}
		if dto.Products == nil {
			dto.Products = []MarketProductDTO{}
		}
		out = append(out, dto)
	}
	return out, nil
}

// Pharmacy returns the pharmacy vertical grouped by lab.
func (s *Service) Pharmacy(ctx context.Context) ([]LabDTO, error) {
	labs, err := s.repo.ListLabs(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load labs")
	}
	medicines, err := s.repo.ListMedicines(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load medicines")
	}

	byLab := make(map[uuid.UUID][]MedicineDTO, len(labs))
	for _, m := range medicines {
		byLab[m.LabID] = append(byLab[m.LabID], MedicineDTO{
			ID:                   m.ID,
			Name:                 m.Name,
			Presentation:         m.Presentation,
			ActiveComponent:      m.ActiveComponent,
			RequiresPrescription: m.RequiresPrescription,
			Price:                m.Price.StringFixed(2),
			Stock:                m.Stock,
			ImageURL:             m.ImageURL,
		})
	}

	out := make([]LabDTO, 0, len(labs))
	for _, lab := range labs {
		dto := LabDTO{ID: lab.ID, Name: lab.Name, Medicines: byLab[lab.ID]}
		if dto.Medicines == nil {
			dto.Medicines = []MedicineDTO{}
		}
		out = append(out, dto)
	}
	return out, nil
}

// Liquor returns the liquor vertical grouped by type.
func (s *Service) Liquor(ctx context.Context) ([]LiquorTypeDTO, error) {
	types, err := s.repo.ListLiquorTypes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load liquor types")
	}
	bottles, err := s.repo.ListBottles(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load bottles")
	}

	byType := make(map[uuid.UUID][]BottleDTO, len(types))
	for _, b := range bottles {
		byType[b.LiquorTypeID] = append(byType[b.LiquorTypeID], BottleDTO{
			ID:                b.ID,
			Name:              b.Name,
			AlcoholPercentage: b.AlcoholPercentage.StringFixed(1),
			VolumeML:          b.VolumeML,
			Origin:            b.Origin,
			Price:             b.Price.StringFixed(2),
			ImageURL:          b.ImageURL,
		})
	}

	out := make([]LiquorTypeDTO, 0, len(types))
	for _, t := range types {
		dto := LiquorTypeDTO{ID: t.ID, Name: t.Name, Bottles: byType[t.ID]}
		if dto.Bottles == nil {
			dto.Bottles = []BottleDTO{}
		}
		out = append(out, dto)
	}
	return out, nil
}

// Pets returns the pet shop vertical grouped by animal.
func (s *Service) Pets(ctx context.Context) ([]PetTypeDTO, error) {
	types, err := s.repo.ListPetTypes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load pet types")
	}
	products, err := s.repo.ListPetProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load pet products")
	}

	byType := make(map[uuid.UUID][]PetProductDTO, len(types))
	for _, p := range products {
		byType[p.PetTypeID] = append(byType[p.PetTypeID], PetProductDTO{
			ID:          p.ID,
			Name:        p.Name,
			LifeStage:   p.LifeStage,
			Description: p.Description,
			Price:       p.Price.StringFixed(2),
			ImageURL:    p.ImageURL,
		})
	}

	out := make([]PetTypeDTO, 0, len(types))
	for _, t := range types {
		dto := PetTypeDTO{ID: t.ID, Name: t.Name, Products: byType[t.ID]}
		if dto.Products == nil {
			dto.Products = []PetProductDTO{}
		}
		out = append(out, dto)
	}
	return out, nil
}

func (s *Service) restaurantCategoryNames(ctx context.Context) (map[uuid.UUID]string, error) {
	categories, err := s.repo.ListRestaurantCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load restaurant categories")
	}
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}
