package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mercatoapp/mercato-backend/pkg/db/models"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			emoji TEXT,
			position INTEGER NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE products (
			id TEXT PRIMARY KEY,
			category_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			price NUMERIC NOT NULL,
			image_url TEXT,
			is_promo BOOLEAN NOT NULL DEFAULT FALSE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			position INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE restaurant_categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			image_url TEXT
		)`,
		`CREATE TABLE restaurants (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category_id TEXT NOT NULL,
			delivery_time TEXT NOT NULL DEFAULT '30-45 min',
			rating NUMERIC NOT NULL DEFAULT 4.5,
			cover_image_url TEXT,
			created_at DATETIME
		)`,
		`CREATE TABLE dishes (
			id TEXT PRIMARY KEY,
			restaurant_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			price NUMERIC NOT NULL,
			image_url TEXT,
			is_popular BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE aisles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE market_products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			aisle_id TEXT NOT NULL,
			brand TEXT,
			net_content NUMERIC NOT NULL,
			unit_measure TEXT NOT NULL,
			price NUMERIC NOT NULL,
			is_organic BOOLEAN NOT NULL DEFAULT FALSE,
			image_url TEXT
		)`,
		`CREATE TABLE labs (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE medicines (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			lab_id TEXT NOT NULL,
			presentation TEXT NOT NULL,
			active_component TEXT NOT NULL,
			requires_prescription BOOLEAN NOT NULL DEFAULT FALSE,
			price NUMERIC NOT NULL,
			stock INTEGER NOT NULL DEFAULT 0,
			image_url TEXT
		)`,
		`CREATE TABLE liquor_types (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE bottles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			liquor_type_id TEXT NOT NULL,
			alcohol_percentage NUMERIC NOT NULL,
			volume_ml INTEGER NOT NULL,
			origin TEXT,
			price NUMERIC NOT NULL,
			image_url TEXT
		)`,
		`CREATE TABLE pet_types (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE pet_products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			pet_type_id TEXT NOT NULL,
			life_stage TEXT NOT NULL DEFAULT 'all',
			description TEXT,
			price NUMERIC NOT NULL,
			image_url TEXT
		)`,
	}
	for _, stmt := range ddl {
		require.NoError(t, gdb.Exec(stmt).Error)
	}
	return gdb
}

func seedCategory(t *testing.T, db *gorm.DB, name string, position int, active bool) models.Category {
	t.Helper()
	c := models.Category{
		ID:       uuid.New(),
		Name:     name,
		Slug:     name,
		Position: position,
		IsActive: active,
	}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func seedCatalogProduct(t *testing.T, db *gorm.DB, categoryID uuid.UUID, name string, position int, active bool) models.Product {
	t.Helper()
	p := models.Product{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Name:       name,
		Price:      decimal.RequireFromString("9.99"),
		Position:   position,
		IsActive:   active,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func seedRestaurant(t *testing.T, db *gorm.DB, categoryID uuid.UUID, name, rating string) models.Restaurant {
	t.Helper()
	r := models.Restaurant{
		ID:           uuid.New(),
		Name:         name,
		CategoryID:   categoryID,
		DeliveryTime: "30-45 min",
		Rating:       decimal.RequireFromString(rating),
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func TestListCategoriesWithProductsFiltersAndOrders(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	seedCategory(t, gdb, "burgers", 2, true)
	first := seedCategory(t, gdb, "pizza", 1, true)
	seedCategory(t, gdb, "hidden", 0, false)

	seedCatalogProduct(t, gdb, first.ID, "pepperoni", 2, true)
	seedCatalogProduct(t, gdb, first.ID, "margherita", 1, true)
	seedCatalogProduct(t, gdb, first.ID, "off menu", 0, false)

	categories, err := repo.ListCategoriesWithProducts(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)

	assert.Equal(t, "pizza", categories[0].Name)
	assert.Equal(t, "burgers", categories[1].Name)

	require.Len(t, categories[0].Products, 2)
	assert.Equal(t, "margherita", categories[0].Products[0].Name)
	assert.Equal(t, "pepperoni", categories[0].Products[1].Name)
}

func TestTopRestaurantsByRating(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	cuisine := models.RestaurantCategory{ID: uuid.New(), Name: "burgers"}
	require.NoError(t, gdb.Create(&cuisine).Error)

	seedRestaurant(t, gdb, cuisine.ID, "mid", "4.2")
	best := seedRestaurant(t, gdb, cuisine.ID, "best", "4.9")
	seedRestaurant(t, gdb, cuisine.ID, "low", "3.8")

	top, err := repo.TopRestaurantsByRating(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, best.ID, top[0].ID)
	assert.Equal(t, "mid", top[1].Name)
}

func TestListRestaurantsPreloadsDishes(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	repo := NewRepository(gdb)
	ctx := context.Background()

	cuisine := models.RestaurantCategory{ID: uuid.New(), Name: "sushi"}
	require.NoError(t, gdb.Create(&cuisine).Error)
	r := seedRestaurant(t, gdb, cuisine.ID, "tokyo", "4.7")

	dish := models.Dish{
		ID:           uuid.New(),
		RestaurantID: r.ID,
		Name:         "nigiri",
		Price:        decimal.RequireFromString("12.00"),
		IsPopular:    true,
	}
	require.NoError(t, gdb.Create(&dish).Error)

	restaurants, err := repo.ListRestaurants(ctx)
	require.NoError(t, err)
	require.Len(t, restaurants, 1)
	require.Len(t, restaurants[0].Dishes, 1)
	assert.Equal(t, "nigiri", restaurants[0].Dishes[0].Name)
	assert.True(t, restaurants[0].Dishes[0].IsPopular)
}

func TestServiceMarketGroupsByAisle(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := NewServiceWithDB(gdb)
	ctx := context.Background()

	dairy := models.Aisle{ID: uuid.New(), Name: "dairy"}
	empty := models.Aisle{ID: uuid.New(), Name: "produce"}
	require.NoError(t, gdb.Create(&dairy).Error)
	require.NoError(t, gdb.Create(&empty).Error)

	milk := models.MarketProduct{
		ID:          uuid.New(),
		Name:        "milk",
		AisleID:     dairy.ID,
		Brand:       "alpina",
		NetContent:  decimal.RequireFromString("1.00"),
		UnitMeasure: "l",
		Price:       decimal.RequireFromString("3.50"),
		IsOrganic:   true,
	}
	require.NoError(t, gdb.Create(&milk).Error)

	aisles, err := svc.Market(ctx)
	require.NoError(t, err)
	require.Len(t, aisles, 2)

	assert.Equal(t, "dairy", aisles[0].Name)
	require.Len(t, aisles[0].Products, 1)
	assert.Equal(t, "milk", aisles[0].Products[0].Name)
	assert.Equal(t, "3.50", aisles[0].Products[0].Price)
	assert.True(t, aisles[0].Products[0].IsOrganic)

	assert.Equal(t, "produce", aisles[1].Name)
	assert.Empty(t, aisles[1].Products)
	assert.NotNil(t, aisles[1].Products)
}

func TestServiceHomeFeed(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := NewServiceWithDB(gdb)
	ctx := context.Background()

	cuisine := models.RestaurantCategory{ID: uuid.New(), Name: "burgers"}
	require.NoError(t, gdb.Create(&cuisine).Error)
	for i, rating := range []string{"4.1", "4.9", "4.5", "4.7", "3.9"} {
		seedRestaurant(t, gdb, cuisine.ID, string(rune('a'+i)), rating)
	}

	aisle := models.Aisle{ID: uuid.New(), Name: "pantry"}
	require.NoError(t, gdb.Create(&aisle).Error)
	for _, name := range []string{"rice", "beans", "oats", "flour", "sugar"} {
		p := models.MarketProduct{
			ID:          uuid.New(),
			Name:        name,
			AisleID:     aisle.ID,
			NetContent:  decimal.RequireFromString("1.00"),
			UnitMeasure: "kg",
			Price:       decimal.RequireFromString("2.00"),
		}
		require.NoError(t, gdb.Create(&p).Error)
	}

	feed, err := svc.Home(ctx)
	require.NoError(t, err)

	require.Len(t, feed.TopRestaurants, 4)
	assert.Equal(t, "4.9", feed.TopRestaurants[0].Rating)
	assert.Equal(t, "burgers", feed.TopRestaurants[0].Category)
	assert.Empty(t, feed.TopRestaurants[0].Dishes)

	assert.Len(t, feed.FeaturedProducts, 4)
}

func TestServiceLiquorAndPetsGrouping(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := NewServiceWithDB(gdb)
	ctx := context.Background()

	wine := models.LiquorType{ID: uuid.New(), Name: "wine"}
	require.NoError(t, gdb.Create(&wine).Error)
	bottle := models.Bottle{
		ID:                uuid.New(),
		Name:              "malbec",
		LiquorTypeID:      wine.ID,
		AlcoholPercentage: decimal.RequireFromString("13.5"),
		VolumeML:          750,
		Origin:            "argentina",
		Price:             decimal.RequireFromString("18.00"),
	}
	require.NoError(t, gdb.Create(&bottle).Error)

	liquor, err := svc.Liquor(ctx)
	require.NoError(t, err)
	require.Len(t, liquor, 1)
	require.Len(t, liquor[0].Bottles, 1)
	assert.Equal(t, "13.5", liquor[0].Bottles[0].AlcoholPercentage)
	assert.Equal(t, 750, liquor[0].Bottles[0].VolumeML)

	dogs := models.PetType{ID: uuid.New(), Name: "dogs"}
	require.NoError(t, gdb.Create(&dogs).Error)
	chow := models.PetProduct{
		ID:        uuid.New(),
		Name:      "kibble",
		PetTypeID: dogs.ID,
		LifeStage: "adult",
		Price:     decimal.RequireFromString("25.00"),
	}
	require.NoError(t, gdb.Create(&chow).Error)

	pets, err := svc.Pets(ctx)
	require.NoError(t, err)
	require.Len(t, pets, 1)
	require.Len(t, pets[0].Products, 1)
	assert.Equal(t, "kibble", pets[0].Products[0].Name)
	assert.Equal(t, "25.00", pets[0].Products[0].Price)
}

func TestServicePharmacyGroupsByLab(t *testing.T) {
	gdb := setupCatalogTestDB(t)
	svc := NewServiceWithDB(gdb)
	ctx := context.Background()

	lab := models.Lab{ID: uuid.New(), Name: "bayer"}
	require.NoError(t, gdb.Create(&lab).Error)
	med := models.Medicine{
		ID:              uuid.New(),
		Name:            "aspirin",
		LabID:           lab.ID,
		Presentation:    "tablets x20",
		ActiveComponent: "acetylsalicylic acid",
		Price:           decimal.RequireFromString("4.25"),
		Stock:           12,
	}
	require.NoError(t, gdb.Create(&med).Error)

	labs, err := svc.Pharmacy(ctx)
	require.NoError(t, err)
	require.Len(t, labs, 1)
	require.Len(t, labs[0].Medicines, 1)
	assert.Equal(t, "aspirin", labs[0].Medicines[0].Name)
	assert.False(t, labs[0].Medicines[0].RequiresPrescription)
	assert.Equal(t, 12, labs[0].Medicines[0].Stock)
}
