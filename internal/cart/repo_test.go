package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mercatoapp/mercato-backend/pkg/db/models"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL DEFAULT '',
  first_name TEXT NOT NULL DEFAULT '',
  last_name TEXT NOT NULL DEFAULT '',
  phone TEXT,
  address TEXT,
  is_client INTEGER NOT NULL DEFAULT 1,
  is_business_owner INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  emoji TEXT NOT NULL DEFAULT '',
  position INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_categories_slug ON categories (slug);`,
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL,
  image_url TEXT NOT NULL DEFAULT '',
  is_promo INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  position INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_carts_user_id ON carts (user_id);`,
		`CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  price NUMERIC NOT NULL,
  needs_cutlery INTEGER NOT NULL DEFAULT 0,
  added_at DATETIME
);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_cart_items_cart_product ON cart_items (cart_id, product_id);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func seedProduct(t *testing.T, conn *gorm.DB, price string) *models.Product {
	t.Helper()
	category := &models.Category{
		ID:   uuid.New(),
		Name: "Snacks",
		Slug: "snacks-" + uuid.NewString()[:8],
	}
	require.NoError(t, conn.Create(category).Error)

	product := &models.Product{
		ID:         uuid.New(),
		CategoryID: category.ID,
		Name:       "Chips",
		Price:      decimal.RequireFromString(price),
		IsActive:   true,
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func TestRepositoryGetOrCreateIsIdempotent(t *testing.T) {
	conn := setupCartTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	userID := uuid.New()

	first, err := repo.GetOrCreate(ctx, userID)
	require.NoError(t, err)
	second, err := repo.GetOrCreate(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, conn.Model(&models.Cart{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepositoryCartUniquePerUser(t *testing.T) {
	conn := setupCartTestDB(t)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, conn.WithContext(ctx).Create(&models.Cart{ID: uuid.New(), UserID: userID}).Error)
	err := conn.WithContext(ctx).Create(&models.Cart{ID: uuid.New(), UserID: userID}).Error
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")
}

func TestRepositoryItemUniquePerCartProduct(t *testing.T) {
	conn := setupCartTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	product := seedProduct(t, conn, "9.99")

	cart, err := repo.GetOrCreate(ctx, uuid.New())
	require.NoError(t, err)

	require.NoError(t, repo.CreateItem(ctx, &models.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  1,
		Price:     product.Price,
	}))
	err = repo.CreateItem(ctx, &models.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  2,
		Price:     product.Price,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")
}

func TestRepositoryFindByUserIDPreloadsProducts(t *testing.T) {
	conn := setupCartTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	product := seedProduct(t, conn, "4.50")
	userID := uuid.New()

	cart, err := repo.GetOrCreate(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, repo.CreateItem(ctx, &models.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  3,
		Price:     product.Price,
	}))

	loaded, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	require.NotNil(t, loaded.Items[0].Product)
	assert.Equal(t, product.Name, loaded.Items[0].Product.Name)
	assert.Equal(t, "13.50", loaded.Total().StringFixed(2))
	assert.Equal(t, 3, loaded.TotalItems())
}

func TestRepositoryDeleteItemOwnedScoping(t *testing.T) {
	conn := setupCartTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	product := seedProduct(t, conn, "2.00")

	ownerCart, err := repo.GetOrCreate(ctx, uuid.New())
	require.NoError(t, err)
	otherCart, err := repo.GetOrCreate(ctx, uuid.New())
	require.NoError(t, err)

	item := &models.CartItem{
		CartID:    ownerCart.ID,
		ProductID: product.ID,
		Quantity:  1,
		Price:     product.Price,
	}
	require.NoError(t, repo.CreateItem(ctx, item))

	removed, err := repo.DeleteItemOwned(ctx, item.ID, otherCart.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed, "foreign cart must not delete the line")

	removed, err = repo.DeleteItemOwned(ctx, item.ID, ownerCart.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestRepositoryDeleteItemsKeepsCart(t *testing.T) {
	conn := setupCartTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	product := seedProduct(t, conn, "3.00")
	userID := uuid.New()

	cart, err := repo.GetOrCreate(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, repo.CreateItem(ctx, &models.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  2,
		Price:     product.Price,
	}))

	require.NoError(t, repo.DeleteItems(ctx, cart.ID))

	loaded, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, loaded.ID)
	assert.Empty(t, loaded.Items)
}

func TestRepositoryFindActiveProductSkipsInactive(t *testing.T) {
	conn := setupCartTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	product := seedProduct(t, conn, "1.25")

	found, err := repo.FindActiveProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)

	require.NoError(t, conn.Model(&models.Product{}).Where("id = ?", product.ID).Update("is_active", false).Error)
	_, err = repo.FindActiveProduct(ctx, product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
