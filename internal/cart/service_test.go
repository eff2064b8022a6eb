package cart

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mercatoapp/mercato-backend/pkg/db/models"
	pkgerrors "github.com/mercatoapp/mercato-backend/pkg/errors"
)

type memTxRunner struct{}

func (memTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// memRepo is an in-memory cartRepository with the same uniqueness rules the
// SQL schema enforces.
type memRepo struct {
	carts    map[uuid.UUID]*models.Cart // by user id
	items    map[uuid.UUID]*models.CartItem
	products map[uuid.UUID]*models.Product

	failNextCreateItem error
}

func newMemRepo() *memRepo {
	return &memRepo{
		carts:    map[uuid.UUID]*models.Cart{},
		items:    map[uuid.UUID]*models.CartItem{},
		products: map[uuid.UUID]*models.Product{},
	}
}

func (m *memRepo) addProduct(price string, active bool) *models.Product {
	p := &models.Product{
		ID:       uuid.New(),
		Name:     "product-" + uuid.NewString()[:8],
		Price:    decimal.RequireFromString(price),
		IsActive: active,
	}
	m.products[p.ID] = p
	return p
}

func (m *memRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, ok := m.carts[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	view := *cart
	view.Items = nil
	for _, item := range m.items {
		if item.CartID == cart.ID {
			line := *item
			if p, ok := m.products[item.ProductID]; ok {
				line.Product = p
			}
			view.Items = append(view.Items, line)
		}
	}
	sort.Slice(view.Items, func(i, j int) bool {
		return view.Items[i].AddedAt.Before(view.Items[j].AddedAt)
	})
	return &view, nil
}

func (m *memRepo) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if cart, err := m.FindByUserID(ctx, userID); err == nil {
		return cart, nil
	}
	cart := &models.Cart{ID: uuid.New(), UserID: userID}
	m.carts[userID] = cart
	return cart, nil
}

func (m *memRepo) FindItem(ctx context.Context, cartID, productID uuid.UUID) (*models.CartItem, error) {
	for _, item := range m.items {
		if item.CartID == cartID && item.ProductID == productID {
			line := *item
			return &line, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) CreateItem(ctx context.Context, item *models.CartItem) error {
	if m.failNextCreateItem != nil {
		err := m.failNextCreateItem
		m.failNextCreateItem = nil
		return err
	}
	for _, existing := range m.items {
		if existing.CartID == item.CartID && existing.ProductID == item.ProductID {
			return errors.New(`duplicate key value violates unique constraint "uq_cart_items_cart_product"`)
		}
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.AddedAt = time.Now()
	stored := *item
	m.items[item.ID] = &stored
	return nil
}

func (m *memRepo) UpdateItem(ctx context.Context, item *models.CartItem) error {
	stored, ok := m.items[item.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Quantity = item.Quantity
	stored.Price = item.Price
	stored.NeedsCutlery = item.NeedsCutlery
	return nil
}

func (m *memRepo) DeleteItemOwned(ctx context.Context, itemID, cartID uuid.UUID) (int64, error) {
	item, ok := m.items[itemID]
	if !ok || item.CartID != cartID {
		return 0, nil
	}
	delete(m.items, itemID)
	return 1, nil
}

func (m *memRepo) DeleteItems(ctx context.Context, cartID uuid.UUID) error {
	for id, item := range m.items {
		if item.CartID == cartID {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *memRepo) FindActiveProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	p, ok := m.products[productID]
	if !ok || !p.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func newTestService(t *testing.T) (Service, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	svc, err := NewService(ServiceParams{
		TxRunner: memTxRunner{},
		RepoFactory: func(tx *gorm.DB) cartRepository {
			return repo
		},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func TestGetCreatesEmptyCart(t *testing.T) {
	svc, _ := newTestService(t)
	userID := uuid.New()

	cart, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cart.TotalItems != 0 {
		t.Fatalf("expected empty cart, got %d items", cart.TotalItems)
	}
	if cart.Total != "0.00" {
		t.Fatalf("expected total 0.00, got %s", cart.Total)
	}

	again, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if again.ID != cart.ID {
		t.Fatalf("expected a single cart per user, got %s then %s", cart.ID, again.ID)
	}
}

func TestAddItemCreatesLine(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()
	product := repo.addProduct("10.50", true)

	resp, err := svc.AddItem(context.Background(), userID, AddItemRequest{
		ProductID: product.ID,
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success")
	}
	if resp.CartTotalItems != 2 {
		t.Fatalf("expected 2 total items, got %d", resp.CartTotalItems)
	}
	if resp.CartTotal != "21.00" {
		t.Fatalf("expected total 21.00, got %s", resp.CartTotal)
	}
}

func TestAddItemMergesAndRefreshesSnapshot(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()
	product := repo.addProduct("10.00", true)

	if _, err := svc.AddItem(context.Background(), userID, AddItemRequest{
		ProductID:    product.ID,
		Quantity:     2,
		NeedsCutlery: true,
	}); err != nil {
		t.Fatalf("first add: %v", err)
	}

	// Price changes between adds; the line must pick up the new price for
	// its entire quantity.
	repo.products[product.ID].Price = decimal.RequireFromString("12.00")

	resp, err := svc.AddItem(context.Background(), userID, AddItemRequest{
		ProductID:    product.ID,
		Quantity:     3,
		NeedsCutlery: false,
	})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if resp.CartTotalItems != 5 {
		t.Fatalf("expected merged quantity 5, got %d", resp.CartTotalItems)
	}
	if resp.CartTotal != "60.00" {
		t.Fatalf("expected refreshed price total 60.00, got %s", resp.CartTotal)
	}

	cart, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(cart.Items))
	}
	line := cart.Items[0]
	if line.Quantity != 5 || line.Price != "12.00" {
		t.Fatalf("unexpected line quantity=%d price=%s", line.Quantity, line.Price)
	}
	if line.NeedsCutlery {
		t.Fatal("expected cutlery flag overwritten by the last add")
	}
}

func TestAddItemAccumulationExceedsPerRequestMax(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()
	product := repo.addProduct("1.00", true)

	for i := 0; i < 2; i++ {
		if _, err := svc.AddItem(context.Background(), userID, AddItemRequest{
			ProductID: product.ID,
			Quantity:  60,
		}); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	cart, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cart.Items[0].Quantity != 120 {
		t.Fatalf("expected accumulated quantity 120, got %d", cart.Items[0].Quantity)
	}
}

func TestAddItemQuantityBounds(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()
	product := repo.addProduct("1.00", true)

	for _, quantity := range []int{0, -1, 100} {
		_, err := svc.AddItem(context.Background(), userID, AddItemRequest{
			ProductID: product.ID,
			Quantity:  quantity,
		})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("quantity %d: expected validation error, got %v", quantity, err)
		}
	}
}

func TestAddItemUnknownOrInactiveProduct(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()
	inactive := repo.addProduct("5.00", false)

	for _, productID := range []uuid.UUID{uuid.New(), inactive.ID} {
		_, err := svc.AddItem(context.Background(), userID, AddItemRequest{
			ProductID: productID,
			Quantity:  1,
		})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	}
}

func TestAddItemMergesAfterInsertRace(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()
	product := repo.addProduct("4.00", true)

	// The winner's row lands between our lookup and insert.
	cart, err := repo.GetOrCreate(context.Background(), userID)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	winner := &models.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  1,
		Price:     product.Price,
	}
	if err := repo.CreateItem(context.Background(), winner); err != nil {
		t.Fatalf("seed winner row: %v", err)
	}
	repo.failNextCreateItem = errors.New(`duplicate key value violates unique constraint "uq_cart_items_cart_product"`)

	resp, err := svc.AddItem(context.Background(), userID, AddItemRequest{
		ProductID: product.ID,
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("add after race: %v", err)
	}
	if resp.CartTotalItems != 3 {
		t.Fatalf("expected merged quantity 3 after race, got %d", resp.CartTotalItems)
	}
}

func TestRemoveItemScopedToOwnCart(t *testing.T) {
	svc, repo := newTestService(t)
	owner := uuid.New()
	intruder := uuid.New()
	product := repo.addProduct("7.25", true)

	if _, err := svc.AddItem(context.Background(), owner, AddItemRequest{
		ProductID: product.ID,
		Quantity:  1,
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	cart, err := svc.Get(context.Background(), owner)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	itemID := cart.Items[0].ID

	// Someone else's cart cannot see the line.
	_, err = svc.RemoveItem(context.Background(), intruder, itemID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign item, got %v", err)
	}

	// The owner still can remove it.
	resp, err := svc.RemoveItem(context.Background(), owner, itemID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if resp.CartTotalItems != 0 || resp.CartTotal != "0.00" {
		t.Fatalf("expected empty cart after remove, got items=%d total=%s", resp.CartTotalItems, resp.CartTotal)
	}
}

func TestRemoveMissingItem(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RemoveItem(context.Background(), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestClearKeepsCartRow(t *testing.T) {
	svc, repo := newTestService(t)
	userID := uuid.New()
	first := repo.addProduct("10.50", true)
	second := repo.addProduct("3.25", true)

	if _, err := svc.AddItem(context.Background(), userID, AddItemRequest{ProductID: first.ID, Quantity: 2}); err != nil {
		t.Fatalf("add first: %v", err)
	}
	if _, err := svc.AddItem(context.Background(), userID, AddItemRequest{ProductID: second.ID, Quantity: 1}); err != nil {
		t.Fatalf("add second: %v", err)
	}

	before, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if before.Total != "24.25" || before.TotalItems != 3 {
		t.Fatalf("unexpected totals before clear: %s / %d", before.Total, before.TotalItems)
	}

	resp, err := svc.Clear(context.Background(), userID)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if resp.CartTotalItems != 0 || resp.CartTotal != "0.00" {
		t.Fatalf("expected zeroed totals, got items=%d total=%s", resp.CartTotalItems, resp.CartTotal)
	}

	after, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("get after clear: %v", err)
	}
	if after.ID != before.ID {
		t.Fatalf("clear must keep the cart row: %s then %s", before.ID, after.ID)
	}
	if len(after.Items) != 0 {
		t.Fatalf("expected no items after clear, got %d", len(after.Items))
	}
}
