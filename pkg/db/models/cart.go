package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the per-user shopping cart. Exactly one row per user, enforced by
// the unique index on user_id; created lazily on first access.
type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// Total sums price x quantity over the loaded items. Derived, never stored.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// TotalItems sums the quantities over the loaded items.
func (c Cart) TotalItems() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// CartItem is one line item: a product reference, a quantity, and the unit
// price snapshotted when the item was created or last touched. At most one
// row per (cart, product), enforced by the composite unique index.
type CartItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CartID       uuid.UUID       `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:uq_cart_items_cart_product"`
	ProductID    uuid.UUID       `gorm:"column:product_id;type:uuid;not null;uniqueIndex:uq_cart_items_cart_product"`
	Quantity     int             `gorm:"column:quantity;not null"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	NeedsCutlery bool            `gorm:"column:needs_cutlery;not null;default:false"`
	Product      *Product        `gorm:"foreignKey:ProductID"`
	AddedAt      time.Time       `gorm:"column:added_at;autoCreateTime"`
}

// Subtotal is the snapshotted price times the quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
