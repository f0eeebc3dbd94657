package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is created lazily on a user's first cart interaction and is
// never deleted afterwards; only its items come and go.
type Cart struct {
	ID        uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uuid.UUID     `gorm:"type:uuid;uniqueIndex;not null" json:"-"` // one cart per user
	Items     []CartProduct `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time     `json:"-"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// CartProduct is one cart line: a product and its quantity. A cart
// holds at most one line per product.
type CartProduct struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"-"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"-"`
	Product   Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product"`
	Quantity  int       `gorm:"not null;check:quantity >= 0" json:"quantity"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
