package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one product line inside a cart. Quantity is always >= 1; a
// decrement at quantity 1 removes the row instead.
type CartItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CartID    uuid.UUID `gorm:"column:cart_id;type:uuid;not null" json:"-"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null" json:"product"`
	Quantity  int       `gorm:"column:quantity;not null" json:"quantity"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`

	Product *Product `gorm:"foreignKey:ProductID" json:"productDetails,omitempty"`
}
