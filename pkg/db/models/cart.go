package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the single active cart for a user. All items reference products of
// the one shop the cart is bound to. Version is the optimistic-lock token: a
// mutation only lands when the version it read is still current.
type Cart struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"column:user_id;type:uuid;not null;uniqueIndex" json:"user"`
	ShopID      uuid.UUID       `gorm:"column:shop_id;type:uuid;not null" json:"shop"`
	TotalItems  int             `gorm:"column:total_items;not null;default:0" json:"totalItems"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null;default:0" json:"totalAmount"`
	Version     int             `gorm:"column:version;not null;default:1" json:"-"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	Shop  *Shop      `gorm:"foreignKey:ShopID" json:"shopDetails,omitempty"`
	User  *User      `gorm:"foreignKey:UserID" json:"userDetails,omitempty"`
}
