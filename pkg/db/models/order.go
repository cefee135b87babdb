package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trendzapp/trendz-backend/pkg/enums"
)

// OrderProduct is a product snapshot captured at checkout time.
type OrderProduct struct {
	ProductID uuid.UUID `json:"product"`
	Quantity  int       `json:"quantity"`
}

// OrderProducts is stored as a jsonb document; orders keep no live
// back-reference into the catalog after creation.
type OrderProducts []OrderProduct

// Order is created verbatim from the checkout payload. Deletion is a soft
// flag; the record is retained.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID         `gorm:"column:user_id;type:uuid;not null" json:"user"`
	Email         string            `gorm:"column:email;not null" json:"email"`
	ShopID        uuid.UUID         `gorm:"column:shop_id;type:uuid;not null" json:"shop"`
	Products      OrderProducts     `gorm:"column:products;type:jsonb;serializer:json;not null" json:"products"`
	TotalAmount   decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2);not null" json:"totalAmount"`
	Status        enums.OrderStatus `gorm:"column:status;not null;default:'PENDING'" json:"status"`
	TransactionID string            `gorm:"column:transaction_id;not null;default:''" json:"transactionId"`
	IsDeleted     bool              `gorm:"column:is_deleted;not null;default:false" json:"isDeleted"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
