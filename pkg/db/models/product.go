package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is a vendor listing. Price and Discount are non-negative decimals;
// image URLs come from the external image-storage service.
type Product struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string          `gorm:"column:name;not null" json:"name"`
	Price          decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	CategoryID     uuid.UUID       `gorm:"column:category_id;type:uuid;not null" json:"category"`
	InventoryCount int             `gorm:"column:inventory_count;not null;default:0" json:"inventoryCount"`
	Description    string          `gorm:"column:description;not null" json:"description"`
	Images         pq.StringArray  `gorm:"column:images;type:text[];not null;default:'{}'" json:"images"`
	Discount       decimal.Decimal `gorm:"column:discount;type:numeric(12,2);not null;default:0" json:"discount"`
	ShopID         uuid.UUID       `gorm:"column:shop_id;type:uuid;not null" json:"shop"`
	VendorID       uuid.UUID       `gorm:"column:vendor_id;type:uuid;not null" json:"vendor"`
	IsDeleted      bool            `gorm:"column:is_deleted;not null;default:false" json:"isDeleted"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Shop     *Shop     `gorm:"foreignKey:ShopID" json:"shopDetails,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"categoryDetails,omitempty"`
	Vendor   *User     `gorm:"foreignKey:VendorID" json:"vendorDetails,omitempty"`
}
