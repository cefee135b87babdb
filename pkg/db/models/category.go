package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products for browsing. Soft-deleted rows stay on disk and
// are excluded from default listings.
type Category struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	ImageURL  *string   `gorm:"column:image_url" json:"image,omitempty"`
	IsDeleted bool      `gorm:"column:is_deleted;not null;default:false" json:"isDeleted"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
