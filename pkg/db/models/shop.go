package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/trendzapp/trendz-backend/pkg/db/types"
)

// Shop is a vendor storefront. Followers is a uuid set; FollowersCount is the
// denormalized cardinality and must never diverge from len(Followers); both
// are mutated in a single UPDATE by the shops repository.
type Shop struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string            `gorm:"column:name;not null" json:"name"`
	LogoURL        *string           `gorm:"column:logo_url" json:"logo,omitempty"`
	Description    *string           `gorm:"column:description" json:"description,omitempty"`
	VendorID       uuid.UUID         `gorm:"column:vendor_id;type:uuid;not null" json:"vendor"`
	Followers      dbtypes.UUIDArray `gorm:"column:followers;type:uuid[];not null;default:'{}'" json:"followers"`
	FollowersCount int               `gorm:"column:followers_count;not null;default:0" json:"followersCount"`
	IsDeleted      bool              `gorm:"column:is_deleted;not null;default:false" json:"isDeleted"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
