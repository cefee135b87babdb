package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/trendzapp/trendz-backend/pkg/enums"
)

// User mirrors the identity records provisioned by the external auth service.
// Rows exist for display resolution only; credentials never touch this system.
type User struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string     `gorm:"column:email;not null;uniqueIndex" json:"email"`
	FirstName string     `gorm:"column:first_name;not null" json:"firstName"`
	LastName  string     `gorm:"column:last_name;not null" json:"lastName"`
	Role      enums.Role `gorm:"column:role;not null" json:"role"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
