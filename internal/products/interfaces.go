package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trendzapp/trendz-backend/pkg/db/models"
)

// ProductRepository defines the persistence surface required by the product service.
type ProductRepository interface {
	WithTx(tx *gorm.DB) ProductRepository
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListQuery(ctx context.Context) *gorm.DB
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error)
	FollowedShopIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
