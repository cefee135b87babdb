package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trendzapp/trendz-backend/pkg/db/models"
)

// OrderRepository defines the persistence surface required by the order service.
type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, includeDeleted bool) ([]models.Order, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error)
}
