package shops

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trendzapp/trendz-backend/pkg/db/models"
)

// ShopRepository defines the persistence surface required by the shop service.
type ShopRepository interface {
	WithTx(tx *gorm.DB) ShopRepository
	Create(ctx context.Context, shop *models.Shop) (*models.Shop, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	List(ctx context.Context) ([]models.Shop, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error)
	AddFollower(ctx context.Context, shopID, userID uuid.UUID) (int64, error)
	RemoveFollower(ctx context.Context, shopID, userID uuid.UUID) (int64, error)
}
