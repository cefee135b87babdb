package carts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trendzapp/trendz-backend/pkg/db/models"
)

// CartRepository defines the persistence surface required by the cart service.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) (*models.Cart, error)
	AppendItems(ctx context.Context, cartID uuid.UUID, items []models.CartItem) error
	ReplaceItems(ctx context.Context, cartID uuid.UUID, items []models.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	UpdateGuarded(ctx context.Context, cartID uuid.UUID, version int, updates map[string]any) (int64, error)
	DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) (int64, error)
}
