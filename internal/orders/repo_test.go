package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/trendzapp/trendz-backend/pkg/db/models"
	"github.com/trendzapp/trendz-backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  email TEXT NOT NULL,
  shop_id TEXT NOT NULL,
  products TEXT NOT NULL,
  total_amount TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'PENDING',
  transaction_id TEXT NOT NULL DEFAULT '',
  is_deleted INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newOrder(userID uuid.UUID) *models.Order {
	return &models.Order{
		ID:     uuid.New(),
		UserID: userID,
		Email:  "buyer@example.com",
		ShopID: uuid.New(),
		Products: models.OrderProducts{
			{ProductID: uuid.New(), Quantity: 2},
		},
		TotalAmount: decimal.RequireFromString("39.98"),
		Status:      enums.OrderStatusPending,
	}
}

func TestRepositoryCreateAndFind(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := newOrder(uuid.New())
	created, err := repo.Create(ctx, order)
	require.NoError(t, err)
	require.Equal(t, order.ID, created.ID)

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Email, found.Email)
	assert.Len(t, found.Products, 1)
	assert.Equal(t, order.Products[0].ProductID, found.Products[0].ProductID)
	assert.True(t, found.TotalAmount.Equal(order.TotalAmount))
	assert.Equal(t, enums.OrderStatusPending, found.Status)
}

func TestRepositoryListFiltersDeleted(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	kept := newOrder(userID)
	_, err := repo.Create(ctx, kept)
	require.NoError(t, err)

	deleted := newOrder(userID)
	deleted.IsDeleted = true
	_, err = repo.Create(ctx, deleted)
	require.NoError(t, err)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, kept.ID, active[0].ID)
}

func TestRepositoryUpdateReportsMatches(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := newOrder(uuid.New())
	_, err := repo.Create(ctx, order)
	require.NoError(t, err)

	rows, err := repo.Update(ctx, order.ID, map[string]any{
		"status":         enums.OrderStatusCompleted,
		"transaction_id": "pi_12345",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCompleted, found.Status)
	assert.Equal(t, "pi_12345", found.TransactionID)

	rows, err = repo.Update(ctx, uuid.New(), map[string]any{"status": enums.OrderStatusCanceled})
	require.NoError(t, err)
	assert.Zero(t, rows)
}
