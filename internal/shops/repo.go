package shops

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trendzapp/trendz-backend/pkg/db/models"
)

// Repository exposes persistence operations for shops.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a shop repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) ShopRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new shop.
func (r *Repository) Create(ctx context.Context, shop *models.Shop) (*models.Shop, error) {
	if err := r.db.WithContext(ctx).Create(shop).Error; err != nil {
		return nil, err
	}
	return shop, nil
}

// FindByID loads one live shop.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&shop).Error
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

// List returns live shops newest first.
func (r *Repository) List(ctx context.Context) ([]models.Shop, error) {
	var rows []models.Shop
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update applies a partial update to a live shop.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Shop{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// AddFollower appends the user to the follower set and bumps the counter in
// one statement. The membership guard in the WHERE clause keeps the set
// semantics: a concurrent duplicate add matches zero rows.
func (r *Repository) AddFollower(ctx context.Context, shopID, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Exec(
		`UPDATE shops
		 SET followers = array_append(followers, ?),
		     followers_count = followers_count + 1,
		     updated_at = now()
		 WHERE id = ? AND is_deleted = false AND NOT (? = ANY(followers))`,
		userID, shopID, userID,
	)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// RemoveFollower is the mirror operation: remove from the set and decrement
// the counter atomically, matching only when the user is currently a follower.
func (r *Repository) RemoveFollower(ctx context.Context, shopID, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Exec(
		`UPDATE shops
		 SET followers = array_remove(followers, ?),
		     followers_count = followers_count - 1,
		     updated_at = now()
		 WHERE id = ? AND is_deleted = false AND (? = ANY(followers))`,
		userID, shopID, userID,
	)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
