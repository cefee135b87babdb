package shops

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trendzapp/trendz-backend/pkg/db/models"
	"github.com/trendzapp/trendz-backend/pkg/enums"
	pkgerrors "github.com/trendzapp/trendz-backend/pkg/errors"
)

// Actor identifies the authenticated caller for operations that check
// ownership or role.
type Actor struct {
	UserID uuid.UUID
	Role   enums.Role
}

// Service exposes shop CRUD plus the follow relationship.
type Service interface {
	CreateShop(ctx context.Context, actor Actor, input CreateShopInput) (*models.Shop, error)
	GetShop(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	ListShops(ctx context.Context) ([]models.Shop, error)
	UpdateShop(ctx context.Context, actor Actor, id uuid.UUID, input UpdateShopInput) (*models.Shop, error)
	SoftDeleteShop(ctx context.Context, actor Actor, id uuid.UUID) error
	Follow(ctx context.Context, actor Actor, shopID uuid.UUID) (*models.Shop, error)
	Unfollow(ctx context.Context, actor Actor, shopID uuid.UUID) (*models.Shop, error)
}

type service struct {
	repo ShopRepository
}

// NewService builds a shop service.
func NewService(repo ShopRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shop repository required")
	}
	return &service{repo: repo}, nil
}

// CreateShopInput is the storefront creation payload.
type CreateShopInput struct {
	Name        string
	LogoURL     *string
	Description *string
}

// UpdateShopInput carries the partial-update fields; nil means unchanged.
type UpdateShopInput struct {
	Name        *string
	LogoURL     *string
	Description *string
}

func (s *service) CreateShop(ctx context.Context, actor Actor, input CreateShopInput) (*models.Shop, error) {
	if !actor.Role.IsVendor() && !actor.Role.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only vendors can create shops")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop name is required")
	}

	shop := &models.Shop{
		Name:        input.Name,
		LogoURL:     input.LogoURL,
		Description: input.Description,
		VendorID:    actor.UserID,
	}
	created, err := s.repo.Create(ctx, shop)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shop")
	}
	return created, nil
}

func (s *service) GetShop(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	return s.loadShop(ctx, id)
}

func (s *service) ListShops(ctx context.Context) ([]models.Shop, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shops")
	}
	return rows, nil
}

func (s *service) UpdateShop(ctx context.Context, actor Actor, id uuid.UUID, input UpdateShopInput) (*models.Shop, error) {
	shop, err := s.loadShop(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsAdmin() && shop.VendorID != actor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the shop owner")
	}

	updates := map[string]any{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop name cannot be empty")
		}
		updates["name"] = *input.Name
	}
	if input.LogoURL != nil {
		updates["logo_url"] = *input.LogoURL
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	rows, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shop")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
	}
	return s.loadShop(ctx, id)
}

func (s *service) SoftDeleteShop(ctx context.Context, actor Actor, id uuid.UUID) error {
	shop, err := s.loadShop(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Role.CanDeleteShop(shop.VendorID == actor.UserID) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to delete this shop")
	}

	rows, err := s.repo.Update(ctx, id, map[string]any{"is_deleted": true})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete shop")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
	}
	return nil
}

// Follow adds the customer to the shop's follower set and bumps the counter
// in a single atomic update. The pre-check turns a duplicate follow into a
// user-visible error instead of a silent storage no-op.
func (s *service) Follow(ctx context.Context, actor Actor, shopID uuid.UUID) (*models.Shop, error) {
	shop, err := s.loadShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsCustomer() {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "only customers can follow shops")
	}
	if shop.Followers.Contains(actor.UserID) {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "already following this shop")
	}

	rows, err := s.repo.AddFollower(ctx, shopID, actor.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "follow shop")
	}
	if rows == 0 {
		// lost the race to a concurrent follow
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "already following this shop")
	}
	return s.loadShop(ctx, shopID)
}

// Unfollow is the mirror operation.
func (s *service) Unfollow(ctx context.Context, actor Actor, shopID uuid.UUID) (*models.Shop, error) {
	shop, err := s.loadShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsCustomer() {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "only customers can unfollow shops")
	}
	if !shop.Followers.Contains(actor.UserID) {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "not following this shop")
	}

	rows, err := s.repo.RemoveFollower(ctx, shopID, actor.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unfollow shop")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "not following this shop")
	}
	return s.loadShop(ctx, shopID)
}

func (s *service) loadShop(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	shop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}
	return shop, nil
}
