package products

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/trendzapp/trendz-backend/internal/shops"
	"github.com/trendzapp/trendz-backend/pkg/db"
	"github.com/trendzapp/trendz-backend/pkg/db/models"
	pkgerrors "github.com/trendzapp/trendz-backend/pkg/errors"
	"github.com/trendzapp/trendz-backend/pkg/query"
)

// Service exposes product CRUD and the search/filter/sort/paginate listings.
type Service interface {
	CreateProduct(ctx context.Context, actor shops.Actor, input CreateProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, values url.Values) ([]models.Product, query.Meta, error)
	FeaturedProducts(ctx context.Context, values url.Values) ([]models.Product, query.Meta, error)
	ListByFollowedShops(ctx context.Context, userID uuid.UUID, values url.Values) ([]RankedProduct, query.Meta, error)
	UpdateProduct(ctx context.Context, actor shops.Actor, id uuid.UUID, input UpdateProductInput) (*models.Product, error)
	SoftDeleteProduct(ctx context.Context, actor shops.Actor, id uuid.UUID) error
}

type shopLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
}

type service struct {
	repo          ProductRepository
	shopRepo      shopLoader
	featuredLimit int
}

// NewService builds a product service. featuredLimit pins the page size of
// the featured listing.
func NewService(repo ProductRepository, shopRepo shopLoader, featuredLimit int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if shopRepo == nil {
		return nil, fmt.Errorf("shop repository required")
	}
	if featuredLimit <= 0 {
		featuredLimit = 5
	}
	return &service{repo: repo, shopRepo: shopRepo, featuredLimit: featuredLimit}, nil
}

// CreateProductInput is the listing creation payload.
type CreateProductInput struct {
	Name           string
	Price          decimal.Decimal
	CategoryID     uuid.UUID
	InventoryCount int
	Description    string
	Images         []string
	Discount       decimal.Decimal
	ShopID         uuid.UUID
}

// UpdateProductInput carries the partial-update fields; nil means unchanged.
type UpdateProductInput struct {
	Name           *string
	Price          *decimal.Decimal
	CategoryID     *uuid.UUID
	InventoryCount *int
	Description    *string
	Images         []string
	Discount       *decimal.Decimal
}

// RankedProduct tags a listing row with whether the requesting customer
// follows its shop.
type RankedProduct struct {
	models.Product
	IsFollowedShop bool `json:"isFollowedShop"`
}

func (s *service) CreateProduct(ctx context.Context, actor shops.Actor, input CreateProductInput) (*models.Product, error) {
	if !actor.Role.IsVendor() && !actor.Role.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only vendors can create products")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if input.Discount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount must be non-negative")
	}
	if input.InventoryCount < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory count must be non-negative")
	}
	if input.CategoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	if input.ShopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}

	shop, err := s.shopRepo.FindByID(ctx, input.ShopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}
	if !actor.Role.IsAdmin() && shop.VendorID != actor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the shop owner")
	}

	product := &models.Product{
		Name:           input.Name,
		Price:          input.Price,
		CategoryID:     input.CategoryID,
		InventoryCount: input.InventoryCount,
		Description:    input.Description,
		Images:         pq.StringArray(input.Images),
		Discount:       input.Discount,
		ShopID:         input.ShopID,
		VendorID:       shop.VendorID,
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product already exists in this shop")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) ListProducts(ctx context.Context, values url.Values) ([]models.Product, query.Meta, error) {
	return s.runListing(ctx, values, 0)
}

// FeaturedProducts is the same listing with the page size pinned.
func (s *service) FeaturedProducts(ctx context.Context, values url.Values) ([]models.Product, query.Meta, error) {
	return s.runListing(ctx, values, s.featuredLimit)
}

// ListByFollowedShops re-ranks the page so products from shops the customer
// follows come first. The sort is stable: within each group the original
// listing order is preserved.
func (s *service) ListByFollowedShops(ctx context.Context, userID uuid.UUID, values url.Values) ([]RankedProduct, query.Meta, error) {
	if userID == uuid.Nil {
		return nil, query.Meta{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	rows, meta, err := s.runListing(ctx, values, 0)
	if err != nil {
		return nil, query.Meta{}, err
	}

	followed, err := s.repo.FollowedShopIDs(ctx, userID)
	if err != nil {
		return nil, query.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load followed shops")
	}
	followedSet := make(map[uuid.UUID]struct{}, len(followed))
	for _, id := range followed {
		followedSet[id] = struct{}{}
	}

	ranked := make([]RankedProduct, 0, len(rows))
	for _, p := range rows {
		_, ok := followedSet[p.ShopID]
		ranked = append(ranked, RankedProduct{Product: p, IsFollowedShop: ok})
	}
	rankFollowedFirst(ranked)
	return ranked, meta, nil
}

func (s *service) UpdateProduct(ctx context.Context, actor shops.Actor, id uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsAdmin() && product.VendorID != actor.UserID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "not the product owner")
	}

	updates := map[string]any{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
		}
		updates["name"] = *input.Name
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
		}
		updates["price"] = *input.Price
	}
	if input.CategoryID != nil {
		if *input.CategoryID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id cannot be empty")
		}
		updates["category_id"] = *input.CategoryID
	}
	if input.InventoryCount != nil {
		if *input.InventoryCount < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory count must be non-negative")
		}
		updates["inventory_count"] = *input.InventoryCount
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Images != nil {
		updates["images"] = pq.StringArray(input.Images)
	}
	if input.Discount != nil {
		if input.Discount.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount must be non-negative")
		}
		updates["discount"] = *input.Discount
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	rows, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product already exists in this shop")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return s.GetProduct(ctx, id)
}

func (s *service) SoftDeleteProduct(ctx context.Context, actor shops.Actor, id uuid.UUID) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Role.CanDeleteProduct(product.VendorID == actor.UserID) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "not allowed to delete this product")
	}

	rows, err := s.repo.Update(ctx, id, map[string]any{"is_deleted": true})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func (s *service) runListing(ctx context.Context, values url.Values, forceLimit int) ([]models.Product, query.Meta, error) {
	if values == nil {
		values = url.Values{}
	}

	builder := query.New(s.repo.ListQuery(ctx), values).
		Search("name", "description").
		Filter().
		Sort().
		Paginate().
		Fields()
	if forceLimit > 0 {
		builder = builder.ForceLimit(forceLimit)
	}

	var rows []models.Product
	meta, err := builder.Find(&rows)
	if err != nil {
		return nil, query.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return rows, meta, nil
}
