package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/trendzapp/trendz-backend/pkg/db/models"
	"github.com/trendzapp/trendz-backend/pkg/enums"
	pkgerrors "github.com/trendzapp/trendz-backend/pkg/errors"
)

// Service exposes the order lifecycle: checkout insert, partial updates,
// listing, and soft deletion.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*models.Order, error)
	ListOrders(ctx context.Context, includeDeleted bool) ([]models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	SoftDeleteOrder(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo OrderRepository
}

// NewService builds an order service.
func NewService(repo OrderRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	return &service{repo: repo}, nil
}

// CreateOrderInput is the checkout payload. The order is stored verbatim: no
// total recomputation and no stock decrement happens here.
type CreateOrderInput struct {
	UserID      uuid.UUID
	Email       string
	ShopID      uuid.UUID
	Products    []models.OrderProduct
	TotalAmount decimal.Decimal
}

// UpdateOrderInput carries the partial-update fields; nil means unchanged.
type UpdateOrderInput struct {
	Status        *enums.OrderStatus
	TransactionID *string
	TotalAmount   *decimal.Decimal
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.ShopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	if input.Email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(input.Products) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one product")
	}
	for _, p := range input.Products {
		if p.ProductID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
		}
		if p.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
	}
	if input.TotalAmount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total amount must be non-negative")
	}

	order := &models.Order{
		UserID:      input.UserID,
		Email:       input.Email,
		ShopID:      input.ShopID,
		Products:    models.OrderProducts(input.Products),
		TotalAmount: input.TotalAmount,
		Status:      enums.OrderStatusPending,
	}
	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return created, nil
}

func (s *service) UpdateOrder(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}

	updates := map[string]any{}
	if input.Status != nil {
		if _, err := enums.ParseOrderStatus(string(*input.Status)); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
		}
		updates["status"] = *input.Status
	}
	if input.TransactionID != nil {
		updates["transaction_id"] = *input.TransactionID
	}
	if input.TotalAmount != nil {
		if input.TotalAmount.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "total amount must be non-negative")
		}
		updates["total_amount"] = *input.TotalAmount
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	rows, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}
	return order, nil
}

func (s *service) ListOrders(ctx context.Context, includeDeleted bool) ([]models.Order, error) {
	rows, err := s.repo.List(ctx, includeDeleted)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, nil
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) SoftDeleteOrder(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	rows, err := s.repo.Update(ctx, id, map[string]any{"is_deleted": true})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "soft delete order")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return nil
}
