package carts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/trendzapp/trendz-backend/pkg/db/models"
	pkgerrors "github.com/trendzapp/trendz-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes cart operations. Every mutation runs inside a transaction
// with an optimistic-lock guard so concurrent writes to the same cart cannot
// silently overwrite each other.
type Service interface {
	AddItems(ctx context.Context, userID uuid.UUID, input AddItemsInput) (*models.Cart, error)
	GetCarts(ctx context.Context, userID uuid.UUID) ([]models.Cart, error)
	IncrementItem(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error)
	DecrementItem(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error)
	ClearCart(ctx context.Context, cartID, userID uuid.UUID) error
}

type service struct {
	repo CartRepository
	tx   txRunner
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// AddItemsInput is the add-to-cart payload.
type AddItemsInput struct {
	ShopID uuid.UUID
	Items  []ItemInput
}

// ItemInput is one incoming product line.
type ItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// AddItems creates the user's cart on first use, resets it wholesale when the
// incoming shop differs, and otherwise appends the new lines. A product id
// already present in the cart is a conflict, not a quantity bump. Totals are
// left untouched here; only the line mutations recompute them.
func (s *service) AddItems(ctx context.Context, userID uuid.UUID, input AddItemsInput) (*models.Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.ShopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id is required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart must contain at least one item")
	}
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
		}
		if item.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		cart, err := repo.FindByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				fresh := &models.Cart{
					UserID: userID,
					ShopID: input.ShopID,
					Items:  buildItems(input.Items),
				}
				_, createErr := repo.Create(ctx, fresh)
				if createErr != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, createErr, "create cart")
				}
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}

		if cart.ShopID != input.ShopID {
			// different shop discards the cart wholesale
			if err := repo.ReplaceItems(ctx, cart.ID, buildItems(input.Items)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace cart items")
			}
			rows, err := repo.UpdateGuarded(ctx, cart.ID, cart.Version, map[string]any{"shop_id": input.ShopID})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart")
			}
			if rows == 0 {
				return pkgerrors.New(pkgerrors.CodeConflict, "cart was modified concurrently")
			}
			return nil
		}

		existing := map[uuid.UUID]struct{}{}
		for _, item := range cart.Items {
			existing[item.ProductID] = struct{}{}
		}
		for _, item := range input.Items {
			if _, dup := existing[item.ProductID]; dup {
				return pkgerrors.New(pkgerrors.CodeConflict, "product already in cart")
			}
		}

		if err := repo.AppendItems(ctx, cart.ID, buildItems(input.Items)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append cart items")
		}
		rows, err := repo.UpdateGuarded(ctx, cart.ID, cart.Version, nil)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "cart was modified concurrently")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cart")
	}
	return cart, nil
}

// GetCarts returns the user's carts with product, shop, and user references
// resolved for display. Totals are returned as stored, never recomputed here.
func (s *service) GetCarts(ctx context.Context, userID uuid.UUID) ([]models.Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	carts, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list carts")
	}
	return carts, nil
}

type lineOp int

const (
	opIncrement lineOp = iota
	opDecrement
	opRemove
)

// IncrementItem raises a line's quantity by one and recomputes totals.
func (s *service) IncrementItem(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error) {
	return s.adjustItem(ctx, userID, productID, opIncrement)
}

// DecrementItem lowers a line's quantity by one, removing the line at
// quantity one, and recomputes totals.
func (s *service) DecrementItem(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error) {
	return s.adjustItem(ctx, userID, productID, opDecrement)
}

// RemoveItem drops the line outright and recomputes totals.
func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*models.Cart, error) {
	return s.adjustItem(ctx, userID, productID, opRemove)
}

func (s *service) adjustItem(ctx context.Context, userID, productID uuid.UUID, op lineOp) (*models.Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		cart, err := repo.FindByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}

		idx := -1
		for i, item := range cart.Items {
			if item.ProductID == productID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found in cart")
		}

		target := cart.Items[idx]
		remaining := make([]models.CartItem, 0, len(cart.Items))

		switch op {
		case opIncrement:
			if err := repo.UpdateItemQuantity(ctx, target.ID, target.Quantity+1); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
			}
			cart.Items[idx].Quantity++
			remaining = cart.Items

		case opDecrement:
			if target.Quantity > 1 {
				if err := repo.UpdateItemQuantity(ctx, target.ID, target.Quantity-1); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
				}
				cart.Items[idx].Quantity--
				remaining = cart.Items
			} else {
				if err := repo.DeleteItem(ctx, target.ID); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart item")
				}
				remaining = append(remaining, cart.Items[:idx]...)
				remaining = append(remaining, cart.Items[idx+1:]...)
			}

		case opRemove:
			if err := repo.DeleteItem(ctx, target.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart item")
			}
			remaining = append(remaining, cart.Items[:idx]...)
			remaining = append(remaining, cart.Items[idx+1:]...)
		}

		totalItems, totalAmount := computeTotals(remaining)
		rows, err := repo.UpdateGuarded(ctx, cart.ID, cart.Version, map[string]any{
			"total_items":  totalItems,
			"total_amount": totalAmount,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart totals")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "cart was modified concurrently")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cart")
	}
	return cart, nil
}

// ClearCart hard-deletes the cart matching both id and owner.
func (s *service) ClearCart(ctx context.Context, cartID, userID uuid.UUID) error {
	if cartID == uuid.Nil || userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart id and user id are required")
	}
	rows, err := s.repo.DeleteByIDAndUser(ctx, cartID, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
	}
	return nil
}

func buildItems(inputs []ItemInput) []models.CartItem {
	items := make([]models.CartItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, models.CartItem{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
		})
	}
	return items
}

// computeTotals derives totalItems and totalAmount from the line list. An
// unresolved product reference contributes price 0; the listing keeps working
// but undercounts, matching the stated pricing policy.
func computeTotals(items []models.CartItem) (int, decimal.Decimal) {
	totalItems := 0
	totalAmount := decimal.Zero
	for _, item := range items {
		totalItems += item.Quantity
		price := decimal.Zero
		if item.Product != nil {
			price = item.Product.Price
		}
		totalAmount = totalAmount.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return totalItems, totalAmount
}
