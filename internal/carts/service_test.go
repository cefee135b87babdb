package carts

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/trendzapp/trendz-backend/pkg/db/models"
	pkgerrors "github.com/trendzapp/trendz-backend/pkg/errors"
)

func TestAddItemsCreatesCartOnFirstUse(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	shopID := uuid.New()
	productID := uuid.New()
	repo := &stubCartRepo{}

	svc := newTestService(t, repo)
	cart, err := svc.AddItems(context.Background(), userID, AddItemsInput{
		ShopID: shopID,
		Items:  []ItemInput{{ProductID: productID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.ShopID != shopID {
		t.Fatalf("expected cart bound to shop %s, got %s", shopID, cart.ShopID)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart items: %+v", cart.Items)
	}
	if repo.createCalls != 1 {
		t.Fatalf("expected one create call, got %d", repo.createCalls)
	}
}

func TestAddItemsResetsCartOnDifferentShop(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	oldShop := uuid.New()
	newShop := uuid.New()
	newProduct := uuid.New()
	repo := &stubCartRepo{cart: &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		ShopID: oldShop,
		Items:  []models.CartItem{{ID: uuid.New(), ProductID: uuid.New(), Quantity: 3}},
	}}

	svc := newTestService(t, repo)
	cart, err := svc.AddItems(context.Background(), userID, AddItemsInput{
		ShopID: newShop,
		Items:  []ItemInput{{ProductID: newProduct, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.ShopID != newShop {
		t.Fatalf("expected cart rebound to shop %s, got %s", newShop, cart.ShopID)
	}
	if len(cart.Items) != 1 || cart.Items[0].ProductID != newProduct {
		t.Fatalf("expected old items discarded, got %+v", cart.Items)
	}
	if repo.replaceCalls != 1 {
		t.Fatalf("expected one replace call, got %d", repo.replaceCalls)
	}
}

func TestAddItemsDuplicateProductConflicts(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	shopID := uuid.New()
	productID := uuid.New()
	repo := &stubCartRepo{cart: &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		ShopID: shopID,
		Items:  []models.CartItem{{ID: uuid.New(), ProductID: productID, Quantity: 1}},
	}}

	svc := newTestService(t, repo)
	_, err := svc.AddItems(context.Background(), userID, AddItemsInput{
		ShopID: shopID,
		Items:  []ItemInput{{ProductID: productID, Quantity: 1}},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if repo.appendCalls != 0 {
		t.Fatalf("expected cart untouched on conflict, append calls: %d", repo.appendCalls)
	}
	if len(repo.cart.Items) != 1 || repo.cart.Items[0].Quantity != 1 {
		t.Fatalf("expected cart unchanged, got %+v", repo.cart.Items)
	}
}

func TestIncrementItemRecomputesTotals(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	productID := uuid.New()
	price := decimal.NewFromFloat(9.50)
	repo := &stubCartRepo{cart: &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		ShopID: uuid.New(),
		Items: []models.CartItem{{
			ID:        uuid.New(),
			ProductID: productID,
			Quantity:  2,
			Product:   &models.Product{ID: productID, Price: price},
		}},
	}}

	svc := newTestService(t, repo)
	cart, err := svc.IncrementItem(context.Background(), userID, productID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", cart.Items[0].Quantity)
	}
	if cart.TotalItems != 3 {
		t.Fatalf("expected total items 3, got %d", cart.TotalItems)
	}
	want := price.Mul(decimal.NewFromInt(3))
	if !cart.TotalAmount.Equal(want) {
		t.Fatalf("expected total amount %s, got %s", want, cart.TotalAmount)
	}
}

func TestIncrementItemUnresolvedProductPricesAsZero(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	productID := uuid.New()
	repo := &stubCartRepo{cart: &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		ShopID: uuid.New(),
		Items:  []models.CartItem{{ID: uuid.New(), ProductID: productID, Quantity: 1}},
	}}

	svc := newTestService(t, repo)
	cart, err := svc.IncrementItem(context.Background(), userID, productID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.TotalItems != 2 {
		t.Fatalf("expected total items 2, got %d", cart.TotalItems)
	}
	if !cart.TotalAmount.IsZero() {
		t.Fatalf("expected zero total for unresolved product, got %s", cart.TotalAmount)
	}
}

func TestDecrementItemAtQuantityOneRemovesLine(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	keepID := uuid.New()
	dropID := uuid.New()
	price := decimal.NewFromInt(4)
	repo := &stubCartRepo{cart: &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		ShopID: uuid.New(),
		Items: []models.CartItem{
			{ID: uuid.New(), ProductID: keepID, Quantity: 2, Product: &models.Product{ID: keepID, Price: price}},
			{ID: uuid.New(), ProductID: dropID, Quantity: 1, Product: &models.Product{ID: dropID, Price: price}},
		},
	}}

	svc := newTestService(t, repo)
	cart, err := svc.DecrementItem(context.Background(), userID, dropID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].ProductID != keepID {
		t.Fatalf("expected line removed, got %+v", cart.Items)
	}
	if cart.TotalItems != 2 {
		t.Fatalf("expected total items 2, got %d", cart.TotalItems)
	}
	want := price.Mul(decimal.NewFromInt(2))
	if !cart.TotalAmount.Equal(want) {
		t.Fatalf("expected total amount %s, got %s", want, cart.TotalAmount)
	}
}

func TestRemoveItemMissingProductNotFound(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	repo := &stubCartRepo{cart: &models.Cart{
		ID:     uuid.New(),
		UserID: userID,
		ShopID: uuid.New(),
		Items:  []models.CartItem{{ID: uuid.New(), ProductID: uuid.New(), Quantity: 1}},
	}}

	svc := newTestService(t, repo)
	_, err := svc.RemoveItem(context.Background(), userID, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if repo.updateGuardedCalls != 0 {
		t.Fatalf("expected no mutation on miss, guarded updates: %d", repo.updateGuardedCalls)
	}
}

func TestAdjustItemWithoutCartNotFound(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{}
	svc := newTestService(t, repo)

	_, err := svc.IncrementItem(context.Background(), uuid.New(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAdjustItemConcurrentWriteConflicts(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	productID := uuid.New()
	repo := &stubCartRepo{
		cart: &models.Cart{
			ID:     uuid.New(),
			UserID: userID,
			ShopID: uuid.New(),
			Items:  []models.CartItem{{ID: uuid.New(), ProductID: productID, Quantity: 2}},
		},
		guardFails: true,
	}

	svc := newTestService(t, repo)
	_, err := svc.IncrementItem(context.Background(), userID, productID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict on stale version, got %v", err)
	}
}

func TestClearCartNotFound(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{}
	svc := newTestService(t, repo)

	err := svc.ClearCart(context.Background(), uuid.New(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func newTestService(t *testing.T, repo CartRepository) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// stubCartRepo keeps a single in-memory cart and mirrors the mutations the
// real repository would run so the reload after a transaction sees them.
type stubCartRepo struct {
	cart *models.Cart

	guardFails         bool
	createCalls        int
	appendCalls        int
	replaceCalls       int
	updateGuardedCalls int
}

func (s *stubCartRepo) WithTx(tx *gorm.DB) CartRepository { return s }

// FindByUser hands back a detached copy the way a real query would, so
// in-memory edits by the service only land through the mutation methods.
func (s *stubCartRepo) FindByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if s.cart == nil || s.cart.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	cart := *s.cart
	cart.Items = append([]models.CartItem(nil), s.cart.Items...)
	return &cart, nil
}

func (s *stubCartRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Cart, error) {
	if s.cart == nil || s.cart.UserID != userID {
		return []models.Cart{}, nil
	}
	return []models.Cart{*s.cart}, nil
}

func (s *stubCartRepo) Create(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	s.createCalls++
	cart.ID = uuid.New()
	s.cart = cart
	return cart, nil
}

func (s *stubCartRepo) AppendItems(ctx context.Context, cartID uuid.UUID, items []models.CartItem) error {
	s.appendCalls++
	s.cart.Items = append(s.cart.Items, items...)
	return nil
}

func (s *stubCartRepo) ReplaceItems(ctx context.Context, cartID uuid.UUID, items []models.CartItem) error {
	s.replaceCalls++
	s.cart.Items = items
	return nil
}

func (s *stubCartRepo) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	for i := range s.cart.Items {
		if s.cart.Items[i].ID == itemID {
			s.cart.Items[i].Quantity = quantity
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *stubCartRepo) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	remaining := make([]models.CartItem, 0, len(s.cart.Items))
	for _, item := range s.cart.Items {
		if item.ID != itemID {
			remaining = append(remaining, item)
		}
	}
	s.cart.Items = remaining
	return nil
}

func (s *stubCartRepo) UpdateGuarded(ctx context.Context, cartID uuid.UUID, version int, updates map[string]any) (int64, error) {
	s.updateGuardedCalls++
	if s.guardFails {
		return 0, nil
	}
	for column, value := range updates {
		switch column {
		case "shop_id":
			s.cart.ShopID = value.(uuid.UUID)
		case "total_items":
			s.cart.TotalItems = value.(int)
		case "total_amount":
			s.cart.TotalAmount = value.(decimal.Decimal)
		}
	}
	s.cart.Version++
	return 1, nil
}

func (s *stubCartRepo) DeleteByIDAndUser(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	if s.cart == nil || s.cart.ID != id || s.cart.UserID != userID {
		return 0, nil
	}
	s.cart = nil
	return 1, nil
}
