package shops

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trendzapp/trendz-backend/pkg/db/models"
	dbtypes "github.com/trendzapp/trendz-backend/pkg/db/types"
	"github.com/trendzapp/trendz-backend/pkg/enums"
	pkgerrors "github.com/trendzapp/trendz-backend/pkg/errors"
)

func TestFollowAddsFollowerAndBumpsCounter(t *testing.T) {
	t.Parallel()

	customer := Actor{UserID: uuid.New(), Role: enums.RoleCustomer}
	repo := &stubShopRepo{shop: &models.Shop{ID: uuid.New(), VendorID: uuid.New()}}
	svc := newTestService(t, repo)

	shop, err := svc.Follow(context.Background(), customer, repo.shop.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !shop.Followers.Contains(customer.UserID) {
		t.Fatal("expected follower recorded")
	}
	if shop.FollowersCount != 1 {
		t.Fatalf("expected followers count 1, got %d", shop.FollowersCount)
	}
}

func TestFollowTwiceRejected(t *testing.T) {
	t.Parallel()

	customer := Actor{UserID: uuid.New(), Role: enums.RoleCustomer}
	repo := &stubShopRepo{shop: &models.Shop{
		ID:             uuid.New(),
		VendorID:       uuid.New(),
		Followers:      dbtypes.UUIDArray{customer.UserID},
		FollowersCount: 1,
	}}
	svc := newTestService(t, repo)

	_, err := svc.Follow(context.Background(), customer, repo.shop.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeBadRequest {
		t.Fatalf("expected bad request for duplicate follow, got %v", err)
	}
	if repo.addCalls != 0 {
		t.Fatalf("expected no storage write, add calls: %d", repo.addCalls)
	}
}

func TestFollowByVendorConflicts(t *testing.T) {
	t.Parallel()

	vendor := Actor{UserID: uuid.New(), Role: enums.RoleVendor}
	repo := &stubShopRepo{shop: &models.Shop{ID: uuid.New(), VendorID: uuid.New()}}
	svc := newTestService(t, repo)

	_, err := svc.Follow(context.Background(), vendor, repo.shop.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for non-customer, got %v", err)
	}
}

func TestFollowMissingShopNotFound(t *testing.T) {
	t.Parallel()

	customer := Actor{UserID: uuid.New(), Role: enums.RoleCustomer}
	repo := &stubShopRepo{}
	svc := newTestService(t, repo)

	_, err := svc.Follow(context.Background(), customer, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFollowLostRaceRejected(t *testing.T) {
	t.Parallel()

	customer := Actor{UserID: uuid.New(), Role: enums.RoleCustomer}
	repo := &stubShopRepo{
		shop:       &models.Shop{ID: uuid.New(), VendorID: uuid.New()},
		guardFails: true,
	}
	svc := newTestService(t, repo)

	_, err := svc.Follow(context.Background(), customer, repo.shop.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeBadRequest {
		t.Fatalf("expected bad request when the atomic update misses, got %v", err)
	}
}

func TestUnfollowRemovesFollower(t *testing.T) {
	t.Parallel()

	customer := Actor{UserID: uuid.New(), Role: enums.RoleCustomer}
	repo := &stubShopRepo{shop: &models.Shop{
		ID:             uuid.New(),
		VendorID:       uuid.New(),
		Followers:      dbtypes.UUIDArray{customer.UserID},
		FollowersCount: 1,
	}}
	svc := newTestService(t, repo)

	shop, err := svc.Unfollow(context.Background(), customer, repo.shop.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shop.Followers.Contains(customer.UserID) {
		t.Fatal("expected follower removed")
	}
	if shop.FollowersCount != 0 {
		t.Fatalf("expected followers count 0, got %d", shop.FollowersCount)
	}
}

func TestUnfollowWithoutFollowRejected(t *testing.T) {
	t.Parallel()

	customer := Actor{UserID: uuid.New(), Role: enums.RoleCustomer}
	repo := &stubShopRepo{shop: &models.Shop{ID: uuid.New(), VendorID: uuid.New()}}
	svc := newTestService(t, repo)

	_, err := svc.Unfollow(context.Background(), customer, repo.shop.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeBadRequest {
		t.Fatalf("expected bad request, got %v", err)
	}
	if repo.removeCalls != 0 {
		t.Fatalf("expected no storage write, remove calls: %d", repo.removeCalls)
	}
}

func TestCreateShopRequiresVendorRole(t *testing.T) {
	t.Parallel()

	customer := Actor{UserID: uuid.New(), Role: enums.RoleCustomer}
	svc := newTestService(t, &stubShopRepo{})

	_, err := svc.CreateShop(context.Background(), customer, CreateShopInput{Name: "Trendz Supply"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestUpdateShopByNonOwnerForbidden(t *testing.T) {
	t.Parallel()

	vendor := Actor{UserID: uuid.New(), Role: enums.RoleVendor}
	repo := &stubShopRepo{shop: &models.Shop{ID: uuid.New(), VendorID: uuid.New()}}
	svc := newTestService(t, repo)

	name := "New Name"
	_, err := svc.UpdateShop(context.Background(), vendor, repo.shop.ID, UpdateShopInput{Name: &name})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func newTestService(t *testing.T, repo ShopRepository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

type stubShopRepo struct {
	shop *models.Shop

	guardFails  bool
	addCalls    int
	removeCalls int
}

func (s *stubShopRepo) WithTx(tx *gorm.DB) ShopRepository { return s }

func (s *stubShopRepo) Create(ctx context.Context, shop *models.Shop) (*models.Shop, error) {
	shop.ID = uuid.New()
	s.shop = shop
	return shop, nil
}

func (s *stubShopRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	if s.shop == nil || s.shop.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	shop := *s.shop
	shop.Followers = append(dbtypes.UUIDArray(nil), s.shop.Followers...)
	return &shop, nil
}

func (s *stubShopRepo) List(ctx context.Context) ([]models.Shop, error) {
	if s.shop == nil {
		return []models.Shop{}, nil
	}
	return []models.Shop{*s.shop}, nil
}

func (s *stubShopRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error) {
	if s.shop == nil || s.shop.ID != id {
		return 0, nil
	}
	if name, ok := updates["name"].(string); ok {
		s.shop.Name = name
	}
	return 1, nil
}

func (s *stubShopRepo) AddFollower(ctx context.Context, shopID, userID uuid.UUID) (int64, error) {
	s.addCalls++
	if s.guardFails || s.shop == nil || s.shop.ID != shopID || s.shop.Followers.Contains(userID) {
		return 0, nil
	}
	s.shop.Followers = append(s.shop.Followers, userID)
	s.shop.FollowersCount++
	return 1, nil
}

func (s *stubShopRepo) RemoveFollower(ctx context.Context, shopID, userID uuid.UUID) (int64, error) {
	s.removeCalls++
	if s.shop == nil || s.shop.ID != shopID || !s.shop.Followers.Contains(userID) {
		return 0, nil
	}
	remaining := make(dbtypes.UUIDArray, 0, len(s.shop.Followers))
	for _, f := range s.shop.Followers {
		if f != userID {
			remaining = append(remaining, f)
		}
	}
	s.shop.Followers = remaining
	s.shop.FollowersCount--
	return 1, nil
}
