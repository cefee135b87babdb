package products

import (
	"testing"

	"github.com/google/uuid"

	"github.com/trendzapp/trendz-backend/pkg/db/models"
)

func TestRankFollowedFirstIsStable(t *testing.T) {
	t.Parallel()

	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	rows := []RankedProduct{
		{Product: models.Product{ID: a}, IsFollowedShop: false},
		{Product: models.Product{ID: b}, IsFollowedShop: true},
		{Product: models.Product{ID: c}, IsFollowedShop: false},
		{Product: models.Product{ID: d}, IsFollowedShop: true},
	}

	rankFollowedFirst(rows)

	want := []uuid.UUID{b, d, a, c}
	for i, id := range want {
		if rows[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, rows[i].ID)
		}
	}
}

func TestRankFollowedFirstNoFollowedRows(t *testing.T) {
	t.Parallel()

	a, b := uuid.New(), uuid.New()
	rows := []RankedProduct{
		{Product: models.Product{ID: a}},
		{Product: models.Product{ID: b}},
	}

	rankFollowedFirst(rows)

	if rows[0].ID != a || rows[1].ID != b {
		t.Fatal("expected original order preserved")
	}
}
