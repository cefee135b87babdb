package responses

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/trendzapp/trendz-backend/pkg/errors"
	"github.com/trendzapp/trendz-backend/pkg/query"
)

func TestWriteSuccessEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteSuccess(rec, "Shop fetched", map[string]string{"name": "Trendz"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Success    bool           `json:"success"`
		StatusCode int            `json:"statusCode"`
		Message    string         `json:"message"`
		Data       map[string]any `json:"data"`
	}
	decode(t, rec, &body)

	if !body.Success || body.StatusCode != http.StatusOK {
		t.Fatalf("unexpected envelope: %+v", body)
	}
	if body.Message != "Shop fetched" {
		t.Fatalf("unexpected message: %s", body.Message)
	}
	if body.Data["name"] != "Trendz" {
		t.Fatalf("unexpected data: %+v", body.Data)
	}
}

func TestWriteListEmptyPageIsNotFound(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteList(rec, "Products fetched", query.Meta{}, []string{})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for empty page, got %d", rec.Code)
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    []any  `json:"data"`
	}
	decode(t, rec, &body)

	if body.Success {
		t.Fatal("expected success=false")
	}
	if body.Message != "No Data Found" {
		t.Fatalf("unexpected message: %s", body.Message)
	}
	if body.Data == nil || len(body.Data) != 0 {
		t.Fatalf("expected empty data array, got %v", body.Data)
	}
}

func TestWriteListWrapsMetaAndResult(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	meta := query.Meta{Total: 12, Page: 2, Limit: 10, TotalPage: 2}
	WriteList(rec, "Products fetched", meta, []string{"a", "b"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Data struct {
			Meta   query.Meta `json:"meta"`
			Result []string   `json:"result"`
		} `json:"data"`
	}
	decode(t, rec, &body)

	if body.Data.Meta.Total != 12 || body.Data.Meta.Page != 2 {
		t.Fatalf("unexpected meta: %+v", body.Data.Meta)
	}
	if len(body.Data.Result) != 2 {
		t.Fatalf("unexpected result: %v", body.Data.Result)
	}
}

func TestWriteErrorClientMessagePassesThrough(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decode(t, rec, &body)

	if body.Success {
		t.Fatal("expected success=false")
	}
	if body.Message != "cart not found" {
		t.Fatalf("unexpected message: %s", body.Message)
	}
}

func TestWriteErrorInternalMessageMasked(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeInternal, "pg connection pool exhausted"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body struct {
		Message string `json:"message"`
	}
	decode(t, rec, &body)

	if body.Message == "pg connection pool exhausted" {
		t.Fatal("internal detail leaked to the client")
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
