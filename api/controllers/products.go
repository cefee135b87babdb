package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trendzapp/trendz-backend/api/responses"
	"github.com/trendzapp/trendz-backend/api/validators"
	productsvc "github.com/trendzapp/trendz-backend/internal/products"
	pkgerrors "github.com/trendzapp/trendz-backend/pkg/errors"
	"github.com/trendzapp/trendz-backend/pkg/logger"
)

type createProductRequest struct {
	Name           string   `json:"name" validate:"required,min=1,max=200"`
	Price          float64  `json:"price" validate:"gte=0"`
	Category       string   `json:"category" validate:"required,uuid"`
	InventoryCount int      `json:"inventoryCount" validate:"gte=0"`
	Description    string   `json:"description" validate:"required"`
	Images         []string `json:"images,omitempty"`
	Discount       float64  `json:"discount" validate:"gte=0"`
	Shop           string   `json:"shop" validate:"required,uuid"`
}

type updateProductRequest struct {
	Name           *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Price          *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category       *string  `json:"category,omitempty" validate:"omitempty,uuid"`
	InventoryCount *int     `json:"inventoryCount,omitempty" validate:"omitempty,gte=0"`
	Description    *string  `json:"description,omitempty"`
	Images         []string `json:"images,omitempty"`
	Discount       *float64 `json:"discount,omitempty" validate:"omitempty,gte=0"`
}

func (r createProductRequest) toInput() (productsvc.CreateProductInput, error) {
	categoryID, err := uuid.Parse(r.Category)
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id")
	}
	shopID, err := uuid.Parse(r.Shop)
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shop id")
	}
	return productsvc.CreateProductInput{
		Name:           validators.SanitizeString(r.Name, 200),
		Price:          decimal.NewFromFloat(r.Price),
		CategoryID:     categoryID,
		InventoryCount: r.InventoryCount,
		Description:    r.Description,
		Images:         r.Images,
		Discount:       decimal.NewFromFloat(r.Discount),
		ShopID:         shopID,
	}, nil
}

// CreateProduct handles POST /products.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), actor, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, "Product created", product)
	}
}

// ListProducts handles GET /products. Query parameters drive the
// search/filter/sort/paginate helper.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, meta, err := svc.ListProducts(r.Context(), r.URL.Query())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, "Products fetched", meta, products)
	}
}

// FeaturedProducts handles GET /products/featured-products.
func FeaturedProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, meta, err := svc.FeaturedProducts(r.Context(), r.URL.Query())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, "Featured products fetched", meta, products)
	}
}

// ProductsByFollowedShops handles GET /products/all-by-follow-shop.
func ProductsByFollowedShops(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, meta, err := svc.ListByFollowedShops(r.Context(), actor.UserID, r.URL.Query())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, "Products fetched", meta, products)
	}
}

// GetProduct handles GET /products/{id}.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Product fetched", product)
	}
}

// UpdateProduct handles PATCH /products/{id}.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := productsvc.UpdateProductInput{
			Description: payload.Description,
			Images:      payload.Images,
		}
		if payload.Name != nil {
			name := validators.SanitizeString(*payload.Name, 200)
			input.Name = &name
		}
		if payload.Price != nil {
			price := decimal.NewFromFloat(*payload.Price)
			input.Price = &price
		}
		if payload.Discount != nil {
			discount := decimal.NewFromFloat(*payload.Discount)
			input.Discount = &discount
		}
		if payload.Category != nil {
			categoryID, err := uuid.Parse(*payload.Category)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id"))
				return
			}
			input.CategoryID = &categoryID
		}
		if payload.InventoryCount != nil {
			input.InventoryCount = payload.InventoryCount
		}

		product, err := svc.UpdateProduct(r.Context(), actor, id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Product updated", product)
	}
}

// DeleteProduct handles DELETE /products/{id} (soft delete).
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SoftDeleteProduct(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Product deleted", nil)
	}
}
