package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/trendzapp/trendz-backend/api/responses"
	"github.com/trendzapp/trendz-backend/api/validators"
	cartsvc "github.com/trendzapp/trendz-backend/internal/carts"
	"github.com/trendzapp/trendz-backend/pkg/db/models"
	pkgerrors "github.com/trendzapp/trendz-backend/pkg/errors"
	"github.com/trendzapp/trendz-backend/pkg/logger"
)

type addToCartRequest struct {
	Shop  string            `json:"shop" validate:"required,uuid"`
	Items []cartItemRequest `json:"items" validate:"required,min=1,dive"`
}

type cartItemRequest struct {
	Product  string `json:"product" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

func (r addToCartRequest) toInput() (cartsvc.AddItemsInput, error) {
	shopID, err := uuid.Parse(r.Shop)
	if err != nil {
		return cartsvc.AddItemsInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shop id")
	}
	items := make([]cartsvc.ItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		productID, err := uuid.Parse(item.Product)
		if err != nil {
			return cartsvc.AddItemsInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
		}
		items = append(items, cartsvc.ItemInput{ProductID: productID, Quantity: item.Quantity})
	}
	return cartsvc.AddItemsInput{ShopID: shopID, Items: items}, nil
}

// AddToCart handles POST /cart.
func AddToCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addToCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.AddItems(r.Context(), actor.UserID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, "Items added to cart", cart)
	}
}

// GetCart handles GET /cart.
func GetCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		carts, err := svc.GetCarts(r.Context(), actor.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Cart fetched", carts)
	}
}

// IncrementCartItem handles PATCH /cart/increment/{productId}.
func IncrementCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartLineHandler(svc, logg, "Item quantity increased", cartsvc.Service.IncrementItem)
}

// DecrementCartItem handles PATCH /cart/decrement/{productId}.
func DecrementCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartLineHandler(svc, logg, "Item quantity decreased", cartsvc.Service.DecrementItem)
}

// RemoveCartItem handles DELETE /cart/item/{productId}.
func RemoveCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return cartLineHandler(svc, logg, "Item removed from cart", cartsvc.Service.RemoveItem)
}

func cartLineHandler(
	svc cartsvc.Service,
	logg *logger.Logger,
	message string,
	op func(cartsvc.Service, context.Context, uuid.UUID, uuid.UUID) (*models.Cart, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParseIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := op(svc, r.Context(), actor.UserID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, message, cart)
	}
}

// ClearCart handles DELETE /cart/{id}.
func ClearCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cartID, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ClearCart(r.Context(), cartID, actor.UserID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Cart cleared", nil)
	}
}
