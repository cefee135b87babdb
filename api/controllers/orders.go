package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/trendzapp/trendz-backend/api/responses"
	"github.com/trendzapp/trendz-backend/api/validators"
	ordersvc "github.com/trendzapp/trendz-backend/internal/orders"
	paymentsvc "github.com/trendzapp/trendz-backend/internal/payments"
	"github.com/trendzapp/trendz-backend/pkg/db/models"
	"github.com/trendzapp/trendz-backend/pkg/enums"
	pkgerrors "github.com/trendzapp/trendz-backend/pkg/errors"
	"github.com/trendzapp/trendz-backend/pkg/logger"
)

type createOrderRequest struct {
	Email       string                `json:"email" validate:"required,email"`
	Shop        string                `json:"shop" validate:"required,uuid"`
	Products    []orderProductRequest `json:"products" validate:"required,min=1,dive"`
	TotalAmount float64               `json:"totalAmount" validate:"gte=0"`
}

type orderProductRequest struct {
	Product  string `json:"product" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type updateOrderRequest struct {
	Status        *string  `json:"status,omitempty" validate:"omitempty,oneof=PENDING COMPLETED CANCELED"`
	TransactionID *string  `json:"transactionId,omitempty"`
	TotalAmount   *float64 `json:"totalAmount,omitempty" validate:"omitempty,gte=0"`
}

type paymentIntentRequest struct {
	Price float64 `json:"price" validate:"gte=0"`
}

// CreateOrder handles POST /orders.
func CreateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shopID, err := uuid.Parse(payload.Shop)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shop id"))
			return
		}

		products := make([]models.OrderProduct, 0, len(payload.Products))
		for _, p := range payload.Products {
			productID, err := uuid.Parse(p.Product)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
				return
			}
			products = append(products, models.OrderProduct{ProductID: productID, Quantity: p.Quantity})
		}

		order, err := svc.CreateOrder(r.Context(), ordersvc.CreateOrderInput{
			UserID:      actor.UserID,
			Email:       payload.Email,
			ShopID:      shopID,
			Products:    products,
			TotalAmount: decimal.NewFromFloat(payload.TotalAmount),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, "Order created", order)
	}
}

// UpdateOrder handles PATCH /orders/{id}.
func UpdateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := ordersvc.UpdateOrderInput{TransactionID: payload.TransactionID}
		if payload.Status != nil {
			status := enums.OrderStatus(*payload.Status)
			input.Status = &status
		}
		if payload.TotalAmount != nil {
			amount := decimal.NewFromFloat(*payload.TotalAmount)
			input.TotalAmount = &amount
		}

		order, err := svc.UpdateOrder(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Order updated", order)
	}
}

// ListOrders handles GET /orders. Soft-deleted rows are included unless the
// caller passes includeDeleted=false.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		includeDeleted, err := validators.ParseQueryBool(r, "includeDeleted", true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orders, err := svc.ListOrders(r.Context(), includeDeleted)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Orders fetched", orders)
	}
}

// GetOrder handles GET /orders/{id}.
func GetOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetOrder(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Order fetched", order)
	}
}

// DeleteOrder handles DELETE /orders/{id} (soft delete).
func DeleteOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SoftDeleteOrder(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Order deleted", nil)
	}
}

// CreatePaymentIntent handles POST /orders/create-payment-intent.
func CreatePaymentIntent(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload paymentIntentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		clientSecret, err := svc.CreatePaymentIntent(r.Context(), decimal.NewFromFloat(payload.Price))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Payment intent created", map[string]string{
			"clientSecret": clientSecret,
		})
	}
}
