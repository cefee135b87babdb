package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/trendzapp/trendz-backend/api/responses"
	"github.com/trendzapp/trendz-backend/api/validators"
	shopsvc "github.com/trendzapp/trendz-backend/internal/shops"
	"github.com/trendzapp/trendz-backend/pkg/db/models"
	"github.com/trendzapp/trendz-backend/pkg/logger"
)

type createShopRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=120"`
	Logo        *string `json:"logo,omitempty"`
	Description *string `json:"description,omitempty"`
}

type updateShopRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Logo        *string `json:"logo,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateShop handles POST /shops.
func CreateShop(svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createShopRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shop, err := svc.CreateShop(r.Context(), actor, shopsvc.CreateShopInput{
			Name:        validators.SanitizeString(payload.Name, 120),
			LogoURL:     payload.Logo,
			Description: payload.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, "Shop created", shop)
	}
}

// ListShops handles GET /shops.
func ListShops(svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shops, err := svc.ListShops(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Shops fetched", shops)
	}
}

// GetShop handles GET /shops/{id}.
func GetShop(svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shop, err := svc.GetShop(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Shop fetched", shop)
	}
}

// UpdateShop handles PATCH /shops/{id}.
func UpdateShop(svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload updateShopRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := shopsvc.UpdateShopInput{
			LogoURL:     payload.Logo,
			Description: payload.Description,
		}
		if payload.Name != nil {
			name := validators.SanitizeString(*payload.Name, 120)
			input.Name = &name
		}

		shop, err := svc.UpdateShop(r.Context(), actor, id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Shop updated", shop)
	}
}

// DeleteShop handles DELETE /shops/{id} (soft delete).
func DeleteShop(svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.SoftDeleteShop(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Shop deleted", nil)
	}
}

// FollowShop handles POST /shops/{id}/follow.
func FollowShop(svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return followHandler(svc, logg, "Shop followed", shopsvc.Service.Follow)
}

// UnfollowShop handles POST /shops/{id}/unfollow.
func UnfollowShop(svc shopsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return followHandler(svc, logg, "Shop unfollowed", shopsvc.Service.Unfollow)
}

func followHandler(
	svc shopsvc.Service,
	logg *logger.Logger,
	message string,
	op func(shopsvc.Service, context.Context, shopsvc.Actor, uuid.UUID) (*models.Shop, error),
) http.HandlerFunc {
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

		shop, err := op(svc, r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, message, shop)
	}
}
