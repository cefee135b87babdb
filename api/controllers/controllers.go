package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/trendzapp/trendz-backend/api/middleware"
	"github.com/trendzapp/trendz-backend/internal/shops"
	"github.com/trendzapp/trendz-backend/pkg/enums"
	pkgerrors "github.com/trendzapp/trendz-backend/pkg/errors"
)

// actorFromRequest resolves the authenticated caller seeded by the auth
// middleware.
func actorFromRequest(r *http.Request) (shops.Actor, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return shops.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return shops.Actor{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	role, err := enums.ParseRole(middleware.RoleFromContext(r.Context()))
	if err != nil {
		return shops.Actor{}, pkgerrors.Wrap(pkgerrors.CodeForbidden, err, "invalid role")
	}
	return shops.Actor{UserID: userID, Role: role}, nil
}
