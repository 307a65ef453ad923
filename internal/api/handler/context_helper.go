package handler

import (
	"github.com/gin-gonic/gin"

	"tec-planning/backend/internal/api/middleware"
	"tec-planning/backend/internal/model"
	"tec-planning/backend/pkg/jwt"
	"tec-planning/backend/pkg/response"
)

// MustGetUser returns the user loaded by the auth guard. When the guard did
// not run it writes a 401 and returns false; callers should return at once.
func MustGetUser(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get(middleware.CurrentUserKey)
	if !exists {
		response.FromError(c, middleware.ErrMissingBearer)
		return nil, false
	}
	user, ok := v.(*model.User)
	if !ok || user == nil {
		response.FromError(c, middleware.ErrMissingBearer)
		return nil, false
	}
	return user, true
}

// MustGetClaims returns the claims of the bearer token.
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(middleware.ClaimsKey)
	if !exists {
		response.FromError(c, middleware.ErrMissingBearer)
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.FromError(c, middleware.ErrMissingBearer)
		return nil, false
	}
	return claims, true
}
