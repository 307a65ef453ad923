package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"tec-planning/backend/internal/model"
	apperrors "tec-planning/backend/pkg/errors"
	"tec-planning/backend/pkg/jwt"
	"tec-planning/backend/pkg/response"
)

// Context keys set by JWTAuth
const (
	CurrentUserKey = "current_user"
	ClaimsKey      = "token_claims"
)

// ErrMissingBearer the Authorization header is absent or not a bearer token
var ErrMissingBearer = apperrors.New(apperrors.KindUnauthenticated, "Authorization header missing or invalid")

// Authenticator resolves a bearer token to its live user
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, *jwt.Claims, error)
}

// JWTAuth guards a route group: the request either carries a bearer token
// resolving to an existing user, or is answered here with 401/404.
func JWTAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.FromError(c, ErrMissingBearer)
			c.Abort()
			return
		}

		user, claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, user)
		c.Set(ClaimsKey, claims)

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
