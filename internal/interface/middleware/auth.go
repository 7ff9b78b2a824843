package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/apperror"
	vo "github.com/oksasatya/go-ddd-auth-core/internal/domain/valueobject"
	handlers "github.com/oksasatya/go-ddd-auth-core/internal/interface/http"
	"github.com/oksasatya/go-ddd-auth-core/pkg/helpers"
)

// IdentityResolver is satisfied by application.IdentityResolver.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (vo.EntityID, error)
}

// Auth resolves the bearer token (Authorization header, falling back to the
// access_token cookie) and stores the caller's id in the Gin context.
func Auth(resolver IdentityResolver, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			handlers.CountTokenRejection()
			handlers.WriteError(c, logger, apperror.InvalidToken("missing access token"))
			return
		}
		id, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			handlers.CountTokenRejection()
			handlers.WriteError(c, logger, err)
			return
		}
		handlers.SetIdentity(c, id)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if h := strings.TrimSpace(c.GetHeader("Authorization")); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if token, err := c.Cookie(helpers.AccessTokenCookie); err == nil {
		return token
	}
	return ""
}
