package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-auth-core/internal/interface/http"
)

// AuthModule routes:
// Public: POST /auth/register, POST /auth/login, POST /auth/logout
// Protected: GET /auth/me
// Public routes are covered by the registry's per-IP limiter.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Guard   gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, guard gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Guard: guard}
}

func (m *AuthModule) Name() string { return "auth" }

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/register", m.Handler.Register)
	auth.POST("/login", m.Handler.Login)
	auth.POST("/logout", m.Handler.Logout)
	auth.GET("/me", m.Guard, m.Handler.Me)
}
