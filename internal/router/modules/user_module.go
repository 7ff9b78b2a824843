package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-auth-core/internal/interface/http"
)

// UserModule routes (all protected): GET /users/search
type UserModule struct {
	Handler *handlers.UserHandler
	Guard   gin.HandlerFunc
	Limiter gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, guard, limiter gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Guard: guard, Limiter: limiter}
}

func (m *UserModule) Name() string { return "users" }

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(m.Guard, m.Limiter)
	users.GET("/search", m.Handler.Search)
}
