package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-auth-core/internal/application"
	"github.com/oksasatya/go-ddd-auth-core/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-auth-core/internal/domain/entity"
	"github.com/oksasatya/go-ddd-auth-core/pkg/helpers"
	"github.com/oksasatya/go-ddd-auth-core/pkg/response"
)

type AuthHandler struct {
	RegisterUser *application.RegisterUserUseCase
	LoginUser    *application.LoginUseCase
	Identity     *application.IdentityResolver
	Hooks        []application.RegistrationHook
	Logger       *logrus.Logger
	Cookies      *helpers.Manager
	Now          func() time.Time
}

func NewAuthHandler(
	register *application.RegisterUserUseCase,
	login *application.LoginUseCase,
	identity *application.IdentityResolver,
	hooks []application.RegistrationHook,
	logger *logrus.Logger,
	cookies *helpers.Manager,
) *AuthHandler {
	return &AuthHandler{
		RegisterUser: register,
		LoginUser:    login,
		Identity:     identity,
		Hooks:        hooks,
		Logger:       logger,
		Cookies:      cookies,
		Now:          time.Now,
	}
}

// Request bodies carry no binding tags: presence and format are checked by
// the use cases so clients get domain error codes.
type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserSummary struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type currentUser struct {
	UserSummary
	CreatedAt time.Time `json:"created_at"`
}

func summaryOf(u entity.User) UserSummary {
	return UserSummary{ID: u.ID().String(), Email: u.Email().Value(), Username: u.Username().Value()}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		WriteBindError(c, err)
		return
	}
	u, err := h.RegisterUser.Execute(c.Request.Context(), application.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		incr(MetricRegistrationErrors)
		WriteError(c, h.Logger, err)
		return
	}
	incr(MetricRegistrations)

	// detached so a client disconnect does not cancel the hooks
	failed := application.RunRegistrationHooks(context.WithoutCancel(c.Request.Context()), h.Logger, h.Hooks, u)
	authMetrics.Add(MetricHookFailures, int64(failed))
	response.Success(c, http.StatusCreated, summaryOf(u), "user registered")
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		WriteBindError(c, err)
		return
	}
	tok, err := h.LoginUser.Execute(c.Request.Context(), application.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		incr(MetricLoginFailures)
		WriteError(c, h.Logger, err)
		return
	}
	incr(MetricLogins)

	now := h.Now()
	if h.Cookies != nil {
		h.Cookies.SetAccess(c, tok.Token, tok.ExpiresAt, now)
	}
	response.Success(c, http.StatusOK, tok.Response(now), "login successful")
}

// Logout POST /api/auth/logout. Tokens are stateless; this only drops the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.Cookies != nil {
		h.Cookies.Clear(c)
	}
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, "logged out")
}

// Me GET /api/auth/me (identity guard required)
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := IdentityFrom(c)
	if !ok {
		WriteError(c, h.Logger, apperror.InvalidToken("no identity on request"))
		return
	}
	u, err := h.Identity.CurrentUser(c.Request.Context(), id)
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, currentUser{UserSummary: summaryOf(u), CreatedAt: u.CreatedAt()}, "current user")
}
