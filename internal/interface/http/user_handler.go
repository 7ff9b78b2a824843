package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-auth-core/internal/infrastructure/search"
	"github.com/oksasatya/go-ddd-auth-core/pkg/response"
)

// UserSearcher is satisfied by search.UserDirectory.
type UserSearcher interface {
	Search(ctx context.Context, q string, size int) ([]search.UserDoc, error)
}

type UserHandler struct {
	Directory UserSearcher
	Logger    *logrus.Logger
}

func NewUserHandler(dir UserSearcher, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Directory: dir, Logger: logger}
}

// Search GET /api/users/search?q=&size= (identity guard required)
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		WriteError(c, h.Logger, apperror.RequiredField("q"))
		return
	}
	size := search.DefaultSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteError(c, h.Logger, apperror.InvalidFormat("invalid size", "size must be a positive integer"))
			return
		}
		size = n
	}

	docs, err := h.Directory.Search(c.Request.Context(), q, size)
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, docs, "users")
}
