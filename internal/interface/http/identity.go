package handlers

import (
	"github.com/gin-gonic/gin"

	vo "github.com/oksasatya/go-ddd-auth-core/internal/domain/valueobject"
)

// Context keys set by the identity guard.
const (
	CtxUserIDKey   = "userID"
	ctxIdentityKey = "identity"
)

func SetIdentity(c *gin.Context, id vo.EntityID) {
	c.Set(CtxUserIDKey, id.String())
	c.Set(ctxIdentityKey, id)
}

// IdentityFrom returns the caller resolved by the identity guard.
func IdentityFrom(c *gin.Context) (vo.EntityID, bool) {
	v, ok := c.Get(ctxIdentityKey)
	if !ok {
		return vo.EntityID{}, false
	}
	id, ok := v.(vo.EntityID)
	return id, ok && !id.IsZero()
}
