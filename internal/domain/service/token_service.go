package service

import (
	"context"

	vo "github.com/oksasatya/go-ddd-auth-core/internal/domain/valueobject"
)

// TokenService issues and verifies stateless bearer tokens bound to a user id.
type TokenService interface {
	Issue(ctx context.Context, userID vo.EntityID) (vo.AccessToken, error)

	// Verify fails with apperror.ErrTokenExpired once the embedded expiry has
	// passed and with an InvalidToken error for anything else it rejects.
	Verify(ctx context.Context, token string) (vo.EntityID, error)
}
