package application

import (
	"context"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-auth-core/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-auth-core/internal/domain/repository"
	"github.com/oksasatya/go-ddd-auth-core/internal/domain/service"
	vo "github.com/oksasatya/go-ddd-auth-core/internal/domain/valueobject"
)

// IdentityResolver turns a bearer token into the caller's identity for
// protected-resource guards.
type IdentityResolver struct {
	Tokens service.TokenService
	Repo   repo.UserRepository
}

func NewIdentityResolver(tokens service.TokenService, r repo.UserRepository) *IdentityResolver {
	return &IdentityResolver{Tokens: tokens, Repo: r}
}

// Resolve verifies the token and returns the embedded user id.
func (r *IdentityResolver) Resolve(ctx context.Context, token string) (vo.EntityID, error) {
	return r.Tokens.Verify(ctx, token)
}

// CurrentUser loads the user behind an already resolved id. A valid token
// for a user that no longer exists is treated as an invalid token.
func (r *IdentityResolver) CurrentUser(ctx context.Context, id vo.EntityID) (entity.User, error) {
	u, err := r.Repo.FindByID(ctx, id)
	if err != nil {
		return entity.User{}, err
	}
	if u == nil {
		return entity.User{}, apperror.InvalidToken("subject does not match any user")
	}
	return *u, nil
}
