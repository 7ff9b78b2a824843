package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/entity"
	vo "github.com/oksasatya/go-ddd-auth-core/internal/domain/valueobject"
)

// UserRepository defines the storage contract for users.
// Lookups return (nil, nil) when no user matches. Every storage fault is
// reported as an apperror with KindStorage.
type UserRepository interface {
	Create(ctx context.Context, u entity.User) (entity.User, error)
	FindByEmail(ctx context.Context, email vo.Email) (*entity.User, error)
	FindByUsername(ctx context.Context, username vo.Username) (*entity.User, error)
	FindByID(ctx context.Context, id vo.EntityID) (*entity.User, error)
}
