// Package memory is an in-process storage driver. It enforces the same
// uniqueness constraints as the users table and is safe for concurrent use.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-auth-core/internal/domain/entity"
	"github.com/oksasatya/go-ddd-auth-core/internal/domain/repository"
	vo "github.com/oksasatya/go-ddd-auth-core/internal/domain/valueobject"
)

type UserRepository struct {
	mu         sync.RWMutex
	byID       map[vo.EntityID]entity.User
	byEmail    map[string]vo.EntityID
	byUsername map[string]vo.EntityID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:       make(map[vo.EntityID]entity.User),
		byEmail:    make(map[string]vo.EntityID),
		byUsername: make(map[string]vo.EntityID),
	}
}

func (r *UserRepository) Create(ctx context.Context, u entity.User) (entity.User, error) {
	if err := ctx.Err(); err != nil {
		return entity.User{}, apperror.Storage("create user", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case r.has(u.ID()):
		return entity.User{}, apperror.Storage("create user", errors.New("duplicate key violates users_pkey"))
	case r.hasKey(r.byEmail, u.Email().Value()):
		return entity.User{}, apperror.Storage("create user", errors.New("duplicate key violates users_email_key"))
	case r.hasKey(r.byUsername, u.Username().Value()):
		return entity.User{}, apperror.Storage("create user", errors.New("duplicate key violates users_username_key"))
	}
	r.byID[u.ID()] = u
	r.byEmail[u.Email().Value()] = u.ID()
	r.byUsername[u.Username().Value()] = u.ID()
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id vo.EntityID) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.Storage("find user by id", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.get(id), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email vo.Email) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.Storage("find user by email", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email.Value()]
	if !ok {
		return nil, nil
	}
	return r.get(id), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username vo.Username) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.Storage("find user by username", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUsername[username.Value()]
	if !ok {
		return nil, nil
	}
	return r.get(id), nil
}

// Len reports the number of stored users.
func (r *UserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func (r *UserRepository) has(id vo.EntityID) bool {
	_, ok := r.byID[id]
	return ok
}

func (r *UserRepository) hasKey(m map[string]vo.EntityID, k string) bool {
	_, ok := m[k]
	return ok
}

func (r *UserRepository) get(id vo.EntityID) *entity.User {
	u, ok := r.byID[id]
	if !ok {
		return nil
	}
	return &u
}

var _ repository.UserRepository = (*UserRepository)(nil)
