package entity

import (
	"time"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/apperror"
	vo "github.com/oksasatya/go-ddd-auth-core/internal/domain/valueobject"
)

// User is the aggregate root for a registered identity.
// Fields are unexported: a User is built once and only read afterwards.
type User struct {
	id           vo.EntityID
	email        vo.Email
	username     vo.Username
	passwordHash vo.PasswordHash
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser builds a freshly registered user with both timestamps set to now.
func NewUser(id vo.EntityID, email vo.Email, username vo.Username, hash vo.PasswordHash, now time.Time) (User, error) {
	now = now.UTC()
	return ReconstituteUser(id, email, username, hash, now, now)
}

// ReconstituteUser rebuilds a stored user. Repositories use it after loading a row.
func ReconstituteUser(id vo.EntityID, email vo.Email, username vo.Username, hash vo.PasswordHash, createdAt, updatedAt time.Time) (User, error) {
	switch {
	case id.IsZero():
		return User{}, apperror.RequiredField("id")
	case email.IsZero():
		return User{}, apperror.RequiredField("email")
	case username.IsZero():
		return User{}, apperror.RequiredField("username")
	case hash.IsZero():
		return User{}, apperror.RequiredField("password_hash")
	}
	return User{
		id:           id,
		email:        email,
		username:     username,
		passwordHash: hash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u User) ID() vo.EntityID               { return u.id }
func (u User) Email() vo.Email               { return u.email }
func (u User) Username() vo.Username         { return u.username }
func (u User) PasswordHash() vo.PasswordHash { return u.passwordHash }
func (u User) CreatedAt() time.Time          { return u.createdAt }
func (u User) UpdatedAt() time.Time          { return u.updatedAt }

// SameIdentity compares users by id only.
func (u User) SameIdentity(other User) bool {
	return u.id == other.id
}
