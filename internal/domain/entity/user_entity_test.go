package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/apperror"
	vo "github.com/oksasatya/go-ddd-auth-core/internal/domain/valueobject"
)

type fixture struct {
	id       vo.EntityID
	email    vo.Email
	username vo.Username
	hash     vo.PasswordHash
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	email, err := vo.NewEmail("a@b.com")
	require.NoError(t, err)
	username, err := vo.NewUsername("abc")
	require.NoError(t, err)
	hash, err := vo.NewPasswordHash("$2a$10$" + strings.Repeat("x", 53))
	require.NoError(t, err)
	return fixture{id: vo.NewEntityID(), email: email, username: username, hash: hash}
}

func TestNewUserSetsTimestamps(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2026, 1, 23, 10, 0, 0, 0, time.FixedZone("X", 3600))

	u, err := NewUser(f.id, f.email, f.username, f.hash, now)
	require.NoError(t, err)

	assert.Equal(t, f.id, u.ID())
	assert.Equal(t, "a@b.com", u.Email().Value())
	assert.Equal(t, "abc", u.Username().Value())
	assert.Equal(t, f.hash, u.PasswordHash())
	assert.True(t, u.CreatedAt().Equal(now))
	assert.Equal(t, time.UTC, u.CreatedAt().Location())
	assert.Equal(t, u.CreatedAt(), u.UpdatedAt())
}

func TestNewUserRejectsZeroValues(t *testing.T) {
	f := newFixture(t)
	now := time.Now()

	_, err := NewUser(vo.EntityID{}, f.email, f.username, f.hash, now)
	assert.Equal(t, apperror.KindRequiredField, apperror.KindOf(err))

	_, err = NewUser(f.id, vo.Email{}, f.username, f.hash, now)
	assert.Equal(t, apperror.KindRequiredField, apperror.KindOf(err))

	_, err = NewUser(f.id, f.email, vo.Username{}, f.hash, now)
	assert.Equal(t, apperror.KindRequiredField, apperror.KindOf(err))

	// A user never exists without a hashed password.
	_, err = NewUser(f.id, f.email, f.username, vo.PasswordHash{}, now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password_hash")
}

func TestSameIdentity(t *testing.T) {
	f := newFixture(t)
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	a, err := ReconstituteUser(f.id, f.email, f.username, f.hash, created, created)
	require.NoError(t, err)

	other, err := vo.NewUsername("someone.else")
	require.NoError(t, err)
	b, err := ReconstituteUser(f.id, f.email, other, f.hash, created, created.Add(time.Hour))
	require.NoError(t, err)

	c, err := NewUser(vo.NewEntityID(), f.email, f.username, f.hash, created)
	require.NoError(t, err)

	assert.True(t, a.SameIdentity(b))
	assert.False(t, a.SameIdentity(c))
}
