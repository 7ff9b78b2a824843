package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/apperror"
	vo "github.com/oksasatya/go-ddd-auth-core/internal/domain/valueobject"
	"github.com/oksasatya/go-ddd-auth-core/internal/infrastructure/memory"
)

func TestRegisterSuccess(t *testing.T) {
	f := newFixture(t)

	u, err := f.register.Execute(context.Background(), RegisterInput{
		Email: "a@b.com", Username: "abc", Password: "Abcdef1",
	})
	require.NoError(t, err)

	assert.False(t, u.ID().IsZero())
	assert.Equal(t, "a@b.com", u.Email().Value())
	assert.Equal(t, "abc", u.Username().Value())
	assert.NotEqual(t, "Abcdef1", u.PasswordHash().Value())
	assert.True(t, f.hasher.Verify("Abcdef1", u.PasswordHash()))
	assert.Equal(t, f.now, u.CreatedAt())
	assert.Equal(t, f.now, u.UpdatedAt())

	stored, err := f.repo.FindByID(context.Background(), u.ID())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.SameIdentity(u))
}

func TestRegisterMissingFields(t *testing.T) {
	cases := []struct {
		name  string
		in    RegisterInput
		field string
	}{
		{"email", RegisterInput{Username: "abc", Password: "Abcdef1"}, "email"},
		{"username", RegisterInput{Email: "a@b.com", Password: "Abcdef1"}, "username"},
		{"password", RegisterInput{Email: "a@b.com", Username: "abc"}, "password"},
		{"all", RegisterInput{}, "email"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.register.Execute(context.Background(), tc.in)

			assert.Equal(t, apperror.KindRequiredField, apperror.KindOf(err))
			assert.Equal(t, apperror.CodeMissingRequiredField, apperror.CodeOf(err))
			assert.Contains(t, err.Error(), tc.field)
			assert.Equal(t, 0, f.repo.Len())
		})
	}
}

func TestRegisterInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"bad email", RegisterInput{Email: "not-an-email", Username: "abc", Password: "Abcdef1"}},
		{"short username", RegisterInput{Email: "a@b.com", Username: "ab", Password: "Abcdef1"}},
		{"username charset", RegisterInput{Email: "a@b.com", Username: "ab-c", Password: "Abcdef1"}},
		{"weak password", RegisterInput{Email: "a@b.com", Username: "abc", Password: "abcdef1"}},
		{"short password", RegisterInput{Email: "a@b.com", Username: "abc", Password: "Ab1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.register.Execute(context.Background(), tc.in)

			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
			assert.Equal(t, 0, f.repo.Len())
		})
	}
}

func TestRegisterDuplicates(t *testing.T) {
	f := newFixture(t)
	f.mustRegister(t, "a@b.com", "abc", "Abcdef1")

	_, err := f.register.Execute(context.Background(), RegisterInput{Email: "a@b.com", Username: "other", Password: "Abcdef1"})
	assert.Equal(t, apperror.KindDuplicate, apperror.KindOf(err))
	assert.Equal(t, apperror.CodeEmailAlreadyRegistered, apperror.CodeOf(err))

	_, err = f.register.Execute(context.Background(), RegisterInput{Email: "c@d.com", Username: "abc", Password: "Abcdef1"})
	assert.Equal(t, apperror.KindDuplicate, apperror.KindOf(err))
	assert.Equal(t, apperror.CodeUsernameAlreadyRegistered, apperror.CodeOf(err))

	// email is checked before username
	_, err = f.register.Execute(context.Background(), RegisterInput{Email: "a@b.com", Username: "abc", Password: "Abcdef1"})
	assert.Equal(t, apperror.CodeEmailAlreadyRegistered, apperror.CodeOf(err))

	assert.Equal(t, 1, f.repo.Len())
}

func TestRegisterLookupsAreCaseSensitive(t *testing.T) {
	f := newFixture(t)
	f.mustRegister(t, "a@b.com", "abc", "Abcdef1")

	u := f.mustRegister(t, "A@b.com", "ABC", "Abcdef1")
	assert.Equal(t, "A@b.com", u.Email().Value())
	assert.Equal(t, 2, f.repo.Len())
}

func TestRegisterStorageFailures(t *testing.T) {
	t.Run("lookup", func(t *testing.T) {
		f := newFixture(t)
		r := &failingRepo{UserRepository: memory.NewUserRepository(), findErr: storageErr("find user by email")}
		uc := NewRegisterUserUseCase(r, f.hasher, f.logger)

		_, err := uc.Execute(context.Background(), RegisterInput{Email: "a@b.com", Username: "abc", Password: "Abcdef1"})
		assert.Equal(t, apperror.KindStorage, apperror.KindOf(err))
		assert.Equal(t, apperror.CodeDatabaseOperation, apperror.CodeOf(err))
		assert.Equal(t, 0, r.creates)
	})

	t.Run("create", func(t *testing.T) {
		f := newFixture(t)
		r := &failingRepo{UserRepository: memory.NewUserRepository(), createErr: storageErr("create user")}
		uc := NewRegisterUserUseCase(r, f.hasher, f.logger)

		_, err := uc.Execute(context.Background(), RegisterInput{Email: "a@b.com", Username: "abc", Password: "Abcdef1"})
		assert.Equal(t, apperror.KindStorage, apperror.KindOf(err))
		assert.False(t, errors.Is(err, errConnReset))
		assert.Equal(t, 1, r.creates)
		assert.Equal(t, 0, r.Len())
	})
}

func TestRegisterCancelledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.register.Execute(ctx, RegisterInput{Email: "a@b.com", Username: "abc", Password: "Abcdef1"})
	require.Error(t, err)
	assert.Equal(t, 0, f.repo.Len())
}

func TestRegisterConcurrentSameEmail(t *testing.T) {
	f := newFixture(t)
	const n = 8

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.register.Execute(context.Background(), RegisterInput{
				Email:    "race@b.com",
				Username: "racer" + string(rune('a'+i)),
				Password: "Abcdef1",
			})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		code := apperror.CodeOf(err)
		assert.Contains(t, []string{apperror.CodeEmailAlreadyRegistered, apperror.CodeDatabaseOperation}, code)
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, f.repo.Len())

	email, err := vo.NewEmail("race@b.com")
	require.NoError(t, err)
	stored, err := f.repo.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}
