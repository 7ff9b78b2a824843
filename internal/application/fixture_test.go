package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-auth-core/internal/domain/entity"
	vo "github.com/oksasatya/go-ddd-auth-core/internal/domain/valueobject"
	"github.com/oksasatya/go-ddd-auth-core/internal/infrastructure/memory"
	"github.com/oksasatya/go-ddd-auth-core/internal/infrastructure/security"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fixture struct {
	repo     *memory.UserRepository
	hasher   *security.BcryptHasher
	tokens   *security.JWTTokenService
	logger   *logrus.Logger
	logs     *test.Hook
	register *RegisterUserUseCase
	login    *LoginUseCase
	identity *IdentityResolver
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	hasher, err := security.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	f := &fixture{
		repo:   memory.NewUserRepository(),
		hasher: hasher,
		logger: logger,
		logs:   hook,
		now:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	f.tokens, err = security.NewJWTTokenService(security.JWTConfig{
		Secret:    testSecret,
		Algorithm: "HS256",
		TTL:       15 * time.Minute,
		Now:       func() time.Time { return f.now },
	}, logger)
	require.NoError(t, err)

	f.register = NewRegisterUserUseCase(f.repo, hasher, logger)
	f.register.Now = func() time.Time { return f.now }
	f.login = NewLoginUseCase(f.repo, hasher, f.tokens, logger)
	f.identity = NewIdentityResolver(f.tokens, f.repo)
	return f
}

func (f *fixture) mustRegister(t *testing.T, email, username, password string) entity.User {
	t.Helper()
	u, err := f.register.Execute(context.Background(), RegisterInput{Email: email, Username: username, Password: password})
	require.NoError(t, err)
	return u
}

// failingRepo injects errors in front of a working repository.
type failingRepo struct {
	*memory.UserRepository
	findErr   error
	createErr error
	creates   int
}

func (r *failingRepo) FindByEmail(ctx context.Context, e vo.Email) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.UserRepository.FindByEmail(ctx, e)
}

func (r *failingRepo) Create(ctx context.Context, u entity.User) (entity.User, error) {
	r.creates++
	if r.createErr != nil {
		return entity.User{}, r.createErr
	}
	return r.UserRepository.Create(ctx, u)
}

var errConnReset = errors.New("connection reset by peer")

func storageErr(op string) error { return apperror.Storage(op, errConnReset) }
