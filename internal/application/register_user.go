package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-auth-core/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-auth-core/internal/domain/repository"
	"github.com/oksasatya/go-ddd-auth-core/internal/domain/service"
	vo "github.com/oksasatya/go-ddd-auth-core/internal/domain/valueobject"
)

type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// RegisterUserUseCase creates a user. Steps run strictly in order and the
// first failure aborts the rest; nothing is persisted before the last step.
type RegisterUserUseCase struct {
	Repo   repo.UserRepository
	Hasher service.PasswordHasher
	Logger *logrus.Logger
	Now    func() time.Time
	NewID  func() vo.EntityID
}

func NewRegisterUserUseCase(r repo.UserRepository, hasher service.PasswordHasher, logger *logrus.Logger) *RegisterUserUseCase {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &RegisterUserUseCase{
		Repo:   r,
		Hasher: hasher,
		Logger: logger,
		Now:    time.Now,
		NewID:  vo.NewEntityID,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, in RegisterInput) (entity.User, error) {
	// 1. presence
	for _, f := range []struct{ name, value string }{
		{"email", in.Email},
		{"username", in.Username},
		{"password", in.Password},
	} {
		if f.value == "" {
			return entity.User{}, apperror.MissingField(f.name)
		}
	}

	// 2. value objects
	email, err := vo.NewEmail(in.Email)
	if err != nil {
		return entity.User{}, err
	}
	username, err := vo.NewUsername(in.Username)
	if err != nil {
		return entity.User{}, err
	}
	password, err := vo.NewPasswordRaw(in.Password)
	if err != nil {
		return entity.User{}, err
	}
	log := uc.Logger.WithFields(logrus.Fields{"email": email.Value(), "username": username.Value()})

	// 3. + 4. uniqueness pre-checks; the store's constraints stay authoritative
	existing, err := uc.Repo.FindByEmail(ctx, email)
	if err != nil {
		return entity.User{}, err
	}
	if existing != nil {
		log.Info("registration rejected: email taken")
		return entity.User{}, apperror.Duplicate(
			apperror.CodeEmailAlreadyRegistered,
			"email already registered",
			fmt.Sprintf("a user with email '%s' already exists", email.Value()),
		)
	}
	existing, err = uc.Repo.FindByUsername(ctx, username)
	if err != nil {
		return entity.User{}, err
	}
	if existing != nil {
		log.Info("registration rejected: username taken")
		return entity.User{}, apperror.Duplicate(
			apperror.CodeUsernameAlreadyRegistered,
			"username already registered",
			fmt.Sprintf("a user with username '%s' already exists", username.Value()),
		)
	}

	// 5. hash
	if err := ctx.Err(); err != nil {
		return entity.User{}, err
	}
	hash, err := uc.Hasher.Hash(password)
	if err != nil {
		log.WithError(err).Error("password hashing failed")
		return entity.User{}, err
	}

	// 6. aggregate
	user, err := entity.NewUser(uc.NewID(), email, username, hash, uc.Now())
	if err != nil {
		return entity.User{}, err
	}

	// 7. persist
	if err := ctx.Err(); err != nil {
		return entity.User{}, err
	}
	created, err := uc.Repo.Create(ctx, user)
	if err != nil {
		log.WithError(err).Warn("user persistence failed")
		return entity.User{}, err
	}
	log.WithField("user_id", created.ID().String()).Info("user registered")
	return created, nil
}
