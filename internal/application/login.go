package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/apperror"
	repo "github.com/oksasatya/go-ddd-auth-core/internal/domain/repository"
	"github.com/oksasatya/go-ddd-auth-core/internal/domain/service"
	vo "github.com/oksasatya/go-ddd-auth-core/internal/domain/valueobject"
)

type LoginInput struct {
	Email    string
	Password string
}

// LoginUseCase authenticates by email and password and issues an access token.
// Unknown email and wrong password fail with the same error.
type LoginUseCase struct {
	Repo   repo.UserRepository
	Hasher service.PasswordHasher
	Tokens service.TokenService
	Logger *logrus.Logger
}

func NewLoginUseCase(r repo.UserRepository, hasher service.PasswordHasher, tokens service.TokenService, logger *logrus.Logger) *LoginUseCase {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LoginUseCase{Repo: r, Hasher: hasher, Tokens: tokens, Logger: logger}
}

func (uc *LoginUseCase) Execute(ctx context.Context, in LoginInput) (vo.AccessToken, error) {
	email, err := vo.NewEmail(in.Email)
	if err != nil {
		return vo.AccessToken{}, err
	}
	if in.Password == "" {
		return vo.AccessToken{}, apperror.MissingField("password")
	}
	log := uc.Logger.WithField("email", email.Value())
	log.Debug("login attempt")

	user, err := uc.Repo.FindByEmail(ctx, email)
	if err != nil {
		return vo.AccessToken{}, err
	}
	if user == nil {
		log.Warn("login failed: unknown email")
		return vo.AccessToken{}, apperror.ErrInvalidCredentials
	}
	if !uc.Hasher.Verify(in.Password, user.PasswordHash()) {
		log.WithField("user_id", user.ID().String()).Warn("login failed: password mismatch")
		return vo.AccessToken{}, apperror.ErrInvalidCredentials
	}

	token, err := uc.Tokens.Issue(ctx, user.ID())
	if err != nil {
		return vo.AccessToken{}, err
	}
	log.WithField("user_id", user.ID().String()).Info("login successful")
	return token, nil
}
