package security

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-auth-core/internal/domain/service"
	vo "github.com/oksasatya/go-ddd-auth-core/internal/domain/valueobject"
)

const (
	// AccessTokenPurpose is the "type" claim every access token carries.
	AccessTokenPurpose = "access"
	// MinSecretLength is counted in characters, as config validation does.
	MinSecretLength = 32
)

// Claims is the JWT payload: sub, type, iat, exp.
type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// JWTConfig configures a JWTTokenService.
type JWTConfig struct {
	Secret    string
	Algorithm string
	TTL       time.Duration
	TokenType string
	// Now defaults to time.Now.
	Now func() time.Time
}

// JWTTokenService signs and verifies HMAC access tokens.
type JWTTokenService struct {
	secret    []byte
	method    jwt.SigningMethod
	ttl       time.Duration
	tokenType string
	now       func() time.Time
	logger    *logrus.Logger
}

func NewJWTTokenService(cfg JWTConfig, logger *logrus.Logger) (*JWTTokenService, error) {
	if utf8.RuneCountInString(cfg.Secret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", MinSecretLength)
	}
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported jwt algorithm %q", cfg.Algorithm)
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("jwt ttl must be positive")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.TokenType == "" {
		cfg.TokenType = vo.DefaultTokenType
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &JWTTokenService{
		secret:    []byte(cfg.Secret),
		method:    method,
		ttl:       cfg.TTL,
		tokenType: cfg.TokenType,
		now:       cfg.Now,
		logger:    logger,
	}, nil
}

func (s *JWTTokenService) Issue(ctx context.Context, userID vo.EntityID) (vo.AccessToken, error) {
	if userID.IsZero() {
		return vo.AccessToken{}, apperror.RequiredField("user_id")
	}
	// NumericDate has second precision; truncate so the returned expiry matches the claim.
	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl)

	claims := &Claims{
		Type: AccessTokenPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID.String()).Error("sign access token failed")
		return vo.AccessToken{}, fmt.Errorf("sign access token: %w", err)
	}
	s.logger.WithField("user_id", userID.String()).Debug("access token issued")
	return vo.NewAccessToken(signed, expiresAt, s.tokenType), nil
}

func (s *JWTTokenService) Verify(ctx context.Context, token string) (vo.EntityID, error) {
	if token == "" {
		return vo.EntityID{}, apperror.InvalidToken("token is empty")
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.logger.Debug("access token expired")
			return vo.EntityID{}, apperror.ErrTokenExpired
		}
		s.logger.WithError(err).Debug("access token rejected")
		return vo.EntityID{}, apperror.InvalidToken("signature or structure check failed")
	}

	if claims.Type != AccessTokenPurpose {
		return vo.EntityID{}, apperror.InvalidToken("wrong token type")
	}
	id, err := vo.ParseEntityID(claims.Subject)
	if err != nil {
		return vo.EntityID{}, apperror.InvalidToken("subject is not a valid id")
	}
	return id, nil
}

var _ service.TokenService = (*JWTTokenService)(nil)
