package valueobject

import (
	"math"
	"time"
)

const DefaultTokenType = "Bearer"

// AccessToken is an issued bearer token. Validity is never stored; it is
// derived by comparing ExpiresAt against the caller's clock.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
	TokenType string
}

// TokenResponse is the serialized form handed to clients.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func NewAccessToken(token string, expiresAt time.Time, tokenType string) AccessToken {
	if tokenType == "" {
		tokenType = DefaultTokenType
	}
	return AccessToken{Token: token, ExpiresAt: expiresAt, TokenType: tokenType}
}

// IsExpiredAt reports whether now is at or past the expiry instant.
func (t AccessToken) IsExpiredAt(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

func (t AccessToken) IsExpired() bool { return t.IsExpiredAt(time.Now()) }

// ExpiresIn returns whole seconds until expiry, floored at zero.
func (t AccessToken) ExpiresIn(now time.Time) int64 {
	secs := math.Floor(t.ExpiresAt.Sub(now).Seconds())
	if secs < 0 {
		return 0
	}
	return int64(secs)
}

func (t AccessToken) Response(now time.Time) TokenResponse {
	return TokenResponse{
		AccessToken: t.Token,
		TokenType:   t.TokenType,
		ExpiresIn:   t.ExpiresIn(now),
	}
}

func (t AccessToken) String() string { return t.Token }
