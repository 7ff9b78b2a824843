package valueobject

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/apperror"
)

const (
	PasswordMinLength = 6
	PasswordMaxLength = 128
)

const redacted = "********"

// PasswordRaw is a plaintext password candidate that satisfies the policy.
// Letter classes are ASCII only; digits are any Unicode decimal digit.
// It is never persisted and prints redacted.
type PasswordRaw struct {
	value string
}

func NewPasswordRaw(raw string) (PasswordRaw, error) {
	if raw == "" {
		return PasswordRaw{}, apperror.RequiredField("password")
	}
	n := utf8.RuneCountInString(raw)
	if n < PasswordMinLength {
		return PasswordRaw{}, invalidPassword(fmt.Sprintf("password must be at least %d characters", PasswordMinLength))
	}
	if n > PasswordMaxLength {
		return PasswordRaw{}, invalidPassword(fmt.Sprintf("password must be at most %d characters", PasswordMaxLength))
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range raw {
		switch {
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case 'a' <= r && r <= 'z':
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	switch {
	case !hasUpper:
		return PasswordRaw{}, invalidPassword("password must contain at least one uppercase letter")
	case !hasLower:
		return PasswordRaw{}, invalidPassword("password must contain at least one lowercase letter")
	case !hasDigit:
		return PasswordRaw{}, invalidPassword("password must contain at least one digit")
	}
	return PasswordRaw{value: raw}, nil
}

func invalidPassword(detail string) error {
	return apperror.InvalidFormat("invalid password format", detail)
}

// Value returns the plaintext. Only the credential hasher should call it.
func (p PasswordRaw) Value() string    { return p.value }
func (p PasswordRaw) String() string   { return redacted }
func (p PasswordRaw) GoString() string { return "valueobject.PasswordRaw{" + redacted + "}" }
func (p PasswordRaw) IsZero() bool     { return p.value == "" }
