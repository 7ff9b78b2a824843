package valueobject

import (
	"strings"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/apperror"
)

const PasswordHashMinLength = 60

var hashPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// PasswordHash is the only password form that is stored or compared against.
type PasswordHash struct {
	value string
}

func NewPasswordHash(raw string) (PasswordHash, error) {
	if raw == "" {
		return PasswordHash{}, apperror.RequiredField("password_hash")
	}
	if len(raw) < PasswordHashMinLength {
		return PasswordHash{}, apperror.InvalidFormat("invalid password hash format", "password hash is too short")
	}
	if !hasKnownPrefix(raw) {
		return PasswordHash{}, apperror.InvalidFormat("invalid password hash format", "password hash has no bcrypt prefix")
	}
	return PasswordHash{value: raw}, nil
}

func hasKnownPrefix(s string) bool {
	for _, p := range hashPrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func (h PasswordHash) Value() string  { return h.value }
func (h PasswordHash) String() string { return h.value }
func (h PasswordHash) IsZero() bool   { return h.value == "" }
