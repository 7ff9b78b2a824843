// Package valueobject holds the self-validating primitives of the auth domain.
// Every constructor checks presence first and format second; the zero value
// of each type is never produced by a successful constructor.
package valueobject

import (
	"regexp"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/apperror"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email is a validated local@domain address.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	if raw == "" {
		return Email{}, apperror.RequiredField("email")
	}
	if !emailPattern.MatchString(raw) {
		return Email{}, apperror.InvalidFormat("invalid email format", "email is not a valid address")
	}
	return Email{value: raw}, nil
}

func (e Email) Value() string  { return e.value }
func (e Email) String() string { return e.value }
func (e Email) IsZero() bool   { return e.value == "" }
