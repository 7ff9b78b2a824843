package valueobject

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/apperror"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 30
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)

// Username is 3 to 30 characters of letters, digits, underscore or dot.
type Username struct {
	value string
}

func NewUsername(raw string) (Username, error) {
	if raw == "" {
		return Username{}, apperror.RequiredField("username")
	}
	if n := utf8.RuneCountInString(raw); n < UsernameMinLength || n > UsernameMaxLength {
		return Username{}, apperror.InvalidFormat(
			"invalid username format",
			fmt.Sprintf("username must be between %d and %d characters", UsernameMinLength, UsernameMaxLength),
		)
	}
	if !usernamePattern.MatchString(raw) {
		return Username{}, apperror.InvalidFormat(
			"invalid username format",
			"username may only contain letters, digits, underscores and dots",
		)
	}
	return Username{value: raw}, nil
}

func (u Username) Value() string  { return u.value }
func (u Username) String() string { return u.value }
func (u Username) IsZero() bool   { return u.value == "" }
