// Package apperror defines the tagged error type shared by the domain,
// application and infrastructure layers.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the boundary layer.
type Kind int

const (
	KindUnknown Kind = iota
	KindRequiredField
	KindValidation
	KindDuplicate
	KindInvalidCredentials
	KindInvalidToken
	KindTokenExpired
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindRequiredField:
		return "required_field"
	case KindValidation:
		return "validation"
	case KindDuplicate:
		return "duplicate"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindInvalidToken:
		return "invalid_token"
	case KindTokenExpired:
		return "token_expired"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Machine-readable codes.
const (
	CodeRequiredField             = "REQUIRED_FIELD"
	CodeMissingRequiredField      = "MISSING_REQUIRED_FIELD"
	CodeInvalidFormat             = "INVALID_FORMAT"
	CodeEmailAlreadyRegistered    = "EMAIL_ALREADY_REGISTERED"
	CodeUsernameAlreadyRegistered = "USERNAME_ALREADY_REGISTERED"
	CodeInvalidCredentials        = "INVALID_CREDENTIALS"
	CodeInvalidToken              = "INVALID_TOKEN"
	CodeTokenExpired              = "TOKEN_EXPIRED"
	CodeDatabaseOperation         = "DATABASE_OPERATION_ERROR"
)

// Error is a domain error: kind + machine code + human message + optional detail.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Code + ": " + e.Message
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target carries the same kind and code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

var (
	// ErrInvalidCredentials is shared by "no such user" and "wrong password".
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Code: CodeInvalidCredentials, Message: "invalid email or password"}
	ErrInvalidToken       = &Error{Kind: KindInvalidToken, Code: CodeInvalidToken, Message: "invalid access token"}
	ErrTokenExpired       = &Error{Kind: KindTokenExpired, Code: CodeTokenExpired, Message: "access token has expired"}
)

// RequiredField reports a missing or empty mandatory field.
func RequiredField(field string) *Error {
	return &Error{
		Kind:    KindRequiredField,
		Code:    CodeRequiredField,
		Message: field + " is required",
		Detail:  field + " must not be empty",
	}
}

// MissingField is raised by use cases before any value object is built.
func MissingField(field string) *Error {
	return &Error{
		Kind:    KindRequiredField,
		Code:    CodeMissingRequiredField,
		Message: "incomplete data",
		Detail:  fmt.Sprintf("field '%s' is required", field),
	}
}

// Validation reports a present but malformed value.
func Validation(code, message, detail string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message, Detail: detail}
}

// InvalidFormat is shorthand for Validation with CodeInvalidFormat.
func InvalidFormat(message, detail string) *Error {
	return Validation(CodeInvalidFormat, message, detail)
}

// Duplicate reports a uniqueness conflict detected before persistence.
func Duplicate(code, message, detail string) *Error {
	return &Error{Kind: KindDuplicate, Code: code, Message: message, Detail: detail}
}

// InvalidToken carries the reason a token was rejected.
func InvalidToken(reason string) *Error {
	return &Error{Kind: KindInvalidToken, Code: CodeInvalidToken, Message: "invalid access token", Detail: reason}
}

// Storage wraps a persistence fault. The cause is flattened to text so
// driver error types are not reachable through errors.As.
func Storage(op string, cause error) *Error {
	e := &Error{
		Kind:    KindStorage,
		Code:    CodeDatabaseOperation,
		Message: "database operation failed",
		Detail:  op,
	}
	if cause != nil {
		e.Err = errors.New(cause.Error())
	}
	return e
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
