// Package service declares the stateless capabilities the auth core consumes.
package service

import vo "github.com/oksasatya/go-ddd-auth-core/internal/domain/valueobject"

// PasswordHasher turns a validated password into a salted one-way hash and
// checks candidates against a stored hash.
type PasswordHasher interface {
	// Hash is CPU bound and deliberately slow.
	Hash(raw vo.PasswordRaw) (vo.PasswordHash, error)

	// Verify returns false for any non-matching or malformed candidate.
	Verify(candidate string, hash vo.PasswordHash) bool
}
