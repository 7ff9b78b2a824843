package security

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/service"
	vo "github.com/oksasatya/go-ddd-auth-core/internal/domain/valueobject"
)

// bcrypt.GenerateFromPassword rejects inputs longer than 72 bytes.
const bcryptMaxInput = 72

// BcryptHasher hashes passwords with bcrypt at a configurable cost.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptHasher{cost: cost}, nil
}

func (h *BcryptHasher) Hash(raw vo.PasswordRaw) (vo.PasswordHash, error) {
	b, err := bcrypt.GenerateFromPassword(bcryptInput(raw.Value()), h.cost)
	if err != nil {
		return vo.PasswordHash{}, fmt.Errorf("hash password: %w", err)
	}
	return vo.NewPasswordHash(string(b))
}

func (h *BcryptHasher) Verify(candidate string, hash vo.PasswordHash) bool {
	if candidate == "" || hash.IsZero() {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash.Value()), bcryptInput(candidate)) == nil
}

// bcryptInput pre-hashes inputs longer than bcrypt accepts so long
// passwords keep every byte significant.
func bcryptInput(s string) []byte {
	if len(s) <= bcryptMaxInput {
		return []byte(s)
	}
	sum := sha256.Sum256([]byte(s))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

var _ service.PasswordHasher = (*BcryptHasher)(nil)
