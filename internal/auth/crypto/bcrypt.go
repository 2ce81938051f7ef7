// Package crypto provides the bcrypt implementation of the password
// hashing port.
package crypto

import (
	"github.com/LordArcquedor/Evnt/internal/auth/domain"
	"golang.org/x/crypto/bcrypt"
)

var _ domain.PasswordHasher = (*BcryptHasher)(nil)

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
