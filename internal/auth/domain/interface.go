package domain

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/LordArcquedor/Evnt/internal/auth/domain UserRepository

import "context"

// UserRepository is the credential store port. Lookups return (nil, nil)
// when no record matches. Create fails with ErrPseudoAlreadyTaken or
// ErrEmailAlreadyTaken on a unique-constraint hit; Update fails with
// ErrUnknownUser when the record vanished and with the duplicate errors
// when a pseudo change collides.
type UserRepository interface {
	GetByPseudo(ctx context.Context, pseudo string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}

// PasswordHasher is the one-way hashing port.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
