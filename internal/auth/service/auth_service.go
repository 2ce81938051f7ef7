package service

import (
	"context"
	"time"

	"github.com/LordArcquedor/Evnt/internal/auth/domain"
	"github.com/LordArcquedor/Evnt/internal/auth/dto"
	autherror "github.com/LordArcquedor/Evnt/internal/errors"
	"github.com/google/uuid"
)

// AuthService is the authentication facade. It owns the business rules:
// uniqueness on registration, credential verification, the
// connected/disconnected state machine and pseudo changes. All state lives
// in the repository; the facade itself only holds the per-pseudo locks
// that keep check-then-set sequences atomic per account.
type AuthService struct {
	repo         domain.UserRepository
	hasher       domain.PasswordHasher
	tokenService TokenGenerator
	locks        *pseudoLock
}

func NewAuthService(repo domain.UserRepository, hasher domain.PasswordHasher, tokenService TokenGenerator) *AuthService {
	return &AuthService{
		repo:         repo,
		hasher:       hasher,
		tokenService: tokenService,
		locks:        newPseudoLock(),
	}
}

// Register creates a disconnected account. When both the pseudo and the
// email collide with existing accounts only the combined error is
// reported, so callers cannot tell which single field is reusable.
func (s *AuthService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	s.locks.Lock(input.Pseudo)
	defer s.locks.Unlock(input.Pseudo)

	byPseudo, err := s.repo.GetByPseudo(ctx, input.Pseudo)
	if err != nil {
		return nil, err
	}

	byEmail, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	switch {
	case byPseudo != nil && byEmail != nil:
		return nil, autherror.ErrPseudoAndEmailAlreadyTaken
	case byPseudo != nil:
		return nil, autherror.ErrPseudoAlreadyTaken
	case byEmail != nil:
		return nil, autherror.ErrEmailAlreadyTaken
	}

	hash, err := s.hasher.Hash(input.Mdp)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Pseudo:       input.Pseudo,
		Email:        input.Email,
		PasswordHash: hash,
		Connected:    false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// A concurrent registration on the same email can slip past the
	// pre-check; the store's unique constraints catch it and Create
	// reports the matching duplicate error.
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials, marks the account connected and issues
// a bearer token. Logging in while already connected is allowed and
// simply re-issues a token.
func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	s.locks.Lock(input.Pseudo)
	defer s.locks.Unlock(input.Pseudo)

	user, err := s.repo.GetByPseudo(ctx, input.Pseudo)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUnknownUser
	}

	if !s.hasher.Verify(input.Mdp, user.PasswordHash) {
		return nil, autherror.ErrWrongPassword
	}

	token, expiresAt, err := s.tokenService.Generate(user.Pseudo)
	if err != nil {
		return nil, err
	}

	user.Connected = true
	user.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout marks the account disconnected. No token is invalidated here;
// tokens simply expire.
func (s *AuthService) Logout(ctx context.Context, pseudo string) error {
	s.locks.Lock(pseudo)
	defer s.locks.Unlock(pseudo)

	user, err := s.repo.GetByPseudo(ctx, pseudo)
	if err != nil {
		return err
	}
	if user == nil {
		return autherror.ErrUnknownUser
	}

	if !user.Connected {
		return autherror.ErrAlreadyDisconnected
	}

	user.Connected = false
	user.UpdatedAt = time.Now()

	return s.repo.Update(ctx, user)
}

// RenamePseudo rewrites the identity key. The connection state is kept;
// lookups under the old pseudo fail afterwards. The new pseudo must not
// belong to another account.
func (s *AuthService) RenamePseudo(ctx context.Context, input dto.RenameInput) error {
	s.locks.LockPair(input.Pseudo, input.NouveauPseudo)
	defer s.locks.UnlockPair(input.Pseudo, input.NouveauPseudo)

	user, err := s.repo.GetByPseudo(ctx, input.Pseudo)
	if err != nil {
		return err
	}
	if user == nil {
		return autherror.ErrUnknownUser
	}

	existing, err := s.repo.GetByPseudo(ctx, input.NouveauPseudo)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != user.ID {
		return autherror.ErrPseudoAlreadyTaken
	}

	user.Pseudo = input.NouveauPseudo
	user.UpdatedAt = time.Now()

	return s.repo.Update(ctx, user)
}
