// Package memory provides a map-backed credential store. It is used when
// no database is configured and by tests that need a real store.
package memory

import (
	"context"
	"sync"

	"github.com/LordArcquedor/Evnt/internal/auth/domain"
	autherror "github.com/LordArcquedor/Evnt/internal/errors"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User // key: user ID
}

var _ domain.UserRepository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*domain.User)}
}

func (r *MemoryRepository) GetByPseudo(ctx context.Context, pseudo string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Pseudo == pseudo {
			c := *u
			return &c, nil
		}
	}

	return nil, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}

	return nil, nil
}

func (r *MemoryRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Pseudo == user.Pseudo {
			return autherror.ErrPseudoAlreadyTaken
		}
		if u.Email == user.Email {
			return autherror.ErrEmailAlreadyTaken
		}
	}

	c := *user
	r.users[user.ID] = &c

	return nil
}

func (r *MemoryRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return autherror.ErrUnknownUser
	}

	for id, u := range r.users {
		if id == user.ID {
			continue
		}
		if u.Pseudo == user.Pseudo {
			return autherror.ErrPseudoAlreadyTaken
		}
		if u.Email == user.Email {
			return autherror.ErrEmailAlreadyTaken
		}
	}

	c := *user
	r.users[user.ID] = &c

	return nil
}
