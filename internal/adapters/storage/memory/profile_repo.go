package memory

import (
	"context"
	"errors"
	"sync"

	"kisunla-flowsheet/internal/domain/profile"
)

type profileRepo struct {
	mu        sync.RWMutex
	bySession map[string]profile.Profile
}

func NewProfileRepo() profile.Repository {
	return &profileRepo{
		bySession: make(map[string]profile.Profile),
	}
}

// Get crea el perfil con defaults en el primer acceso de la sesión.
func (r *profileRepo) Get(ctx context.Context, sessionID string) (profile.Profile, error) {
	if sessionID == "" {
		return profile.Profile{}, errors.New("session id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.bySession[sessionID]
	if !ok {
		p = profile.Defaults(sessionID)
		r.bySession[sessionID] = p
	}
	return p, nil
}

func (r *profileRepo) Put(ctx context.Context, p profile.Profile) error {
	if p.SessionID == "" {
		return errors.New("session id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.bySession[p.SessionID] = p
	return nil
}
