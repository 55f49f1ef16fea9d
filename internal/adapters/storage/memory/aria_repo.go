package memory

import (
	"context"
	"errors"
	"sync"

	"kisunla-flowsheet/internal/domain/aria"
)

type ariaRepo struct {
	mu        sync.RWMutex
	bySession map[string][]aria.Assessment
}

func NewAriaRepo() aria.Repository {
	return &ariaRepo{
		bySession: make(map[string][]aria.Assessment),
	}
}

func (r *ariaRepo) Append(ctx context.Context, sessionID string, in aria.Assessment) (aria.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sessionID == "" {
		return aria.Assessment{}, errors.New("session id required")
	}

	recs := r.bySession[sessionID]
	in.ID = nextID(recs, func(a aria.Assessment) int { return a.ID })
	in.SessionID = sessionID

	r.bySession[sessionID] = append([]aria.Assessment{in}, recs...)
	return in, nil
}

func (r *ariaRepo) List(ctx context.Context, sessionID string) ([]aria.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recs := r.bySession[sessionID]
	out := make([]aria.Assessment, len(recs))
	copy(out, recs)
	return out, nil
}

func (r *ariaRepo) Latest(ctx context.Context, sessionID string) (aria.Assessment, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recs := r.bySession[sessionID]
	if len(recs) == 0 {
		return aria.Assessment{}, false, nil
	}
	return recs[0], true, nil
}

func (r *ariaRepo) Seed(ctx context.Context, sessionID string, recs []aria.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sessionID == "" {
		return errors.New("session id required")
	}

	out := make([]aria.Assessment, len(recs))
	copy(out, recs)
	r.bySession[sessionID] = out
	return nil
}
