package memory

import (
	"context"
	"errors"
	"sync"

	"kisunla-flowsheet/internal/domain/mri"
)

type mriRepo struct {
	mu        sync.RWMutex
	bySession map[string][]mri.Record
}

func NewMRIRepo() mri.Repository {
	return &mriRepo{
		bySession: make(map[string][]mri.Record),
	}
}

func (r *mriRepo) Append(ctx context.Context, sessionID string, in mri.Record) (mri.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sessionID == "" {
		return mri.Record{}, errors.New("session id required")
	}

	recs := r.bySession[sessionID]
	in.ID = nextID(recs, func(rec mri.Record) int { return rec.ID })
	in.SessionID = sessionID

	r.bySession[sessionID] = append([]mri.Record{in}, recs...)
	return in, nil
}

func (r *mriRepo) List(ctx context.Context, sessionID string) ([]mri.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recs := r.bySession[sessionID]
	out := make([]mri.Record, len(recs))
	copy(out, recs)
	return out, nil
}

func (r *mriRepo) Latest(ctx context.Context, sessionID string) (mri.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recs := r.bySession[sessionID]
	if len(recs) == 0 {
		return mri.Record{}, false, nil
	}
	return recs[0], true, nil
}

func (r *mriRepo) Seed(ctx context.Context, sessionID string, recs []mri.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sessionID == "" {
		return errors.New("session id required")
	}

	out := make([]mri.Record, len(recs))
	copy(out, recs)
	r.bySession[sessionID] = out
	return nil
}
