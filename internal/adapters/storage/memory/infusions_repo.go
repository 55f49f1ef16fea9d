package memory

import (
	"context"
	"errors"
	"sync"

	"kisunla-flowsheet/internal/domain/infusions"
)

// Alias del sentinel de dominio para que errors.Is funcione de punta a punta.
var ErrNotFound = infusions.ErrNotFound

type infusionsRepo struct {
	mu        sync.RWMutex
	bySession map[string][]infusions.Infusion
}

func NewInfusionsRepo() infusions.Repository {
	return &infusionsRepo{
		bySession: make(map[string][]infusions.Infusion),
	}
}

func (r *infusionsRepo) Append(ctx context.Context, sessionID string, in infusions.Infusion) (infusions.Infusion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sessionID == "" {
		return infusions.Infusion{}, errors.New("session id required")
	}

	recs := r.bySession[sessionID]

	// ID = max existente + 1; con colección vacía arranca en 1 (acá no hay
	// max-sobre-vacío que pueda explotar). Independiente del orden en que
	// hayan quedado los IDs existentes.
	in.ID = nextID(recs, func(rec infusions.Infusion) int { return rec.ID })
	in.SessionID = sessionID

	// Insertar al frente: el orden más-reciente-primero sale de acá,
	// no hay paso de ordenamiento aparte.
	r.bySession[sessionID] = append([]infusions.Infusion{in}, recs...)
	return in, nil
}

func (r *infusionsRepo) List(ctx context.Context, sessionID string) ([]infusions.Infusion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recs := r.bySession[sessionID]
	out := make([]infusions.Infusion, len(recs))
	copy(out, recs)
	return out, nil
}

func (r *infusionsRepo) Latest(ctx context.Context, sessionID string) (infusions.Infusion, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recs := r.bySession[sessionID]
	if len(recs) == 0 {
		return infusions.Infusion{}, false, nil
	}
	return recs[0], true, nil
}

func (r *infusionsRepo) Update(ctx context.Context, sessionID string, rec infusions.Infusion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	recs := r.bySession[sessionID]
	for i := range recs {
		if recs[i].ID == rec.ID {
			rec.SessionID = sessionID
			recs[i] = rec
			return nil
		}
	}
	return ErrNotFound
}

func (r *infusionsRepo) Seed(ctx context.Context, sessionID string, recs []infusions.Infusion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sessionID == "" {
		return errors.New("session id required")
	}

	out := make([]infusions.Infusion, len(recs))
	copy(out, recs)
	r.bySession[sessionID] = out
	return nil
}

// nextID devuelve max(ids)+1, o 1 si no hay registros.
func nextID[T any](recs []T, id func(T) int) int {
	maxID := 0
	for _, rec := range recs {
		if v := id(rec); v > maxID {
			maxID = v
		}
	}
	return maxID + 1
}
