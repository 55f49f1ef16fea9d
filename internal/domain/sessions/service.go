// Package sessions maneja el ciclo de vida de una sesión de hoja de flujo:
// un paciente, un clínico escribiendo a la vez. Los stores por colección se
// crean de forma perezosa en el primer acceso; acá solo se acuña el ID y,
// opcionalmente, se carga la historia demo.
package sessions

import (
	"context"
	"errors"
	"strings"

	"kisunla-flowsheet/internal/domain/aria"
	"kisunla-flowsheet/internal/domain/infusions"
	"kisunla-flowsheet/internal/domain/mri"
	"kisunla-flowsheet/internal/domain/profile"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	infusions infusions.Repository
	mri       mri.Repository
	aria      aria.Repository
	profile   profile.Repository
}

func NewService(inf infusions.Repository, m mri.Repository, a aria.Repository, p profile.Repository) *Service {
	return &Service{
		infusions: inf,
		mri:       m,
		aria:      a,
		profile:   p,
	}
}

// Create acuña el ID de una sesión nueva. El estado en sí (colecciones
// vacías, perfil con defaults) aparece recién con el primer acceso.
func (s *Service) Create(ctx context.Context) (string, error) {
	return uuid.NewString(), nil
}

// CreateSeeded acuña la sesión y carga la historia demo del paciente de
// ejemplo (ver seed.go).
func (s *Service) CreateSeeded(ctx context.Context) (string, error) {
	id, err := s.Create(ctx)
	if err != nil {
		return "", err
	}
	if err := s.seedDemo(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

// SeedInto carga la historia demo en una sesión de ID conocido. Lo usa
// el arranque con SEED_DEMO=1 para tener una planilla navegable sin
// crear sesión primero.
func (s *Service) SeedInto(ctx context.Context, sessionID string) error {
	return s.seedDemo(ctx, sessionID)
}

func (s *Service) seedDemo(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrInvalidInput
	}

	if err := s.infusions.Seed(ctx, sessionID, demoInfusions(sessionID)); err != nil {
		return err
	}
	if err := s.mri.Seed(ctx, sessionID, demoMRIRecords(sessionID)); err != nil {
		return err
	}
	if err := s.aria.Seed(ctx, sessionID, demoAssessments(sessionID)); err != nil {
		return err
	}
	return s.profile.Put(ctx, demoProfile(sessionID))
}
