package infusions

import (
	"context"
	"errors"
	"strings"
	"time"

	"kisunla-flowsheet/internal/domain/dosing"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type AppendInput struct {
	Number int
	Date   time.Time

	// DoseMg opcional: 0 = calcular por esquema de titulación.
	// Un override manual se respeta tal cual (no se valida contra Number);
	// el volumen sí se deriva siempre de la dosis efectiva.
	DoseMg float64

	Notes string
}

func (s *Service) Append(ctx context.Context, sessionID string, in AppendInput) (Infusion, error) {
	if strings.TrimSpace(sessionID) == "" {
		return Infusion{}, ErrInvalidInput
	}
	if in.Number < 1 {
		return Infusion{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return Infusion{}, ErrInvalidInput
	}
	if in.DoseMg < 0 {
		return Infusion{}, ErrInvalidInput
	}

	doseMg := in.DoseMg
	if doseMg == 0 {
		d, err := dosing.DoseForInfusionNumber(in.Number)
		if err != nil {
			return Infusion{}, ErrInvalidInput
		}
		doseMg = d
	}

	volumeMl, err := dosing.VolumeForDose(doseMg)
	if err != nil {
		return Infusion{}, ErrInvalidInput
	}

	rec := Infusion{
		SessionID:  sessionID,
		Number:     in.Number,
		Date:       in.Date,
		DoseMg:     doseMg,
		VolumeMl:   volumeMl,
		Status:     StatusCompleted,
		Notes:      strings.TrimSpace(in.Notes),
		RecordedAt: s.now(),
	}

	return s.repo.Append(ctx, sessionID, rec)
}

// Update reemplaza un registro por ID (el flujo de edición del lápiz en la UI).
// Recalcula dosis/volumen con las mismas reglas que Append.
func (s *Service) Update(ctx context.Context, sessionID string, id int, in AppendInput) (Infusion, error) {
	if strings.TrimSpace(sessionID) == "" || id < 1 {
		return Infusion{}, ErrInvalidInput
	}
	if in.Number < 1 || in.Date.IsZero() || in.DoseMg < 0 {
		return Infusion{}, ErrInvalidInput
	}

	doseMg := in.DoseMg
	if doseMg == 0 {
		d, err := dosing.DoseForInfusionNumber(in.Number)
		if err != nil {
			return Infusion{}, ErrInvalidInput
		}
		doseMg = d
	}
	volumeMl, err := dosing.VolumeForDose(doseMg)
	if err != nil {
		return Infusion{}, ErrInvalidInput
	}

	rec := Infusion{
		ID:         id,
		SessionID:  sessionID,
		Number:     in.Number,
		Date:       in.Date,
		DoseMg:     doseMg,
		VolumeMl:   volumeMl,
		Status:     StatusCompleted,
		Notes:      strings.TrimSpace(in.Notes),
		RecordedAt: s.now(),
	}

	if err := s.repo.Update(ctx, sessionID, rec); err != nil {
		return Infusion{}, err
	}
	return rec, nil
}

func (s *Service) List(ctx context.Context, sessionID string) ([]Infusion, error) {
	return s.repo.List(ctx, sessionID)
}

func (s *Service) Latest(ctx context.Context, sessionID string) (Infusion, bool, error) {
	return s.repo.Latest(ctx, sessionID)
}
