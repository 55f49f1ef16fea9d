// Package summary arma la vista agregada de la hoja de flujo: progreso de
// tratamiento, esquema de dosificación, último MRI, última evaluación ARIA
// y perfil del paciente. Solo lectura.
package summary

import (
	"context"
	"strings"

	"kisunla-flowsheet/internal/domain/aria"
	"kisunla-flowsheet/internal/domain/dosing"
	"kisunla-flowsheet/internal/domain/infusions"
	"kisunla-flowsheet/internal/domain/mri"
	"kisunla-flowsheet/internal/domain/profile"
)

type Service struct {
	infusions *infusions.Service
	mri       *mri.Service
	aria      *aria.Service
	profile   *profile.Service
}

func NewService(inf *infusions.Service, m *mri.Service, a *aria.Service, p *profile.Service) *Service {
	return &Service{
		infusions: inf,
		mri:       m,
		aria:      a,
		profile:   p,
	}
}

// Summary es la foto completa de la sesión. Los punteros quedan nil cuando
// la colección correspondiente todavía está vacía: estado válido, no error.
type Summary struct {
	CurrentInfusion  *infusions.Infusion
	DosingSchedule   []dosing.Step
	LatestMRI        *mri.Record
	MRIReminder      mri.ScheduleReminder
	LatestAssessment *aria.Assessment
	Profile          profile.Profile
}

func (s *Service) Build(ctx context.Context, sessionID string) (Summary, error) {
	if strings.TrimSpace(sessionID) == "" {
		return Summary{}, profile.ErrInvalidInput
	}

	out := Summary{
		DosingSchedule: dosing.Schedule(),
		MRIReminder:    mri.Reminder(),
	}

	if inf, found, err := s.infusions.Latest(ctx, sessionID); err != nil {
		return Summary{}, err
	} else if found {
		out.CurrentInfusion = &inf
	}

	if rec, found, err := s.mri.Latest(ctx, sessionID); err != nil {
		return Summary{}, err
	} else if found {
		out.LatestMRI = &rec
	}

	if a, found, err := s.aria.Latest(ctx, sessionID); err != nil {
		return Summary{}, err
	} else if found {
		out.LatestAssessment = &a
	}

	p, err := s.profile.Get(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	out.Profile = p

	return out, nil
}
