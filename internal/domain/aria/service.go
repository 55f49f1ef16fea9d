package aria

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
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
	Date     time.Time
	AriaE    AriaE
	AriaH    AriaH
	Symptoms []Symptom
}

func (s *Service) Append(ctx context.Context, sessionID string, in AppendInput) (Assessment, error) {
	if strings.TrimSpace(sessionID) == "" {
		return Assessment{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return Assessment{}, ErrInvalidInput
	}
	if !validFlair(in.AriaE.FlairSeverity) || !validClinical(in.AriaE.ClinicalSeverity) {
		return Assessment{}, ErrInvalidInput
	}
	if !validMicrohemorrhages(in.AriaH.Microhemorrhages) || !validSiderosis(in.AriaH.Siderosis) {
		return Assessment{}, ErrInvalidInput
	}

	symptoms, err := normalizeSymptomsStrict(in.Symptoms)
	if err != nil {
		return Assessment{}, err
	}

	a := Assessment{
		SessionID:  sessionID,
		Date:       in.Date,
		AriaE:      in.AriaE,
		AriaH:      in.AriaH,
		Symptoms:   symptoms,
		RecordedAt: s.now(),
	}

	return s.repo.Append(ctx, sessionID, a)
}

func (s *Service) List(ctx context.Context, sessionID string) ([]Assessment, error) {
	return s.repo.List(ctx, sessionID)
}

func (s *Service) Latest(ctx context.Context, sessionID string) (Assessment, bool, error) {
	return s.repo.Latest(ctx, sessionID)
}

func validFlair(v FlairSeverity) bool {
	switch v {
	case FlairNone, FlairMild, FlairModerate, FlairSevere:
		return true
	}
	return false
}

func validClinical(v ClinicalSeverity) bool {
	switch v {
	case ClinicalAsymptomatic, ClinicalMild, ClinicalModerate, ClinicalSevere:
		return true
	}
	return false
}

func validMicrohemorrhages(v Microhemorrhages) bool {
	switch v {
	case MicrohemorrhagesNone, MicrohemorrhagesMild, MicrohemorrhagesModerate, MicrohemorrhagesSevere:
		return true
	}
	return false
}

func validSiderosis(v Siderosis) bool {
	switch v {
	case SiderosisNone, SiderosisMild, SiderosisModerate, SiderosisSevere:
		return true
	}
	return false
}

// normalizeSymptomsStrict valida cada síntoma contra el catálogo y
// deduplica preservando el orden de llegada. Un síntoma desconocido
// invalida la evaluación completa.
func normalizeSymptomsStrict(in []Symptom) ([]Symptom, error) {
	known := map[Symptom]bool{
		SymptomWeakness:      true,
		SymptomDizziness:     true,
		SymptomVisualChanges: true,
		SymptomNausea:        true,
		SymptomConfusion:     true,
		SymptomHeadache:      true,
	}

	out := make([]Symptom, 0, len(in))
	seen := map[Symptom]bool{}

	for _, sym := range in {
		if !known[sym] {
			return nil, ErrInvalidInput
		}
		if seen[sym] {
			continue
		}
		seen[sym] = true
		out = append(out, sym)
	}

	return out, nil
}
