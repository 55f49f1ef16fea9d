package profile

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, sessionID string) (Profile, error) {
	if strings.TrimSpace(sessionID) == "" {
		return Profile{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, sessionID)
}

// PatchInput usa punteros para PATCH real: nil = no tocar.
type PatchInput struct {
	CMSRegistryID *string
	ApoE4Status   *ApoE4Status

	OverallAriaRisk     *string
	SymptomaticAriaRate *string
	SeriousEventRate    *string
}

func (s *Service) Patch(ctx context.Context, sessionID string, in PatchInput) (Profile, error) {
	if strings.TrimSpace(sessionID) == "" {
		return Profile{}, ErrInvalidInput
	}

	p, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return Profile{}, err
	}

	if in.CMSRegistryID != nil {
		p.CMSRegistryID = strings.TrimSpace(*in.CMSRegistryID)
	}
	if in.ApoE4Status != nil {
		if !validApoE4(*in.ApoE4Status) {
			return Profile{}, ErrInvalidInput
		}
		p.ApoE4Status = *in.ApoE4Status
	}

	// Los campos de riesgo son texto opaco del operador ("45%", "Not
	// Assessed"...); no se interpretan ni se derivan del log ARIA.
	if in.OverallAriaRisk != nil {
		p.OverallAriaRisk = strings.TrimSpace(*in.OverallAriaRisk)
	}
	if in.SymptomaticAriaRate != nil {
		p.SymptomaticAriaRate = strings.TrimSpace(*in.SymptomaticAriaRate)
	}
	if in.SeriousEventRate != nil {
		p.SeriousEventRate = strings.TrimSpace(*in.SeriousEventRate)
	}

	if err := s.repo.Put(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func validApoE4(v ApoE4Status) bool {
	switch v {
	case ApoE4NotTested, ApoE4Homozygote, ApoE4Heterozygote, ApoE4NonCarrier:
		return true
	}
	return false
}

// HighRisk marca el caso de dos copias del alelo ε4, que la UI resalta.
func HighRisk(p Profile) bool {
	return p.ApoE4Status == ApoE4Homozygote
}
