package mri

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
	Date  time.Time
	Type  ScanType
	Notes string
}

// parseScanType valida estricto contra los tres tipos del formulario.
func parseScanType(t ScanType) (ScanType, error) {
	switch t {
	case TypeBaseline, TypeFollowUp, TypeSafety:
		return t, nil
	default:
		return "", ErrInvalidInput
	}
}

func (s *Service) Append(ctx context.Context, sessionID string, in AppendInput) (Record, error) {
	if strings.TrimSpace(sessionID) == "" {
		return Record{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return Record{}, ErrInvalidInput
	}

	typ, err := parseScanType(in.Type)
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		SessionID:  sessionID,
		Date:       in.Date,
		Type:       typ,
		Notes:      strings.TrimSpace(in.Notes),
		RecordedAt: s.now(),
	}

	return s.repo.Append(ctx, sessionID, rec)
}

func (s *Service) List(ctx context.Context, sessionID string) ([]Record, error) {
	return s.repo.List(ctx, sessionID)
}

func (s *Service) Latest(ctx context.Context, sessionID string) (Record, bool, error) {
	return s.repo.Latest(ctx, sessionID)
}
