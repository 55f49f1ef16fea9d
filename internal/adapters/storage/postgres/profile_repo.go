package postgres

import (
	"context"
	"database/sql"

	"kisunla-flowsheet/internal/domain/profile"
)

type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Get devuelve el perfil de la sesión; si todavía no existe fila, devuelve
// los defaults sin insertarlos (la fila aparece recién con el primer Put).
func (r *ProfileRepo) Get(ctx context.Context, sessionID string) (profile.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT cms_registry_id, apoe4_status, overall_aria_risk, symptomatic_aria_rate, serious_event_rate
		FROM patient_profiles
		WHERE session_id = $1
	`, sessionID)

	var p profile.Profile
	var apoe4 string
	if err := row.Scan(
		&p.CMSRegistryID,
		&apoe4,
		&p.OverallAriaRisk,
		&p.SymptomaticAriaRate,
		&p.SeriousEventRate,
	); err != nil {
		if err == sql.ErrNoRows {
			return profile.Defaults(sessionID), nil
		}
		return profile.Profile{}, err
	}

	p.SessionID = sessionID
	p.ApoE4Status = profile.ApoE4Status(apoe4)
	return p, nil
}

func (r *ProfileRepo) Put(ctx context.Context, p profile.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO patient_profiles (
			session_id, cms_registry_id, apoe4_status,
			overall_aria_risk, symptomatic_aria_rate, serious_event_rate
		) VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (session_id) DO UPDATE SET
			cms_registry_id = EXCLUDED.cms_registry_id,
			apoe4_status = EXCLUDED.apoe4_status,
			overall_aria_risk = EXCLUDED.overall_aria_risk,
			symptomatic_aria_rate = EXCLUDED.symptomatic_aria_rate,
			serious_event_rate = EXCLUDED.serious_event_rate
	`,
		p.SessionID,
		p.CMSRegistryID,
		string(p.ApoE4Status),
		p.OverallAriaRisk,
		p.SymptomaticAriaRate,
		p.SeriousEventRate,
	)
	return err
}
