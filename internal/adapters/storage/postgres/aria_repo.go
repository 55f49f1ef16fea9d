package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"kisunla-flowsheet/internal/domain/aria"
)

type AriaRepo struct {
	db *sql.DB
}

func NewAriaRepo(db *sql.DB) *AriaRepo {
	return &AriaRepo{db: db}
}

func (r *AriaRepo) Append(ctx context.Context, sessionID string, in aria.Assessment) (aria.Assessment, error) {
	symptoms, err := marshalSymptoms(in.Symptoms)
	if err != nil {
		return aria.Assessment{}, err
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO aria_assessments (
			session_id, id, date,
			flair_severity, clinical_severity,
			microhemorrhages, siderosis,
			symptoms, recorded_at
		) VALUES (
			$1,
			(SELECT COALESCE(MAX(id), 0) + 1 FROM aria_assessments WHERE session_id = $1),
			$2, $3, $4, $5, $6, $7, $8
		)
		RETURNING id
	`,
		sessionID,
		in.Date,
		string(in.AriaE.FlairSeverity),
		string(in.AriaE.ClinicalSeverity),
		string(in.AriaH.Microhemorrhages),
		string(in.AriaH.Siderosis),
		symptoms,
		in.RecordedAt,
	)

	if err := row.Scan(&in.ID); err != nil {
		return aria.Assessment{}, err
	}
	in.SessionID = sessionID
	return in, nil
}

func (r *AriaRepo) List(ctx context.Context, sessionID string) ([]aria.Assessment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, flair_severity, clinical_severity, microhemorrhages, siderosis, symptoms, recorded_at
		FROM aria_assessments
		WHERE session_id = $1
		ORDER BY seq DESC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]aria.Assessment, 0)
	for rows.Next() {
		a, err := scanAssessment(rows, sessionID)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AriaRepo) Latest(ctx context.Context, sessionID string) (aria.Assessment, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, date, flair_severity, clinical_severity, microhemorrhages, siderosis, symptoms, recorded_at
		FROM aria_assessments
		WHERE session_id = $1
		ORDER BY seq DESC
		LIMIT 1
	`, sessionID)

	a, err := scanAssessment(row, sessionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return aria.Assessment{}, false, nil
		}
		return aria.Assessment{}, false, err
	}
	return a, true, nil
}

func (r *AriaRepo) Seed(ctx context.Context, sessionID string, recs []aria.Assessment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM aria_assessments WHERE session_id = $1`, sessionID); err != nil {
		return err
	}

	for i := len(recs) - 1; i >= 0; i-- {
		a := recs[i]
		symptoms, err := marshalSymptoms(a.Symptoms)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO aria_assessments (
				session_id, id, date,
				flair_severity, clinical_severity,
				microhemorrhages, siderosis,
				symptoms, recorded_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`,
			sessionID,
			a.ID,
			a.Date,
			string(a.AriaE.FlairSeverity),
			string(a.AriaE.ClinicalSeverity),
			string(a.AriaH.Microhemorrhages),
			string(a.AriaH.Siderosis),
			symptoms,
			a.RecordedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Los síntomas se guardan como JSON (columna jsonb): es un set chico y no
// se filtra por síntoma en ninguna consulta.
func marshalSymptoms(symptoms []aria.Symptom) (string, error) {
	if symptoms == nil {
		symptoms = []aria.Symptom{}
	}
	b, err := json.Marshal(symptoms)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func scanAssessment(row rowScanner, sessionID string) (aria.Assessment, error) {
	var a aria.Assessment
	var flair, clinical, micro, siderosis, symptoms string

	if err := row.Scan(
		&a.ID,
		&a.Date,
		&flair,
		&clinical,
		&micro,
		&siderosis,
		&symptoms,
		&a.RecordedAt,
	); err != nil {
		return aria.Assessment{}, err
	}

	a.SessionID = sessionID
	a.AriaE = aria.AriaE{
		FlairSeverity:    aria.FlairSeverity(flair),
		ClinicalSeverity: aria.ClinicalSeverity(clinical),
	}
	a.AriaH = aria.AriaH{
		Microhemorrhages: aria.Microhemorrhages(micro),
		Siderosis:        aria.Siderosis(siderosis),
	}
	if err := json.Unmarshal([]byte(symptoms), &a.Symptoms); err != nil {
		return aria.Assessment{}, err
	}
	return a, nil
}
