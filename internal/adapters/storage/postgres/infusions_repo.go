package postgres

import (
	"context"
	"database/sql"
	"strings"

	"kisunla-flowsheet/internal/domain/infusions"
)

type InfusionsRepo struct {
	db *sql.DB
}

func NewInfusionsRepo(db *sql.DB) *InfusionsRepo {
	return &InfusionsRepo{db: db}
}

// Append calcula el ID (max por sesión + 1, arranca en 1) e inserta en la
// misma sentencia. La columna seq (bigserial) preserva el orden de
// inserción para listar más-reciente-primero.
func (r *InfusionsRepo) Append(ctx context.Context, sessionID string, in infusions.Infusion) (infusions.Infusion, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO infusions (
			session_id, id,
			number, date,
			dose_mg, volume_ml,
			status, notes,
			recorded_at
		) VALUES (
			$1,
			(SELECT COALESCE(MAX(id), 0) + 1 FROM infusions WHERE session_id = $1),
			$2, $3, $4, $5, $6, $7, $8
		)
		RETURNING id
	`,
		sessionID,
		in.Number,
		in.Date,
		in.DoseMg,
		in.VolumeMl,
		string(in.Status),
		in.Notes,
		in.RecordedAt,
	)

	if err := row.Scan(&in.ID); err != nil {
		return infusions.Infusion{}, err
	}
	in.SessionID = sessionID
	return in, nil
}

func (r *InfusionsRepo) List(ctx context.Context, sessionID string) ([]infusions.Infusion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, number, date, dose_mg, volume_ml, status, notes, recorded_at
		FROM infusions
		WHERE session_id = $1
		ORDER BY seq DESC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]infusions.Infusion, 0)
	for rows.Next() {
		rec, err := scanInfusion(rows, sessionID)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *InfusionsRepo) Latest(ctx context.Context, sessionID string) (infusions.Infusion, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, number, date, dose_mg, volume_ml, status, notes, recorded_at
		FROM infusions
		WHERE session_id = $1
		ORDER BY seq DESC
		LIMIT 1
	`, sessionID)

	rec, err := scanInfusion(row, sessionID)
	if err != nil {
		if err == sql.ErrNoRows {
			// Colección vacía: estado válido, no error.
			return infusions.Infusion{}, false, nil
		}
		return infusions.Infusion{}, false, err
	}
	return rec, true, nil
}

func (r *InfusionsRepo) Update(ctx context.Context, sessionID string, rec infusions.Infusion) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE infusions
		SET
			number = $3,
			date = $4,
			dose_mg = $5,
			volume_ml = $6,
			status = $7,
			notes = $8,
			recorded_at = $9
		WHERE session_id = $1 AND id = $2
	`,
		sessionID,
		rec.ID,
		rec.Number,
		rec.Date,
		rec.DoseMg,
		rec.VolumeMl,
		string(rec.Status),
		rec.Notes,
		rec.RecordedAt,
	)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Seed reemplaza la historia de la sesión por los registros dados tal cual
// (IDs incluidos). Se insertan del más viejo al más nuevo para que seq
// reconstruya el orden de inserción original.
func (r *InfusionsRepo) Seed(ctx context.Context, sessionID string, recs []infusions.Infusion) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM infusions WHERE session_id = $1`, sessionID); err != nil {
		return err
	}

	for i := len(recs) - 1; i >= 0; i-- {
		rec := recs[i]
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO infusions (
				session_id, id, number, date, dose_mg, volume_ml, status, notes, recorded_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`,
			sessionID,
			rec.ID,
			rec.Number,
			rec.Date,
			rec.DoseMg,
			rec.VolumeMl,
			string(rec.Status),
			rec.Notes,
			rec.RecordedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInfusion(row rowScanner, sessionID string) (infusions.Infusion, error) {
	var rec infusions.Infusion
	var status string

	if err := row.Scan(
		&rec.ID,
		&rec.Number,
		&rec.Date,
		&rec.DoseMg,
		&rec.VolumeMl,
		&status,
		&rec.Notes,
		&rec.RecordedAt,
	); err != nil {
		return infusions.Infusion{}, err
	}

	rec.SessionID = strings.TrimSpace(sessionID)
	rec.Status = infusions.Status(status)
	return rec, nil
}
