package postgres

import (
	"context"
	"database/sql"

	"kisunla-flowsheet/internal/domain/mri"
)

type MRIRepo struct {
	db *sql.DB
}

func NewMRIRepo(db *sql.DB) *MRIRepo {
	return &MRIRepo{db: db}
}

func (r *MRIRepo) Append(ctx context.Context, sessionID string, in mri.Record) (mri.Record, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO mri_records (
			session_id, id, date, type, notes, recorded_at
		) VALUES (
			$1,
			(SELECT COALESCE(MAX(id), 0) + 1 FROM mri_records WHERE session_id = $1),
			$2, $3, $4, $5
		)
		RETURNING id
	`,
		sessionID,
		in.Date,
		string(in.Type),
		in.Notes,
		in.RecordedAt,
	)

	if err := row.Scan(&in.ID); err != nil {
		return mri.Record{}, err
	}
	in.SessionID = sessionID
	return in, nil
}

func (r *MRIRepo) List(ctx context.Context, sessionID string) ([]mri.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, type, notes, recorded_at
		FROM mri_records
		WHERE session_id = $1
		ORDER BY seq DESC
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]mri.Record, 0)
	for rows.Next() {
		rec, err := scanMRIRecord(rows, sessionID)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *MRIRepo) Latest(ctx context.Context, sessionID string) (mri.Record, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, date, type, notes, recorded_at
		FROM mri_records
		WHERE session_id = $1
		ORDER BY seq DESC
		LIMIT 1
	`, sessionID)

	rec, err := scanMRIRecord(row, sessionID)
	if err != nil {
		if err == sql.ErrNoRows {
			return mri.Record{}, false, nil
		}
		return mri.Record{}, false, err
	}
	return rec, true, nil
}

func (r *MRIRepo) Seed(ctx context.Context, sessionID string, recs []mri.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM mri_records WHERE session_id = $1`, sessionID); err != nil {
		return err
	}

	for i := len(recs) - 1; i >= 0; i-- {
		rec := recs[i]
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO mri_records (session_id, id, date, type, notes, recorded_at)
			VALUES ($1,$2,$3,$4,$5,$6)
		`,
			sessionID,
			rec.ID,
			rec.Date,
			string(rec.Type),
			rec.Notes,
			rec.RecordedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func scanMRIRecord(row rowScanner, sessionID string) (mri.Record, error) {
	var rec mri.Record
	var typ string

	if err := row.Scan(
		&rec.ID,
		&rec.Date,
		&typ,
		&rec.Notes,
		&rec.RecordedAt,
	); err != nil {
		return mri.Record{}, err
	}

	rec.SessionID = sessionID
	rec.Type = mri.ScanType(typ)
	return rec, nil
}
