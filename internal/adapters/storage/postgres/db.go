package postgres

import (
	"context"
	"database/sql"
	"time"

	"kisunla-flowsheet/internal/domain/infusions"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Alias del sentinel de dominio para que errors.Is funcione de punta a punta.
var ErrNotFound = infusions.ErrNotFound

// Open abre una conexión pool a Postgres usando pgx (database/sql).
// El backend durable es opcional: sin DB_DSN la hoja de flujo corre con
// los repos in-memory, que es el modo de referencia.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// una planilla por sesión: alcanza con un pool chico
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
