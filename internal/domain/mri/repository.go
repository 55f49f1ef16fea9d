package mri

import "context"

type Repository interface {
	// Append asigna el ID (max existente + 1, o 1 si la colección está
	// vacía) y deja el registro al frente.
	Append(ctx context.Context, sessionID string, in Record) (Record, error)

	// List devuelve una copia en orden más-reciente-primero.
	List(ctx context.Context, sessionID string) ([]Record, error)

	// Latest devuelve el primer registro, o ok=false si no hay datos.
	Latest(ctx context.Context, sessionID string) (Record, bool, error)

	// Seed carga registros históricos tal cual. Solo para datos demo.
	Seed(ctx context.Context, sessionID string, recs []Record) error
}
