package aria

import "context"

type Repository interface {
	// Append asigna el ID (max existente + 1, o 1 si la colección está
	// vacía) y deja la evaluación al frente.
	Append(ctx context.Context, sessionID string, in Assessment) (Assessment, error)

	// List devuelve una copia en orden más-reciente-primero.
	List(ctx context.Context, sessionID string) ([]Assessment, error)

	// Latest devuelve la primera evaluación, o ok=false si no hay datos.
	Latest(ctx context.Context, sessionID string) (Assessment, bool, error)

	// Seed carga evaluaciones históricas tal cual. Solo para datos demo.
	Seed(ctx context.Context, sessionID string, recs []Assessment) error
}
