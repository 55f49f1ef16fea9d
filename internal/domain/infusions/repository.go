package infusions

import "context"

type Repository interface {
	// Append asigna el ID (max existente + 1, o 1 si la colección está
	// vacía) y deja el registro al frente (orden más-reciente-primero).
	Append(ctx context.Context, sessionID string, in Infusion) (Infusion, error)

	// List devuelve una copia (snapshot) en orden más-reciente-primero.
	List(ctx context.Context, sessionID string) ([]Infusion, error)

	// Latest devuelve el primer registro, o ok=false si no hay datos.
	// Colección vacía NO es error.
	Latest(ctx context.Context, sessionID string) (Infusion, bool, error)

	// Update reemplaza un registro existente por ID.
	Update(ctx context.Context, sessionID string, rec Infusion) error

	// Seed carga registros históricos tal cual (IDs incluidos), el primero
	// de la lista queda como el más reciente. Solo para datos demo.
	Seed(ctx context.Context, sessionID string, recs []Infusion) error
}
