package profile

import "context"

type Repository interface {
	// Get devuelve el perfil de la sesión, creándolo con los defaults
	// ("Not Tested" / "Not Assessed") en el primer acceso.
	Get(ctx context.Context, sessionID string) (Profile, error)

	// Put reemplaza el perfil completo de la sesión.
	Put(ctx context.Context, p Profile) error
}
