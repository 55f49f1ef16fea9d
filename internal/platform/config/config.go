// Package config arma la configuración del servicio desde el entorno.
// Todo es opcional: sin nada seteado, el servicio levanta in-memory en
// :8080 con auth en modo dev.
package config

import (
	"os"
	"strings"
)

type Config struct {
	// Addr es la dirección de escucha (PORT, default 8080).
	Addr string

	// DBDSN opcional: si viene, se usan los repos Postgres.
	DBDSN string

	// JWTSecret opcional: si viene, se exige Bearer token HS256.
	// Sin secreto, el middleware acepta X-Debug-User-ID (modo dev).
	JWTSecret string

	// SeedDemo precarga la historia demo en una sesión fija al arrancar.
	SeedDemo bool
}

func FromEnv() Config {
	addr := ":8080"
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		addr = ":" + v
	}

	return Config{
		Addr:      addr,
		DBDSN:     strings.TrimSpace(os.Getenv("DB_DSN")),
		JWTSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),
		SeedDemo:  os.Getenv("SEED_DEMO") == "1",
	}
}
