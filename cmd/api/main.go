package main

import (
	"net/http"
	"os"
	"time"

	"kisunla-flowsheet/internal/adapters/auth/jwtauth"
	pg "kisunla-flowsheet/internal/adapters/storage/postgres"
	"kisunla-flowsheet/internal/platform/config"
	"kisunla-flowsheet/internal/platform/logger"
	"kisunla-flowsheet/internal/ports/auth"
	"kisunla-flowsheet/internal/router"
)

// @title Kisunla Treatment Flowsheet API
// @version 1.0
// @description Hoja de flujo clínica para terapia de infusión con Kisunla (donanemab): historial de infusiones, seguimiento de MRI y monitoreo de ARIA por sesión.
// @BasePath /
func main() {
	cfg := config.FromEnv()
	log := logger.NewFromEnv()

	var verifier auth.AuthVerifier
	if cfg.JWTSecret != "" {
		v, err := jwtauth.NewVerifier(cfg.JWTSecret)
		if err != nil {
			log.Error("jwt verifier init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = v
	} else {
		log.Warn("JWT_SECRET no seteado, auth en modo dev (X-Debug-User-ID)", nil)
	}

	opts := router.Options{AuthVerifier: verifier}

	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		opts.DB = db
		log.Info("storage postgres", nil)
	} else {
		log.Info("storage in-memory", nil)
	}

	if cfg.SeedDemo {
		opts.SeedDemoSession = "demo"
		log.Info("historia demo precargada", map[string]any{"session": "demo"})
	}

	r := router.NewRouter(opts)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": cfg.Addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
