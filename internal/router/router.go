package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	mem "kisunla-flowsheet/internal/adapters/storage/memory"
	pg "kisunla-flowsheet/internal/adapters/storage/postgres"
	"kisunla-flowsheet/internal/domain/aria"
	"kisunla-flowsheet/internal/domain/dosing"
	"kisunla-flowsheet/internal/domain/infusions"
	"kisunla-flowsheet/internal/domain/mri"
	"kisunla-flowsheet/internal/domain/profile"
	"kisunla-flowsheet/internal/domain/sessions"
	"kisunla-flowsheet/internal/domain/summary"
	"kisunla-flowsheet/internal/middleware"
	"kisunla-flowsheet/internal/platform/metrics"
	"kisunla-flowsheet/internal/ports/auth"

	_ "kisunla-flowsheet/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// SeedDemoSession: si viene, precarga la historia demo en esa
	// sesión al armar el router (SEED_DEMO=1 en main).
	SeedDemoSession string
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Debug-User-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(metrics.HTTPMiddleware)
	r.Use(middleware.RateLimit(50, 100))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		infusionsRepo infusions.Repository
		mriRepo       mri.Repository
		ariaRepo      aria.Repository
		profileRepo   profile.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		infusionsRepo = pg.NewInfusionsRepo(db)
		mriRepo = pg.NewMRIRepo(db)
		ariaRepo = pg.NewAriaRepo(db)
		profileRepo = pg.NewProfileRepo(db)
	} else {
		infusionsRepo = mem.NewInfusionsRepo()
		mriRepo = mem.NewMRIRepo()
		ariaRepo = mem.NewAriaRepo()
		profileRepo = mem.NewProfileRepo()
	}

	// Services por módulo
	infusionsSvc := infusions.NewService(infusionsRepo)
	mriSvc := mri.NewService(mriRepo)
	ariaSvc := aria.NewService(ariaRepo)
	profileSvc := profile.NewService(profileRepo)
	summarySvc := summary.NewService(infusionsSvc, mriSvc, ariaSvc, profileSvc)
	sessionsSvc := sessions.NewService(infusionsRepo, mriRepo, ariaRepo, profileRepo)

	if opts.SeedDemoSession != "" {
		// best effort: si la carga falla el servicio arranca igual
		_ = sessionsSvc.SeedInto(context.Background(), opts.SeedDemoSession)
	}

	// Rutas por módulo
	sessions.RegisterRoutes(r, sessionsSvc)
	infusions.RegisterRoutes(r, infusionsSvc)
	mri.RegisterRoutes(r, mriSvc)
	aria.RegisterRoutes(r, ariaSvc)
	profile.RegisterRoutes(r, profileSvc)
	summary.RegisterRoutes(r, summarySvc)
	dosing.RegisterRoutes(r)

	return r
}
