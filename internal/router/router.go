package router

import (
	"database/sql"
	"net/http"

	_ "pet-vaccination-tracker/docs"
	mem "pet-vaccination-tracker/internal/adapters/storage/memory"
	pg "pet-vaccination-tracker/internal/adapters/storage/postgres"
	"pet-vaccination-tracker/internal/domain/pets"
	"pet-vaccination-tracker/internal/domain/vaccination"
	"pet-vaccination-tracker/internal/middleware"
	"pet-vaccination-tracker/internal/platform/logger"
	"pet-vaccination-tracker/internal/platform/metrics"
	"pet-vaccination-tracker/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger  logger.Logger
	Catalog *vaccination.Catalog // nil = catálogo embebido

	AlertsConcurrency int
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = vaccination.MustDefaultCatalog()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		petRepo pets.Repository
		vaxRepo vaccination.Repository
	)
	if opts.DB != nil {
		petRepo = pg.NewPetsRepo(opts.DB)
		vaxRepo = pg.NewVaccinationRepo(opts.DB)
	} else {
		petRepo = mem.NewPetRepo()
		vaxRepo = mem.NewVaccinationRepo()
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	vaxSvc := vaccination.NewService(vaxRepo, catalog,
		vaccination.WithLogger(log.With(map[string]any{"module": "vaccination"})),
		vaccination.WithConcurrency(opts.AlertsConcurrency),
	)

	// Rutas por módulo
	vaccination.RegisterCatalogRoutes(r, vaxSvc)
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireUser)
		pets.RegisterRoutes(pr, petsSvc)
		vaccination.RegisterRoutes(pr, vaxSvc, petsSvc)
	})

	return r
}
