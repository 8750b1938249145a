package router

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	mem "dog-show-club/internal/adapters/storage/memory"
	pg "dog-show-club/internal/adapters/storage/postgres"
	"dog-show-club/internal/domain/branches"
	"dog-show-club/internal/domain/breeds"
	"dog-show-club/internal/domain/descriptions"
	"dog-show-club/internal/domain/dogs"
	"dog-show-club/internal/domain/judges"
	"dog-show-club/internal/domain/owners"
	"dog-show-club/internal/domain/registrations"
	"dog-show-club/internal/domain/shows"
	"dog-show-club/internal/middleware"
	"dog-show-club/internal/platform/config"
	"dog-show-club/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.Verifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Cfg *config.Config
}

type repos struct {
	breeds        breeds.Repository
	branches      branches.Repository
	judges        judges.Repository
	owners        owners.Repository
	dogs          dogs.Repository
	shows         shows.Repository
	registrations registrations.Repository
	descriptions  descriptions.Repository
}

func NewRouter(opts Options) http.Handler {
	cfg := opts.Cfg
	if cfg == nil {
		cfg = config.Default()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.Metrics)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

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

	var rp repos
	if db != nil {
		rp = repos{
			breeds:        pg.NewBreedsRepo(db),
			branches:      pg.NewBranchesRepo(db),
			judges:        pg.NewJudgesRepo(db),
			owners:        pg.NewOwnersRepo(db),
			dogs:          pg.NewDogsRepo(db),
			shows:         pg.NewShowsRepo(db),
			registrations: pg.NewRegistrationsRepo(db),
			descriptions:  pg.NewDescriptionsRepo(db),
		}
	} else {
		descRepo := mem.NewDescriptionRepo()
		rp = repos{
			breeds:        mem.NewBreedRepo(),
			branches:      mem.NewBranchRepo(),
			judges:        mem.NewJudgeRepo(),
			owners:        mem.NewOwnerRepo(),
			dogs:          mem.NewDogRepo(),
			shows:         mem.NewShowRepo(),
			registrations: mem.NewRegistrationRepo(descRepo),
			descriptions:  descRepo,
		}
	}

	// Services por módulo. El orden importa: owners cuenta perros via el
	// repo de dogs, shows cuenta inscripciones via el repo de registrations.
	breedsSvc := breeds.NewService(rp.breeds)
	branchesSvc := branches.NewService(rp.branches)
	judgesSvc := judges.NewService(rp.judges)
	ownersSvc := owners.NewService(rp.owners, rp.dogs)
	dogsSvc := dogs.NewService(rp.dogs, breedsSvc, ownersSvc)
	showsSvc := shows.NewService(rp.shows, rp.registrations)
	descSvc := descriptions.NewService(rp.descriptions, showsSvc, dogsSvc, judgesSvc)
	regsSvc := registrations.NewService(rp.registrations, showsSvc, dogsSvc, descSvc)

	maxLimit := cfg.Pagination.DefaultMaxLimit
	breedsLimit := cfg.Pagination.BreedsMaxLimit

	r.Route("/api", func(api chi.Router) {
		breeds.RegisterRoutes(api, breedsSvc, breedsLimit)
		branches.RegisterRoutes(api, branchesSvc, maxLimit)
		judges.RegisterRoutes(api, judgesSvc, maxLimit)
		owners.RegisterRoutes(api, ownersSvc, maxLimit)
		dogs.RegisterRoutes(api, dogsSvc, maxLimit)
		shows.RegisterRoutes(api, showsSvc, maxLimit)
		registrations.RegisterRoutes(api, regsSvc)
		descriptions.RegisterRoutes(api, descSvc)
	})

	return r
}
