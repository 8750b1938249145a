package main

import (
	"database/sql"
	"flag"
	"net/http"
	"os"

	_ "dog-show-club/docs"
	"dog-show-club/internal/adapters/auth/clubsso"
	pg "dog-show-club/internal/adapters/storage/postgres"
	"dog-show-club/internal/platform/config"
	"dog-show-club/internal/platform/logger"
	"dog-show-club/internal/ports/auth"
	"dog-show-club/internal/router"
)

// @title Dog Show Club API
// @version 1.0
// @description API de gestión del club: razas, perros, dueños, shows, inscripciones y descripciones de jueces.
// @BasePath /
func main() {
	configPath := flag.String("config", "", "ruta al config TOML (opcional)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			os.Stderr.WriteString("config: " + err.Error() + "\n")
			os.Exit(1)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	log := logger.New(logger.ParseLevel(cfg.Logging.Level), logger.ParseFormat(cfg.Logging.Format))

	var db *sql.DB
	if cfg.Database.DSN != "" {
		opened, err := pg.Open(cfg.Database.DSN)
		if err != nil {
			log.Error("postgres unavailable, falling back to in-memory store", "err", err)
		} else {
			db = opened
			defer db.Close()
		}
	}

	// Sin SSO configurado corre en modo dev (headers X-Debug-*).
	var verifier auth.Verifier
	if cfg.Auth.SSOBaseURL != "" {
		client, err := clubsso.NewClient(clubsso.Config{
			BaseURL: cfg.Auth.SSOBaseURL,
			APIKey:  os.Getenv("SSO_API_KEY"),
			Timeout: cfg.AuthTimeout(),
		})
		if err != nil {
			log.Error("sso client init failed", "err", err)
			os.Exit(1)
		}
		verifier = clubsso.NewVerifier(client)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		Cfg:          cfg,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}

	log.Info("starting server",
		"addr", cfg.Server.Addr,
		"storage", storageName(db),
		"auth", authMode(verifier),
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "err", err)
		os.Exit(1)
	}
}

func storageName(db *sql.DB) string {
	if db != nil {
		return "postgres"
	}
	return "memory"
}

func authMode(v auth.Verifier) string {
	if v != nil {
		return "sso"
	}
	return "dev"
}
