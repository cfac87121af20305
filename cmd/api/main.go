package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/aurainsight/aura-backend/internal/application"
	appanalysis "github.com/aurainsight/aura-backend/internal/application/analysis"
	appreports "github.com/aurainsight/aura-backend/internal/application/reports"
	"github.com/aurainsight/aura-backend/internal/config"
	"github.com/aurainsight/aura-backend/internal/domain/analysisfailures"
	domreports "github.com/aurainsight/aura-backend/internal/domain/reports"
	openaicli "github.com/aurainsight/aura-backend/internal/infra/ai/openai"
	jwtauth "github.com/aurainsight/aura-backend/internal/infra/auth/jwt"
	mysqlp "github.com/aurainsight/aura-backend/internal/infra/db/mysql"
	postgresp "github.com/aurainsight/aura-backend/internal/infra/db/postgres"
	"github.com/aurainsight/aura-backend/internal/infra/httpserver"
	minioStore "github.com/aurainsight/aura-backend/internal/infra/storage"
	"github.com/aurainsight/aura-backend/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect document store; refuse to start without it
	db, repo, failures, err := connectStore(ctx, cfg)
	if err != nil {
		log.Fatalf("database connect error: %v", err)
	}
	defer db.Close()

	// credential verifier
	verifier := jwtauth.NewVerifier([]byte(cfg.Auth.JWTSecret))

	// generation client
	gen := openaicli.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)

	// optional media store
	var media appanalysis.MediaStore
	if cfg.Minio.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		media = store
	}

	reportsSvc := appreports.NewService(repo, application.SystemClock{})
	analysisSvc := &appanalysis.Service{
		Gen:      gen,
		Store:    reportsSvc,
		Media:    media,
		Failures: failures,
		Clock:    application.SystemClock{},
	}

	health := middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	})

	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	origins := cfg.CORS.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	mux.Mount("/", httpserver.NewRouter(analysisSvc, reportsSvc, verifier, health))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// connectStore picks the configured driver and returns the handle plus the
// repositories bound to it.
func connectStore(ctx context.Context, cfg *config.Config) (*sql.DB, domreports.Repository, analysisfailures.Repository, error) {
	switch cfg.Database.Driver {
	case "postgres":
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, nil, err
		}
		return db, postgresp.NewReportRepository(db), postgresp.NewFailureRepository(db), nil
	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, nil, err
		}
		return db, mysqlp.NewReportRepository(db), mysqlp.NewFailureRepository(db), nil
	default:
		return nil, nil, nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}
