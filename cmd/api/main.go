package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	authrepo "portfolio-api/internal/auth/repo"
	blogrepo "portfolio-api/internal/blog/repo"
	"portfolio-api/internal/config"
	contactrepo "portfolio-api/internal/contact/repo"
	projectrepo "portfolio-api/internal/project/repo"
	"portfolio-api/internal/router"
	"portfolio-api/pkg/database"
	"portfolio-api/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	// init logger
	lg, err := utilities.InitLogger(utilities.LogConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting portfolio-api")

	// config; a missing JWT secret aborts here, never per request
	cfg, err := config.Load()
	if err != nil {
		sugar.Fatalf("config: %v", err)
	}

	// init db
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	if err := ensureTables(db); err != nil {
		sugar.Fatalf("db schema: %v", err)
	}

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// mount http server
	handler := router.New(cfg, sugar, db)
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: handler,
	}

	// run server in background
	go func() {
		sugar.Infof("listening on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for cleanup
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}

func ensureTables(db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := authrepo.NewUserRepo(db).EnsureTable(ctx); err != nil {
		return err
	}
	if err := projectrepo.NewProjectRepo(db).EnsureTable(ctx); err != nil {
		return err
	}
	if err := blogrepo.NewBlogRepo(db).EnsureTable(ctx); err != nil {
		return err
	}
	return contactrepo.NewContactRepo(db).EnsureTable(ctx)
}
