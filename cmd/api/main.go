package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"spacexdash/app"
	"spacexdash/internal"
	"spacexdash/internal/api"
	"spacexdash/internal/config"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	internal.DefaultLogger.SetLevel(internal.ParseLogLevel(appConfig.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var db *sqlx.DB
	if appConfig.Data.Source == config.SourcePostgres {
		if db, err = app.OpenDatabase(ctx, appConfig.Database.URL); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
	}

	source, err := app.NewLaunchSource(appConfig, db)
	if err != nil {
		log.Fatalf("Failed to configure data source: %v", err)
	}
	ds, err := app.LoadDataset(ctx, source)
	if err != nil {
		log.Fatalf("Failed to load launch records: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + appConfig.API.Port,
		Handler: api.NewRouter(app.NewDashboard(ds, appConfig)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Starting API server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("Server failed:", err)
	}
}
