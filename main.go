package main

import (
	"context"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os/signal"
	"syscall"
	"time"

	"spacexdash/app"
	"spacexdash/internal"
	"spacexdash/internal/config"
	"spacexdash/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load environment variables from .env file
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
		db, err = app.OpenDatabase(ctx, appConfig.Database.URL)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
	}

	source, err := app.NewLaunchSource(appConfig, db)
	if err != nil {
		log.Fatalf("Failed to configure data source: %v", err)
	}

	// The dashboard never starts without data
	ds, err := app.LoadDataset(ctx, source)
	if err != nil {
		log.Fatalf("Failed to load launch records: %v", err)
	}

	server, err := ui.NewServer(app.NewDashboard(ds, appConfig), appConfig.Server.GinMode)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	httpServer := &http.Server{
		Addr:    ":" + appConfig.Server.Port,
		Handler: server.Handler(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Starting SpaceX launch dashboard on port %s", appConfig.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	// pprof handlers live on the default mux
	var pprofServer *http.Server
	if appConfig.Profiling.Enabled {
		pprofServer = &http.Server{Addr: ":" + appConfig.Profiling.Port}
		g.Go(func() error {
			log.Printf("Profiling server on :%s (go tool pprof http://localhost:%s/debug/pprof/profile?seconds=30)",
				appConfig.Profiling.Port, appConfig.Profiling.Port)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down")

		return shutdownServers(appConfig.Server.ShutdownTimeout, httpServer, pprofServer)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// shutdownServers drains the dashboard server and any auxiliary servers
// within timeout. Auxiliary failures are logged; the dashboard's is returned.
func shutdownServers(timeout time.Duration, primary *http.Server, aux ...*http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for _, srv := range aux {
		if srv == nil {
			continue
		}
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Shutdown of %s: %v", srv.Addr, err)
		}
	}
	return primary.Shutdown(ctx)
}
