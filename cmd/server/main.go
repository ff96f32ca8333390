package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photo-hunt/internal/config"
	"photo-hunt/internal/db"
	"photo-hunt/internal/feed"
	"photo-hunt/internal/server"
	"photo-hunt/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()
	if cfg.AdminSlug == "" {
		log.Printf("ADMIN_SLUG is not set; admin console disabled")
	}

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(conn); err != nil {
			log.Fatalf("database migration failed: %v", err)
		}
	}

	photos, err := storage.Open(ctx, cfg.PhotoBucketURL)
	if err != nil {
		log.Fatalf("photo storage failed: %v", err)
	}
	defer photos.Close()

	bus := feed.NewBus()
	if cfg.ChangeFeed == config.ChangeFeedPostgres {
		listener := feed.NewListener(os.Getenv("DATABASE_URL"), bus)
		go func() {
			if err := listener.Run(ctx); err != nil && ctx.Err() == nil {
				log.Printf("change feed stopped error=%v", err)
			}
		}()
	}

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(conn, photos, bus, cfg)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	log.Printf("photo-hunt server listening on %s change_feed=%s", addr, cfg.ChangeFeed)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
