package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ilhamriadi/projects.co.id/areas"
	"github.com/ilhamriadi/projects.co.id/configs"
	"github.com/ilhamriadi/projects.co.id/middlewares"
	"github.com/ilhamriadi/projects.co.id/migrations"
	"github.com/ilhamriadi/projects.co.id/routes"
	"github.com/ilhamriadi/projects.co.id/ws"
)

func main() {
	cfg := configs.LoadConfig()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// DB
	db, err := configs.ConnectionDB(cfg)
	if err != nil {
		log.Fatalf("❌ database: %v", err)
	}
	defer configs.CloseDB(db)

	// migrate: postgres ใช้ไฟล์ .sql, sqlite ใช้ AutoMigrate
	if cfg.DBDriver == "postgres" {
		if err := migrations.Migrate(ctx, cfg.DBSource); err != nil {
			log.Fatalf("❌ migrate: %v", err)
		}
	} else if err := configs.SetupDatabase(db); err != nil {
		log.Fatalf("❌ auto-migrate: %v", err)
	}

	if err := configs.SeedAdmin(db, cfg); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}
	if cfg.SeedDemo {
		if err := configs.SeedDemo(db); err != nil {
			log.Fatalf("seed demo failed: %v", err)
		}
	}

	hierarchy, err := areas.LoadFile(cfg.AreasFile)
	if err != nil {
		log.Fatalf("❌ areas: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run(ctx)

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	routes.RegisterRoutes(r, db, cfg, hierarchy, hub)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Println("🚀 Server running at", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
