package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/ilhamriadi/projects.co.id/configs"
	"github.com/ilhamriadi/projects.co.id/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	status := flag.Bool("status", false, "print migration status and exit")
	timeout := flag.Duration("timeout", time.Minute, "overall timeout")
	flag.Parse()

	cfg := configs.LoadConfig()
	if cfg.DBDriver != "postgres" {
		log.Fatalf("migrations target postgres only (DB_DRIVER=%s)", cfg.DBDriver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	// ค่า default ของ DB_SOURCE เป็นไฟล์ sqlite จึงต้องระบุเองเสมอ
	pool, err := pgxpool.New(ctx, configs.MustGetEnv("DB_SOURCE"))
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	runner := migrations.NewRunner(pool, migrations.Files)
	if *status {
		list, err := runner.Status(ctx)
		if err != nil {
			log.Fatalf("status: %v", err)
		}
		for _, s := range list {
			mark := "pending"
			if s.Applied {
				mark = "applied"
			}
			log.Printf("%-32s %s", s.Version, mark)
		}
		return
	}

	if err := runner.Run(ctx); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("✅ migrations up to date")
}
