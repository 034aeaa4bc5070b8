// Package migrations รัน schema ของ postgres จากไฟล์ .sql ที่ฝังมากับ binary
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed *.sql
var Files embed.FS

// Status ของ migration แต่ละไฟล์
type Status struct {
	Version string `json:"version"`
	Applied bool   `json:"applied"`
}

type Runner struct {
	pool  *pgxpool.Pool
	files fs.FS
}

func NewRunner(pool *pgxpool.Pool, files fs.FS) *Runner {
	return &Runner{pool: pool, files: files}
}

// versions คืนชื่อไฟล์ .sql เรียงตาม prefix NNN_
func versions(files fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *Runner) ensureTable(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	return err
}

func (r *Runner) applied(ctx context.Context) (map[string]bool, error) {
	rows, err := r.pool.Query(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	done := map[string]bool{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		done[v] = true
	}
	return done, rows.Err()
}

// Run รันไฟล์ที่ยังไม่เคยรัน ไฟล์ละ 1 transaction
func (r *Runner) Run(ctx context.Context) error {
	statuses, err := r.Status(ctx)
	if err != nil {
		return err
	}
	for _, s := range statuses {
		if s.Applied {
			continue
		}
		log.Printf("🗄️ migrate %s", s.Version)
		if err := r.apply(ctx, s.Version); err != nil {
			return fmt.Errorf("migration %s: %w", s.Version, err)
		}
	}
	return nil
}

func (r *Runner) apply(ctx context.Context, version string) error {
	body, err := fs.ReadFile(r.files, version)
	if err != nil {
		return err
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if strings.TrimSpace(string(body)) != "" {
		if _, err := tx.Exec(ctx, string(body)); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", version); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *Runner) Status(ctx context.Context) ([]Status, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	done, err := r.applied(ctx)
	if err != nil {
		return nil, err
	}
	files, err := versions(r.files)
	if err != nil {
		return nil, err
	}
	out := make([]Status, 0, len(files))
	for _, f := range files {
		out = append(out, Status{Version: f, Applied: done[f]})
	}
	return out, nil
}

// Migrate เปิด pool ชั่วคราวจาก DSN แล้วรันทุกไฟล์ที่ค้าง
func Migrate(ctx context.Context, dsn string) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()
	return NewRunner(pool, Files).Run(ctx)
}
