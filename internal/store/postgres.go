package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeSquared-Agency/mofasa/internal/project"
)

// PostgresBackend keeps one JSONB document per project.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, databaseURL string) (*PostgresBackend, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	b := &PostgresBackend{pool: pool}
	if err := b.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return b, nil
}

// EnsureSchema creates the projects table when missing.
func (b *PostgresBackend) EnsureSchema(ctx context.Context) error {
	_, err := b.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS mofasa_projects (
	id text primary key,
	name text not null,
	doc jsonb not null,
	created_at timestamptz not null default now(),
	updated_at timestamptz not null default now()
);`)
	if err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Load(ctx context.Context) ([]project.Project, error) {
	rows, err := b.pool.Query(ctx, `SELECT doc FROM mofasa_projects ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var out []project.Project
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		var p project.Project
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		out = append(out, project.Normalize(p))
	}
	return out, rows.Err()
}

// Save replaces the stored set with projects in a single transaction.
func (b *PostgresBackend) Save(ctx context.Context, projects []project.Project) error {
	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		doc, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode project %s: %w", p.ID, err)
		}
		_, err = tx.Exec(ctx, `
INSERT INTO mofasa_projects (id, name, doc, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, doc=EXCLUDED.doc, updated_at=EXCLUDED.updated_at`,
			p.ID, p.Name, doc, p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert project %s: %w", p.ID, err)
		}
		ids = append(ids, p.ID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM mofasa_projects WHERE NOT (id = ANY($1::text[]))`, ids); err != nil {
		return fmt.Errorf("delete removed projects: %w", err)
	}
	return tx.Commit(ctx)
}

func (b *PostgresBackend) Close() error {
	b.pool.Close()
	return nil
}
