package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"jobscout/internal/posting"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Postgres is the durable store. Upserts run in a transaction so the
// read-compare-write cycle is atomic under concurrent runs.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects, migrates the schema and returns a ready store.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	if err := migrate(dsn); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// migrate runs goose over the embedded migrations. Goose needs database/sql,
// so it uses the pgx stdlib adapter; the runtime pool stays native pgx.
func migrate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, "migrations")
}

const selectForUpdate = `
SELECT desc_hash, first_seen_at, fresh_since, repost_count, reposted
FROM jobs WHERE id = $1 FOR UPDATE`

const insertJob = `
INSERT INTO jobs (
	id, source, board, company, title, url, location, description,
	description_html, salary, published_at, first_seen_at, last_seen_at,
	fresh_since, desc_hash, reposted, repost_count
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`

const updateJob = `
UPDATE jobs SET
	title = $2, url = $3, location = $4, description = $5,
	description_html = $6, salary = $7, published_at = $8,
	last_seen_at = $9, fresh_since = $10, desc_hash = $11,
	reposted = $12, repost_count = $13
WHERE id = $1`

const insertHash = `
INSERT INTO job_desc_hashes (job_id, desc_hash, seen_at) VALUES ($1, $2, $3)`

func (s *Postgres) Upsert(ctx context.Context, p *posting.Posting, now time.Time) (*posting.Posting, Outcome, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	rec, outcome, err := s.upsertTx(ctx, tx, p, now.UTC())
	if err != nil {
		return nil, 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("commit: %w", err)
	}
	return rec, outcome, nil
}

func (s *Postgres) upsertTx(ctx context.Context, tx pgx.Tx, p *posting.Posting, now time.Time) (*posting.Posting, Outcome, error) {
	var (
		prevHash    string
		firstSeen   time.Time
		freshSince  *time.Time
		repostCount int
		reposted    bool
	)
	err := tx.QueryRow(ctx, selectForUpdate, p.ID).
		Scan(&prevHash, &firstSeen, &freshSince, &repostCount, &reposted)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		rec := clone(p)
		rec.FirstSeenAt = now
		rec.LastSeenAt = now
		rec.FreshSince = freshnessRef(p, now)
		rec.Reposted = false
		rec.RepostCount = 0
		if _, err := tx.Exec(ctx, insertJob,
			rec.ID, rec.Source, rec.Board, rec.Company, rec.Title, rec.URL,
			rec.Location, rec.Description, rec.DescriptionHTML, rec.Salary,
			rec.PublishedAt, rec.FirstSeenAt, rec.LastSeenAt, rec.FreshSince,
			rec.DescHash, rec.Reposted, rec.RepostCount,
		); err != nil {
			return nil, 0, fmt.Errorf("insert job: %w", err)
		}
		if rec.DescHash != "" {
			if _, err := tx.Exec(ctx, insertHash, rec.ID, rec.DescHash, now); err != nil {
				return nil, 0, fmt.Errorf("insert hash: %w", err)
			}
		}
		return rec, Inserted, nil

	case err != nil:
		return nil, 0, fmt.Errorf("select job: %w", err)
	}

	changed := p.DescHash != "" && prevHash != "" && p.DescHash != prevHash

	rec := clone(p)
	rec.FirstSeenAt = firstSeen
	rec.LastSeenAt = now
	rec.FreshSince = freshSince
	rec.RepostCount = repostCount
	rec.Reposted = reposted

	if changed {
		t := now
		rec.FreshSince = &t
		rec.Reposted = true
		rec.RepostCount = repostCount + 1
		if _, err := tx.Exec(ctx, insertHash, rec.ID, p.DescHash, now); err != nil {
			return nil, 0, fmt.Errorf("insert hash: %w", err)
		}
	} else if p.DescHash == "" {
		rec.DescHash = prevHash
	}

	if _, err := tx.Exec(ctx, updateJob,
		rec.ID, rec.Title, rec.URL, rec.Location, rec.Description,
		rec.DescriptionHTML, rec.Salary, rec.PublishedAt, rec.LastSeenAt,
		rec.FreshSince, rec.DescHash, rec.Reposted, rec.RepostCount,
	); err != nil {
		return nil, 0, fmt.Errorf("update job: %w", err)
	}

	if changed {
		return rec, Reposted, nil
	}
	return rec, Refreshed, nil
}

const listJobs = `
SELECT id, source, board, company, title, url, location, description,
	description_html, salary, published_at, first_seen_at, last_seen_at,
	fresh_since, desc_hash, reposted, repost_count
FROM jobs WHERE last_seen_at >= $1 ORDER BY id`

func (s *Postgres) List(ctx context.Context, cutoff time.Time) ([]*posting.Posting, error) {
	rows, err := s.pool.Query(ctx, listJobs, cutoff.UTC())
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var out []*posting.Posting
	for rows.Next() {
		var p posting.Posting
		if err := rows.Scan(
			&p.ID, &p.Source, &p.Board, &p.Company, &p.Title, &p.URL,
			&p.Location, &p.Description, &p.DescriptionHTML, &p.Salary,
			&p.PublishedAt, &p.FirstSeenAt, &p.LastSeenAt, &p.FreshSince,
			&p.DescHash, &p.Reposted, &p.RepostCount,
		); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (s *Postgres) Close() error {
	s.pool.Close()
	return nil
}
