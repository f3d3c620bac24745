// Package store persists postings across runs and detects reposts by
// comparing description hashes. Two implementations exist: an in-memory
// store for tests and single runs, and a Postgres store for durable history.
package store

import (
	"context"
	"time"

	"jobscout/internal/posting"
)

// Outcome describes what an upsert did to a posting record.
type Outcome int

const (
	// Inserted means the posting was seen for the first time.
	Inserted Outcome = iota
	// Refreshed means the posting existed with the same content; only
	// last-seen advanced.
	Refreshed
	// Reposted means the posting existed but its description changed, so
	// its freshness reference was reset and its repost count incremented.
	Reposted
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Refreshed:
		return "refreshed"
	case Reposted:
		return "reposted"
	default:
		return "unknown"
	}
}

// Store is the persistence boundary. Implementations serialize upserts so
// concurrent ingest cannot interleave the read-compare-write cycle.
type Store interface {
	// Upsert records an observation of a posting at time now and returns
	// the stored record with history fields populated.
	Upsert(ctx context.Context, p *posting.Posting, now time.Time) (*posting.Posting, Outcome, error)

	// List returns all stored postings last seen at or after the cutoff.
	// A zero cutoff returns everything.
	List(ctx context.Context, cutoff time.Time) ([]*posting.Posting, error)

	Close() error
}

// freshnessRef picks the initial freshness reference for a new record: the
// source publish time when known, otherwise the observation time.
func freshnessRef(p *posting.Posting, now time.Time) *time.Time {
	if p.PublishedAt != nil {
		t := p.PublishedAt.UTC()
		return &t
	}
	t := now.UTC()
	return &t
}
