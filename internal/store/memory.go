package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"jobscout/internal/posting"
)

// Memory is a mutex-guarded in-process store. It keeps full hash history per
// posting so repost detection survives content flapping back and forth.
type Memory struct {
	mu      sync.Mutex
	records map[string]*posting.Posting
	hashes  map[string][]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[string]*posting.Posting),
		hashes:  make(map[string][]string),
	}
}

func (m *Memory) Upsert(_ context.Context, p *posting.Posting, now time.Time) (*posting.Posting, Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.records[p.ID]
	if !ok {
		rec := clone(p)
		rec.FirstSeenAt = now.UTC()
		rec.LastSeenAt = now.UTC()
		rec.FreshSince = freshnessRef(p, now)
		rec.Reposted = false
		rec.RepostCount = 0
		m.records[p.ID] = rec
		if p.DescHash != "" {
			m.hashes[p.ID] = []string{p.DescHash}
		}
		return clone(rec), Inserted, nil
	}

	// Content change check. An empty incoming hash means the source sent no
	// description; treat it as unchanged rather than a repost.
	changed := p.DescHash != "" && existing.DescHash != "" && p.DescHash != existing.DescHash

	rec := clone(p)
	rec.FirstSeenAt = existing.FirstSeenAt
	rec.RepostCount = existing.RepostCount
	rec.FreshSince = existing.FreshSince
	rec.LastSeenAt = now.UTC()

	if changed {
		t := now.UTC()
		rec.FreshSince = &t
		rec.Reposted = true
		rec.RepostCount = existing.RepostCount + 1
		m.hashes[p.ID] = append(m.hashes[p.ID], p.DescHash)
	} else {
		rec.Reposted = existing.Reposted
		if p.DescHash == "" {
			rec.DescHash = existing.DescHash
		}
	}

	m.records[p.ID] = rec
	outcome := Refreshed
	if changed {
		outcome = Reposted
	}
	return clone(rec), outcome, nil
}

func (m *Memory) List(_ context.Context, cutoff time.Time) ([]*posting.Posting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*posting.Posting, 0, len(m.records))
	for _, rec := range m.records {
		if !cutoff.IsZero() && rec.LastSeenAt.Before(cutoff) {
			continue
		}
		out = append(out, clone(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// HashHistory returns the description hashes seen for a posting, oldest first.
func (m *Memory) HashHistory(id string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.hashes[id]...)
}

func (m *Memory) Close() error { return nil }

func clone(p *posting.Posting) *posting.Posting {
	c := *p
	if p.PublishedAt != nil {
		t := *p.PublishedAt
		c.PublishedAt = &t
	}
	if p.FreshSince != nil {
		t := *p.FreshSince
		c.FreshSince = &t
	}
	return &c
}
