// Package pipeline runs the full discovery cycle: fetch boards, normalize
// payloads, persist observations, then score and rank whatever the store
// holds. Fetching and scoring are separate passes so a board failure never
// hides previously stored postings.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"jobscout/internal/gaps"
	"jobscout/internal/location"
	"jobscout/internal/normalize"
	"jobscout/internal/posting"
	"jobscout/internal/resume"
	"jobscout/internal/scoring"
	"jobscout/internal/store"
)

// Fetcher is what the pipeline needs from a source client.
type Fetcher interface {
	Fetch(ctx context.Context, platform posting.Platform, board string) ([]map[string]any, error)
}

// Board is one configured company board.
type Board struct {
	Platform    posting.Platform `mapstructure:"platform"`
	Slug        string           `mapstructure:"slug"`
	DisplayName string           `mapstructure:"display_name"`
}

// Stats summarizes one ingest pass.
type Stats struct {
	Boards    int
	Failed    int
	Fetched   int
	Filtered  int
	Malformed int
	Inserted  int
	Refreshed int
	Reposted  int
}

// ScoredPosting pairs a stored posting with its per-run scores and gap
// analysis.
type ScoredPosting struct {
	Posting *posting.Posting
	Score   scoring.Record
	Gaps    []gaps.Entry
}

// Pipeline owns one configured run. Profile may be nil when the resume
// failed to load; fit scoring and gap analysis are skipped then.
type Pipeline struct {
	Fetcher    Fetcher
	Store      store.Store
	Normalizer *normalize.Normalizer
	Scoring    *scoring.Config
	Boards     []Board

	Profile     *resume.Profile
	UserCountry string
	UserCity    string

	Log *zap.Logger
}

// Ingest fetches every configured board and upserts what survives
// normalization. Board failures are logged and counted, not fatal; the
// returned error is non-nil only when every board failed.
func (p *Pipeline) Ingest(ctx context.Context, now time.Time) (Stats, error) {
	stats := Stats{Boards: len(p.Boards)}

	for _, board := range p.Boards {
		log := p.Log.With(
			zap.String("platform", string(board.Platform)),
			zap.String("board", board.Slug),
		)

		raws, err := p.Fetcher.Fetch(ctx, board.Platform, board.Slug)
		if err != nil {
			stats.Failed++
			log.Warn("board fetch failed", zap.Error(err))
			continue
		}
		stats.Fetched += len(raws)

		for _, raw := range raws {
			norm, err := p.Normalizer.Normalize(board.Platform, board.Slug, board.DisplayName, raw, now)
			switch {
			case errors.Is(err, normalize.ErrFiltered):
				stats.Filtered++
				continue
			case errors.Is(err, normalize.ErrMalformedSourceData):
				stats.Malformed++
				log.Debug("malformed job payload", zap.Error(err))
				continue
			case err != nil:
				return stats, fmt.Errorf("normalize %s/%s: %w", board.Platform, board.Slug, err)
			}

			_, outcome, err := p.Store.Upsert(ctx, norm, now)
			if err != nil {
				return stats, fmt.Errorf("upsert %s: %w", norm.ID, err)
			}
			switch outcome {
			case store.Inserted:
				stats.Inserted++
			case store.Refreshed:
				stats.Refreshed++
			case store.Reposted:
				stats.Reposted++
				log.Info("repost detected", zap.String("id", norm.ID))
			}
		}
		log.Info("board ingested", zap.Int("jobs", len(raws)))
	}

	if stats.Boards > 0 && stats.Failed == stats.Boards {
		return stats, fmt.Errorf("all %d boards failed", stats.Boards)
	}
	return stats, nil
}

// Collect scores everything in the store and returns it ranked: tier first,
// then combined score descending, then id for a stable order.
func (p *Pipeline) Collect(ctx context.Context, now time.Time) ([]ScoredPosting, error) {
	records, err := p.Store.List(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}

	resumeValid := p.Profile != nil
	var resumeText string
	if resumeValid {
		resumeText = p.Profile.FlattenText()
	}

	out := make([]ScoredPosting, 0, len(records))
	for _, rec := range records {
		rec.WorkType = location.ClassifyWorkType(rec.Location, rec.Description)

		flag := location.FlagNone
		if resumeValid {
			flag = location.ClassifyFlag(rec.Location, rec.WorkType, p.UserCountry, p.UserCity)
		}

		score := p.Scoring.Score(scoring.ScoreInput{
			Title:        rec.Title,
			Description:  rec.Description,
			FreshSince:   rec.FreshSince,
			Reposted:     rec.Reposted,
			ResumeValid:  resumeValid,
			LocationFlag: flag,
		}, now)

		var analysis []gaps.Entry
		if resumeValid {
			analysis = gaps.Analyze(score.Breakdown, p.Scoring, resumeText)
		}

		out = append(out, ScoredPosting{Posting: rec, Score: score, Gaps: analysis})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ra, rb := a.Score.Tier.Rank(), b.Score.Tier.Rank(); ra != rb {
			return ra < rb
		}
		if ca, cb := a.Score.Combined(), b.Score.Combined(); ca != cb {
			return ca > cb
		}
		return a.Posting.ID < b.Posting.ID
	})
	return out, nil
}

// Run is ingest followed by collect.
func (p *Pipeline) Run(ctx context.Context, now time.Time) (Stats, []ScoredPosting, error) {
	stats, err := p.Ingest(ctx, now)
	if err != nil {
		return stats, nil, err
	}
	scored, err := p.Collect(ctx, now)
	return stats, scored, err
}
