package scoring

import (
	"time"

	"jobscout/internal/location"
)

// Tier is the action bucket a posting lands in.
type Tier string

const (
	TierToday    Tier = "Today"
	TierThisWeek Tier = "ThisWeek"
	TierLater    Tier = "Later"
)

// Rank orders tiers for sorting; lower sorts first.
func (t Tier) Rank() int {
	switch t {
	case TierToday:
		return 0
	case TierThisWeek:
		return 1
	default:
		return 2
	}
}

// Record is the full scoring result for one posting.
type Record struct {
	Freshness    int           `json:"freshness"`
	Fit          int           `json:"fit"`
	Breakdown    []BucketScore `json:"breakdown"`
	Tier         Tier          `json:"tier"`
	LocationFlag location.Flag `json:"location_flag,omitempty"`
}

// Combined blends freshness and fit into a single sort key. Fit dominates:
// a stale great match outranks a fresh poor one.
func (r Record) Combined() float64 {
	return 0.4*float64(r.Freshness) + 0.6*float64(r.Fit)
}

// classifyTier applies the threshold table. Today additionally requires the
// AI bucket to have matched.
func (c *Config) classifyTier(freshness, fit int, aiMatched bool) Tier {
	if freshness >= c.TodayMinFresh && fit >= c.TodayMinFit && aiMatched {
		return TierToday
	}
	if freshness >= c.WeekMinFresh && fit >= c.WeekMinFit {
		return TierThisWeek
	}
	return TierLater
}

// ScoreInput carries everything scoring needs about one posting.
type ScoreInput struct {
	Title       string
	Description string
	FreshSince  *time.Time
	Reposted    bool

	// ResumeValid gates fit scoring; without a usable resume profile fit
	// is zero and only freshness is meaningful.
	ResumeValid bool

	LocationFlag location.Flag
}

// Score produces the complete record for one posting at a given instant.
func (c *Config) Score(in ScoreInput, now time.Time) Record {
	fresh := Freshness(in.FreshSince, now)
	fresh = c.ApplyRepostPenalty(fresh, in.Reposted)

	var (
		fit       int
		breakdown []BucketScore
	)
	if in.ResumeValid {
		fit, breakdown = c.Fit(in.Title, in.Description)
	}

	return Record{
		Freshness:    fresh,
		Fit:          fit,
		Breakdown:    breakdown,
		Tier:         c.classifyTier(fresh, fit, c.AIBucketMatched(breakdown)),
		LocationFlag: in.LocationFlag,
	}
}
