// Package gaps compares a posting's matched keywords against the user's
// resume and suggests concrete edits. Analysis is advisory and recomputed
// per posting; nothing is stored.
package gaps

import (
	"sort"
	"strings"

	"jobscout/internal/scoring"
)

// Status describes how well the resume covers one bucket.
type Status string

const (
	StatusMissing   Status = "Missing"
	StatusNeedsMore Status = "NeedsMore"
	StatusSatisfied Status = "Satisfied"
)

// Entry is the analysis for one bucket the posting scored in.
type Entry struct {
	Bucket          string   `json:"bucket"`
	Status          Status   `json:"status"`
	Delta           int      `json:"delta"`
	PostingKeywords []string `json:"posting_keywords,omitempty"`
	Suggestion      string   `json:"suggestion,omitempty"`
}

// Analyze walks the buckets a posting earned points in and checks whether
// the resume mentions the same material often enough. Delta is the bucket
// weight still at stake; Satisfied buckets carry zero.
func Analyze(breakdown []scoring.BucketScore, cfg *scoring.Config, resumeText string) []Entry {
	if strings.TrimSpace(resumeText) == "" {
		return nil
	}

	byName := make(map[string]*scoring.Bucket, len(cfg.Buckets))
	for i := range cfg.Buckets {
		byName[cfg.Buckets[i].Name] = &cfg.Buckets[i]
	}

	var entries []Entry
	for _, bs := range breakdown {
		if bs.Points <= 0 {
			continue
		}
		bucket, ok := byName[bs.Bucket]
		if !ok {
			continue
		}

		mentions := bucket.Mentions(resumeText)
		var status Status
		switch {
		case mentions == 0:
			status = StatusMissing
		case mentions < bucket.MinMentions:
			status = StatusNeedsMore
		default:
			status = StatusSatisfied
		}

		delta := 0
		if status != StatusSatisfied {
			delta = bs.Points
		}

		entry := Entry{
			Bucket:          bs.Bucket,
			Status:          status,
			Delta:           delta,
			PostingKeywords: bs.Matched,
		}
		if status != StatusSatisfied {
			entry.Suggestion = suggestionFor(bs.Bucket, status)
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Delta > entries[j].Delta
	})
	return entries
}

// TotalDelta sums the points still recoverable across all entries.
func TotalDelta(entries []Entry) int {
	total := 0
	for _, e := range entries {
		total += e.Delta
	}
	return total
}
