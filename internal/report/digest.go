// Package report renders pipeline output for humans: a daily markdown
// digest and a self-contained HTML dashboard.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jobscout/internal/pipeline"
	"jobscout/internal/scoring"
)

var tierHeadings = []struct {
	tier  scoring.Tier
	title string
}{
	{scoring.TierToday, "🔴 Apply Today"},
	{scoring.TierThisWeek, "🟡 This Week"},
	{scoring.TierLater, "⚪ Later"},
}

// Digest renders the markdown daily digest.
func Digest(scored []pipeline.ScoredPosting, stats pipeline.Stats, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Job Digest — %s\n\n", now.UTC().Format("2006-01-02"))
	fmt.Fprintf(&b, "%d postings across %d boards (%d new, %d reposted, %d board failures)\n",
		len(scored), stats.Boards, stats.Inserted, stats.Reposted, stats.Failed)

	for _, h := range tierHeadings {
		var section []pipeline.ScoredPosting
		for _, s := range scored {
			if s.Score.Tier == h.tier {
				section = append(section, s)
			}
		}
		if len(section) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\n## %s (%d)\n\n", h.title, len(section))
		for _, s := range section {
			writeEntry(&b, s)
		}
	}
	return b.String()
}

func writeEntry(b *strings.Builder, s pipeline.ScoredPosting) {
	p := s.Posting

	title := p.Title
	if p.URL != "" {
		title = fmt.Sprintf("[%s](%s)", p.Title, p.URL)
	}
	fmt.Fprintf(b, "- **%s** at %s", title, p.Company)

	var tags []string
	if p.Location != "" {
		tags = append(tags, p.Location)
	}
	tags = append(tags, string(p.WorkType))
	if p.Salary != "" {
		tags = append(tags, p.Salary)
	}
	if p.Reposted {
		tags = append(tags, fmt.Sprintf("reposted ×%d", p.RepostCount))
	}
	if s.Score.LocationFlag != "" {
		tags = append(tags, "⚠ "+string(s.Score.LocationFlag))
	}
	fmt.Fprintf(b, " — %s\n", strings.Join(tags, " · "))
	fmt.Fprintf(b, "  fresh %d · fit %d · first seen %s · last seen %s\n",
		s.Score.Freshness, s.Score.Fit,
		p.FirstSeenAt.UTC().Format("2006-01-02"), p.LastSeenAt.UTC().Format("2006-01-02"))

	for _, g := range s.Gaps {
		if g.Delta == 0 {
			continue
		}
		fmt.Fprintf(b, "  gap: %s (%s, +%d possible)\n", g.Bucket, g.Status, g.Delta)
	}
}

// WriteDigest writes the digest to <dir>/digest-YYYY-MM-DD.md and returns
// the path.
func WriteDigest(dir string, scored []pipeline.ScoredPosting, stats pipeline.Stats, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("digest-%s.md", now.UTC().Format("2006-01-02")))
	if err := os.WriteFile(path, []byte(Digest(scored, stats, now)), 0o644); err != nil {
		return "", fmt.Errorf("write digest: %w", err)
	}
	return path, nil
}
