package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"jobscout/internal/gaps"
	"jobscout/internal/pipeline"
	"jobscout/internal/posting"
	"jobscout/internal/scoring"
)

func sampleScored() []pipeline.ScoredPosting {
	return []pipeline.ScoredPosting{
		{
			Posting: &posting.Posting{
				ID: "gh:acme:1", Company: "Acme", Title: "Senior Product Manager, AI",
				URL: "https://example.com/1", Location: "Remote - US",
				WorkType: posting.WorkTypeRemote, Salary: "$180,000 - $220,000",
				FirstSeenAt: time.Date(2025, 5, 28, 9, 0, 0, 0, time.UTC),
				LastSeenAt:  time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC),
			},
			Score: scoring.Record{
				Freshness: 100, Fit: 80, Tier: scoring.TierToday,
				Breakdown: []scoring.BucketScore{
					{Bucket: "AI / ML", Points: 30, Max: 30, Matched: []string{"AI"}},
					{Bucket: "Seniority", Points: 25, Max: 25, Matched: []string{"Senior"}},
					{Bucket: "Domain Fit", Points: 25, Max: 25, Matched: []string{"platform"}},
				},
			},
			Gaps: []gaps.Entry{
				{Bucket: "Industry Verticals", Status: gaps.StatusMissing, Delta: 20},
			},
		},
		{
			Posting: &posting.Posting{
				ID: "lv:beta:2", Company: "Beta", Title: "Product Manager",
				URL: "https://example.com/2", Location: "London",
				WorkType: posting.WorkTypeOnSite, Reposted: true, RepostCount: 2,
			},
			Score: scoring.Record{
				Freshness: 55, Fit: 30, Tier: scoring.TierThisWeek,
				LocationFlag: "International",
			},
		},
	}
}

func TestDigestSections(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	out := Digest(sampleScored(), pipeline.Stats{Boards: 2, Inserted: 1, Reposted: 1}, now)

	for _, want := range []string{
		"# Job Digest — 2025-06-02",
		"🔴 Apply Today (1)",
		"🟡 This Week (1)",
		"[Senior Product Manager, AI](https://example.com/1)",
		"reposted ×2",
		"⚠ International",
		"gap: Industry Verticals (Missing, +20 possible)",
		"$180,000 - $220,000",
		"first seen 2025-05-28 · last seen 2025-06-02",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("digest missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "⚪ Later") {
		t.Errorf("empty tier section must be omitted")
	}
}

func TestWriteDigestPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	path, err := WriteDigest(dir, sampleScored(), pipeline.Stats{}, now)
	if err != nil {
		t.Fatalf("write digest: %v", err)
	}
	if filepath.Base(path) != "digest-2025-06-02.md" {
		t.Fatalf("unexpected filename %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("digest not written: %v", err)
	}
}

func TestDashboardEscapesScriptBreakout(t *testing.T) {
	t.Parallel()

	scored := sampleScored()
	scored[0].Posting.Title = "PM </script><script>alert(1)</script>"

	html, err := Dashboard(scored, time.Now())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if strings.Contains(html, "</script><script>alert(1)") {
		t.Fatalf("script breakout not escaped")
	}
	if !strings.Contains(html, "const jobs =") {
		t.Fatalf("jobs payload missing")
	}
}

func TestDashboardCounts(t *testing.T) {
	t.Parallel()

	html, err := Dashboard(sampleScored(), time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if !strings.Contains(html, "2 postings") || !strings.Contains(html, "1 today") {
		t.Fatalf("counts missing from dashboard")
	}
}

func TestDashboardCarriesFitBreakdown(t *testing.T) {
	t.Parallel()

	html, err := Dashboard(sampleScored(), time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	for _, want := range []string{
		`"breakdown":[`,
		`{"bucket":"AI / ML","points":30,"max":30}`,
		`{"bucket":"Seniority","points":25,"max":25}`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("dashboard payload missing %q", want)
		}
	}
}
