package normalize

import (
	"errors"
	"strings"
	"testing"
	"time"

	"jobscout/internal/posting"
)

func TestTitleFilterDefaults(t *testing.T) {
	t.Parallel()

	f := DefaultTitleFilter()
	accept := []string{
		"Senior Product Manager",
		"Product Manager, AI Platform",
		"Group Product Manager - Payments",
		"Director of Product",
		"Head of Product",
		"Technical Product Manager",
		"Staff Product Manager, Growth",
	}
	for _, title := range accept {
		if !f.Matches(title) {
			t.Errorf("expected %q to match", title)
		}
	}

	reject := []string{
		"Senior Product Marketing Manager",
		"Product Designer",
		"Product Design Lead",
		"Product Analyst",
		"Product Manager Intern",
		"Associate Product Manager",
		"Software Engineer",
		"Product Operations Lead",
	}
	for _, title := range reject {
		if f.Matches(title) {
			t.Errorf("expected %q to be rejected", title)
		}
	}
}

func TestTitleFilterExclusionWins(t *testing.T) {
	t.Parallel()

	f, err := NewTitleFilter([]string{`manager`}, []string{`marketing`})
	if err != nil {
		t.Fatalf("build filter: %v", err)
	}
	if f.Matches("Marketing Manager") {
		t.Fatalf("exclusion must win over inclusion")
	}
	if !f.Matches("Engineering Manager") {
		t.Fatalf("expected match")
	}
}

func TestTitleFilterRejectsBadPattern(t *testing.T) {
	t.Parallel()

	if _, err := NewTitleFilter([]string{`(`}, nil); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestSanitizeHTMLStripsNoise(t *testing.T) {
	t.Parallel()

	raw := `<div class="posting"><p style="color:red" data-track="1">Build <strong>LLM</strong> products.</p>` +
		`<script>alert(1)</script><img src="pixel.gif"/><p></p>` +
		`<div class="pay-transparency"><p>$100k-$200k disclosure</p></div></div>`

	got := SanitizeHTML(raw)
	for _, banned := range []string{"<script", "<img", "style=", "data-track", "class=", "<div", "pay-transparency", "$100k"} {
		if strings.Contains(got, banned) {
			t.Errorf("sanitized output still contains %q: %s", banned, got)
		}
	}
	if !strings.Contains(got, "<strong>LLM</strong>") {
		t.Errorf("content markup lost: %s", got)
	}
}

func TestSanitizeHTMLDecodesEntityWrappedMarkup(t *testing.T) {
	t.Parallel()

	raw := "&lt;p&gt;Own the &lt;strong&gt;roadmap&lt;/strong&gt;.&lt;/p&gt;"
	got := SanitizeHTML(raw)
	if !strings.Contains(got, "<strong>roadmap</strong>") {
		t.Fatalf("expected decoded markup, got %q", got)
	}

	double := "&amp;lt;p&amp;gt;Twice encoded.&amp;lt;/p&amp;gt;"
	if got := SanitizeHTML(double); !strings.Contains(got, "<p>Twice encoded.</p>") {
		t.Fatalf("expected double decode, got %q", got)
	}
}

func TestSanitizeHTMLIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`<div><p>Plain paragraph</p><ul><li>bullet</li></ul></div>`,
		"&lt;p&gt;Encoded &amp; escaped&lt;/p&gt;",
		`<p><strong>PLEASE NOTE:</strong> agencies.</p><p>trailing</p>`,
		"",
		"just text, no markup",
	}
	for _, in := range inputs {
		once := SanitizeHTML(in)
		twice := SanitizeHTML(once)
		if once != twice {
			t.Errorf("not idempotent for %q:\nonce:  %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestSanitizeHTMLDropsTrailingBoilerplate(t *testing.T) {
	t.Parallel()

	raw := `<p>Real content about the role.</p>` +
		`<p><strong>Equal Opportunity Employer</strong></p>` +
		`<p>We do not discriminate based on anything.</p>`
	got := SanitizeHTML(raw)
	if !strings.Contains(got, "Real content") {
		t.Fatalf("real content lost: %q", got)
	}
	if strings.Contains(got, "discriminate") || strings.Contains(got, "Equal Opportunity") {
		t.Fatalf("boilerplate kept: %q", got)
	}
}

func TestContentHashStability(t *testing.T) {
	t.Parallel()

	a := ContentHash("<p>Build the platform.</p>")
	b := ContentHash("<p>Build the platform.</p>")
	if a == "" || a != b {
		t.Fatalf("hash not stable: %q vs %q", a, b)
	}
	if len(a) != hashLen {
		t.Fatalf("expected %d hex chars, got %d", hashLen, len(a))
	}
	c := ContentHash("<p>Build the other platform.</p>")
	if c == a {
		t.Fatalf("different content produced identical hash")
	}
	if ContentHash("   ") != "" {
		t.Fatalf("empty content must hash to empty string")
	}
}

func TestExtractSalary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		expect string
	}{
		{"comma range", "Base salary: $180,000 - $220,000 per year.", "$180,000 - $220,000"},
		{"k suffix", "We pay $150K–$190K depending on level.", "$150,000 - $190,000"},
		{"multiple ranges merge", "SF: $200,000 - $250,000. Austin: $170,000 - $210,000.", "$170,000 - $250,000"},
		{"no salary", "Competitive compensation and equity.", ""},
		{"years not salary", "8 - 10 years of experience required.", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExtractSalary(tt.text); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestNormalizeGreenhouse(t *testing.T) {
	t.Parallel()

	n := New(nil)
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	raw := map[string]any{
		"id":              float64(4567), // JSON numbers decode as float64
		"title":           "Senior Product Manager, AI",
		"absolute_url":    "https://boards.greenhouse.io/acme/jobs/4567",
		"content":         "&lt;p&gt;Own our &lt;strong&gt;LLM&lt;/strong&gt; roadmap. Base: $190,000 - $230,000.&lt;/p&gt;",
		"first_published": "2025-06-01T09:00:00-04:00",
		"location":        map[string]any{"name": "New York, NY"},
	}

	p, err := n.Normalize(posting.PlatformGreenhouse, "acme", "Acme", raw, now)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if p.ID != "gh:acme:4567" {
		t.Fatalf("unexpected id %q", p.ID)
	}
	if p.Company != "Acme" || p.Location != "New York, NY" {
		t.Fatalf("bad mapping: %+v", p)
	}
	if !strings.Contains(p.DescriptionHTML, "<strong>LLM</strong>") {
		t.Fatalf("description not decoded: %q", p.DescriptionHTML)
	}
	if p.Salary != "$190,000 - $230,000" {
		t.Fatalf("salary not extracted: %q", p.Salary)
	}
	if p.PublishedAt == nil || !p.PublishedAt.Equal(time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)) {
		t.Fatalf("bad published time: %v", p.PublishedAt)
	}
	if p.DescHash == "" {
		t.Fatalf("missing desc hash")
	}
	if !p.LastSeenAt.Equal(now) {
		t.Fatalf("last seen not stamped")
	}
}

func TestNormalizeLever(t *testing.T) {
	t.Parallel()

	n := New(nil)
	created := time.Date(2025, 5, 30, 8, 0, 0, 0, time.UTC)
	raw := map[string]any{
		"id":          "abc-123",
		"text":        "Product Manager, Platform",
		"hostedUrl":   "https://jobs.lever.co/acme/abc-123",
		"createdAt":   float64(created.UnixMilli()),
		"description": "<p>Ship APIs.</p>",
		"categories":  map[string]any{"location": "Remote - US"},
	}

	p, err := n.Normalize(posting.PlatformLever, "acme", "", raw, time.Now())
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if p.ID != "lv:acme:abc-123" {
		t.Fatalf("unexpected id %q", p.ID)
	}
	if p.Company != "acme" {
		t.Fatalf("expected board as company fallback, got %q", p.Company)
	}
	if p.PublishedAt == nil || !p.PublishedAt.Equal(created) {
		t.Fatalf("epoch millis not parsed: %v", p.PublishedAt)
	}
	if p.Location != "Remote - US" {
		t.Fatalf("bad location %q", p.Location)
	}
}

func TestNormalizeAshbyAndWorkable(t *testing.T) {
	t.Parallel()

	n := New(nil)
	now := time.Now()

	ashby := map[string]any{
		"id":              "uuid-1",
		"title":           "Principal Product Manager",
		"jobUrl":          "https://jobs.ashbyhq.com/acme/uuid-1",
		"location":        "San Francisco, CA",
		"descriptionHtml": "<p>Own zero-to-one products.</p>",
		"publishedDate":   "2025-06-01",
	}
	p, err := n.Normalize(posting.PlatformAshby, "acme", "Acme", ashby, now)
	if err != nil {
		t.Fatalf("ashby: %v", err)
	}
	if p.ID != "ab:acme:uuid-1" || p.PublishedAt == nil {
		t.Fatalf("bad ashby mapping: %+v", p)
	}

	workable := map[string]any{
		"shortcode":    "AB12CD",
		"title":        "Head of Product",
		"description":  "<p>Lead product.</p>",
		"published_on": "2025-06-01",
		"city":         "Berlin",
		"country":      "Germany",
	}
	p, err = n.Normalize(posting.PlatformWorkable, "acme", "Acme", workable, now)
	if err != nil {
		t.Fatalf("workable: %v", err)
	}
	if p.ID != "wk:acme:AB12CD" {
		t.Fatalf("bad workable id %q", p.ID)
	}
	if p.Location != "Berlin, Germany" {
		t.Fatalf("bad workable location %q", p.Location)
	}
	if p.URL == "" {
		t.Fatalf("expected synthesized url")
	}
}

func TestNormalizeFilteredTitle(t *testing.T) {
	t.Parallel()

	n := New(nil)
	raw := map[string]any{
		"id":    "1",
		"title": "Software Engineer",
	}
	_, err := n.Normalize(posting.PlatformGreenhouse, "acme", "Acme", raw, time.Now())
	if !errors.Is(err, ErrFiltered) {
		t.Fatalf("expected ErrFiltered, got %v", err)
	}
}

func TestNormalizeMalformed(t *testing.T) {
	t.Parallel()

	n := New(nil)
	raw := map[string]any{"title": "Product Manager"} // no id
	_, err := n.Normalize(posting.PlatformGreenhouse, "acme", "Acme", raw, time.Now())
	if !errors.Is(err, ErrMalformedSourceData) {
		t.Fatalf("expected ErrMalformedSourceData, got %v", err)
	}

	_, err = n.Normalize("taleo", "acme", "Acme", map[string]any{}, time.Now())
	if err == nil {
		t.Fatalf("expected error for unknown platform")
	}
}

func TestNormalizeMissingTimestampYieldsNil(t *testing.T) {
	t.Parallel()

	n := New(nil)
	raw := map[string]any{
		"id":    "9",
		"title": "Product Manager",
	}
	p, err := n.Normalize(posting.PlatformGreenhouse, "acme", "Acme", raw, time.Now())
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if p.PublishedAt != nil {
		t.Fatalf("expected nil published time, got %v", p.PublishedAt)
	}
}
