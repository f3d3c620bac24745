package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jobscout/internal/pipeline"
)

//go:embed dashboard.tmpl
var dashboardTmpl string

// dashboardJob is the flattened row shape the dashboard script consumes.
type dashboardJob struct {
	ID        string            `json:"id"`
	Company   string            `json:"company"`
	Title     string            `json:"title"`
	URL       string            `json:"url"`
	Location  string            `json:"location"`
	WorkType  string            `json:"work_type"`
	Salary    string            `json:"salary,omitempty"`
	Tier      string            `json:"tier"`
	Freshness int               `json:"freshness"`
	Fit       int               `json:"fit"`
	Flag      string            `json:"flag,omitempty"`
	Reposted  bool              `json:"reposted"`
	Breakdown []dashboardBucket `json:"breakdown,omitempty"`
	Gaps      []string          `json:"gaps,omitempty"`
}

// dashboardBucket is one fit bucket's contribution, shown under the title.
type dashboardBucket struct {
	Bucket string `json:"bucket"`
	Points int    `json:"points"`
	Max    int    `json:"max"`
}

type dashboardData struct {
	GeneratedAt string
	Total       int
	Today       int
	ThisWeek    int
	JobsJSON    template.JS
}

// Dashboard renders the self-contained HTML dashboard.
func Dashboard(scored []pipeline.ScoredPosting, now time.Time) (string, error) {
	jobs := make([]dashboardJob, 0, len(scored))
	today, week := 0, 0
	for _, s := range scored {
		p := s.Posting
		var gapLines []string
		for _, g := range s.Gaps {
			if g.Delta > 0 {
				gapLines = append(gapLines, fmt.Sprintf("%s (+%d)", g.Bucket, g.Delta))
			}
		}
		var breakdown []dashboardBucket
		for _, bs := range s.Score.Breakdown {
			breakdown = append(breakdown, dashboardBucket{
				Bucket: bs.Bucket,
				Points: bs.Points,
				Max:    bs.Max,
			})
		}
		jobs = append(jobs, dashboardJob{
			ID:        p.ID,
			Company:   p.Company,
			Title:     p.Title,
			URL:       p.URL,
			Location:  p.Location,
			WorkType:  string(p.WorkType),
			Salary:    p.Salary,
			Tier:      string(s.Score.Tier),
			Freshness: s.Score.Freshness,
			Fit:       s.Score.Fit,
			Flag:      string(s.Score.LocationFlag),
			Reposted:  p.Reposted,
			Breakdown: breakdown,
			Gaps:      gapLines,
		})
		switch s.Score.Tier {
		case "Today":
			today++
		case "ThisWeek":
			week++
		}
	}

	raw, err := json.Marshal(jobs)
	if err != nil {
		return "", fmt.Errorf("marshal jobs: %w", err)
	}
	// Keep a literal "</script>" inside job text from breaking the page.
	safe := strings.ReplaceAll(string(raw), "</", `<\/`)

	tmpl, err := template.New("dashboard").Parse(dashboardTmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	var b strings.Builder
	err = tmpl.Execute(&b, dashboardData{
		GeneratedAt: now.UTC().Format(time.RFC1123),
		Total:       len(jobs),
		Today:       today,
		ThisWeek:    week,
		JobsJSON:    template.JS(safe),
	})
	if err != nil {
		return "", fmt.Errorf("render dashboard: %w", err)
	}
	return b.String(), nil
}

// WriteDashboard writes the dashboard to <dir>/dashboard-YYYY-MM-DD.html.
func WriteDashboard(dir string, scored []pipeline.ScoredPosting, now time.Time) (string, error) {
	html, err := Dashboard(scored, now)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("dashboard-%s.html", now.UTC().Format("2006-01-02")))
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("write dashboard: %w", err)
	}
	return path, nil
}
