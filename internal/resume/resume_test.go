package resume

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "resume.json", `{
		"name": "Test User",
		"country": "US",
		"city": "Seattle, WA",
		"headline": "Senior Product Manager",
		"competencies": ["Roadmapping", "LLM evaluation"],
		"experience": [
			{"section": "Acme", "bullets": ["Shipped AI platform", "Led 4 PMs"]}
		]
	}`)

	profile, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Name != "Test User" {
		t.Fatalf("expected name, got %q", profile.Name)
	}
	if !profile.HasLocation() {
		t.Fatalf("expected location data to be present")
	}
	if len(profile.Experience) != 1 || len(profile.Experience[0].Bullets) != 2 {
		t.Fatalf("unexpected experience shape: %+v", profile.Experience)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "resume.yaml", strings.Join([]string{
		"name: Test User",
		"headline: Product Lead",
		"competencies:",
		"  - Workflow automation",
	}, "\n"))

	profile, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Headline != "Product Lead" {
		t.Fatalf("unexpected headline: %q", profile.Headline)
	}
	if profile.HasLocation() {
		t.Fatalf("no country set, expected HasLocation false")
	}
}

func TestLoadMalformedReturnsInvalidProfile(t *testing.T) {
	path := writeFile(t, "resume.json", `{"name": `)

	_, err := Load(path)
	if !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestFlattenTextKeepsOrder(t *testing.T) {
	profile := &Profile{
		Headline:     "Senior PM",
		Tagline:      "AI platforms",
		Competencies: []string{"Automation"},
		Experience: []Experience{
			{Section: "One", Bullets: []string{"first bullet"}},
			{Section: "Two", Bullets: []string{"second bullet"}},
		},
	}

	text := profile.FlattenText()
	first := strings.Index(text, "first bullet")
	second := strings.Index(text, "second bullet")
	if first == -1 || second == -1 || first > second {
		t.Fatalf("bullets out of order in flattened text: %q", text)
	}
	if !strings.Contains(text, "Senior PM") || !strings.Contains(text, "Automation") {
		t.Fatalf("flattened text missing sections: %q", text)
	}
}

func TestFlattenTextNilProfile(t *testing.T) {
	var profile *Profile
	if got := profile.FlattenText(); got != "" {
		t.Fatalf("expected empty text for nil profile, got %q", got)
	}
}
