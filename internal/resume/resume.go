// Package resume loads the user's structured resume profile. The profile
// drives gap analysis and location flagging; scoring itself only needs the
// keyword bucket configuration.
package resume

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidProfile is returned when a resume file cannot be parsed. Callers
// are expected to keep collecting and freshness-scoring postings and degrade
// fit/gap analysis instead of aborting.
var ErrInvalidProfile = errors.New("invalid resume profile")

// Experience is one resume section with its bullets in presentation order.
// Order is meaningful and must never be changed by readers.
type Experience struct {
	Section string   `json:"section" yaml:"section"`
	Bullets []string `json:"bullets" yaml:"bullets"`
}

// Profile is the structured resume document.
type Profile struct {
	Name         string       `json:"name" yaml:"name"`
	Contact      string       `json:"contact" yaml:"contact"`
	Country      string       `json:"country" yaml:"country"`
	City         string       `json:"city" yaml:"city"`
	Headline     string       `json:"headline" yaml:"headline"`
	Tagline      string       `json:"tagline" yaml:"tagline"`
	Summary      string       `json:"summary" yaml:"summary"`
	Competencies []string     `json:"competencies" yaml:"competencies"`
	Experience   []Experience `json:"experience" yaml:"experience"`
}

// Load reads a profile from a JSON or YAML file, chosen by extension.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading resume profile: %w", err)
	}

	var profile Profile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &profile)
	default:
		err = json.Unmarshal(data, &profile)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrInvalidProfile, path, err)
	}

	return &profile, nil
}

// FlattenText joins the headline, tagline, summary, competencies and all
// experience bullets into one lowercase-scannable blob for keyword matching.
func (p *Profile) FlattenText() string {
	if p == nil {
		return ""
	}

	parts := make([]string, 0, 8)
	for _, s := range []string{p.Headline, p.Tagline, p.Summary} {
		if strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	parts = append(parts, p.Competencies...)
	for _, exp := range p.Experience {
		parts = append(parts, exp.Bullets...)
	}

	return strings.Join(parts, "\n")
}

// HasLocation reports whether the profile carries enough data for
// relocation/international flagging.
func (p *Profile) HasLocation() bool {
	return p != nil && strings.TrimSpace(p.Country) != ""
}
