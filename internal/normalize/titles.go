// Package normalize turns raw per-platform job payloads into the canonical
// posting shape: title filtering, HTML sanitization, salary extraction and
// field mapping.
package normalize

import (
	"fmt"
	"regexp"
)

// TitleFilter decides whether a posting's title is in scope. Exclusion wins
// over inclusion so "Senior Product Marketing Manager" stays out even though
// it contains "product manager".
type TitleFilter struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

// NewTitleFilter compiles include and exclude patterns case-insensitively.
func NewTitleFilter(include, exclude []string) (*TitleFilter, error) {
	f := &TitleFilter{}
	for _, p := range include {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return nil, fmt.Errorf("include pattern %q: %w", p, err)
		}
		f.include = append(f.include, re)
	}
	for _, p := range exclude {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", p, err)
		}
		f.exclude = append(f.exclude, re)
	}
	return f, nil
}

// DefaultTitleFilter targets product management roles.
func DefaultTitleFilter() *TitleFilter {
	f, err := NewTitleFilter(
		[]string{
			`\bproduct manager\b`,
			`\bproduct management\b`,
			`\bproduct lead\b`,
			`\bproduct owner\b`,
			`\bhead of product\b`,
			`\bdirector,? product\b`,
			`\bdirector of product\b`,
			`\bvp,? product\b`,
			`\bvp of product\b`,
			`\bgroup product manager\b`,
			`\bprincipal pm\b`,
			`\bsenior pm\b`,
			`\btechnical product manager\b`,
		},
		[]string{
			`\bproduct marketing\b`,
			`\bproduct design`,
			`\bproduct analyst\b`,
			`\bproduct support\b`,
			`\bproduct operations\b`,
			`\bproduct specialist\b`,
			`\bintern\b`,
			`\bassociate product manager\b`,
			`\bapm\b`,
		},
	)
	if err != nil {
		panic(err) // built-in patterns are static
	}
	return f
}

// Matches reports whether the title passes the filter. An empty include set
// matches everything not excluded.
func (f *TitleFilter) Matches(title string) bool {
	for _, re := range f.exclude {
		if re.MatchString(title) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, re := range f.include {
		if re.MatchString(title) {
			return true
		}
	}
	return false
}
