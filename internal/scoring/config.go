// Package scoring assigns freshness and fit scores to postings and buckets
// them into action tiers. Scores are recomputed on every run so config
// changes apply retroactively; nothing here is persisted.
package scoring

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Bucket is one weighted group of keyword patterns. A posting earns the
// bucket's full weight as soon as any pattern matches.
type Bucket struct {
	Name        string   `mapstructure:"name"`
	Weight      int      `mapstructure:"weight"`
	MinMentions int      `mapstructure:"min_mentions"`
	Patterns    []string `mapstructure:"patterns"`

	compiled []*regexp.Regexp
}

// Compile prepares the bucket's patterns for matching. Patterns are
// case-insensitive.
func (b *Bucket) Compile() error {
	b.compiled = make([]*regexp.Regexp, 0, len(b.Patterns))
	for _, p := range b.Patterns {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return fmt.Errorf("bucket %q: pattern %q: %w", b.Name, p, err)
		}
		b.compiled = append(b.compiled, re)
	}
	return nil
}

// Match returns the text each pattern actually matched, in pattern order,
// deduplicated case-insensitively. Callers surface these to the user, so
// they carry the posting's own words, never pattern source.
func (b *Bucket) Match(text string) []string {
	var hits []string
	seen := make(map[string]struct{}, len(b.compiled))
	for _, re := range b.compiled {
		hit := re.FindString(text)
		if hit == "" {
			continue
		}
		key := strings.ToLower(hit)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		hits = append(hits, hit)
	}
	return hits
}

// Mentions counts total occurrences of the bucket's patterns in text.
func (b *Bucket) Mentions(text string) int {
	total := 0
	for _, re := range b.compiled {
		total += len(re.FindAllStringIndex(text, -1))
	}
	return total
}

// Config holds scoring weights and tier thresholds.
type Config struct {
	Buckets []Bucket `mapstructure:"buckets"`

	// AIBucket names the bucket that gates the Today tier.
	AIBucket string `mapstructure:"ai_bucket"`

	TodayMinFresh int `mapstructure:"today_min_fresh"`
	TodayMinFit   int `mapstructure:"today_min_fit"`
	WeekMinFresh  int `mapstructure:"week_min_fresh"`
	WeekMinFit    int `mapstructure:"week_min_fit"`

	RepostPenalty int `mapstructure:"repost_penalty"`
}

// Compile prepares all bucket patterns and validates weights.
func (c *Config) Compile() error {
	seen := make(map[string]struct{}, len(c.Buckets))
	for i := range c.Buckets {
		b := &c.Buckets[i]
		if strings.TrimSpace(b.Name) == "" {
			return fmt.Errorf("bucket %d: empty name", i)
		}
		if _, dup := seen[b.Name]; dup {
			return fmt.Errorf("bucket %q: duplicate name", b.Name)
		}
		seen[b.Name] = struct{}{}
		if b.Weight <= 0 {
			return fmt.Errorf("bucket %q: weight must be positive", b.Name)
		}
		if b.MinMentions <= 0 {
			b.MinMentions = 1
		}
		if err := b.Compile(); err != nil {
			return err
		}
	}
	return nil
}

// BucketNames returns the configured bucket names sorted for display.
func (c *Config) BucketNames() []string {
	names := make([]string, 0, len(c.Buckets))
	for _, b := range c.Buckets {
		names = append(names, b.Name)
	}
	sort.Strings(names)
	return names
}

// DefaultConfig returns the built-in scoring profile. Users override pieces
// of it via the config file.
func DefaultConfig() *Config {
	return &Config{
		Buckets: []Bucket{
			{
				Name:        "AI / ML",
				Weight:      30,
				MinMentions: 2,
				Patterns: []string{
					`\bllms?\b`, `\blarge language models?\b`, `\bgenerative ai\b`,
					`\bgen[- ]?ai\b`, `\bmachine learning\b`, `\bml\b`,
					`\bartificial intelligence\b`, `\bai[- ]powered\b`, `\bai products?\b`,
					`\bagents?\b`, `\bagentic\b`, `\brag\b`, `\bprompt engineering\b`,
					`\bfoundation models?\b`, `\btransformers?\b`, `\bfine[- ]tun`,
					`\bcopilots?\b`, `\bchatbots?\b`, `\bnlp\b`, `\bcomputer vision\b`,
				},
			},
			{
				Name:        "Seniority",
				Weight:      25,
				MinMentions: 1,
				Patterns: []string{
					`\bsenior\b`, `\bstaff\b`, `\bprincipal\b`, `\blead\b`,
					`\bgroup product manager\b`, `\bdirector\b`, `\bhead of\b`,
					`\b(?:8|9|10)\+? ?years?\b`, `\bvp\b`,
				},
			},
			{
				Name:        "Domain Fit",
				Weight:      25,
				MinMentions: 2,
				Patterns: []string{
					`\bplatforms?\b`, `\bapis?\b`, `\bdeveloper experience\b`,
					`\bb2b\b`, `\bsaas\b`, `\benterprise\b`, `\binfrastructure\b`,
					`\bdata products?\b`, `\bworkflows?\b`, `\bautomation\b`,
					`\bintegrations?\b`, `\b0[- ]to[- ]1\b`, `\bzero[- ]to[- ]one\b`,
					`\bgrowth\b`, `\bmonetization\b`, `\bpricing\b`,
				},
			},
			{
				Name:        "Industry Verticals",
				Weight:      20,
				MinMentions: 1,
				Patterns: []string{
					`\bfintech\b`, `\bpayments?\b`, `\bhealthcare\b`, `\bhealth tech\b`,
					`\bdev ?tools?\b`, `\bdeveloper tools?\b`, `\bcybersecurity\b`,
					`\bsecurity\b`, `\be[- ]commerce\b`, `\bmarketplaces?\b`,
					`\blogistics\b`, `\bsupply chain\b`, `\bclimate\b`, `\bedtech\b`,
					`\blegal ?tech\b`, `\binsurtech\b`, `\bproptech\b`,
				},
			},
		},
		AIBucket:      "AI / ML",
		TodayMinFresh: 80,
		TodayMinFit:   40,
		WeekMinFresh:  55,
		WeekMinFit:    25,
		RepostPenalty: 15,
	}
}
