// Package posting defines the canonical job posting record produced by the
// normalizer and persisted by the store.
package posting

import "time"

// WorkType classifies how a role expects people to work.
type WorkType string

const (
	WorkTypeRemote  WorkType = "Remote"
	WorkTypeHybrid  WorkType = "Hybrid"
	WorkTypeOnSite  WorkType = "On-site"
	WorkTypeUnknown WorkType = "Unknown"
)

// Platform identifies the ATS a posting came from.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformAshby      Platform = "ashby"
	PlatformWorkable   Platform = "workable"
)

// idPrefixes keeps stable identifiers short: "gh:anthropic:12345".
var idPrefixes = map[Platform]string{
	PlatformGreenhouse: "gh",
	PlatformLever:      "lv",
	PlatformAshby:      "ab",
	PlatformWorkable:   "wk",
}

// ID builds the stable posting identifier for a platform, board and external id.
func ID(platform Platform, board, externalID string) string {
	prefix, ok := idPrefixes[platform]
	if !ok {
		prefix = string(platform)
	}
	return prefix + ":" + board + ":" + externalID
}

// Posting is one job listing in canonical shape. FirstSeenAt never changes
// after creation; LastSeenAt advances on every observation. FreshSince is the
// freshness reference: the publish time when the source provided one, reset to
// the observation time whenever the description content changes (repost).
// A nil FreshSince means the record could not be dated and scores as stale.
type Posting struct {
	ID              string
	Source          Platform
	Board           string
	Company         string
	Title           string
	URL             string
	Location        string
	Description     string
	DescriptionHTML string
	Salary          string
	WorkType        WorkType
	PublishedAt     *time.Time
	FirstSeenAt     time.Time
	LastSeenAt      time.Time
	FreshSince      *time.Time
	DescHash        string
	Reposted        bool
	RepostCount     int
}

// Postings wraps a list of postings with small lookup helpers.
type Postings struct {
	Items []*Posting
}

func (p *Postings) Len() int {
	return len(p.Items)
}

func (p *Postings) FindByID(id string) *Posting {
	for _, item := range p.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// Companies returns the distinct company names in listing order.
func (p *Postings) Companies() []string {
	seen := make(map[string]struct{}, len(p.Items))
	names := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		if _, ok := seen[item.Company]; ok {
			continue
		}
		seen[item.Company] = struct{}{}
		names = append(names, item.Company)
	}
	return names
}
