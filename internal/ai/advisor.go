// Package ai defines the optional advisor boundary. Implementations turn a
// posting's gap analysis into concrete resume edits; the pipeline works fine
// without one.
package ai

import (
	"context"

	"jobscout/internal/gaps"
	"jobscout/internal/posting"
)

// Advice is posting-specific remediation for one scoring bucket.
type Advice struct {
	Bucket     string
	Suggestion string
	Bullet     string
	Raw        string
}

// Advisor produces tailored resume advice for a posting's gaps.
type Advisor interface {
	Advise(ctx context.Context, p *posting.Posting, entries []gaps.Entry, resumeText string) ([]Advice, error)
}
