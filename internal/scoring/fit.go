package scoring

// BucketScore records one bucket's contribution to a posting's fit.
type BucketScore struct {
	Bucket  string   `json:"bucket"`
	Points  int      `json:"points"`
	Max     int      `json:"max"`
	Matched []string `json:"matched,omitempty"`
}

// maxFit caps the total fit score.
const maxFit = 100

// Fit scores a posting's title and description against the configured
// buckets. Each bucket contributes its full weight once any of its patterns
// matches; the total is capped at 100 and the breakdown always sums to the
// returned fit.
func (c *Config) Fit(title, description string) (int, []BucketScore) {
	text := title + "\n" + description

	total := 0
	breakdown := make([]BucketScore, 0, len(c.Buckets))
	for i := range c.Buckets {
		b := &c.Buckets[i]
		hits := b.Match(text)

		points := 0
		if len(hits) > 0 {
			points = b.Weight
			if remaining := maxFit - total; points > remaining {
				points = remaining
			}
		}
		total += points

		breakdown = append(breakdown, BucketScore{
			Bucket:  b.Name,
			Points:  points,
			Max:     b.Weight,
			Matched: hits,
		})
	}
	return total, breakdown
}

// AIBucketMatched reports whether the Today-gating bucket contributed points.
func (c *Config) AIBucketMatched(breakdown []BucketScore) bool {
	for _, bs := range breakdown {
		if bs.Bucket == c.AIBucket {
			return len(bs.Matched) > 0
		}
	}
	return false
}
