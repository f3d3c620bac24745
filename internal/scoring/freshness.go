package scoring

import "time"

// freshnessBreaks maps posting age to a freshness score. Breakpoints are
// inclusive upper bounds in hours, checked in order.
var freshnessBreaks = []struct {
	maxHours float64
	score    int
}{
	{6, 100},
	{24, 90},
	{48, 80},
	{72, 70},
	{168, 55},
	{336, 35},
	{720, 15},
}

const freshnessFloor = 5

// Freshness scores a posting by the age of its freshness reference. A nil
// reference scores zero: a posting with no known publish or repost time
// cannot claim to be fresh.
func Freshness(ref *time.Time, now time.Time) int {
	if ref == nil {
		return 0
	}
	age := now.UTC().Sub(ref.UTC()).Hours()
	if age < 0 {
		age = 0
	}
	for _, b := range freshnessBreaks {
		if age <= b.maxHours {
			return b.score
		}
	}
	return freshnessFloor
}

// ApplyRepostPenalty reduces a freshness score for reposted listings,
// clamping at zero.
func (c *Config) ApplyRepostPenalty(score int, reposted bool) int {
	if !reposted {
		return score
	}
	score -= c.RepostPenalty
	if score < 0 {
		return 0
	}
	return score
}
