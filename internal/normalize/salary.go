package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// salaryRange matches "$180,000 - $220,000", "$180K–$220K" and similar
// forms. Currency symbol is required to avoid matching years or headcounts.
var salaryRange = regexp.MustCompile(
	`[$£€]\s?(\d{1,3}(?:,\d{3})+|\d{2,3})(k|K)?\s*(?:-|–|—|to|and)\s*[$£€]?\s?(\d{1,3}(?:,\d{3})+|\d{2,3})(k|K)?`,
)

// ExtractSalary pulls a normalized salary range out of free text. Multiple
// ranges (base at several locations) merge into overall min and max. Returns
// "" when no range is found.
func ExtractSalary(text string) string {
	matches := salaryRange.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return ""
	}

	min, max := 0, 0
	for _, m := range matches {
		lo := parseAmount(m[1], m[2] != "")
		hi := parseAmount(m[3], m[4] != "")
		if lo == 0 || hi == 0 || hi < lo {
			continue
		}
		if min == 0 || lo < min {
			min = lo
		}
		if hi > max {
			max = hi
		}
	}
	if min == 0 || max == 0 {
		return ""
	}
	return fmt.Sprintf("$%s - $%s", formatAmount(min), formatAmount(max))
}

func parseAmount(digits string, thousands bool) int {
	n, err := strconv.Atoi(strings.ReplaceAll(digits, ",", ""))
	if err != nil {
		return 0
	}
	if thousands {
		n *= 1000
	}
	// Plausibility window for annual compensation.
	if n < 20000 || n > 2000000 {
		return 0
	}
	return n
}

func formatAmount(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}
