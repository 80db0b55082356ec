package algorithms

import (
	"regexp"
	"strconv"
	"strings"
)

// Matches "80000", "80,000", "95k", "1.5k" after currency symbols are
// stripped.
var salaryTokenRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(k?)`)

// ParseSalaryRange extracts a (min, max) pair from a free-text salary
// string: "$80,000 - $120,000" → (80000, 120000), "95k" → (95000,
// 95000). Returns ok=false when no number is present.
func ParseSalaryRange(raw string) (float64, float64, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, 0, false
	}
	s = strings.NewReplacer("$", "", ",", "", "usd", "", "per year", "", "/year", "", "p.a.", "").Replace(s)

	matches := salaryTokenRe.FindAllStringSubmatch(s, 2)
	if len(matches) == 0 {
		return 0, 0, false
	}

	values := make([]float64, 0, 2)
	for _, m := range matches {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if m[2] == "k" {
			v *= 1000
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return 0, 0, false
	}

	min := values[0]
	max := values[0]
	if len(values) > 1 {
		max = values[1]
		if max < min {
			min, max = max, min
		}
	}
	return min, max, true
}
