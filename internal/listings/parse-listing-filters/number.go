// internal/listings/parse-listing-filters/number.go
package parselistingfilters

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingDecimal = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseNumber reads the longest leading decimal literal of s, ignoring
// leading whitespace and any trailing garbage: "3.5abc" is 3.5, "12 beds" is
// 12. Anything without a numeric prefix, or that overflows, is 0.
func ParseNumber(s string) float64 {
	trimmed := strings.TrimLeft(s, " \t\n\r\v\f")
	lit := leadingDecimal.FindString(trimmed)
	if lit == "" {
		return 0
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}
