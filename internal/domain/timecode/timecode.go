// Package timecode parses human time strings into second counts. It is the
// single parser shared by every component that accepts user timecodes.
package timecode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrParse marks a malformed timecode. Callers must abort the containing
// operation; a parse failure never defaults to a numeric value.
var ErrParse = errors.New("invalid timecode")

// Parse converts "H:MM:SS[.mmm]", "MM:SS[.mmm]" or "SS[.mmm]" into seconds.
// The fractional part is milliseconds, one to three digits.
func Parse(s string) (float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 1 || len(parts) > 3 {
		return 0, fmt.Errorf("%w %q: expected H:MM:SS, MM:SS or SS", ErrParse, s)
	}

	var total float64
	for _, p := range parts[:len(parts)-1] {
		n, err := parseWhole(p)
		if err != nil {
			return 0, fmt.Errorf("%w %q: %v", ErrParse, s, err)
		}
		total = total*60 + float64(n)
	}

	sec, err := parseSeconds(parts[len(parts)-1])
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrParse, s, err)
	}
	return total*60 + sec, nil
}

// Format renders seconds as HH:MM:SS for display; negative or unknown
// durations render as N/A.
func Format(seconds float64) string {
	if seconds < 0 {
		return "N/A"
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

func parseWhole(p string) (int, error) {
	if !isDigits(p) {
		return 0, fmt.Errorf("non-numeric component %q", p)
	}
	return strconv.Atoi(p)
}

// parseSeconds handles the final "SS" or "SS.mmm" component.
func parseSeconds(p string) (float64, error) {
	whole, frac, hasFrac := strings.Cut(p, ".")
	if !isDigits(whole) {
		return 0, fmt.Errorf("non-numeric seconds %q", p)
	}
	s, err := strconv.Atoi(whole)
	if err != nil {
		return 0, err
	}
	if !hasFrac {
		return float64(s), nil
	}
	if len(frac) < 1 || len(frac) > 3 || !isDigits(frac) {
		return 0, fmt.Errorf("malformed fractional part %q", p)
	}
	ms, err := strconv.Atoi(frac + strings.Repeat("0", 3-len(frac)))
	if err != nil {
		return 0, err
	}
	return float64(s) + float64(ms)/1000.0, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
