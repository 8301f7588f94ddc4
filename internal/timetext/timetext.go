// Package timetext normalizes recipe durations (ISO-8601 strings, free text,
// plain numbers) into integer minutes. Absence of a duration is a valid
// state, so unparseable input yields 0 rather than an error.
package timetext

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	isoRe    = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)
	hoursRe  = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:hours?|hrs?|h)\b`)
	minsRe   = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:minutes?|mins?|m)\b`)
	numberRe = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

// ParseISO converts an ISO-8601 duration ("PT1H30M", "P1D") to minutes.
// Input that does not match the pattern yields 0.
func ParseISO(duration string) int {
	m := isoRe.FindStringSubmatch(strings.TrimSpace(duration))
	if m == nil {
		return 0
	}
	days := atoi(m[1])
	hours := atoi(m[2])
	minutes := atoi(m[3])
	seconds := atoi(m[4])
	return days*1440 + hours*60 + minutes + int(math.Round(float64(seconds)/60))
}

// Minutes converts an arbitrary duration value to integer minutes. Numeric
// values pass through unchanged, ISO strings route to ParseISO, and free
// text matches "N hours" before "N minutes". No match yields 0.
func Minutes(value any) int {
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(math.Round(v))
	case string:
		return minutesFromString(v)
	default:
		return 0
	}
}

func minutesFromString(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.HasPrefix(s, "P") {
		return ParseISO(s)
	}
	if numberRe.MatchString(s) {
		f, _ := strconv.ParseFloat(s, 64)
		return int(math.Round(f))
	}
	// Hour match is tried before minute match; first match wins.
	if m := hoursRe.FindStringSubmatch(s); m != nil {
		return int(math.Round(parseNum(m[1]) * 60))
	}
	if m := minsRe.FindStringSubmatch(s); m != nil {
		return int(math.Round(parseNum(m[1])))
	}
	return 0
}

func parseNum(s string) float64 {
	f, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	return f
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
