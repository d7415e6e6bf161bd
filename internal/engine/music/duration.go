package music

import (
	"regexp"
	"strconv"
)

// durationRE is prefix-anchored: trailing garbage after a valid prefix is
// ignored, exactly like the upstream API never emits it. YouTube durations
// never carry day/week components or fractional seconds.
var durationRE = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// DecodeDuration converts an ISO-8601 duration to whole seconds.
// "PT4M30S" → 270. Anything not matching the PT shape decodes to 0;
// the result is never negative. Never fails.
func DecodeDuration(iso string) int {
	m := durationRE.FindStringSubmatch(iso)
	if m == nil {
		return 0
	}
	hours := atoiDefault(m[1])
	minutes := atoiDefault(m[2])
	seconds := atoiDefault(m[3])
	return hours*3600 + minutes*60 + seconds
}

func atoiDefault(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
