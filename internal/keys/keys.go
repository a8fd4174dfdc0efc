package keys

import (
	"strconv"
	"strings"
)

// NarrationKey produces a canonical cache key for a flavor-text request:
// phase and atmosphere are trimmed, lower-cased and joined with the day
// number. Suitable for stable DB keys, e.g. "night_intro:3:tense".
func NarrationKey(phase string, day int, atmosphere string) string {
	norm := func(s string) string {
		s = strings.TrimSpace(strings.ToLower(s))
		return strings.ReplaceAll(s, " ", "_")
	}
	return norm(phase) + ":" + strconv.Itoa(day) + ":" + norm(atmosphere)
}
