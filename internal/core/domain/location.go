package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeLocation trims and lower-cases a location name the way stored
// preferences are normalized.
func NormalizeLocation(s string) string {
	// a Caser keeps state, so one is built per call
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}
