package types

import (
	"regexp"
	"strings"
)

// MinPlateSearchLength is the shortest normalized plate fragment worth a
// lookup; anything shorter is a no-op to keep typeahead from hammering the
// database.
const MinPlateSearchLength = 3

var plateCharset = regexp.MustCompile(`^[A-Z0-9]+$`)

// NormalizePlate uppercases a plate and strips spaces and dashes so that
// "ab-123 cd" and "AB123CD" compare equal. Cars store the normalized form;
// reports keep the raw string as typed alongside it.
func NormalizePlate(plate string) string {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	plate = strings.ReplaceAll(plate, " ", "")
	plate = strings.ReplaceAll(plate, "-", "")
	return plate
}

// ValidPlate reports whether a normalized plate contains only plate
// characters and a plausible length.
func ValidPlate(plate string) bool {
	if len(plate) < 2 || len(plate) > 12 {
		return false
	}
	return plateCharset.MatchString(plate)
}

var likeEscaper = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`_`, `\_`,
)

// EscapeLike escapes LIKE metacharacters so user input cannot inject
// wildcards into a pattern filter. Backslash first, then % and _.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
