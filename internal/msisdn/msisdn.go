// Package msisdn classifies Indonesian mobile subscriber numbers.
package msisdn

import "regexp"

// The three accepted shapes are mutually exclusive: a string can match at
// most one of the prefixes 08, 628, +628.
var pattern = regexp.MustCompile(`^(08[1-9][0-9]{7,11}|628[1-9][0-9]{7,11}|\+628[1-9][0-9]{7,11})$`)

// Valid reports whether s is a well-formed MSISDN. Total: empty or garbage
// input yields false, never a panic.
func Valid(s string) bool {
	return pattern.MatchString(s)
}
