// internal/ident/ident.go
//
// Path-segment classifier.
//
// Context
// -------
// Every practice site lives under one path segment, e.g. "/67" or "/DEMO"
// or "/-DEMO-".  The segment is either the canonical numeric practice id
// or a human-friendly customer code.  Classify decides which, in this
// order:
//
//  1. Dash-wrapped ("-DEMO-")             → CustomerCode.
//  2. Alphanumeric, all digits ("67")     → NumericID.
//  3. Alphanumeric, anything else ("E07") → CustomerCode.
//  4. Anything else ("a.b", "", "x y")    → Invalid.
//
// Notes
// -----
//   - Invalid is never folded into NumericID.  Callers answer it with a
//     not-found page.
//   - Pure functions, no logging.
package ident

import (
	"regexp"
	"strings"
)

// Kind is the classification result.
type Kind int

const (
	Invalid Kind = iota
	NumericID
	CustomerCode
)

func (k Kind) String() string {
	switch k {
	case NumericID:
		return "numeric_id"
	case CustomerCode:
		return "customer_code"
	default:
		return "invalid"
	}
}

var (
	dashWrapped  = regexp.MustCompile(`^-.+-$`)
	alphanumeric = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	digitsOnly   = regexp.MustCompile(`^\d+$`)
)

// Identifier is the raw segment plus its kind.  Immutable, one per request.
type Identifier struct {
	Raw  string
	Kind Kind
}

// Classify maps a raw path segment to an Identifier.
func Classify(raw string) Identifier {
	switch {
	case dashWrapped.MatchString(raw):
		return Identifier{Raw: raw, Kind: CustomerCode}
	case alphanumeric.MatchString(raw):
		if digitsOnly.MatchString(raw) {
			return Identifier{Raw: raw, Kind: NumericID}
		}
		return Identifier{Raw: raw, Kind: CustomerCode}
	default:
		return Identifier{Raw: raw, Kind: Invalid}
	}
}

// IsNumeric reports whether s is a non-empty run of ASCII digits.
func IsNumeric(s string) bool { return digitsOnly.MatchString(s) }

// Code returns the normalised customer code.  Only meaningful when Kind is
// CustomerCode.
func (i Identifier) Code() string { return NormalizeCode(i.Raw) }

// NormalizeCode strips surrounding whitespace and dashes and upper-cases
// the rest, so "-demo-" and "DEMO" compare equal.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.Trim(strings.TrimSpace(code), "-"))
}
