// Package sanitizer normalizes free-text portal input before validation and
// storage. All functions are idempotent and return their input-shaped zero
// value rather than an error on garbage input.
package sanitizer

import (
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// TrimAndNormalize trims and collapses internal whitespace runs to a single
// space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeName cleans a person or school name.
func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeNote cleans a free-text note (lock reasons, cancellation reasons,
// ticket bodies).
func NormalizeNote(note string) string {
	return TrimAndNormalize(note)
}

// NormalizeSchoolCode upper-cases a ministry school code and strips
// whitespace.
func NormalizeSchoolCode(code string) string {
	p := Pipeline{
		TrimAndNormalize,
		func(s string) string { return strings.ReplaceAll(s, " ", "") },
		strings.ToUpper,
	}
	return p.Apply(code)
}

// Schools register Malaysian numbers; other regions are accepted when dialed
// in full international form.
var phoneRegions = []string{"MY"}

// SanitizePhone formats a phone number to E.164. Returns "" when the number
// cannot be parsed for any supported region.
func SanitizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	for _, region := range phoneRegions {
		parsed, err := phonenumbers.Parse(phone, region)
		if err != nil {
			continue
		}
		if phonenumbers.IsValidNumber(parsed) {
			return phonenumbers.Format(parsed, phonenumbers.E164)
		}
	}
	return ""
}
