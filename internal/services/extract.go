package services

import (
	"regexp"
	"strings"
)

// The assistant is prompted to embed structured directives in its free-text
// replies: [SYMPTOMS: a, b, c], [SPECIALIST: name], [URGENT: true]. Only the
// first SYMPTOMS/SPECIALIST occurrence counts; URGENT matches case-
// insensitively. Extracted values are untrusted and must be validated against
// the catalog before use.
var (
	symptomsPattern   = regexp.MustCompile(`\[SYMPTOMS:\s*([^\]]+)\]`)
	specialistPattern = regexp.MustCompile(`\[SPECIALIST:\s*([^\]]+)\]`)
	urgentPattern     = regexp.MustCompile(`(?i)\[URGENT:\s*true\]`)
	anyDirective      = regexp.MustCompile(`\[(?:SYMPTOMS|SPECIALIST|URGENT):[^\]]+\]`)
)

// ExtractSymptoms returns the lower-cased symptom names from the first
// SYMPTOMS directive, or an empty slice when the directive is absent.
func ExtractSymptoms(text string) []string {
	m := symptomsPattern.FindStringSubmatch(text)
	if m == nil {
		return []string{}
	}
	parts := strings.Split(m[1], ",")
	symptoms := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.ToLower(strings.TrimSpace(p)); s != "" {
			symptoms = append(symptoms, s)
		}
	}
	return symptoms
}

// ExtractSpecialist returns the specialist name from the first SPECIALIST
// directive, or "" when absent.
func ExtractSpecialist(text string) string {
	m := specialistPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// IsUrgent reports whether the text carries an [URGENT: true] marker.
func IsUrgent(text string) bool {
	return urgentPattern.MatchString(text)
}

// StripDirectives removes every directive pattern from the display text,
// whether or not it parsed, and trims surrounding whitespace.
func StripDirectives(text string) string {
	return strings.TrimSpace(anyDirective.ReplaceAllString(text, ""))
}
