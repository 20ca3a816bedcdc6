package analysis

import "regexp"

// RedactionResult reports what Redact removed.
type RedactionResult struct {
	RedactedText  string   `json:"redacted_text"`
	RedactedCount int      `json:"redacted_count"`
	RedactedTypes []string `json:"redacted_types"`
}

type piiCategory struct {
	name        string
	pattern     *regexp.Regexp
	placeholder string
}

// Categories are applied in fixed order. Longer numeric formats run before
// shorter ones so a 12-digit Aadhaar is never half-eaten by the phone
// pattern. Placeholders contain no digits or @, so redaction is idempotent.
var piiCategories = []piiCategory{
	{
		name:        "ssn",
		pattern:     regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
		placeholder: "[SSN_REDACTED]",
	},
	{
		name:        "aadhaar",
		pattern:     regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`),
		placeholder: "[AADHAAR_REDACTED]",
	},
	{
		name:        "pan",
		pattern:     regexp.MustCompile(`\b[A-Z]{5}\d{4}[A-Z]\b`),
		placeholder: "[PAN_REDACTED]",
	},
	{
		name:        "phone",
		pattern:     regexp.MustCompile(`(?:\+91[\s-]?)?[6-9]\d{9}\b`),
		placeholder: "[PHONE_REDACTED]",
	},
	{
		name:        "email",
		pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		placeholder: "[EMAIL_REDACTED]",
	},
}

// Redact replaces personally identifying substrings with fixed placeholders.
// Pure function; malformed input yields zero matches, never an error.
func Redact(text string) RedactionResult {
	result := RedactionResult{RedactedText: text}
	for _, cat := range piiCategories {
		matches := cat.pattern.FindAllStringIndex(result.RedactedText, -1)
		if len(matches) == 0 {
			continue
		}
		result.RedactedCount += len(matches)
		result.RedactedTypes = append(result.RedactedTypes, cat.name)
		result.RedactedText = cat.pattern.ReplaceAllString(result.RedactedText, cat.placeholder)
	}
	return result
}

// ContainsPII reports whether any PII category matches, short-circuiting on
// the first hit.
func ContainsPII(text string) bool {
	for _, cat := range piiCategories {
		if cat.pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// DetectTypes reports which PII categories are present without mutating the
// input.
func DetectTypes(text string) []string {
	var types []string
	for _, cat := range piiCategories {
		if cat.pattern.MatchString(text) {
			types = append(types, cat.name)
		}
	}
	return types
}
