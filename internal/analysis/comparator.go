package analysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Comparator measures how far detected terms sit from their fair-standard
// counterparts.
type Comparator struct {
	rules     *RuleSet
	templates map[string]FairStandard
}

func NewComparator(rules *RuleSet) *Comparator {
	return &Comparator{rules: rules, templates: FairStandards()}
}

// CompareDeviations produces one deviation per detected type that has a
// fair-standard template. detectedTypes preserves detector order, so the
// output order matches the violations for the same underlying match.
// Extraction failure is not an error: the deviation degrades to the raw
// clause text at the template's static severity.
func (c *Comparator) CompareDeviations(redactedText string, detectedTypes []string) []Deviation {
	var deviations []Deviation
	seen := make(map[string]bool)
	for _, t := range detectedTypes {
		if seen[t] {
			continue
		}
		seen[t] = true
		tmpl, ok := c.templates[t]
		if !ok {
			continue
		}
		deviations = append(deviations, c.compare(redactedText, tmpl))
	}
	if deviations == nil {
		deviations = []Deviation{}
	}
	return deviations
}

func (c *Comparator) compare(text string, tmpl FairStandard) Deviation {
	dev := Deviation{
		Type:           tmpl.Type,
		Label:          tmpl.Label,
		FairValue:      tmpl.FairValue,
		Severity:       tmpl.StaticSeverity,
		Explanation:    tmpl.Explanation,
		Recommendation: tmpl.Recommendation,
	}

	found, foundText, ok := c.extract(text, tmpl)
	if !ok {
		// Qualitative fallback: quote what the contract says.
		dev.FoundValue = fallbackFoundValue(text, tmpl.Type, c.rules)
		if rule := c.rules.Lookup(tmpl.Type); rule != nil {
			dev.Severity = rule.BaseSeverity
		}
		return dev
	}

	dev.FoundValue = foundText
	distance := math.Abs(found - tmpl.FairNumeric)
	severity := int(math.Round(distance * tmpl.ScalePerUnit))
	if severity > 100 {
		severity = 100
	}
	if severity < 0 {
		severity = 0
	}
	dev.Severity = severity
	return dev
}

// extract pulls a normalized numeric term out of the text. Year quantities
// are converted to months so found and fair values stay commensurable.
func (c *Comparator) extract(text string, tmpl FairStandard) (float64, string, bool) {
	if tmpl.Extract == nil {
		return 0, "", false
	}
	m := tmpl.Extract.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, "", false
	}
	unit := tmpl.Unit
	if len(m) > 2 && strings.HasPrefix(strings.ToLower(m[2]), "year") {
		n *= 12
		unit = "months"
	}
	return n, fmt.Sprintf("%g %s", n, unit), true
}

// fallbackFoundValue quotes the first clause the type's rule matched, so the
// comparison stays meaningful even without a number.
func fallbackFoundValue(text, violationType string, rules *RuleSet) string {
	rule := rules.Lookup(violationType)
	if rule == nil {
		return "unspecified"
	}
	for _, p := range rule.Patterns {
		if loc := p.FindStringIndex(text); loc != nil {
			return strings.TrimSpace(text[loc[0]:loc[1]])
		}
	}
	return "unspecified"
}
