package analysis

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Heuristics holds the tunable scoring constants. Defaults match the values
// the rule catalog was calibrated with; all of them can be overridden from
// configuration.
type Heuristics struct {
	KeywordBonus      int      `json:"keyword_bonus"`
	BonusKeywords     []string `json:"bonus_keywords"`
	CriticalThreshold int      `json:"critical_threshold"`
	CriticalFloor     int      `json:"critical_floor"`
}

func DefaultHeuristics() Heuristics {
	return Heuristics{
		KeywordBonus: 10,
		BonusKeywords: []string{
			"sole discretion",
			"unlimited",
			"perpetual",
			"irrevocable",
			"without notice",
			"absolute",
			"waive",
		},
		CriticalThreshold: 90,
		CriticalFloor:     85,
	}
}

// Detector applies the rule catalog to redacted text.
type Detector struct {
	rules      *RuleSet
	heuristics Heuristics
}

func NewDetector(rules *RuleSet, h Heuristics) *Detector {
	return &Detector{rules: rules, heuristics: h}
}

var sectionHeading = regexp.MustCompile(`(?im)^\s*(?:section|clause|article)\s+(\d+[A-Za-z]?(?:\.\d+)*)`)

// Detect scans the full text for all non-overlapping matches of every rule.
// Two rules may flag overlapping text; no dedup is performed since distinct
// legal theories can apply to the same clause. Output is sorted by descending
// severity, ties broken by ascending offset.
func (d *Detector) Detect(redactedText string) []Violation {
	if strings.TrimSpace(redactedText) == "" {
		return []Violation{}
	}

	var violations []Violation
	for i := range d.rules.Rules {
		rule := &d.rules.Rules[i]
		for _, pattern := range rule.Patterns {
			for _, loc := range pattern.FindAllStringIndex(redactedText, -1) {
				clause := expandToSentence(redactedText, loc[0], loc[1])
				violations = append(violations, Violation{
					Type:            rule.Type,
					Label:           rule.Label,
					Category:        rule.Category,
					ClauseText:      clause,
					Severity:        d.scoreSeverity(rule.BaseSeverity, clause),
					Section:         sectionRef(redactedText, loc[0]),
					Offset:          loc[0],
					Citation:        rule.Citation,
					Explanation:     rule.Explanation,
					FairAlternative: rule.FairAlternative,
				})
			}
		}
	}

	sort.SliceStable(violations, func(a, b int) bool {
		if violations[a].Severity != violations[b].Severity {
			return violations[a].Severity > violations[b].Severity
		}
		return violations[a].Offset < violations[b].Offset
	})
	if violations == nil {
		violations = []Violation{}
	}
	return violations
}

// scoreSeverity adjusts the rule's base weight with local keyword signals,
// clamped to [1,100].
func (d *Detector) scoreSeverity(base int, clause string) int {
	severity := base
	lower := strings.ToLower(clause)
	for _, kw := range d.heuristics.BonusKeywords {
		if strings.Contains(lower, kw) {
			severity += d.heuristics.KeywordBonus
		}
	}
	if severity > 100 {
		severity = 100
	}
	if severity < 1 {
		severity = 1
	}
	return severity
}

// expandToSentence widens a match to the enclosing sentence so the violation
// carries enough verbatim context to be shown on its own.
func expandToSentence(text string, start, end int) string {
	s := start
	for s > 0 {
		c := text[s-1]
		if c == '.' || c == '\n' || c == ';' {
			break
		}
		s--
	}
	e := end
	for e < len(text) {
		c := text[e]
		e++
		if c == '.' || c == '\n' || c == ';' {
			break
		}
	}
	return strings.TrimSpace(text[s:e])
}

// sectionRef names the nearest preceding numbered heading, falling back to a
// character offset.
func sectionRef(text string, offset int) string {
	best := ""
	for _, m := range sectionHeading.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > offset {
			break
		}
		best = text[m[2]:m[3]]
	}
	if best != "" {
		return "Section " + best
	}
	return fmt.Sprintf("offset %d", offset)
}
