package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDetector() *Detector {
	return NewDetector(NewRuleSet(), DefaultHeuristics())
}

func TestDetect_EmptyInput(t *testing.T) {
	d := newTestDetector()
	assert.Empty(t, d.Detect(""))
	assert.Empty(t, d.Detect("   \n\t  "))
}

func TestDetect_TerminationAtSoleDiscretion(t *testing.T) {
	d := newTestDetector()
	violations := d.Detect("The Company may terminate this agreement at its sole discretion without notice.")

	require.NotEmpty(t, violations)
	v := violations[0]
	assert.Equal(t, "termination_without_notice", v.Type)
	// Base 70 plus the sole-discretion and without-notice bonuses.
	assert.GreaterOrEqual(t, v.Severity, 70)
	assert.Equal(t, 90, v.Severity)
	assert.Contains(t, v.ClauseText, "sole discretion")
}

func TestDetect_OrderedBySeverityThenOffset(t *testing.T) {
	d := newTestDetector()
	text := "Payment shall be made within 90 days of invoice. " +
		"The Contractor shall bear unlimited liability for all damages. " +
		"Payment shall be made within 120 days for change requests."
	violations := d.Detect(text)
	require.GreaterOrEqual(t, len(violations), 3)

	for i := 1; i < len(violations); i++ {
		prev, cur := violations[i-1], violations[i]
		assert.GreaterOrEqual(t, prev.Severity, cur.Severity)
		if prev.Severity == cur.Severity {
			assert.Less(t, prev.Offset, cur.Offset)
		}
	}
	assert.Equal(t, "unlimited_liability", violations[0].Type)
}

func TestDetect_SeverityBounds(t *testing.T) {
	d := newTestDetector()
	// Stacks every bonus keyword onto an already-severe rule.
	text := "The Contractor accepts unlimited liability, waives all claims, and agrees this is " +
		"absolute, perpetual and irrevocable, at the Company's sole discretion, without notice. " +
		"A non-compete applies. Unlimited revisions at no cost until the client approves. " +
		"The freelancer shall indemnify and hold the Company harmless from any and all claims."
	violations := d.Detect(text)
	require.NotEmpty(t, violations)
	for _, v := range violations {
		assert.GreaterOrEqual(t, v.Severity, 1)
		assert.LessOrEqual(t, v.Severity, 100)
	}
}

func TestDetect_NoDeduplicationAcrossRules(t *testing.T) {
	d := newTestDetector()
	// One clause that trips both the non-compete and exclusivity rules.
	text := "The Contractor shall not accept any other work and shall not work for any other competing business."
	violations := d.Detect(text)

	types := make(map[string]bool)
	for _, v := range violations {
		types[v.Type] = true
	}
	assert.True(t, types["non_compete"])
	assert.True(t, types["exclusive_engagement"])
}

func TestDetect_SectionReference(t *testing.T) {
	d := newTestDetector()
	text := "Section 4\nTermination.\nThe Company may terminate this agreement without notice."
	violations := d.Detect(text)

	require.NotEmpty(t, violations)
	assert.Equal(t, "Section 4", violations[0].Section)
}

func TestDetect_OffsetFallbackSection(t *testing.T) {
	d := newTestDetector()
	violations := d.Detect("The Company may terminate this agreement without notice.")
	require.NotEmpty(t, violations)
	assert.Contains(t, violations[0].Section, "offset")
}

func TestScoreSeverity_Clamped(t *testing.T) {
	d := newTestDetector()
	clause := "unlimited perpetual irrevocable absolute waive sole discretion without notice"
	assert.Equal(t, 100, d.scoreSeverity(95, clause))
	assert.Equal(t, 1, d.scoreSeverity(-20, "plain clause"))
}
