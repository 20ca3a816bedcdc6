package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestComparator() *Comparator {
	return NewComparator(NewRuleSet())
}

func TestCompareDeviations_NumericDistance(t *testing.T) {
	c := newTestComparator()
	text := "Payment shall be made within 90 days of invoice."

	deviations := c.CompareDeviations(text, []string{"payment_delay"})
	require.Len(t, deviations, 1)

	d := deviations[0]
	assert.Equal(t, "payment_delay", d.Type)
	assert.Equal(t, "90 days", d.FoundValue)
	assert.Equal(t, "30 days", d.FairValue)
	// |90-30| days at 1 severity point per day.
	assert.Equal(t, 60, d.Severity)
}

func TestCompareDeviations_YearsNormalizedToMonths(t *testing.T) {
	c := newTestComparator()
	text := "The Contractor shall not work for any competing business for a period of 2 years."

	deviations := c.CompareDeviations(text, []string{"non_compete"})
	require.Len(t, deviations, 1)

	d := deviations[0]
	assert.Equal(t, "24 months", d.FoundValue)
	assert.Equal(t, "0 months", d.FairValue)
	assert.Equal(t, 96, d.Severity)
}

func TestCompareDeviations_ExtractionFailureDegradesGracefully(t *testing.T) {
	c := newTestComparator()
	text := "The Contractor shall provide unlimited revisions at no additional cost until the client approves."

	deviations := c.CompareDeviations(text, []string{"unlimited_revisions"})
	require.Len(t, deviations, 1)

	d := deviations[0]
	// No number to extract: falls back to quoting the clause at the rule's
	// base weight.
	assert.Contains(t, d.FoundValue, "unlimited revisions")
	assert.Equal(t, 75, d.Severity)
}

func TestCompareDeviations_SeverityClamped(t *testing.T) {
	c := newTestComparator()
	text := "Payment shall be made within 900 days of invoice."

	deviations := c.CompareDeviations(text, []string{"payment_delay"})
	require.Len(t, deviations, 1)
	assert.Equal(t, 100, deviations[0].Severity)
}

func TestCompareDeviations_UnknownTypeSkipped(t *testing.T) {
	c := newTestComparator()
	deviations := c.CompareDeviations("whatever", []string{"one_sided_indemnity"})
	assert.Empty(t, deviations)
}

func TestCompareDeviations_DeduplicatesTypesPreservingOrder(t *testing.T) {
	c := newTestComparator()
	text := "Payment within 90 days. A non-compete for a period of 24 months applies."

	deviations := c.CompareDeviations(text, []string{"non_compete", "payment_delay", "non_compete"})
	require.Len(t, deviations, 2)
	assert.Equal(t, "non_compete", deviations[0].Type)
	assert.Equal(t, "payment_delay", deviations[1].Type)
}
