package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCaller struct {
	reply string
	err   error
	calls int
}

func (s *stubCaller) Call(ctx context.Context, prompt, system string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func newTestAnalyzer(caller LLMCaller) *Analyzer {
	return NewAnalyzer(NewRuleSet(), DefaultHeuristics(), caller)
}

const riskyContract = `Section 3
Termination. The Company may terminate this agreement at its sole discretion without notice.
Section 5
Payment. Payment shall be made within 90 days of invoice. Contact jane.doe@example.com or 9876543210.`

func TestAnalyze_EndToEnd(t *testing.T) {
	a := newTestAnalyzer(nil)
	result := a.Analyze(context.Background(), riskyContract, DocumentMeta{Filename: "contract.pdf", PageCount: 2})

	require.NotEmpty(t, result.Violations)
	assert.NotEmpty(t, result.Deviations)
	assert.Greater(t, result.RiskScore, 0)
	assert.NotEmpty(t, result.ID)
	assert.Greater(t, result.Document.WordCount, 0)
	assert.Equal(t, 2, result.Document.PageCount)

	// PII never reaches the violation records.
	for _, v := range result.Violations {
		assert.NotContains(t, v.ClauseText, "jane.doe@example.com")
		assert.NotContains(t, v.ClauseText, "9876543210")
	}
	assert.Equal(t, 2, result.RedactedCount)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	a := newTestAnalyzer(nil)
	result := a.Analyze(context.Background(), "", DocumentMeta{})

	assert.Empty(t, result.Violations)
	assert.Empty(t, result.Deviations)
	assert.Equal(t, 0, result.RiskScore)
	assert.Equal(t, RecommendationSign, result.Recommendation)
	assert.False(t, result.AIAnalysisAvailable)
}

func TestAnalyze_EnrichmentSuccess(t *testing.T) {
	caller := &stubCaller{reply: "This contract is heavily one-sided."}
	a := newTestAnalyzer(caller)
	result := a.Analyze(context.Background(), riskyContract, DocumentMeta{})

	require.True(t, result.AIAnalysisAvailable)
	require.NotNil(t, result.AIAnalysis)
	assert.Equal(t, "This contract is heavily one-sided.", result.AIAnalysis.Summary)
	assert.NotEmpty(t, result.AIAnalysis.Insights)
	assert.Equal(t, result.Recommendation, result.AIAnalysis.Recommendation)
}

func TestAnalyze_EnrichmentFailureKeepsRuleResult(t *testing.T) {
	caller := &stubCaller{err: errors.New("connection refused")}
	a := newTestAnalyzer(caller)
	result := a.Analyze(context.Background(), riskyContract, DocumentMeta{})

	assert.False(t, result.AIAnalysisAvailable)
	assert.Nil(t, result.AIAnalysis)
	assert.NotEmpty(t, result.Violations)
	assert.Greater(t, result.RiskScore, 0)
}

func TestAnalyze_NoEnrichmentWithoutViolations(t *testing.T) {
	caller := &stubCaller{reply: "unused"}
	a := newTestAnalyzer(caller)
	a.Analyze(context.Background(), "A perfectly reasonable agreement.", DocumentMeta{})

	assert.Equal(t, 0, caller.calls)
}
