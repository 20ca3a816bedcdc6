package analysis

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LLMCaller is the injected completion capability used for the optional
// richer analysis. Nil disables enrichment.
type LLMCaller interface {
	Call(ctx context.Context, prompt string, systemPrompt string) (string, error)
}

// Analyzer runs the full pipeline: redact, detect, compare, aggregate,
// optionally enrich. It holds only read-only state, so concurrent
// submissions are safe.
type Analyzer struct {
	rules      *RuleSet
	detector   *Detector
	comparator *Comparator
	aggregator *Aggregator
	llm        LLMCaller
}

func NewAnalyzer(rules *RuleSet, h Heuristics, llm LLMCaller) *Analyzer {
	return &Analyzer{
		rules:      rules,
		detector:   NewDetector(rules, h),
		comparator: NewComparator(rules),
		aggregator: NewAggregator(h),
		llm:        llm,
	}
}

// Analyze runs one document through the pipeline. Empty or whitespace-only
// input yields an empty-violation result, not an error; enrichment failures
// only clear the AI-analysis flag.
func (a *Analyzer) Analyze(ctx context.Context, text string, meta DocumentMeta) *AnalysisResult {
	start := time.Now()

	redaction := Redact(text)
	violations := a.detector.Detect(redaction.RedactedText)

	types := make([]string, 0, len(violations))
	for _, v := range violations {
		types = append(types, v.Type)
	}
	deviations := a.comparator.CompareDeviations(redaction.RedactedText, types)
	agg := a.aggregator.Aggregate(violations, deviations)

	if meta.WordCount == 0 {
		meta.WordCount = len(strings.Fields(text))
	}

	result := &AnalysisResult{
		ID:                  uuid.NewString(),
		Violations:          violations,
		Deviations:          deviations,
		RiskScore:           agg.RiskScore,
		LegalViolationCount: agg.LegalViolationCount,
		UnfairTermCount:     agg.UnfairTermCount,
		Recommendation:      agg.Recommendation,
		CriticalIssues:      agg.CriticalIssues,
		Document:            meta,
		RedactedCount:       redaction.RedactedCount,
		RedactedTypes:       redaction.RedactedTypes,
	}

	a.enrich(ctx, result, redaction.RedactedText)

	result.AnalysisDuration = time.Since(start)
	return result
}

// enrich layers the model-generated analysis on top of the rule-based
// result. Any failure leaves the rule-based result intact and marks the
// richer analysis unavailable.
func (a *Analyzer) enrich(ctx context.Context, result *AnalysisResult, redactedText string) {
	if a.llm == nil || len(result.Violations) == 0 {
		return
	}

	summary, err := a.llm.Call(ctx,
		fmt.Sprintf("Summarize the risk posture of this freelance contract in 3-4 sentences for a non-lawyer. It scored %d/100 with %d legally void clauses and %d unfair terms. Flagged clauses:\n%s",
			result.RiskScore, result.LegalViolationCount, result.UnfairTermCount, violationDigest(result.Violations)),
		"You are a legal assistant explaining contract risks in plain language.")
	if err != nil || summary == "" {
		log.Printf("analysis enrichment unavailable: %v", err)
		return
	}

	ai := &AIAnalysis{
		Summary:        summary,
		Recommendation: result.Recommendation,
		CriticalIssues: result.CriticalIssues,
	}

	for i, v := range result.Violations {
		if i >= 3 {
			break
		}
		elaboration, err := a.llm.Call(ctx,
			fmt.Sprintf("Explain in 2 sentences why this contract clause is a problem for a freelancer:\n%q", v.ClauseText),
			"You are a legal assistant explaining contract risks in plain language.")
		if err != nil {
			continue
		}
		ai.Insights = append(ai.Insights, ViolationInsight{Type: v.Type, Elaboration: elaboration})
	}

	result.AIAnalysis = ai
	result.AIAnalysisAvailable = true
}

func violationDigest(violations []Violation) string {
	var b strings.Builder
	for i, v := range violations {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "- [%s, severity %d] %s\n", v.Label, v.Severity, v.ClauseText)
	}
	return b.String()
}
