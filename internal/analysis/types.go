package analysis

import (
	"regexp"
	"time"
)

// RuleCategory classifies what kind of defect a rule flags.
type RuleCategory string

const (
	// CategoryLegal marks clauses that are void or illegal under law.
	CategoryLegal RuleCategory = "legal"
	// CategoryUnfair marks clauses that are exploitative but not void.
	CategoryUnfair RuleCategory = "unfair"
)

// ViolationRule is one entry of the static rule catalog. Rules are compiled
// once at process start and read-only afterwards.
type ViolationRule struct {
	Type            string           `json:"type"`
	Label           string           `json:"label"`
	Category        RuleCategory     `json:"category"`
	Patterns        []*regexp.Regexp `json:"-"`
	BaseSeverity    int              `json:"base_severity"`
	Citation        string           `json:"citation,omitempty"`
	Explanation     string           `json:"explanation"`
	FairAlternative string           `json:"fair_alternative"`
}

// Violation is one rule match inside a document.
type Violation struct {
	Type            string       `json:"type"`
	Label           string       `json:"label"`
	Category        RuleCategory `json:"category"`
	ClauseText      string       `json:"clause_text"`
	Severity        int          `json:"severity"`
	Section         string       `json:"section"`
	Offset          int          `json:"offset"`
	Citation        string       `json:"citation,omitempty"`
	Explanation     string       `json:"explanation"`
	FairAlternative string       `json:"fair_alternative"`
}

// Deviation quantifies the gap between a contract term and its fair-standard
// counterpart.
type Deviation struct {
	Type           string `json:"type"`
	Label          string `json:"label"`
	FoundValue     string `json:"found_value"`
	FairValue      string `json:"fair_value"`
	Severity       int    `json:"severity"`
	Explanation    string `json:"explanation"`
	Recommendation string `json:"recommendation"`
}

// DocumentMeta describes the upstream-extracted document.
type DocumentMeta struct {
	Filename         string `json:"filename"`
	PageCount        int    `json:"page_count"`
	WordCount        int    `json:"word_count"`
	ExtractionMethod string `json:"extraction_method"`
}

// ViolationInsight is the model-generated elaboration for one violation.
type ViolationInsight struct {
	Type        string `json:"type"`
	Elaboration string `json:"elaboration"`
}

// AIAnalysis is the optional richer model-generated layer on top of the
// rule-based result.
type AIAnalysis struct {
	Summary        string             `json:"summary"`
	Insights       []ViolationInsight `json:"insights"`
	Recommendation string             `json:"recommendation"`
	CriticalIssues []string           `json:"critical_issues"`
}

// AnalysisResult is the aggregate output of one document submission.
type AnalysisResult struct {
	ID                  string        `json:"id"`
	Violations          []Violation   `json:"violations"`
	Deviations          []Deviation   `json:"deviations"`
	RiskScore           int           `json:"risk_score"`
	LegalViolationCount int           `json:"legal_violation_count"`
	UnfairTermCount     int           `json:"unfair_term_count"`
	Recommendation      string        `json:"recommendation"`
	CriticalIssues      []string      `json:"critical_issues"`
	AnalysisDuration    time.Duration `json:"analysis_duration_ns"`
	Document            DocumentMeta  `json:"document"`
	AIAnalysis          *AIAnalysis   `json:"ai_analysis,omitempty"`
	AIAnalysisAvailable bool          `json:"ai_analysis_available"`
	RedactedCount       int           `json:"redacted_count"`
	RedactedTypes       []string      `json:"redacted_types"`
	CreatedAt           time.Time     `json:"created_at"`
}

// Recommendation tiers.
const (
	RecommendationSign      = "sign"
	RecommendationNegotiate = "negotiate"
	RecommendationReject    = "reject"
)
