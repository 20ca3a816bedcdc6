package analysis

import "math"

// Aggregate reduces violations and deviations into an overall risk score,
// a recommendation tier and a critical-issues digest.
type Aggregate struct {
	RiskScore           int
	LegalViolationCount int
	UnfairTermCount     int
	Recommendation      string
	CriticalIssues      []string
}

// Weights for the score combination. Void/illegal violations dominate,
// unfair terms count less, quantified deviations least.
const (
	legalWeight     = 1.4
	unfairWeight    = 0.8
	deviationWeight = 0.5
	scoreCurve      = 250.0
)

// Aggregator folds detector and comparator output into the final verdict.
type Aggregator struct {
	heuristics Heuristics
}

func NewAggregator(h Heuristics) *Aggregator {
	return &Aggregator{heuristics: h}
}

// Aggregate computes the overall score on [0,100] with an asymptotic curve so
// many minor findings saturate rather than overflow. The critical override
// keeps a single catastrophic violation from being diluted: any violation at
// or above the critical threshold forces the score to at least the floor.
func (a *Aggregator) Aggregate(violations []Violation, deviations []Deviation) Aggregate {
	var raw float64
	agg := Aggregate{}
	maxSeverity := 0
	legalMax := 0

	for _, v := range violations {
		switch v.Category {
		case CategoryLegal:
			raw += float64(v.Severity) * legalWeight
			agg.LegalViolationCount++
			if v.Severity > legalMax {
				legalMax = v.Severity
			}
		default:
			raw += float64(v.Severity) * unfairWeight
			agg.UnfairTermCount++
		}
		if v.Severity > maxSeverity {
			maxSeverity = v.Severity
		}
	}
	for _, d := range deviations {
		raw += float64(d.Severity) * deviationWeight
	}

	score := int(math.Round(100 * raw / (raw + scoreCurve)))
	if maxSeverity >= a.heuristics.CriticalThreshold && score < a.heuristics.CriticalFloor {
		score = a.heuristics.CriticalFloor
	}
	if score > 100 {
		score = 100
	}
	agg.RiskScore = score

	switch {
	case score >= 70 || legalMax >= 85:
		agg.Recommendation = RecommendationReject
	case score >= 35 || len(deviations) > 0:
		agg.Recommendation = RecommendationNegotiate
	default:
		agg.Recommendation = RecommendationSign
	}

	agg.CriticalIssues = criticalIssues(violations)
	return agg
}

// criticalIssues lists the labels of violations at severity 70 or above,
// deduplicated, in severity order. Violations arrive already sorted.
func criticalIssues(violations []Violation) []string {
	var issues []string
	seen := make(map[string]bool)
	for _, v := range violations {
		if v.Severity < 70 || seen[v.Label] {
			continue
		}
		seen[v.Label] = true
		issues = append(issues, v.Label)
	}
	return issues
}
