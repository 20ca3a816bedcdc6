package analysis

import "regexp"

// FairStandard is the canonical fair value for one violation type, plus the
// extraction rule that pulls the contract's actual term out of the text.
type FairStandard struct {
	Type           string
	Label          string
	FairValue      string
	FairNumeric    float64
	Unit           string
	Extract        *regexp.Regexp
	ScalePerUnit   float64
	StaticSeverity int
	Explanation    string
	Recommendation string
}

// FairStandards is keyed by violation type. Types without an entry produce no
// deviation; types whose extraction fails degrade to a qualitative comparison
// at the rule's base weight.
func FairStandards() map[string]FairStandard {
	return map[string]FairStandard{
		"payment_delay": {
			Type:           "payment_delay",
			Label:          "Payment window",
			FairValue:      "30 days",
			FairNumeric:    30,
			Unit:           "days",
			Extract:        regexp.MustCompile(`(?i)(?:within|net)\s+(\d+)\s*(?:days)?`),
			ScalePerUnit:   1.0,
			StaticSeverity: 65,
			Explanation:    "Invoices payable within 30 days is the accepted standard for independent contractors.",
			Recommendation: "Negotiate the payment window down to 30 days with late-payment interest thereafter.",
		},
		"termination_without_notice": {
			Type:           "termination_without_notice",
			Label:          "Termination notice period",
			FairValue:      "30 days",
			FairNumeric:    30,
			Unit:           "days",
			Extract:        regexp.MustCompile(`(?i)(\d+)\s*days'?\s+(?:prior\s+)?(?:written\s+)?notice`),
			ScalePerUnit:   2.5,
			StaticSeverity: 70,
			Explanation:    "A 30-day mutual notice period protects both sides' planning.",
			Recommendation: "Ask for a 30-day notice period with payment for work completed to date.",
		},
		"unlimited_revisions": {
			Type:           "unlimited_revisions",
			Label:          "Included revision rounds",
			FairValue:      "2 rounds",
			FairNumeric:    2,
			Unit:           "rounds",
			Extract:        regexp.MustCompile(`(?i)(\d+)\s*(?:rounds?\s+of\s+)?revisions?`),
			ScalePerUnit:   15,
			StaticSeverity: 75,
			Explanation:    "Two included revision rounds keeps scope bounded while leaving room for feedback.",
			Recommendation: "Cap included revisions at two rounds; bill further rounds hourly.",
		},
		"perpetual_confidentiality": {
			Type:           "perpetual_confidentiality",
			Label:          "Confidentiality duration",
			FairValue:      "24 months",
			FairNumeric:    24,
			Unit:           "months",
			Extract:        regexp.MustCompile(`(?i)(\d+)\s*(years?|months?)`),
			ScalePerUnit:   1.5,
			StaticSeverity: 60,
			Explanation:    "Two years after termination is the customary confidentiality tail for services work.",
			Recommendation: "Time-box confidentiality to 24 months post-termination with standard carve-outs.",
		},
		"non_compete": {
			Type:           "non_compete",
			Label:          "Post-engagement restraint",
			FairValue:      "0 months",
			FairNumeric:    0,
			Unit:           "months",
			Extract:        regexp.MustCompile(`(?i)(?:for\s+a\s+period\s+of\s+)?(\d+)\s*(years?|months?)`),
			ScalePerUnit:   4,
			StaticSeverity: 85,
			Explanation:    "Post-engagement restraints on a freelancer's trade are void; the fair duration is zero.",
			Recommendation: "Strike the non-compete; offer non-solicitation of named customers during the engagement instead.",
		},
		"excessive_penalty": {
			Type:           "excessive_penalty",
			Label:          "Breach penalty",
			FairValue:      "actual proven loss",
			StaticSeverity: 70,
			Explanation:    "Compensation is limited to reasonable, proven loss, not a stipulated penalty.",
			Recommendation: "Replace the penalty with compensation for direct, documented losses.",
		},
	}
}
