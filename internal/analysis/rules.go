package analysis

import "regexp"

// RuleSet is the compiled rule catalog, built once at startup and passed by
// reference into the pipeline components.
type RuleSet struct {
	Rules  []ViolationRule
	byType map[string]*ViolationRule
}

func NewRuleSet() *RuleSet {
	rs := &RuleSet{Rules: defaultRules(), byType: make(map[string]*ViolationRule)}
	for i := range rs.Rules {
		rs.byType[rs.Rules[i].Type] = &rs.Rules[i]
	}
	return rs
}

// Lookup returns the rule for a violation type, or nil.
func (rs *RuleSet) Lookup(violationType string) *ViolationRule {
	return rs.byType[violationType]
}

func mustCompile(patterns ...string) []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

func defaultRules() []ViolationRule {
	return []ViolationRule{
		{
			Type:     "non_compete",
			Label:    "Non-compete restriction",
			Category: CategoryLegal,
			Patterns: mustCompile(
				`shall not\s+(?:work|provide services|engage|consult)\s+(?:for|with)\s+any\s+(?:other|competing)`,
				`non[\s-]?compete`,
				`restrained from\s+(?:engaging|working|carrying on)`,
			),
			BaseSeverity:    85,
			Citation:        "Indian Contract Act, 1872, Section 27",
			Explanation:     "Agreements restraining a person from exercising a lawful profession, trade or business are void. A non-compete that outlives the engagement is unenforceable against a freelancer.",
			FairAlternative: "Limit the restriction to non-solicitation of the client's named customers during the engagement only.",
		},
		{
			Type:     "unlimited_liability",
			Label:    "Unlimited liability",
			Category: CategoryLegal,
			Patterns: mustCompile(
				`unlimited liability`,
				`liable for\s+(?:any and all|all)\s+(?:losses|damages|claims|costs)`,
				`without\s+(?:any\s+)?(?:limit|cap)\s+(?:on|to)\s+liability`,
			),
			BaseSeverity:    90,
			Citation:        "Indian Contract Act, 1872, Sections 73-74",
			Explanation:     "Liability without a cap exposes the freelancer to losses far beyond the contract value. Damages are limited to losses naturally arising from the breach, not open-ended exposure.",
			FairAlternative: "Cap aggregate liability at the total fees paid under this agreement, excluding gross negligence and wilful misconduct.",
		},
		{
			Type:     "termination_without_notice",
			Label:    "Termination without notice",
			Category: CategoryUnfair,
			Patterns: mustCompile(
				`terminate\s+(?:this\s+)?(?:agreement|contract|engagement)[^.]{0,80}?without\s+(?:any\s+)?(?:prior\s+)?notice`,
				`terminate\s+(?:at\s+any\s+time\s+)?(?:at\s+its\s+sole\s+discretion|for\s+any\s+reason\s+or\s+no\s+reason)`,
				`immediate termination\s+without\s+cause`,
			),
			BaseSeverity:    70,
			Explanation:     "One-sided termination without notice leaves work-in-progress unpaid and gives the freelancer no time to wind down or replace the income.",
			FairAlternative: "Either party may terminate with 30 days written notice; work completed up to the termination date is payable.",
		},
		{
			Type:     "payment_delay",
			Label:    "Delayed payment terms",
			Category: CategoryUnfair,
			Patterns: mustCompile(
				`payment\s+(?:shall\s+be\s+made\s+|due\s+)?within\s+(?:sixty|ninety|60|90|120)\s+days`,
				`net\s+(?:60|90|120)`,
				`payment\s+(?:subject\s+to|upon|conditional\s+on)\s+(?:client|customer)\s+satisfaction`,
			),
			BaseSeverity:    65,
			Citation:        "MSMED Act, 2006, Section 15",
			Explanation:     "Payment windows beyond 45 days, or payment conditioned on subjective satisfaction, shift the client's cash-flow risk onto the freelancer.",
			FairAlternative: "Invoices are payable within 30 days of receipt; acceptance criteria are objective and agreed in writing.",
		},
		{
			Type:     "unlimited_revisions",
			Label:    "Unlimited free revisions",
			Category: CategoryUnfair,
			Patterns: mustCompile(
				`unlimited\s+(?:revisions|changes|modifications|iterations)`,
				`revisions?\s+(?:at\s+no\s+(?:additional\s+)?(?:cost|charge)|free\s+of\s+(?:cost|charge))[^.]{0,60}?until\s+(?:the\s+)?client`,
				`as\s+many\s+revisions\s+as\s+(?:required|requested|necessary)`,
			),
			BaseSeverity:    75,
			Explanation:     "Unbounded revision obligations make the scope open-ended and the effective hourly rate arbitrarily low.",
			FairAlternative: "Two rounds of revisions are included; further revisions are billed at the agreed hourly rate.",
		},
		{
			Type:     "blanket_ip_assignment",
			Label:    "Blanket IP assignment",
			Category: CategoryUnfair,
			Patterns: mustCompile(
				`all\s+intellectual\s+property[^.]{0,120}?(?:shall\s+)?(?:vest\s+in|belong\s+to|be\s+assigned\s+to|be\s+the\s+(?:sole\s+)?property\s+of)`,
				`work\s+(?:made\s+)?for\s+hire`,
				`assigns?\s+all\s+(?:right,?\s+title\s+and\s+interest|rights)[^.]{0,80}?(?:in\s+perpetuity|worldwide|throughout\s+the\s+world)`,
			),
			BaseSeverity:    70,
			Citation:        "Copyright Act, 1957, Section 19",
			Explanation:     "A blanket assignment covering pre-existing work, tools and future creations transfers far more than the deliverables the client is paying for.",
			FairAlternative: "The client receives ownership of the final deliverables on full payment; the freelancer retains pre-existing materials and general-purpose tooling.",
		},
		{
			Type:     "one_sided_indemnity",
			Label:    "One-sided indemnification",
			Category: CategoryUnfair,
			Patterns: mustCompile(
				`(?:freelancer|contractor|consultant|service\s+provider)\s+(?:shall|agrees?\s+to)\s+indemnify(?:,?\s+defend)?(?:,?\s+and\s+hold\s+harmless)?`,
				`indemnify\s+and\s+hold\s+(?:the\s+)?(?:company|client)\s+harmless\s+(?:from|against)\s+(?:any\s+and\s+all|all)`,
			),
			BaseSeverity:    70,
			Explanation:     "An indemnity running only from the freelancer to the client, covering any and all claims, makes the freelancer the client's insurer.",
			FairAlternative: "Mutual indemnities limited to third-party claims arising from each party's own breach or negligence.",
		},
		{
			Type:     "moral_rights_waiver",
			Label:    "Moral rights waiver",
			Category: CategoryLegal,
			Patterns: mustCompile(
				`waives?\s+(?:all\s+)?(?:his|her|their|any)?\s*moral\s+rights`,
				`moral\s+rights[^.]{0,60}?(?:waived|relinquished|surrendered)`,
			),
			BaseSeverity:    75,
			Citation:        "Copyright Act, 1957, Section 57",
			Explanation:     "The author's special right to claim authorship and object to distortion survives assignment and cannot be fully waived by boilerplate.",
			FairAlternative: "Remove the waiver; agree instead on attribution practice for the deliverables.",
		},
		{
			Type:     "perpetual_confidentiality",
			Label:    "Perpetual confidentiality",
			Category: CategoryUnfair,
			Patterns: mustCompile(
				`confidential(?:ity)?[^.]{0,100}?(?:in\s+perpetuity|perpetual|indefinitely|for\s+all\s+time|survives?\s+(?:the\s+)?termination\s+(?:of\s+this\s+agreement\s+)?(?:forever|indefinitely))`,
				`obligations?\s+of\s+confidentiality\s+shall\s+(?:continue|survive)\s+(?:in\s+perpetuity|indefinitely|without\s+limit)`,
			),
			BaseSeverity:    60,
			Explanation:     "Confidentiality without an end date burdens the freelancer forever, including for information that is no longer sensitive.",
			FairAlternative: "Confidentiality obligations last two years after termination, with standard carve-outs for public or independently developed information.",
		},
		{
			Type:     "excessive_penalty",
			Label:    "Excessive penalty clause",
			Category: CategoryLegal,
			Patterns: mustCompile(
				`penalty\s+of\s+(?:rs\.?|inr|\$|usd)?\s*[\d,]+`,
				`liquidated\s+damages\s+of[^.]{0,60}?(?:per\s+day|per\s+week|for\s+each)`,
				`forfeits?\s+(?:all\s+)?(?:fees|payments|amounts)\s+(?:paid|due|owed)`,
			),
			BaseSeverity:    70,
			Citation:        "Indian Contract Act, 1872, Section 74",
			Explanation:     "Only reasonable compensation for actual loss is recoverable; a stipulated penalty untethered from real damage is not enforceable as written.",
			FairAlternative: "Replace the penalty with compensation for proven, direct losses capped at the fees for the affected deliverable.",
		},
		{
			Type:     "arbitrary_deductions",
			Label:    "Arbitrary payment deductions",
			Category: CategoryUnfair,
			Patterns: mustCompile(
				`deduct(?:ions?)?\s+from\s+(?:any\s+)?(?:payment|fees|invoice)[^.]{0,80}?(?:sole\s+discretion|as\s+it\s+deems\s+fit|without\s+(?:prior\s+)?(?:notice|consent))`,
				`withhold\s+payment[^.]{0,80}?(?:sole\s+discretion|for\s+any\s+reason)`,
			),
			BaseSeverity:    75,
			Explanation:     "Discretionary set-off lets the client unilaterally reprice completed work after the fact.",
			FairAlternative: "Deductions require written notice with an itemised basis and a 15-day opportunity to dispute.",
		},
		{
			Type:     "exclusive_engagement",
			Label:    "Exclusivity lock-in",
			Category: CategoryUnfair,
			Patterns: mustCompile(
				`shall\s+(?:work\s+)?exclusively\s+for\s+(?:the\s+)?(?:company|client)`,
				`shall\s+not\s+(?:accept|undertake|take\s+up)\s+(?:any\s+)?other\s+(?:work|assignments|engagements|projects)`,
			),
			BaseSeverity:    65,
			Explanation:     "Exclusivity converts an independent contractor into a dependent worker without employment protections or guaranteed volume.",
			FairAlternative: "Remove exclusivity; commit instead to agreed availability and delivery milestones.",
		},
	}
}
