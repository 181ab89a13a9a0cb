package note

import "time"

// Document is the top-level shape of a Risk Note file: a single required
// risk_note key containing the note itself.
type Document struct {
	// RiskNote is the assurance artifact carried by the document.
	RiskNote RiskNote `yaml:"risk_note" json:"risk_note"`
}

// RiskNote is one safety-assurance artifact. It is immutable once parsed
// and validated; engine components only project it, never mutate it.
type RiskNote struct {
	// Identity identifies and versions the note.
	Identity Identity `yaml:"identity" json:"identity"`

	// Scope bounds the operating conditions under which the claim holds.
	Scope Scope `yaml:"scope" json:"scope"`

	// Claim is the quantitative safety claim being argued.
	Claim Claim `yaml:"claim" json:"claim"`

	// Evidence lists the sources supporting the claim.
	Evidence Evidence `yaml:"evidence" json:"evidence"`

	// Uncertainty is the ledger of known uncertainty sources.
	Uncertainty Uncertainty `yaml:"uncertainty" json:"uncertainty"`

	// Triage holds the quantitative triage inputs and the advisory posture
	// recorded at authoring time. Gating always recomputes the posture from
	// severity, exploitability, and reversibility; the stored value may lag.
	Triage Triage `yaml:"triage" json:"triage"`

	// Controls maps each control class to its ordered controls.
	Controls map[ControlClass][]Control `yaml:"controls" json:"controls"`

	// NextInvestigation is the proposed follow-up investigation.
	NextInvestigation NextInvestigation `yaml:"next_investigation" json:"next_investigation"`
}

// Identity identifies one Risk Note. ID and Version together are unique
// within any collection the engine ranks or audits.
type Identity struct {
	// ID is the stable identifier of the note.
	ID string `yaml:"id" json:"id"`

	// Version is the semantic version of this revision of the note.
	Version string `yaml:"version" json:"version"`

	// Created is the authoring timestamp of this revision.
	Created time.Time `yaml:"created" json:"created"`

	// Author is the person or team accountable for the note.
	Author string `yaml:"author" json:"author"`
}

// Scope describes where and for how long the claim is intended to hold.
type Scope struct {
	// OperatingConditions describes the environments the claim covers.
	OperatingConditions string `yaml:"operating_conditions" json:"operating_conditions"`

	// InputDistribution describes the input population the claim covers.
	InputDistribution string `yaml:"input_distribution" json:"input_distribution"`

	// TemporalValidity is the ISO-8601 duration for which the claim stays
	// valid after Created (e.g., "P90D"). Must parse to a non-negative
	// duration.
	TemporalValidity string `yaml:"temporal_validity" json:"temporal_validity"`
}

// Claim is the quantitative safety claim.
type Claim struct {
	// HazardClass names the hazard the claim bounds. Hazard taxonomies vary
	// by deployment, so this is an open string rather than a closed enum.
	HazardClass string `yaml:"hazard_class" json:"hazard_class"`

	// Threshold is the claimed bound on the hazard metric.
	Threshold float64 `yaml:"threshold" json:"threshold"`

	// CredibleInterval is the [low, high] interval around the estimate,
	// with low <= high.
	CredibleInterval []float64 `yaml:"credible_interval" json:"credible_interval"`

	// ShiftBudget is the tolerated distribution shift before the claim must
	// be reassessed. Must be >= 0.
	ShiftBudget float64 `yaml:"shift_budget" json:"shift_budget"`

	// FailureCriteria are the ordered conditions under which the claim is
	// considered defeated.
	FailureCriteria []string `yaml:"failure_criteria" json:"failure_criteria"`
}

// Evidence groups the evidence sources of a note.
type Evidence struct {
	// Sources is the ordered list of evidence sources.
	Sources []Source `yaml:"sources" json:"sources"`
}

// Source is one piece of evidence supporting the claim.
type Source struct {
	// ID is unique within the note.
	ID string `yaml:"id" json:"id"`

	// Title is a human-readable name for the source.
	Title string `yaml:"title" json:"title"`

	// URI locates the source artifact (URL, file path, or locator).
	URI string `yaml:"uri" json:"uri"`

	// Type is the kind of evidence (e.g., "eval_run", "audit", "redteam").
	Type string `yaml:"type" json:"type"`

	// Created is when the evidence was produced. Freshness checks compare
	// it against a caller-supplied maximum age.
	Created time.Time `yaml:"created" json:"created"`
}

// Uncertainty is the ledger of known uncertainty sources for a note.
type Uncertainty struct {
	// Entries is the ordered list of ledger entries. Contributions need not
	// sum to 1: sources are independent, not disjoint, and the engine never
	// normalizes them.
	Entries []UncertaintyEntry `yaml:"entries" json:"entries"`
}

// UncertaintyEntry is one recorded source of uncertainty.
type UncertaintyEntry struct {
	// ID is unique within the note.
	ID string `yaml:"id" json:"id"`

	// Type classifies the uncertainty as epistemic or aleatory.
	Type UncertaintyType `yaml:"type" json:"type"`

	// Location names where in the pipeline the uncertainty enters.
	Location string `yaml:"location" json:"location"`

	// Contribution is this entry's share of total uncertainty, in [0, 1].
	Contribution float64 `yaml:"contribution" json:"contribution"`

	// Description explains the entry.
	Description string `yaml:"description" json:"description"`
}

// Triage holds the quantitative triage inputs of a note. Each input is an
// integer in [1, 5].
type Triage struct {
	// Severity grades the worst credible impact of the hazard.
	Severity int `yaml:"severity" json:"severity"`

	// Exploitability grades how easily the hazard can be triggered.
	Exploitability int `yaml:"exploitability" json:"exploitability"`

	// Reversibility grades how completely the impact can be undone.
	// Lower values mean harder to reverse.
	Reversibility int `yaml:"reversibility" json:"reversibility"`

	// Posture is the advisory posture recorded when the note was authored.
	// Callers must not assume it matches the recomputed value.
	Posture Posture `yaml:"posture" json:"posture"`
}

// Control is one mitigating control.
type Control struct {
	// ID is unique within the note.
	ID string `yaml:"id" json:"id"`

	// Description explains what the control does.
	Description string `yaml:"description" json:"description"`

	// Owner is accountable for the control.
	Owner string `yaml:"owner" json:"owner"`

	// Status is the deployment state of the control (e.g., "active",
	// "planned").
	Status string `yaml:"status" json:"status"`
}

// NextInvestigation is the proposed follow-up investigation for a note.
type NextInvestigation struct {
	// Experiment describes the investigation to run.
	Experiment string `yaml:"experiment" json:"experiment"`

	// EVOIScore is the expected value of information of running it. Must be
	// >= 0.
	EVOIScore float64 `yaml:"evoi_score" json:"evoi_score"`

	// ResourceEstimate is the ISO-8601 duration of effort required
	// (e.g., "PT16H").
	ResourceEstimate string `yaml:"resource_estimate" json:"resource_estimate"`
}
