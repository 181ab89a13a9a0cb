package note

import (
	"fmt"
	"math"
	"regexp"

	sdk "github.com/lousa-ai/sdk"
)

// semverPattern matches the semantic-version strings accepted for
// identity.version (an optional pre-release/build suffix is allowed).
var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(?:[-+][0-9A-Za-z.\-+]+)?$`)

// Validate performs the semantic checks that the JSON Schema cannot
// express: duration syntax, interval ordering, identifier uniqueness, and
// finite numerics. It returns a complete sdk.ViolationList covering every
// defect found, or nil if the note is valid.
//
// Validate assumes the document already passed schema validation; it does
// not re-check required fields or basic types.
func (n *RiskNote) Validate() error {
	var list sdk.ViolationList

	n.validateIdentity(&list)
	n.validateScope(&list)
	n.validateClaim(&list)
	n.validateEvidence(&list)
	n.validateUncertainty(&list)
	n.validateTriage(&list)
	n.validateControls(&list)
	n.validateNextInvestigation(&list)

	return list.Err()
}

func (n *RiskNote) validateIdentity(list *sdk.ViolationList) {
	if n.Identity.ID == "" {
		list.Add("/risk_note/identity/id", "must not be empty")
	}
	if n.Identity.Version == "" {
		list.Add("/risk_note/identity/version", "must not be empty")
	} else if !semverPattern.MatchString(n.Identity.Version) {
		list.Add("/risk_note/identity/version", "%q is not a semantic version", n.Identity.Version)
	}
	if n.Identity.Created.IsZero() {
		list.Add("/risk_note/identity/created", "must be a valid timestamp")
	}
}

func (n *RiskNote) validateScope(list *sdk.ViolationList) {
	d, err := ParseISODuration(n.Scope.TemporalValidity)
	if err != nil {
		list.Add("/risk_note/scope/temporal_validity", "%v", err)
		return
	}
	if d < 0 {
		list.Add("/risk_note/scope/temporal_validity", "must be a non-negative duration, got %q", n.Scope.TemporalValidity)
	}
}

func (n *RiskNote) validateClaim(list *sdk.ViolationList) {
	if !isFinite(n.Claim.Threshold) {
		list.Add("/risk_note/claim/threshold", "must be finite, got %v", n.Claim.Threshold)
	}
	switch len(n.Claim.CredibleInterval) {
	case 2:
		low, high := n.Claim.CredibleInterval[0], n.Claim.CredibleInterval[1]
		if !isFinite(low) || !isFinite(high) {
			list.Add("/risk_note/claim/credible_interval", "bounds must be finite, got [%v, %v]", low, high)
		} else if low > high {
			list.Add("/risk_note/claim/credible_interval", "low must be <= high, got [%v, %v]", low, high)
		}
	default:
		list.Add("/risk_note/claim/credible_interval", "must have exactly 2 elements, got %d", len(n.Claim.CredibleInterval))
	}
	if !isFinite(n.Claim.ShiftBudget) || n.Claim.ShiftBudget < 0 {
		list.Add("/risk_note/claim/shift_budget", "must be >= 0, got %v", n.Claim.ShiftBudget)
	}
}

func (n *RiskNote) validateEvidence(list *sdk.ViolationList) {
	seen := make(map[string]bool, len(n.Evidence.Sources))
	for i, src := range n.Evidence.Sources {
		path := fmt.Sprintf("/risk_note/evidence/sources/%d", i)
		if src.ID == "" {
			list.Add(path+"/id", "must not be empty")
		} else if seen[src.ID] {
			list.Add(path+"/id", "duplicate source id %q", src.ID)
		}
		seen[src.ID] = true
		if src.Created.IsZero() {
			list.Add(path+"/created", "must be a valid timestamp")
		}
	}
}

func (n *RiskNote) validateUncertainty(list *sdk.ViolationList) {
	seen := make(map[string]bool, len(n.Uncertainty.Entries))
	for i, e := range n.Uncertainty.Entries {
		path := fmt.Sprintf("/risk_note/uncertainty/entries/%d", i)
		if e.ID == "" {
			list.Add(path+"/id", "must not be empty")
		} else if seen[e.ID] {
			list.Add(path+"/id", "duplicate entry id %q", e.ID)
		}
		seen[e.ID] = true
		if !e.Type.IsValid() {
			list.Add(path+"/type", "must be epistemic or aleatory, got %q", e.Type)
		}
		if !isFinite(e.Contribution) || e.Contribution < 0 || e.Contribution > 1 {
			list.Add(path+"/contribution", "must be in [0, 1], got %v", e.Contribution)
		}
	}
}

func (n *RiskNote) validateTriage(list *sdk.ViolationList) {
	checkScale := func(field string, v int) {
		if v < 1 || v > 5 {
			list.Add("/risk_note/triage/"+field, "must be in [1, 5], got %d", v)
		}
	}
	checkScale("severity", n.Triage.Severity)
	checkScale("exploitability", n.Triage.Exploitability)
	checkScale("reversibility", n.Triage.Reversibility)
	if !n.Triage.Posture.IsValid() {
		list.Add("/risk_note/triage/posture", "must be one of green, amber, red, got %q", n.Triage.Posture)
	}
}

func (n *RiskNote) validateControls(list *sdk.ViolationList) {
	for class, controls := range n.Controls {
		if !class.IsValid() {
			list.Add("/risk_note/controls/"+string(class), "unknown control class")
			continue
		}
		seen := make(map[string]bool, len(controls))
		for i, c := range controls {
			path := fmt.Sprintf("/risk_note/controls/%s/%d", class, i)
			if c.ID == "" {
				list.Add(path+"/id", "must not be empty")
			} else if seen[c.ID] {
				list.Add(path+"/id", "duplicate control id %q", c.ID)
			}
			seen[c.ID] = true
		}
	}
}

func (n *RiskNote) validateNextInvestigation(list *sdk.ViolationList) {
	if !isFinite(n.NextInvestigation.EVOIScore) || n.NextInvestigation.EVOIScore < 0 {
		list.Add("/risk_note/next_investigation/evoi_score", "must be >= 0, got %v", n.NextInvestigation.EVOIScore)
	}
	d, err := ParseISODuration(n.NextInvestigation.ResourceEstimate)
	if err != nil {
		list.Add("/risk_note/next_investigation/resource_estimate", "%v", err)
		return
	}
	if d < 0 {
		list.Add("/risk_note/next_investigation/resource_estimate", "must be a non-negative duration, got %q", n.NextInvestigation.ResourceEstimate)
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
