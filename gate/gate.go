// Package gate decides whether a Risk Note satisfies a release gate.
//
// Gating always recomputes the posture from the triage inputs; the
// posture stored in the document is advisory and a mismatch is reported
// as drift, never silently trusted. Beyond the fixed expected-posture
// gate, callers can supply a CEL policy expression evaluated over the
// note's derived report (see Policy).
package gate

import (
	"fmt"

	sdk "github.com/lousa-ai/sdk"
	"github.com/lousa-ai/sdk/freshness"
	"github.com/lousa-ai/sdk/note"
	"github.com/lousa-ai/sdk/triage"
)

// Decision is the outcome of a gate check.
type Decision struct {
	// Pass is true if the gate is satisfied.
	Pass bool `json:"pass"`

	// Expected is the posture the gate requires (empty for policy gates).
	Expected note.Posture `json:"expected,omitempty"`

	// Classified is the recomputed posture used for the decision.
	Classified note.Posture `json:"classified"`

	// Stored is the advisory posture recorded in the document.
	Stored note.Posture `json:"stored"`

	// Drift is true if Stored disagrees with Classified. Informational.
	Drift bool `json:"drift"`

	// Reason explains the decision.
	Reason string `json:"reason"`
}

// Check gates a note on its recomputed posture equalling expected.
//
// An invalid expected posture fails with a configuration error; triage
// inputs outside the classifier's domain fail with a domain error (a
// validated note rules both out for the latter).
func Check(n *note.RiskNote, expected note.Posture) (*Decision, error) {
	if !expected.IsValid() {
		return nil, sdk.NewConfigurationError("gate.Check",
			fmt.Errorf("expected posture must be one of green, amber, red, got %q", expected))
	}

	classified, err := triage.ClassifyTriage(n.Triage)
	if err != nil {
		return nil, err
	}

	d := &Decision{
		Expected:   expected,
		Classified: classified,
		Stored:     n.Triage.Posture,
		Drift:      classified != n.Triage.Posture,
	}
	if classified == expected {
		d.Pass = true
		d.Reason = fmt.Sprintf("posture %s satisfies gate %s", classified, expected)
	} else {
		d.Reason = fmt.Sprintf("required posture %s, classified %s", expected, classified)
	}
	return d, nil
}

// Report is the flat view of a note's derived state that policy
// expressions evaluate over.
type Report struct {
	// Posture is the recomputed posture.
	Posture note.Posture `json:"posture"`

	// StoredPosture is the advisory posture from the document.
	StoredPosture note.Posture `json:"stored_posture"`

	// Drift is true if the two postures disagree.
	Drift bool `json:"drift"`

	// Severity, Exploitability, and Reversibility are the triage inputs.
	Severity       int `json:"severity"`
	Exploitability int `json:"exploitability"`
	Reversibility  int `json:"reversibility"`

	// RiskScore is the multiplicative triage score.
	RiskScore float64 `json:"risk_score"`

	// AnyStale is true if a freshness report found stale evidence. False
	// when no freshness report was supplied.
	AnyStale bool `json:"any_stale"`

	// EVOIScore is the note's proposed-investigation value.
	EVOIScore float64 `json:"evoi_score"`
}

// BuildReport derives the policy inputs for a note. The freshness report
// is optional; pass nil when evidence age was not checked.
func BuildReport(n *note.RiskNote, fresh *freshness.Report) (*Report, error) {
	classified, err := triage.ClassifyTriage(n.Triage)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Posture:        classified,
		StoredPosture:  n.Triage.Posture,
		Drift:          classified != n.Triage.Posture,
		Severity:       n.Triage.Severity,
		Exploitability: n.Triage.Exploitability,
		Reversibility:  n.Triage.Reversibility,
		RiskScore:      triage.Score(n.Triage.Severity, n.Triage.Exploitability, n.Triage.Reversibility),
		EVOIScore:      n.NextInvestigation.EVOIScore,
	}
	if fresh != nil {
		r.AnyStale = fresh.AnyStale
	}
	return r, nil
}
