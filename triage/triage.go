// Package triage derives the qualitative release posture from quantitative
// triage inputs.
//
// Classification uses an asymmetric dominance rule: high severity or poor
// reversibility gates the outcome upward regardless of the multiplicative
// risk score, because a catastrophic or unrecoverable failure must not be
// masked by low exploitability alone. The multiplicative score handles the
// remaining, more continuous cases.
//
// Classify is a total, deterministic function over the bounded input
// domain. It has no side effects and performs no I/O.
package triage

import (
	"fmt"

	sdk "github.com/lousa-ai/sdk"
	"github.com/lousa-ai/sdk/note"
)

// Epsilon guards the risk-score division against a zero reversibility.
// Reversibility is validated to [1, 5], so the guard only matters for the
// raw Score helper.
const Epsilon = 1e-9

// Score thresholds for the multiplicative fallback.
const (
	redThreshold   = 4.0
	amberThreshold = 2.0
)

// Classify maps severity, exploitability, and reversibility (each an
// integer in [1, 5]) to a posture.
//
// Evaluation order is fixed:
//
//  1. If severity >= 4 or reversibility <= 2 (the dominance condition):
//     exploitability >= 3 yields red, exploitability == 2 yields amber,
//     and exploitability == 1 falls through to the score.
//  2. Otherwise the risk score severity*exploitability/reversibility
//     decides: >= 4.0 red, >= 2.0 amber, else green.
//
// Inputs outside [1, 5] fail with a domain error.
func Classify(severity, exploitability, reversibility int) (note.Posture, error) {
	if err := checkScale("severity", severity); err != nil {
		return "", err
	}
	if err := checkScale("exploitability", exploitability); err != nil {
		return "", err
	}
	if err := checkScale("reversibility", reversibility); err != nil {
		return "", err
	}

	if severity >= 4 || reversibility <= 2 {
		if exploitability >= 3 {
			return note.PostureRed, nil
		}
		if exploitability >= 2 {
			return note.PostureAmber, nil
		}
		// Dominance with minimal exploitability: fall through to the score.
	}

	score := Score(severity, exploitability, reversibility)
	switch {
	case score >= redThreshold:
		return note.PostureRed, nil
	case score >= amberThreshold:
		return note.PostureAmber, nil
	default:
		return note.PostureGreen, nil
	}
}

// ClassifyTriage classifies the inputs recorded in a note's triage block.
// The stored posture is ignored; callers comparing the two should treat a
// mismatch as informational drift, not an error.
func ClassifyTriage(t note.Triage) (note.Posture, error) {
	return Classify(t.Severity, t.Exploitability, t.Reversibility)
}

// Score returns the multiplicative risk score
// severity * exploitability / max(reversibility, Epsilon) without any
// domain checks. It backs the fallback branch of Classify and is exposed
// for reporting and gate policies.
func Score(severity, exploitability, reversibility int) float64 {
	rev := float64(reversibility)
	if rev < Epsilon {
		rev = Epsilon
	}
	return float64(severity) * float64(exploitability) / rev
}

// Worst folds postures to the most severe one. An empty input folds to
// green, matching an empty collection having nothing to block on.
func Worst(postures ...note.Posture) note.Posture {
	worst := note.PostureGreen
	for _, p := range postures {
		if p.Rank() > worst.Rank() {
			worst = p
		}
	}
	return worst
}

func checkScale(field string, v int) error {
	if v < 1 || v > 5 {
		return sdk.NewDomainError("triage.Classify",
			fmt.Errorf("%s must be in [1, 5], got %d: %w", field, v, sdk.ErrDomainValue))
	}
	return nil
}
