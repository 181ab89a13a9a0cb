// Package evoi ranks proposed investigations by expected value of
// information per unit of effort and selects the subset fitting a time
// budget.
//
// Selection is a greedy fractional-knapsack-style heuristic: candidates
// are sorted by value density and accepted in order while they fit. A
// candidate that does not fit is skipped and scanning continues, so a
// small cheap investigation after a large expensive one can still be
// accepted. This trades exactness for speed and simplicity, which is the
// right trade for the small candidate counts seen in practice; an exact
// solver could replace the internals without changing the Prioritize
// contract.
package evoi

import (
	"fmt"
	"sort"
	"time"

	sdk "github.com/lousa-ai/sdk"
	"github.com/lousa-ai/sdk/note"
)

// Candidate is one note's proposed investigation with its derived value
// density.
type Candidate struct {
	// NoteID and NoteVersion identify the note proposing the investigation.
	NoteID      string `json:"note_id"`
	NoteVersion string `json:"note_version"`

	// Experiment describes the proposed investigation.
	Experiment string `json:"experiment"`

	// Score is the investigation's expected value of information.
	Score float64 `json:"score"`

	// Estimate is the parsed resource estimate.
	Estimate time.Duration `json:"estimate"`

	// Hours is the estimate expressed in hours.
	Hours float64 `json:"hours"`

	// Density is Score per hour of effort, the ranking key.
	Density float64 `json:"density"`
}

// RejectReason explains why a candidate was not accepted.
type RejectReason string

const (
	// RejectInvalidEstimate marks a zero or negative resource estimate.
	// Density is undefined for a zero-cost investigation; it is rejected,
	// never treated as infinitely valuable.
	RejectInvalidEstimate RejectReason = "invalid_estimate"

	// RejectOverBudget marks a candidate that did not fit the remaining
	// budget at its turn in the scan.
	RejectOverBudget RejectReason = "over_budget"
)

// Rejection reports one candidate that was not accepted, with the reason.
type Rejection struct {
	// NoteID and NoteVersion identify the note proposing the investigation.
	NoteID      string `json:"note_id"`
	NoteVersion string `json:"note_version"`

	// Experiment describes the rejected investigation.
	Experiment string `json:"experiment"`

	// Reason classifies the rejection.
	Reason RejectReason `json:"reason"`

	// Detail is a human-readable explanation.
	Detail string `json:"detail"`
}

// Plan is the outcome of prioritizing a collection of notes under a
// budget.
type Plan struct {
	// Budget is the caller-supplied time budget.
	Budget time.Duration `json:"budget"`

	// Accepted lists the selected investigations in acceptance order
	// (highest density first).
	Accepted []Candidate `json:"accepted"`

	// Rejected lists every candidate that was not accepted, with reasons.
	Rejected []Rejection `json:"rejected"`

	// Consumed is the cumulative resource estimate of the accepted
	// investigations.
	Consumed time.Duration `json:"consumed"`

	// Remaining is Budget minus Consumed.
	Remaining time.Duration `json:"remaining"`
}

// Prioritize ranks the notes' proposed investigations by value density and
// greedily selects those fitting the budget.
//
// Candidates are ordered by density descending, ties broken by higher
// score and then lexicographically smaller note id, so the ranking is
// fully deterministic. Candidates whose resource estimate parses to zero
// or a negative duration have undefined density and are rejected with
// RejectInvalidEstimate rather than sorted as infinite.
//
// A non-positive budget fails with a configuration error; duplicate
// id+version pairs in the collection fail with a domain error.
func Prioritize(notes []*note.RiskNote, budget time.Duration) (*Plan, error) {
	const op = "evoi.Prioritize"

	if budget <= 0 {
		return nil, sdk.NewConfigurationError(op, fmt.Errorf("budget must be positive, got %v", budget))
	}

	plan := &Plan{Budget: budget, Remaining: budget}

	seen := make(map[string]bool, len(notes))
	var candidates []Candidate
	for _, n := range notes {
		key := n.Identity.ID + "@" + n.Identity.Version
		if seen[key] {
			return nil, sdk.NewDomainError(op,
				fmt.Errorf("duplicate note %s in collection: %w", key, sdk.ErrDomainValue))
		}
		seen[key] = true

		inv := n.NextInvestigation
		estimate, err := note.ParseISODuration(inv.ResourceEstimate)
		if err != nil {
			// Unparsable estimates are caught by lint; surfaced here for
			// callers that skip it.
			return nil, sdk.NewDomainError(op,
				fmt.Errorf("note %s: %w", key, err))
		}
		if estimate <= 0 {
			plan.Rejected = append(plan.Rejected, Rejection{
				NoteID:      n.Identity.ID,
				NoteVersion: n.Identity.Version,
				Experiment:  inv.Experiment,
				Reason:      RejectInvalidEstimate,
				Detail:      fmt.Sprintf("resource estimate %q is not a positive duration", inv.ResourceEstimate),
			})
			continue
		}

		hours := estimate.Hours()
		candidates = append(candidates, Candidate{
			NoteID:      n.Identity.ID,
			NoteVersion: n.Identity.Version,
			Experiment:  inv.Experiment,
			Score:       inv.EVOIScore,
			Estimate:    estimate,
			Hours:       hours,
			Density:     inv.EVOIScore / hours,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Density != b.Density {
			return a.Density > b.Density
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.NoteID < b.NoteID
	})

	for _, c := range candidates {
		if plan.Consumed+c.Estimate > budget {
			// Skip and keep scanning; a smaller candidate later in the
			// order may still fit.
			plan.Rejected = append(plan.Rejected, Rejection{
				NoteID:      c.NoteID,
				NoteVersion: c.NoteVersion,
				Experiment:  c.Experiment,
				Reason:      RejectOverBudget,
				Detail: fmt.Sprintf("needs %v with only %v of budget left",
					c.Estimate, budget-plan.Consumed),
			})
			continue
		}
		plan.Accepted = append(plan.Accepted, c)
		plan.Consumed += c.Estimate
	}
	plan.Remaining = budget - plan.Consumed

	return plan, nil
}
