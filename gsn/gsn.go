// Package gsn renders a validated Risk Note as a goal-structuring-notation
// style assurance case.
//
// Rendering is a pure structural projection: the note is assumed already
// validated, no I/O happens, and the same note always produces a
// structurally identical tree. The triage sub-goal embeds the posture
// recomputed by the triage classifier, never the advisory value stored in
// the document.
//
// Two serializations are provided: an indented text outline (String) and
// Graphviz DOT (DOT) for rendering the argument graph externally.
package gsn

import (
	"fmt"
	"strings"

	"github.com/lousa-ai/sdk/note"
	"github.com/lousa-ai/sdk/triage"
)

// NodeKind classifies a node in the assurance-case tree.
type NodeKind string

const (
	// NodeGoal is a claim being argued.
	NodeGoal NodeKind = "goal"

	// NodeStrategy is the argumentation approach decomposing a goal.
	NodeStrategy NodeKind = "strategy"

	// NodeContext bounds the scope in which a goal holds.
	NodeContext NodeKind = "context"

	// NodeAssumption is an unproven premise the argument rests on.
	NodeAssumption NodeKind = "assumption"

	// NodeJustification explains why the argument step is adequate.
	NodeJustification NodeKind = "justification"

	// NodeEvidence is a solution leaf backed by an evidence source.
	NodeEvidence NodeKind = "evidence"

	// NodeSubGoal is a subordinate claim under the root goal.
	NodeSubGoal NodeKind = "subgoal"

	// NodeSolution is a proposed activity that would discharge a goal.
	NodeSolution NodeKind = "solution"
)

// Node is one element of the assurance-case tree.
type Node struct {
	// Kind classifies the node.
	Kind NodeKind `json:"kind"`

	// ID is a deterministic identifier unique within the case.
	ID string `json:"id"`

	// Label is the human-readable statement of the node.
	Label string `json:"label"`

	// Children are subordinate nodes in fixed order.
	Children []*Node `json:"children,omitempty"`
}

// Case is the rendered assurance case for one Risk Note.
type Case struct {
	// NoteID and NoteVersion identify the rendered note.
	NoteID      string `json:"note_id"`
	NoteVersion string `json:"note_version"`

	// Posture is the classifier's recomputed posture for the note.
	Posture note.Posture `json:"posture"`

	// StoredPosture is the advisory posture recorded in the document.
	StoredPosture note.Posture `json:"stored_posture"`

	// Root is the top goal of the argument.
	Root *Node `json:"root"`
}

// Drift reports whether the stored posture disagrees with the recomputed
// one. Disagreement is informational, not an error.
func (c *Case) Drift() bool {
	return c.Posture != c.StoredPosture
}

// Render projects a validated note into the fixed argument skeleton:
// one root goal, one strategy, context, assumption and justification
// nodes, one evidence leaf per source, a sub-goal for the uncertainty
// ledger, a sub-goal for triage embedding the recomputed posture, and a
// solution node for the next investigation.
//
// Render performs no validation; it fails only if the triage inputs are
// outside the classifier's domain, which a validated note rules out.
func Render(n *note.RiskNote) (*Case, error) {
	posture, err := triage.ClassifyTriage(n.Triage)
	if err != nil {
		return nil, err
	}

	strategy := &Node{
		Kind:  NodeStrategy,
		ID:    "S1",
		Label: "Argue over scope, evidence, uncertainty ledger, and triage with posture-activated controls",
	}

	strategy.Children = append(strategy.Children, &Node{
		Kind: NodeContext,
		ID:   "C1",
		Label: fmt.Sprintf("Scope: %s | Distribution: %s | Valid for %s",
			n.Scope.OperatingConditions, n.Scope.InputDistribution, n.Scope.TemporalValidity),
	})
	strategy.Children = append(strategy.Children, &Node{
		Kind: NodeAssumption,
		ID:   "A1",
		Label: fmt.Sprintf("Hazard %s stays within shift budget %v; threshold %v maps to the claim metric",
			n.Claim.HazardClass, n.Claim.ShiftBudget, n.Claim.Threshold),
	})
	if len(n.Claim.CredibleInterval) == 2 {
		strategy.Children = append(strategy.Children, &Node{
			Kind: NodeJustification,
			ID:   "J1",
			Label: fmt.Sprintf("Threshold %v with credible interval [%v, %v]",
				n.Claim.Threshold, n.Claim.CredibleInterval[0], n.Claim.CredibleInterval[1]),
		})
	}

	for i, src := range n.Evidence.Sources {
		label := src.Title
		if label == "" {
			label = src.URI
		}
		strategy.Children = append(strategy.Children, &Node{
			Kind:  NodeEvidence,
			ID:    fmt.Sprintf("E%d", i+1),
			Label: fmt.Sprintf("%s: %s (%s)", src.ID, label, src.Type),
		})
	}

	uncertainty := &Node{
		Kind:  NodeSubGoal,
		ID:    "SG1",
		Label: fmt.Sprintf("Uncertainty ledger covers %d entries", len(n.Uncertainty.Entries)),
	}
	for i, e := range n.Uncertainty.Entries {
		uncertainty.Children = append(uncertainty.Children, &Node{
			Kind:  NodeContext,
			ID:    fmt.Sprintf("SG1.%d", i+1),
			Label: fmt.Sprintf("%s: %s at %s, contribution %v", e.ID, e.Type, e.Location, e.Contribution),
		})
	}
	strategy.Children = append(strategy.Children, uncertainty)

	triageLabel := fmt.Sprintf("Triage S=%d E=%d R=%d => posture %s",
		n.Triage.Severity, n.Triage.Exploitability, n.Triage.Reversibility, posture)
	if posture != n.Triage.Posture {
		triageLabel += fmt.Sprintf(" (stored %s, drift)", n.Triage.Posture)
	}
	strategy.Children = append(strategy.Children, &Node{
		Kind:  NodeSubGoal,
		ID:    "SG2",
		Label: triageLabel,
	})

	strategy.Children = append(strategy.Children, &Node{
		Kind: NodeSolution,
		ID:   "Sn1",
		Label: fmt.Sprintf("Next investigation: %s (EVOI %v, estimate %s)",
			n.NextInvestigation.Experiment, n.NextInvestigation.EVOIScore, n.NextInvestigation.ResourceEstimate),
	})

	root := &Node{
		Kind:     NodeGoal,
		ID:       "G1",
		Label:    fmt.Sprintf("Safety claim for %s v%s", n.Identity.ID, n.Identity.Version),
		Children: []*Node{strategy},
	}

	return &Case{
		NoteID:        n.Identity.ID,
		NoteVersion:   n.Identity.Version,
		Posture:       posture,
		StoredPosture: n.Triage.Posture,
		Root:          root,
	}, nil
}

// String renders the case as an indented text outline, one node per line.
func (c *Case) String() string {
	var b strings.Builder
	writeText(&b, c.Root, 0)
	return b.String()
}

func writeText(b *strings.Builder, n *Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(titleFor(n.Kind))
	b.WriteString(": ")
	b.WriteString(n.Label)
	b.WriteString("\n")
	for _, child := range n.Children {
		writeText(b, child, depth+1)
	}
}

func titleFor(k NodeKind) string {
	switch k {
	case NodeGoal:
		return "Goal"
	case NodeStrategy:
		return "Strategy"
	case NodeContext:
		return "Context"
	case NodeAssumption:
		return "Assumption"
	case NodeJustification:
		return "Justification"
	case NodeEvidence:
		return "Evidence"
	case NodeSubGoal:
		return "Sub-Goal"
	case NodeSolution:
		return "Solution"
	default:
		return string(k)
	}
}
