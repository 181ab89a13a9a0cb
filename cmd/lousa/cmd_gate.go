package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lousa-ai/sdk/freshness"
	"github.com/lousa-ai/sdk/gate"
	"github.com/lousa-ai/sdk/note"
)

var gateFlags struct {
	posture string
	policy  string
	maxAge  string
	now     string
}

var gateCmd = &cobra.Command{
	Use:   "gate-check <note.yaml>",
	Short: "Gate a release on the note's recomputed posture",
	Long: `Gate-check recomputes the posture from the triage inputs and refuses unless
it matches --posture. The posture stored in the document is never
trusted; a disagreement is reported as drift. A CEL expression over the
evaluation report can be supplied with --policy for richer gates, for
example: --policy 'posture == "green" && !any_stale'.`,
	Args: cobra.ExactArgs(1),
	RunE: runGate,
}

func init() {
	f := gateCmd.Flags()
	f.StringVar(&gateFlags.posture, "posture", "green", "Required posture: green, amber, or red")
	f.StringVar(&gateFlags.policy, "policy", "", "CEL policy expression evaluated instead of the posture equality gate")
	f.StringVar(&gateFlags.maxAge, "max-age", "P30D", "Maximum evidence age for the any_stale policy input")
	f.StringVar(&gateFlags.now, "now", "", "Reference time as RFC 3339 (default: wall clock)")
}

func runGate(cmd *cobra.Command, args []string) error {
	ctx, span := startSpan(cmd.Context(), "gate-check",
		attribute.String("note.path", args[0]),
		attribute.String("posture", gateFlags.posture))
	defer span.End()

	sch, err := loadSchema("")
	if err != nil {
		return err
	}
	data, n, err := loadNote(args[0], sch)
	if err != nil {
		return err
	}

	store, err := openProvenance()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	var decision *gate.Decision
	if gateFlags.policy != "" {
		decision, err = runPolicyGate(n)
	} else {
		decision, err = gate.Check(n, note.Posture(gateFlags.posture))
	}
	if err != nil {
		return err
	}

	outcome := "gate_passed"
	if !decision.Pass {
		outcome = "gate_refused"
	}
	if err := recordRun(ctx, store, "gate-check", n.Identity.ID, n.Identity.Version, data, outcome, decision.Classified); err != nil {
		return err
	}

	if decision.Drift {
		fmt.Printf("drift: stored posture %s, classified %s\n", decision.Stored, decision.Classified)
	}
	if !decision.Pass {
		return &refusalError{exitGateRefused, fmt.Sprintf("%s: %s", args[0], decision.Reason)}
	}
	fmt.Printf("PASS: %s\n", decision.Reason)
	return nil
}

// runPolicyGate compiles the CEL policy and evaluates it over the note's
// derived report, including evidence freshness.
func runPolicyGate(n *note.RiskNote) (*gate.Decision, error) {
	policy, err := gate.CompilePolicy(gateFlags.policy)
	if err != nil {
		return nil, err
	}

	maxAge, err := parseMaxAge(gateFlags.maxAge)
	if err != nil {
		return nil, err
	}
	now, err := parseNow(gateFlags.now)
	if err != nil {
		return nil, err
	}
	fresh, err := freshness.Check(n.Evidence.Sources, maxAge, now)
	if err != nil {
		return nil, err
	}

	report, err := gate.BuildReport(n, fresh)
	if err != nil {
		return nil, err
	}
	return gate.CheckPolicy(report, policy)
}
