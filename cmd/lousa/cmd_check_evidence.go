package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lousa-ai/sdk/freshness"
)

var checkEvidenceFlags struct {
	maxAge string
	now    string
}

var checkEvidenceCmd = &cobra.Command{
	Use:   "check-evidence <note.yaml>",
	Short: "Check whether the note's evidence sources are stale",
	Long: `Check-evidence computes the age of every evidence source against a
maximum-age policy. Any stale source fails the check. The reference time
defaults to now and can be pinned with --now for reproducible runs.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckEvidence,
}

func init() {
	f := checkEvidenceCmd.Flags()
	f.StringVar(&checkEvidenceFlags.maxAge, "max-age", "P30D", "Maximum evidence age as an ISO 8601 duration")
	f.StringVar(&checkEvidenceFlags.now, "now", "", "Reference time as RFC 3339 (default: wall clock)")
}

func runCheckEvidence(cmd *cobra.Command, args []string) error {
	ctx, span := startSpan(cmd.Context(), "check-evidence",
		attribute.String("note.path", args[0]),
		attribute.String("max_age", checkEvidenceFlags.maxAge))
	defer span.End()

	maxAge, err := parseMaxAge(checkEvidenceFlags.maxAge)
	if err != nil {
		return err
	}
	now, err := parseNow(checkEvidenceFlags.now)
	if err != nil {
		return err
	}

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

	report, err := freshness.Check(n.Evidence.Sources, maxAge, now)
	if err != nil {
		return err
	}

	for _, src := range report.Sources {
		status := "fresh"
		if src.Stale {
			status = "STALE"
		}
		fmt.Printf("  %-20s age %-12s %s\n", src.SourceID, src.Age.Truncate(time.Second), status)
	}

	outcome := "ok"
	if report.AnyStale {
		outcome = "stale_evidence"
	}
	if err := recordRun(ctx, store, "check-evidence", n.Identity.ID, n.Identity.Version, data, outcome, n.Triage.Posture); err != nil {
		return err
	}

	if report.AnyStale {
		return &refusalError{exitTimestamp,
			fmt.Sprintf("%s: evidence older than %s", args[0], checkEvidenceFlags.maxAge)}
	}
	fmt.Printf("OK: all %d source(s) within %s\n", len(report.Sources), checkEvidenceFlags.maxAge)
	return nil
}
