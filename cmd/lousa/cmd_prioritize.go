package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	sdk "github.com/lousa-ai/sdk"
	"github.com/lousa-ai/sdk/evoi"
	"github.com/lousa-ai/sdk/note"
	"github.com/lousa-ai/sdk/schema"
	"github.com/lousa-ai/sdk/triage"
)

var prioritizeFlags struct {
	budget string
}

var prioritizeCmd = &cobra.Command{
	Use:   "prioritize <dir>",
	Short: "Select the investigations worth running under a time budget",
	Long: `Prioritize reads every Risk Note in a directory, ranks their proposed
investigations by expected value of information per hour, and greedily
selects the subset fitting the budget. Documents that fail validation
are skipped with a warning.`,
	Args: cobra.ExactArgs(1),
	RunE: runPrioritize,
}

func init() {
	prioritizeCmd.Flags().StringVar(&prioritizeFlags.budget, "budget", "PT40H",
		"Time budget as an ISO 8601 duration")
}

func runPrioritize(cmd *cobra.Command, args []string) error {
	_, span := startSpan(cmd.Context(), "prioritize",
		attribute.String("dir", args[0]),
		attribute.String("budget", prioritizeFlags.budget))
	defer span.End()

	budget, err := note.ParseISODuration(prioritizeFlags.budget)
	if err != nil {
		return sdk.NewConfigurationError("main.runPrioritize",
			fmt.Errorf("--budget: %w", err))
	}

	notes, err := collectNotes(args[0], schema.Default())
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		return sdk.NewConfigurationError("main.runPrioritize",
			fmt.Errorf("no valid notes found in %s", args[0]))
	}

	plan, err := evoi.Prioritize(notes, budget)
	if err != nil {
		return err
	}

	fmt.Printf("Budget %s (%v)\n", prioritizeFlags.budget, plan.Budget)
	for _, c := range plan.Accepted {
		fmt.Printf("  ACCEPT %s v%s  score=%.3f  %.1fh  density=%.4f  %s\n",
			c.NoteID, c.NoteVersion, c.Score, c.Hours, c.Density, c.Experiment)
	}
	for _, r := range plan.Rejected {
		fmt.Printf("  reject %s v%s  (%s) %s\n", r.NoteID, r.NoteVersion, r.Reason, r.Detail)
	}
	fmt.Printf("Consumed %v, remaining %v\n", plan.Consumed, plan.Remaining)

	postures := make([]note.Posture, 0, len(notes))
	for _, n := range notes {
		p, err := triage.ClassifyTriage(n.Triage)
		if err != nil {
			return err
		}
		postures = append(postures, p)
	}
	fmt.Printf("Overall posture: %s\n", triage.Worst(postures...))
	return nil
}

// collectNotes parses every *.yaml / *.yml file in dir, in sorted name
// order so runs are deterministic. Invalid documents are skipped with a
// warning rather than failing the batch.
func collectNotes(dir string, sch *schema.Schema) ([]*note.RiskNote, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, sdk.NewInternalError("main.collectNotes", fmt.Errorf("reading %s: %w", dir, err))
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var notes []*note.RiskNote
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, sdk.NewInternalError("main.collectNotes", fmt.Errorf("reading %s: %w", path, err))
		}
		n, err := note.Parse(data, sch)
		if err != nil {
			slog.Warn("skipping invalid note", "path", path, "error", err)
			continue
		}
		notes = append(notes, n)
	}
	return notes, nil
}
