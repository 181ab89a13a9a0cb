package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	sdk "github.com/lousa-ai/sdk"
	"github.com/lousa-ai/sdk/gsn"
)

var assuranceFlags struct {
	format string
}

var assuranceCmd = &cobra.Command{
	Use:   "generate-assurance-case <note.yaml>",
	Short: "Render the note as a GSN assurance case",
	Long: `Assurance projects a validated note into a goal-structuring-notation
argument: root safety claim, strategy, scope context, evidence leaves,
uncertainty ledger, and a triage sub-goal carrying the recomputed
posture. Output is text by default or Graphviz DOT with --format dot.`,
	Args: cobra.ExactArgs(1),
	RunE: runAssurance,
}

func init() {
	assuranceCmd.Flags().StringVar(&assuranceFlags.format, "format", "text",
		"Output format: text or dot")
}

func runAssurance(cmd *cobra.Command, args []string) error {
	ctx, span := startSpan(cmd.Context(), "generate-assurance-case",
		attribute.String("note.path", args[0]),
		attribute.String("format", assuranceFlags.format))
	defer span.End()

	if assuranceFlags.format != "text" && assuranceFlags.format != "dot" {
		return sdk.NewConfigurationError("main.runAssurance",
			fmt.Errorf("--format must be text or dot, got %q", assuranceFlags.format))
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

	c, err := gsn.Render(n)
	if err != nil {
		return err
	}

	if err := recordRun(ctx, store, "generate-assurance-case", c.NoteID, c.NoteVersion, data, "ok", c.Posture); err != nil {
		return err
	}

	switch assuranceFlags.format {
	case "dot":
		fmt.Print(c.DOT())
	default:
		fmt.Print(c.String())
	}
	return nil
}
