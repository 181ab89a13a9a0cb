package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	sdk "github.com/lousa-ai/sdk"
)

var lintFlags struct {
	schemaPath string
}

var lintCmd = &cobra.Command{
	Use:   "lint <note.yaml>",
	Short: "Validate a Risk Note against the schema and semantic rules",
	Long: `Lint validates one Risk Note document: structural schema conformance
first, then semantic rules (duration formats, credible interval ordering,
unique identifiers, triage ranges). Every violation found is reported,
not just the first.`,
	Args: cobra.ExactArgs(1),
	RunE: runLint,
}

func init() {
	lintCmd.Flags().StringVar(&lintFlags.schemaPath, "schema", "",
		"Path to an alternate JSON schema (default: embedded contract)")
}

func runLint(cmd *cobra.Command, args []string) error {
	ctx, span := startSpan(cmd.Context(), "lint",
		attribute.String("note.path", args[0]))
	defer span.End()

	sch, err := loadSchema(lintFlags.schemaPath)
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

	data, n, err := loadNote(args[0], sch)
	if err != nil {
		var violations sdk.ViolationList
		if errors.As(err, &violations) {
			for _, v := range violations {
				fmt.Fprintf(os.Stderr, "  %s\n", v)
			}
			if recErr := recordRun(ctx, store, "lint", "", "", data, sdk.KindSchema, ""); recErr != nil {
				return recErr
			}
			return &refusalError{exitSchema,
				fmt.Sprintf("%s: %d violation(s)", args[0], len(violations))}
		}
		return err
	}

	if err := recordRun(ctx, store, "lint", n.Identity.ID, n.Identity.Version, data, "ok", n.Triage.Posture); err != nil {
		return err
	}

	fmt.Printf("OK: %s v%s\n", n.Identity.ID, n.Identity.Version)
	return nil
}
