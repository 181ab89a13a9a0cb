// lousa evaluates Risk Note documents: lint, evidence freshness,
// assurance-case rendering, investigation prioritization, and release
// gating.
//
// Usage:
//
//	lousa lint <note.yaml>
//	lousa check-evidence <note.yaml> [--max-age P30D] [--now <rfc3339>]
//	lousa generate-assurance-case <note.yaml> [--format text|dot]
//	lousa prioritize <dir> [--budget PT40H]
//	lousa gate-check <note.yaml> --posture green [--policy <cel>] [--max-age P30D]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	sdk "github.com/lousa-ai/sdk"
)

// Exit codes distinguish failure classes for scripting.
const (
	exitOK          = 0
	exitInternal    = 1
	exitSchema      = 2
	exitTimestamp   = 3
	exitGateRefused = 4
	exitDomain      = 5
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	provenanceRedis string
	trace           bool
}

var rootCmd = &cobra.Command{
	Use:   "lousa",
	Short: "Safety assurance evaluation for Risk Note documents",
	Long: "Lousa evaluates machine-checkable Risk Notes: structural linting,\n" +
		"evidence freshness, assurance-case rendering, investigation\n" +
		"prioritization under a time budget, and posture-based release gates.",
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupTracing(cmd.Context(), rootFlags.trace)
	},
	PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
		return shutdownTracing(cmd.Context())
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.provenanceRedis, "provenance-redis", "",
		"Redis URL for the audit trail (e.g., redis://localhost:6379); empty disables recording")
	pf.BoolVar(&rootFlags.trace, "trace", false, "Emit OpenTelemetry spans to stdout")

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(checkEvidenceCmd)
	rootCmd.AddCommand(assuranceCmd)
	rootCmd.AddCommand(prioritizeCmd)
	rootCmd.AddCommand(gateCmd)
	rootCmd.Version = version
}

// refusalError carries a non-error outcome that still demands a failing
// exit code, such as a refused gate or stale evidence.
type refusalError struct {
	code int
	msg  string
}

func (e *refusalError) Error() string { return e.msg }

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	var refusal *refusalError
	if errors.As(err, &refusal) {
		return refusal.code
	}

	var e *sdk.Error
	if errors.As(err, &e) {
		switch e.Kind {
		case sdk.KindSchema:
			return exitSchema
		case sdk.KindTimestamp:
			return exitTimestamp
		case sdk.KindDomain:
			return exitDomain
		}
	}
	return exitInternal
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		var violations sdk.ViolationList
		if errors.As(err, &violations) {
			for _, v := range violations {
				fmt.Fprintln(os.Stderr, v)
			}
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(exitCode(err))
	}
}
