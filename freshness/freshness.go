// Package freshness checks whether a note's evidence sources have gone
// stale against a caller-supplied maximum-age policy.
//
// The check is a pure function of its inputs: the reference time is always
// passed in, never read from an ambient clock, so reports are deterministic
// and reproducible. A stale source is a reportable failure condition for
// release gating, not a silent default.
package freshness

import (
	"fmt"
	"time"

	sdk "github.com/lousa-ai/sdk"
	"github.com/lousa-ai/sdk/note"
)

// SkewTolerance is how far into the future an evidence timestamp may sit
// before it is treated as implausible. It absorbs ordinary clock skew
// between the systems that produce evidence and the one evaluating it.
const SkewTolerance = 5 * time.Minute

// SourceAge reports the freshness of one evidence source.
type SourceAge struct {
	// SourceID is the id of the evidence source within the note.
	SourceID string `json:"source_id"`

	// Age is the elapsed time between the source's creation and the
	// reference time. Negative for sources created within skew tolerance
	// of the future.
	Age time.Duration `json:"age"`

	// Stale is true if Age exceeds the maximum age.
	Stale bool `json:"stale"`
}

// Report is the result of a freshness check over a note's sources.
type Report struct {
	// MaxAge is the policy the sources were checked against.
	MaxAge time.Duration `json:"max_age"`

	// CheckedAt is the caller-supplied reference time.
	CheckedAt time.Time `json:"checked_at"`

	// Sources lists per-source ages and staleness, in note order.
	Sources []SourceAge `json:"sources"`

	// AnyStale is true if at least one source is stale.
	AnyStale bool `json:"any_stale"`
}

// Check computes the age of every source against maxAge at the reference
// time now.
//
// A source is stale iff its age exceeds maxAge. A source created in the
// future beyond SkewTolerance, or carrying a zero timestamp, fails the
// whole check with a timestamp error. A negative maxAge or zero now fails
// with a configuration error.
func Check(sources []note.Source, maxAge time.Duration, now time.Time) (*Report, error) {
	const op = "freshness.Check"

	if maxAge < 0 {
		return nil, sdk.NewConfigurationError(op, fmt.Errorf("max age must be non-negative, got %v", maxAge))
	}
	if now.IsZero() {
		return nil, sdk.NewConfigurationError(op, fmt.Errorf("reference time must be supplied"))
	}

	report := &Report{
		MaxAge:    maxAge,
		CheckedAt: now,
		Sources:   make([]SourceAge, 0, len(sources)),
	}

	for _, src := range sources {
		if src.Created.IsZero() {
			return nil, sdk.NewTimestampError(op,
				fmt.Errorf("source %q has no creation timestamp: %w", src.ID, sdk.ErrInvalidTimestamp))
		}
		if src.Created.After(now.Add(SkewTolerance)) {
			return nil, sdk.NewTimestampError(op,
				fmt.Errorf("source %q created %s in the future: %w",
					src.ID, src.Created.Sub(now), sdk.ErrInvalidTimestamp))
		}

		age := now.Sub(src.Created)
		entry := SourceAge{
			SourceID: src.ID,
			Age:      age,
			Stale:    age > maxAge,
		}
		if entry.Stale {
			report.AnyStale = true
		}
		report.Sources = append(report.Sources, entry)
	}

	return report, nil
}
