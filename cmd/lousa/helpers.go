package main

import (
	"context"
	"fmt"
	"os"
	"time"

	sdk "github.com/lousa-ai/sdk"
	"github.com/lousa-ai/sdk/note"
	"github.com/lousa-ai/sdk/provenance"
	"github.com/lousa-ai/sdk/schema"
)

// loadSchema returns the embedded contract, or one compiled from a
// caller-supplied file.
func loadSchema(path string) (*schema.Schema, error) {
	if path == "" {
		return schema.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, sdk.NewConfigurationError("main.loadSchema", fmt.Errorf("reading schema: %w", err))
	}
	return schema.Compile(data)
}

// loadNote reads and fully validates one note document. The raw bytes
// are returned alongside for input fingerprinting.
func loadNote(path string, sch *schema.Schema) ([]byte, *note.RiskNote, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, sdk.NewInternalError("main.loadNote", fmt.Errorf("reading note: %w", err))
	}
	n, err := note.Parse(data, sch)
	if err != nil {
		return data, nil, err
	}
	return data, n, nil
}

// parseNow resolves a --now flag value, defaulting to the wall clock.
func parseNow(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, sdk.NewTimestampError("main.parseNow",
			fmt.Errorf("--now must be RFC 3339: %w", err))
	}
	return t, nil
}

// parseMaxAge resolves a --max-age flag value.
func parseMaxAge(value string) (time.Duration, error) {
	d, err := note.ParseISODuration(value)
	if err != nil {
		return 0, sdk.NewConfigurationError("main.parseMaxAge",
			fmt.Errorf("--max-age: %w", err))
	}
	return d, nil
}

// openProvenance connects the audit-trail store when --provenance-redis
// is set. A nil store disables recording.
func openProvenance() (provenance.Store, error) {
	if rootFlags.provenanceRedis == "" {
		return nil, nil
	}
	return provenance.NewRedisStore(provenance.RedisOptions{URL: rootFlags.provenanceRedis})
}

// recordRun seals one audit record onto the note's trail. A nil store is
// a no-op so call sites stay unconditional.
func recordRun(ctx context.Context, store provenance.Store, command, noteID, noteVersion string, input []byte, outcome string, posture note.Posture) error {
	if store == nil {
		return nil
	}

	head, err := store.Head(ctx, noteID, noteVersion)
	if err != nil {
		return err
	}
	rec, err := provenance.NewRecord(command, noteID, noteVersion,
		provenance.Digest(input), outcome, posture, time.Now().UTC(), head)
	if err != nil {
		return err
	}
	return store.Append(ctx, rec)
}
