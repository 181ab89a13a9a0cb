package provenance

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	sdk "github.com/lousa-ai/sdk"
	"github.com/lousa-ai/sdk/note"
)

// Record is one sealed entry in a note's audit trail.
type Record struct {
	// ID uniquely identifies the record.
	ID string `json:"id"`

	// Command names the operation that ran (lint, check-evidence, ...).
	Command string `json:"command"`

	// NoteID and NoteVersion identify the evaluated note.
	NoteID      string `json:"note_id"`
	NoteVersion string `json:"note_version"`

	// InputDigest is the SHA-256 of the raw input document.
	InputDigest string `json:"input_digest"`

	// Outcome summarizes the result (ok, schema_violation, gate_refused, ...).
	Outcome string `json:"outcome"`

	// Posture is the recomputed posture, when the command derived one.
	Posture note.Posture `json:"posture,omitempty"`

	// RecordedAt is when the record was sealed.
	RecordedAt time.Time `json:"recorded_at"`

	// PrevDigest is the digest of the previous record in the chain, or
	// empty for the first record.
	PrevDigest string `json:"prev_digest"`

	// Digest seals the record. It covers every field above.
	Digest string `json:"digest"`
}

// Digest returns the hex SHA-256 of data. Used to fingerprint inputs
// before evaluation.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NewRecord seals a record for one engine run, chained onto prevDigest.
func NewRecord(command, noteID, noteVersion, inputDigest, outcome string, posture note.Posture, recordedAt time.Time, prevDigest string) (*Record, error) {
	const op = "provenance.NewRecord"

	if command == "" {
		return nil, sdk.NewConfigurationError(op, fmt.Errorf("command must not be empty"))
	}
	if recordedAt.IsZero() {
		return nil, sdk.NewConfigurationError(op, fmt.Errorf("recorded time must be supplied"))
	}

	r := &Record{
		ID:          uuid.NewString(),
		Command:     command,
		NoteID:      noteID,
		NoteVersion: noteVersion,
		InputDigest: inputDigest,
		Outcome:     outcome,
		Posture:     posture,
		RecordedAt:  recordedAt.UTC(),
		PrevDigest:  prevDigest,
	}

	digest, err := r.seal()
	if err != nil {
		return nil, sdk.NewInternalError(op, err)
	}
	r.Digest = digest
	return r, nil
}

// seal computes the record digest over the JSON encoding of the record
// with the Digest field cleared.
func (r *Record) seal() (string, error) {
	unsealed := *r
	unsealed.Digest = ""
	data, err := json.Marshal(&unsealed)
	if err != nil {
		return "", fmt.Errorf("encoding record %s: %w", r.ID, err)
	}
	return Digest(data), nil
}

// Verify walks a chain of records in append order and checks that every
// digest matches its content and that every link points at its
// predecessor. An empty chain verifies trivially.
func Verify(records []*Record) error {
	const op = "provenance.Verify"

	prev := ""
	for i, r := range records {
		if r.PrevDigest != prev {
			return sdk.NewDomainError(op,
				fmt.Errorf("record %d (%s) links to %q, chain head is %q: %w",
					i, r.ID, r.PrevDigest, prev, sdk.ErrDomainValue))
		}
		want, err := r.seal()
		if err != nil {
			return sdk.NewInternalError(op, err)
		}
		if r.Digest != want {
			return sdk.NewDomainError(op,
				fmt.Errorf("record %d (%s) digest mismatch: %w", i, r.ID, sdk.ErrDomainValue))
		}
		prev = r.Digest
	}
	return nil
}
