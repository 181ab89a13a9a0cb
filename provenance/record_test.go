package provenance

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdk "github.com/lousa-ai/sdk"
	"github.com/lousa-ai/sdk/note"
)

var sealTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func chainOf(t *testing.T, n int) []*Record {
	t.Helper()

	records := make([]*Record, 0, n)
	prev := ""
	for i := 0; i < n; i++ {
		r, err := NewRecord("lint", "note-1", "1.0.0",
			Digest([]byte("input")), "ok", note.PostureGreen,
			sealTime.Add(time.Duration(i)*time.Minute), prev)
		require.NoError(t, err)
		records = append(records, r)
		prev = r.Digest
	}
	return records
}

func TestNewRecord(t *testing.T) {
	r, err := NewRecord("gate", "note-1", "1.0.0",
		Digest([]byte("doc")), "gate_passed", note.PostureGreen, sealTime, "")
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID)
	assert.NotEmpty(t, r.Digest)
	assert.Empty(t, r.PrevDigest)
	assert.Equal(t, sealTime, r.RecordedAt)

	// Records are distinct even with identical content.
	other, err := NewRecord("gate", "note-1", "1.0.0",
		Digest([]byte("doc")), "gate_passed", note.PostureGreen, sealTime, "")
	require.NoError(t, err)
	assert.NotEqual(t, r.ID, other.ID)
	assert.NotEqual(t, r.Digest, other.Digest)
}

func TestNewRecordErrors(t *testing.T) {
	t.Run("empty command", func(t *testing.T) {
		_, err := NewRecord("", "note-1", "1.0.0", "", "ok", "", sealTime, "")
		require.Error(t, err)

		var e *sdk.Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, sdk.KindConfiguration, e.Kind)
	})

	t.Run("zero time", func(t *testing.T) {
		_, err := NewRecord("lint", "note-1", "1.0.0", "", "ok", "", time.Time{}, "")
		require.Error(t, err)
	})
}

func TestVerify(t *testing.T) {
	t.Run("empty chain", func(t *testing.T) {
		assert.NoError(t, Verify(nil))
	})

	t.Run("intact chain", func(t *testing.T) {
		assert.NoError(t, Verify(chainOf(t, 4)))
	})

	t.Run("tampered content", func(t *testing.T) {
		records := chainOf(t, 3)
		records[1].Outcome = "gate_passed"

		err := Verify(records)
		require.Error(t, err)
		assert.True(t, errors.Is(err, sdk.ErrDomainValue))
	})

	t.Run("broken link", func(t *testing.T) {
		records := chainOf(t, 3)
		records = append(records[:1], records[2])

		err := Verify(records)
		require.Error(t, err)
		assert.True(t, errors.Is(err, sdk.ErrDomainValue))
	})

	t.Run("reordered records", func(t *testing.T) {
		records := chainOf(t, 3)
		records[0], records[1] = records[1], records[0]
		assert.Error(t, Verify(records))
	})
}

func TestDigest(t *testing.T) {
	a := Digest([]byte("document"))
	b := Digest([]byte("document"))
	c := Digest([]byte("document "))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
