package freshness

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdk "github.com/lousa-ai/sdk"
	"github.com/lousa-ai/sdk/note"
)

var checkTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func source(id string, age time.Duration) note.Source {
	return note.Source{
		ID:      id,
		Title:   "evidence " + id,
		URI:     "https://evidence.example/" + id,
		Type:    "eval_run",
		Created: checkTime.Add(-age),
	}
}

func TestCheck(t *testing.T) {
	maxAge := 30 * 24 * time.Hour

	tests := []struct {
		name      string
		sources   []note.Source
		wantStale []bool
		wantAny   bool
	}{
		{
			name:      "fresh source under the limit",
			sources:   []note.Source{source("e1", 29*24*time.Hour)},
			wantStale: []bool{false},
			wantAny:   false,
		},
		{
			name:      "source over the limit is stale",
			sources:   []note.Source{source("e1", 31*24*time.Hour)},
			wantStale: []bool{true},
			wantAny:   true,
		},
		{
			name:      "age exactly at the limit is still fresh",
			sources:   []note.Source{source("e1", maxAge)},
			wantStale: []bool{false},
			wantAny:   false,
		},
		{
			name: "one stale source marks the report",
			sources: []note.Source{
				source("e1", 24*time.Hour),
				source("e2", 45*24*time.Hour),
			},
			wantStale: []bool{false, true},
			wantAny:   true,
		},
		{
			name:      "slightly future source within skew tolerance",
			sources:   []note.Source{source("e1", -2*time.Minute)},
			wantStale: []bool{false},
			wantAny:   false,
		},
		{
			name:      "no sources",
			sources:   nil,
			wantStale: nil,
			wantAny:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Check(tt.sources, maxAge, checkTime)
			require.NoError(t, err)

			assert.Equal(t, maxAge, report.MaxAge)
			assert.Equal(t, checkTime, report.CheckedAt)
			assert.Equal(t, tt.wantAny, report.AnyStale)
			require.Len(t, report.Sources, len(tt.wantStale))
			for i, stale := range tt.wantStale {
				assert.Equal(t, stale, report.Sources[i].Stale, "source %d", i)
				assert.Equal(t, tt.sources[i].ID, report.Sources[i].SourceID)
			}
		})
	}
}

func TestCheckTimestampErrors(t *testing.T) {
	maxAge := 30 * 24 * time.Hour

	t.Run("future beyond skew tolerance", func(t *testing.T) {
		_, err := Check([]note.Source{source("e1", -10*time.Minute)}, maxAge, checkTime)
		require.Error(t, err)
		assert.True(t, errors.Is(err, sdk.ErrInvalidTimestamp))
	})

	t.Run("zero timestamp", func(t *testing.T) {
		src := source("e1", time.Hour)
		src.Created = time.Time{}
		_, err := Check([]note.Source{src}, maxAge, checkTime)
		require.Error(t, err)
		assert.True(t, errors.Is(err, sdk.ErrInvalidTimestamp))
	})
}

func TestCheckConfigurationErrors(t *testing.T) {
	t.Run("negative max age", func(t *testing.T) {
		_, err := Check(nil, -time.Hour, checkTime)
		require.Error(t, err)

		var e *sdk.Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, sdk.KindConfiguration, e.Kind)
	})

	t.Run("zero reference time", func(t *testing.T) {
		_, err := Check(nil, time.Hour, time.Time{})
		require.Error(t, err)

		var e *sdk.Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, sdk.KindConfiguration, e.Kind)
	})
}
