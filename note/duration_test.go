package note

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"P30D", 30 * 24 * time.Hour},
		{"PT16H", 16 * time.Hour},
		{"PT1H30M", 90 * time.Minute},
		{"P1D", 24 * time.Hour},
		{"PT0S", 0},
		{"P1DT12H", 36 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseISODuration(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseISODurationErrors(t *testing.T) {
	for _, input := range []string{"", "30 days", "16h", "p1d"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseISODuration(input)
			assert.Error(t, err)
		})
	}
}

func TestISODurationHours(t *testing.T) {
	got, err := ISODurationHours("PT16H")
	require.NoError(t, err)
	assert.InDelta(t, 16.0, got, 1e-12)

	got, err = ISODurationHours("P2D")
	require.NoError(t, err)
	assert.InDelta(t, 48.0, got, 1e-12)
}
