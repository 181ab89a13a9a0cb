package gate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdk "github.com/lousa-ai/sdk"
	"github.com/lousa-ai/sdk/freshness"
	"github.com/lousa-ai/sdk/note"
)

func gatedNote(severity, exploitability, reversibility int, stored note.Posture) *note.RiskNote {
	return &note.RiskNote{
		Identity: note.Identity{ID: "gated", Version: "1.0.0"},
		Triage: note.Triage{
			Severity:       severity,
			Exploitability: exploitability,
			Reversibility:  reversibility,
			Posture:        stored,
		},
		NextInvestigation: note.NextInvestigation{
			Experiment:       "follow-up",
			EVOIScore:        0.3,
			ResourceEstimate: "PT8H",
		},
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		note      *note.RiskNote
		expected  note.Posture
		wantPass  bool
		wantDrift bool
	}{
		{
			name:     "green note passes green gate",
			note:     gatedNote(2, 2, 4, note.PostureGreen),
			expected: note.PostureGreen,
			wantPass: true,
		},
		{
			name:     "red note refused by green gate",
			note:     gatedNote(5, 5, 1, note.PostureRed),
			expected: note.PostureGreen,
			wantPass: false,
		},
		{
			name:      "stored posture is not trusted",
			note:      gatedNote(5, 5, 1, note.PostureGreen),
			expected:  note.PostureGreen,
			wantPass:  false,
			wantDrift: true,
		},
		{
			name:      "drift does not block a matching gate",
			note:      gatedNote(2, 2, 4, note.PostureAmber),
			expected:  note.PostureGreen,
			wantPass:  true,
			wantDrift: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Check(tt.note, tt.expected)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPass, d.Pass)
			assert.Equal(t, tt.wantDrift, d.Drift)
			assert.Equal(t, tt.expected, d.Expected)
			assert.NotEmpty(t, d.Reason)
		})
	}
}

func TestCheckInvalidExpected(t *testing.T) {
	_, err := Check(gatedNote(2, 2, 4, note.PostureGreen), note.Posture("purple"))
	require.Error(t, err)

	var e *sdk.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, sdk.KindConfiguration, e.Kind)
}

func TestBuildReport(t *testing.T) {
	n := gatedNote(3, 5, 3, note.PostureAmber)

	r, err := BuildReport(n, nil)
	require.NoError(t, err)

	assert.Equal(t, note.PostureRed, r.Posture)
	assert.Equal(t, note.PostureAmber, r.StoredPosture)
	assert.True(t, r.Drift)
	assert.InDelta(t, 5.0, r.RiskScore, 1e-12)
	assert.False(t, r.AnyStale)
	assert.InDelta(t, 0.3, r.EVOIScore, 1e-12)
}

func TestBuildReportWithFreshness(t *testing.T) {
	n := gatedNote(2, 2, 4, note.PostureGreen)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sources := []note.Source{{ID: "e1", Created: now.Add(-40 * 24 * time.Hour)}}

	fresh, err := freshness.Check(sources, 30*24*time.Hour, now)
	require.NoError(t, err)
	require.True(t, fresh.AnyStale)

	r, err := BuildReport(n, fresh)
	require.NoError(t, err)
	assert.True(t, r.AnyStale)
}

func TestCompilePolicy(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr bool
	}{
		{"posture equality", `posture == "green"`, false},
		{"compound condition", `posture == "green" && !any_stale`, false},
		{"numeric comparison", `risk_score < 2.0 || evoi_score > 0.5`, false},
		{"triage inputs", `severity >= 4 && reversibility <= 2`, false},
		{"syntax error", `posture ==`, true},
		{"unknown variable", `weather == "sunny"`, true},
		{"non-boolean result", `risk_score + 1.0`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompilePolicy(tt.expr)
			if tt.wantErr {
				require.Error(t, err)
				var e *sdk.Error
				require.True(t, errors.As(err, &e))
				assert.Equal(t, sdk.KindConfiguration, e.Kind)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPolicyEval(t *testing.T) {
	report := &Report{
		Posture:        note.PostureGreen,
		StoredPosture:  note.PostureGreen,
		Severity:       2,
		Exploitability: 2,
		Reversibility:  4,
		RiskScore:      1.0,
		AnyStale:       false,
		EVOIScore:      0.62,
	}

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{"passes on matching posture", `posture == "green"`, true},
		{"fails on stale requirement", `posture == "green" && any_stale`, false},
		{"score bound holds", `risk_score < 2.0`, true},
		{"drift check", `!drift`, true},
		{"evoi floor", `evoi_score > 0.5`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := CompilePolicy(tt.expr)
			require.NoError(t, err)

			got, err := p.Eval(report)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPolicyWithStaleEvidence(t *testing.T) {
	n := gatedNote(3, 3, 3, note.PostureAmber) // classifies amber
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	maxAge := 30 * 24 * time.Hour

	p, err := CompilePolicy(`posture != "red" && !any_stale`)
	require.NoError(t, err)

	check := func(sourceAge time.Duration) bool {
		fresh, err := freshness.Check([]note.Source{{ID: "e1", Created: now.Add(-sourceAge)}}, maxAge, now)
		require.NoError(t, err)
		r, err := BuildReport(n, fresh)
		require.NoError(t, err)
		pass, err := p.Eval(r)
		require.NoError(t, err)
		return pass
	}

	assert.True(t, check(24*time.Hour))
	assert.False(t, check(45*24*time.Hour))
}

func TestCheckPolicy(t *testing.T) {
	report := &Report{
		Posture:       note.PostureAmber,
		StoredPosture: note.PostureGreen,
		Drift:         true,
		RiskScore:     2.5,
	}

	p, err := CompilePolicy(`posture == "amber" && risk_score < 3.0`)
	require.NoError(t, err)

	d, err := CheckPolicy(report, p)
	require.NoError(t, err)
	assert.True(t, d.Pass)
	assert.True(t, d.Drift)
	assert.Equal(t, note.PostureAmber, d.Classified)

	refuse, err := CompilePolicy(`!drift`)
	require.NoError(t, err)

	d, err = CheckPolicy(report, refuse)
	require.NoError(t, err)
	assert.False(t, d.Pass)
}
