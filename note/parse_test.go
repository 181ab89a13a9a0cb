package note

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdk "github.com/lousa-ai/sdk"
	"github.com/lousa-ai/sdk/schema"
)

const validDoc = `risk_note:
  identity:
    id: prompt-injection-gate
    version: 1.2.0
    created: 2025-05-01T09:00:00Z
    author: safety-team
  scope:
    operating_conditions: production chat traffic
    input_distribution: english prompts
    temporal_validity: P90D
  claim:
    hazard_class: prompt_injection
    threshold: 0.01
    credible_interval: [0.004, 0.018]
    shift_budget: 0.05
    failure_criteria:
      - injection success rate above threshold
  evidence:
    sources:
      - id: ev-1
        title: Red-team sweep
        uri: https://evidence.example/rt-41
        type: redteam
        created: 2025-04-20T10:00:00Z
  uncertainty:
    entries:
      - id: u-1
        type: epistemic
        location: sampling
        contribution: 0.4
        description: limited prompt corpus
  triage:
    severity: 2
    exploitability: 2
    reversibility: 4
    posture: green
  controls:
    prevent:
      - id: c-1
        description: input filter
        owner: platform
        status: active
  next_investigation:
    experiment: adversarial paraphrase sweep
    evoi_score: 0.62
    resource_estimate: PT16H
`

func TestParse(t *testing.T) {
	n, err := Parse([]byte(validDoc), schema.Default())
	require.NoError(t, err)

	assert.Equal(t, "prompt-injection-gate", n.Identity.ID)
	assert.Equal(t, "1.2.0", n.Identity.Version)
	assert.Equal(t, "P90D", n.Scope.TemporalValidity)
	assert.Equal(t, []float64{0.004, 0.018}, n.Claim.CredibleInterval)
	require.Len(t, n.Evidence.Sources, 1)
	assert.Equal(t, "ev-1", n.Evidence.Sources[0].ID)
	assert.Equal(t, UncertaintyEpistemic, n.Uncertainty.Entries[0].Type)
	assert.Equal(t, PostureGreen, n.Triage.Posture)
	require.Contains(t, n.Controls, ControlPrevent)
	assert.InDelta(t, 0.62, n.NextInvestigation.EVOIScore, 1e-12)
}

func TestParseSchemaViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc string) string
	}{
		{
			name: "missing section",
			mutate: func(doc string) string {
				return strings.Replace(doc, "  triage:\n    severity: 2\n    exploitability: 2\n    reversibility: 4\n    posture: green\n", "", 1)
			},
		},
		{
			name: "unknown posture",
			mutate: func(doc string) string {
				return strings.Replace(doc, "posture: green", "posture: purple", 1)
			},
		},
		{
			name: "severity out of schema range",
			mutate: func(doc string) string {
				return strings.Replace(doc, "severity: 2", "severity: 9", 1)
			},
		},
		{
			name: "unknown top-level field",
			mutate: func(doc string) string {
				return doc + "  surprise: true\n"
			},
		},
		{
			name: "malformed duration",
			mutate: func(doc string) string {
				return strings.Replace(doc, "temporal_validity: P90D", "temporal_validity: 90 days", 1)
			},
		},
		{
			name: "bad timestamp",
			mutate: func(doc string) string {
				return strings.Replace(doc, "created: 2025-05-01T09:00:00Z", "created: yesterday", 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.mutate(validDoc)), schema.Default())
			require.Error(t, err)
			assert.True(t, errors.Is(err, sdk.ErrSchemaViolation))
		})
	}
}

func TestParseSemanticViolations(t *testing.T) {
	// Schema-legal but semantically wrong: interval bounds inverted.
	doc := strings.Replace(validDoc, "credible_interval: [0.004, 0.018]",
		"credible_interval: [0.018, 0.004]", 1)

	_, err := Parse([]byte(doc), schema.Default())
	require.Error(t, err)
	assert.True(t, errors.Is(err, sdk.ErrSchemaViolation))

	var list sdk.ViolationList
	require.True(t, errors.As(err, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "/risk_note/claim/credible_interval", list[0].Path)
}

func TestParseReportsEveryViolation(t *testing.T) {
	doc := strings.Replace(validDoc, "severity: 2", "severity: 9", 1)
	doc = strings.Replace(doc, "posture: green", "posture: purple", 1)

	_, err := Parse([]byte(doc), schema.Default())
	require.Error(t, err)

	var list sdk.ViolationList
	require.True(t, errors.As(err, &list))
	assert.GreaterOrEqual(t, len(list), 2)
}

func TestParseNotYAML(t *testing.T) {
	_, err := Parse([]byte("{invalid: [yaml"), schema.Default())
	require.Error(t, err)

	var e *sdk.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, sdk.KindSchema, e.Kind)
}
