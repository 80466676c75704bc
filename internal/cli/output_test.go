package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastos/internal/core"
)

func TestRenderSummary_Golden(t *testing.T) {
	tests := []struct {
		name string
		snap core.Snapshot
	}{
		{
			name: "summary_scenario",
			snap: core.Snapshot{
				Income: decimal.NewFromInt(1000),
				Entries: []core.Entry{
					{Name: "Rent", Group: core.Fixed, Planned: "500", Actual: "500"},
					{Name: "Cinema", Group: core.Leisure, Planned: "50", Actual: "80"},
					{Name: "Misc", Group: core.Unassigned, Planned: "", Actual: "20"},
				},
			},
		},
		{
			name: "summary_overspent",
			snap: core.Snapshot{
				Income: decimal.NewFromInt(100),
				Entries: []core.Entry{
					{Name: "Rent", Group: core.Fixed, Planned: "120", Actual: "150"},
					{Name: "Notes", Group: core.Savings, Planned: "abc", Actual: " 12,5 "},
				},
			},
		},
		{
			name: "summary_empty",
			snap: core.NewSnapshot(),
		},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderSummary(&buf, tt.snap))
			g.Assert(t, tt.name, buf.Bytes())
		})
	}
}

func TestRenderSummaryJSON(t *testing.T) {
	snap := core.Snapshot{
		Income:  decimal.NewFromInt(100),
		Entries: []core.Entry{{Name: "Rent", Group: core.Fixed, Planned: "120", Actual: ""}},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderSummaryJSON(&buf, snap))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, float64(120), got["total_planned"])
	assert.Equal(t, float64(-20), got["remaining"])
	assert.Equal(t, true, got["over_planned_alert"])
	assert.Equal(t, false, got["over_actual_alert"])
	assert.Len(t, got["breakdown"], 4)
	assert.Len(t, got["entries"], 1)
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad flag")))

	wrapped := WrapExitError(ExitFailure, "cannot set group", core.ErrIndexOutOfRange)
	assert.ErrorIs(t, wrapped, core.ErrIndexOutOfRange)
	assert.Equal(t, "cannot set group: entry index out of range", wrapped.Error())
}
