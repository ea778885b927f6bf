package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suderio/eels-and-escalators/internal/board"
	"github.com/suderio/eels-and-escalators/internal/dice"
	"github.com/suderio/eels-and-escalators/internal/engine"
	"github.com/suderio/eels-and-escalators/internal/persistence"
	"github.com/suderio/eels-and-escalators/internal/sim"
)

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	s := sim.Summary{Count: 1000, Mean: 23.25, Median: 21, Min: 3, Max: 97, P90: 40}
	require.NoError(t, Summary(&buf, s, 1500*time.Millisecond))

	out := buf.String()
	for _, want := range []string{"INSTANCES", "1000", "MEAN", "23.250", "MEDIAN", "21", "MIN", "MAX", "97", "Finished in 1.500 seconds"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "failed")
}

func TestSummaryReportsFaults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, sim.Summary{Count: 9, Faults: 1}, time.Second))
	assert.Contains(t, buf.String(), "1 worker(s) failed")
}

func TestBoard(t *testing.T) {
	var buf bytes.Buffer
	b := board.MustNew(board.NormalTile(), board.EscalatorTile(3), board.EelTile(0), board.NormalTile())
	require.NoError(t, Board(&buf, b, 2))

	out := buf.String()
	assert.Contains(t, out, "4 tiles, 1 eels, 1 escalators")
	assert.Contains(t, out, "1 S>3")
	assert.Contains(t, out, "2 E>0")
}

func TestHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, History(&buf, nil))
	assert.Contains(t, buf.String(), "no runs recorded")

	buf.Reset()
	rec := persistence.RunRecord{
		ID:        uuid.New(),
		StartedAt: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
		Elapsed:   time.Second,
		Config:    persistence.RunConfig{Games: 10, Players: 3, Workers: 4},
		Summary:   sim.Summary{Count: 10, Mean: 5, Median: 5, Min: 1, Max: 9},
	}
	require.NoError(t, History(&buf, []persistence.RunRecord{rec}))
	out := buf.String()
	assert.Contains(t, out, rec.ID.String())
	assert.Contains(t, out, "board=(default)")
	assert.Contains(t, out, "games=10")
	assert.Contains(t, out, "2026-03-04T05:06:07Z")
}

func TestTurn(t *testing.T) {
	var buf bytes.Buffer
	ev := engine.TurnEvent{
		Round:  2,
		Player: 0,
		Move:   engine.Move{Roll: dice.RollResult{Kind: dice.Number, Value: 1}, From: 4, Landed: 5, To: 2},
	}
	require.NoError(t, Turn(&buf, ev))
	assert.Contains(t, buf.String(), "number(1)")
	assert.Contains(t, buf.String(), "->   2")
}
