package sim

import (
	"math/rand/v2"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suderio/eels-and-escalators/internal/board"
	"github.com/suderio/eels-and-escalators/internal/dice"
)

func quietLogger() (*logrus.Logger, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

func TestSimulateThousandGames(t *testing.T) {
	b, err := board.Default()
	require.NoError(t, err)
	logger, _ := quietLogger()

	var recorded atomic.Int64
	agg, err := Simulate(Config{
		Board:    b,
		Games:    1000,
		Players:  3,
		Workers:  8,
		Logger:   logger,
		OnRecord: func(uint64) { recorded.Add(1) },
	})
	require.NoError(t, err)

	assert.Len(t, agg.Results(), 1000)
	assert.Equal(t, int64(1000), recorded.Load())

	s, err := agg.Summarize()
	require.NoError(t, err)
	assert.Equal(t, 1000, s.Count)
	assert.LessOrEqual(t, s.Min, s.Median)
	assert.LessOrEqual(t, s.Median, s.Max)
	assert.GreaterOrEqual(t, s.Mean, float64(s.Min))
	assert.LessOrEqual(t, s.Mean, float64(s.Max))
	assert.Zero(t, s.Faults)
}

func TestSimulateEachInstanceRunsOnce(t *testing.T) {
	logger, _ := quietLogger()
	var calls atomic.Int64
	agg, err := Simulate(Config{
		Games:   500,
		Workers: 16,
		Logger:  logger,
		Play: func(dice.Source) (uint64, error) {
			return uint64(calls.Add(1)), nil
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(500), calls.Load())
	seen := make(map[uint64]bool)
	for _, r := range agg.Results() {
		assert.False(t, seen[r])
		seen[r] = true
	}
	assert.Len(t, seen, 500)
}

func TestSimulateSourcesArePerWorker(t *testing.T) {
	logger, _ := quietLogger()
	var built atomic.Int64
	sources := make(chan dice.Source, 4)
	_, err := Simulate(Config{
		Games:   100,
		Workers: 4,
		Logger:  logger,
		NewSource: func(worker int) dice.Source {
			built.Add(1)
			src := rand.New(rand.NewPCG(uint64(worker), 1))
			sources <- src
			return src
		},
		Play: func(dice.Source) (uint64, error) { return 1, nil },
	})
	require.NoError(t, err)
	close(sources)

	assert.Equal(t, int64(4), built.Load())
	distinct := make(map[dice.Source]bool)
	for s := range sources {
		distinct[s] = true
	}
	assert.Len(t, distinct, 4)
}

func TestSimulateToleratesWorkerPanic(t *testing.T) {
	logger, hook := quietLogger()
	var calls atomic.Int64
	agg, err := Simulate(Config{
		Games:   200,
		Workers: 4,
		Logger:  logger,
		Play: func(dice.Source) (uint64, error) {
			if calls.Add(1) == 10 {
				panic("corrupt state")
			}
			return 3, nil
		},
	})
	require.NoError(t, err)

	faults := agg.Faults()
	require.Len(t, faults, 1)
	assert.Contains(t, faults[0].Reason, "corrupt state")
	assert.Equal(t, 199, agg.Len(), "the other instances still complete")

	s, err := agg.Summarize()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Faults)
	assert.Equal(t, 199, s.Count)

	var errorLogged bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			errorLogged = true
			assert.Contains(t, e.Data, "worker")
			assert.Contains(t, e.Data, "instance")
		}
	}
	assert.True(t, errorLogged)
}

func TestSimulateGameError(t *testing.T) {
	logger, _ := quietLogger()
	agg, err := Simulate(Config{
		Games:   5,
		Workers: 1,
		Logger:  logger,
		Play: func(dice.Source) (uint64, error) {
			return 0, assert.AnError
		},
	})
	require.NoError(t, err)
	assert.Len(t, agg.Faults(), 1)
	_, err = agg.Summarize()
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestSimulateMoreWorkersThanGames(t *testing.T) {
	logger, _ := quietLogger()
	agg, err := Simulate(Config{
		Board:   board.MustNew(board.NormalTile()),
		Games:   3,
		Players: 2,
		Workers: 10,
		Logger:  logger,
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 1, 1}, agg.Results())
}

func TestNewDistributorValidates(t *testing.T) {
	b := board.MustNew(board.NormalTile())
	cases := map[string]Config{
		"negative games":   {Board: b, Games: -1, Players: 1, Workers: 1},
		"negative workers": {Board: b, Games: 1, Players: 1, Workers: -2},
		"no players":       {Board: b, Games: 1, Players: 0, Workers: 1},
		"no board":         {Games: 1, Players: 1, Workers: 1},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewDistributor(cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	d, err := NewDistributor(Config{Board: b, Games: 1, Players: 1})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, d.Workers(), 1)
}
