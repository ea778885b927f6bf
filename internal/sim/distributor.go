package sim

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/suderio/eels-and-escalators/internal/board"
	"github.com/suderio/eels-and-escalators/internal/dice"
	"github.com/suderio/eels-and-escalators/internal/engine"
)

// ErrInvalidConfig is returned for a run configuration that cannot execute.
var ErrInvalidConfig = errors.New("invalid simulation config")

// GameFunc plays one instance with a worker's private source.
type GameFunc func(src dice.Source) (uint64, error)

// Config describes a simulation run.
type Config struct {
	Board   *board.Board
	Games   int
	Players int

	// Workers defaults to runtime.NumCPU() when zero.
	Workers int

	// LegacyDice rolls the numeric die with the legacy bit mask.
	LegacyDice bool

	// NewSource builds the private random source for a worker. Defaults to
	// a PCG generator with random seeds.
	NewSource func(worker int) dice.Source

	// Play overrides how a single instance is played.
	Play GameFunc

	// OnRecord is called after each recorded result, from worker goroutines,
	// so it must be safe for concurrent use.
	OnRecord func(rounds uint64)

	Logger log.FieldLogger
}

// Distributor spreads a fixed number of game instances over a pool of workers.
type Distributor struct {
	cfg     Config
	claimer *Claimer
	agg     *Aggregator
}

// NewDistributor validates cfg and fills in defaults.
func NewDistributor(cfg Config) (*Distributor, error) {
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	switch {
	case cfg.Games < 0:
		return nil, fmt.Errorf("%w: games must not be negative, got %d", ErrInvalidConfig, cfg.Games)
	case cfg.Workers < 1:
		return nil, fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, cfg.Workers)
	case cfg.Play == nil && cfg.Players < 1:
		return nil, fmt.Errorf("%w: players must be at least 1, got %d", ErrInvalidConfig, cfg.Players)
	case cfg.Play == nil && cfg.Board == nil:
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, engine.ErrNoBoard)
	}

	if cfg.NewSource == nil {
		cfg.NewSource = func(int) dice.Source {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
	}
	if cfg.Play == nil {
		var opts []dice.Option
		if cfg.LegacyDice {
			opts = append(opts, dice.WithLegacyMask())
		}
		b, players := cfg.Board, cfg.Players
		cfg.Play = func(src dice.Source) (uint64, error) {
			return engine.Play(b, players, src, opts...)
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.StandardLogger()
	}

	return &Distributor{
		cfg:     cfg,
		claimer: NewClaimer(cfg.Games),
		agg:     NewAggregator(cfg.Games),
	}, nil
}

// Run starts the workers and blocks until every one of them has stopped. The
// returned aggregator holds whatever was recorded, including after faults.
func (d *Distributor) Run() *Aggregator {
	var wg sync.WaitGroup
	wg.Add(d.cfg.Workers)
	for id := 0; id < d.cfg.Workers; id++ {
		go func(id int) {
			defer wg.Done()
			d.work(id)
		}(id)
	}
	wg.Wait()
	return d.agg
}

// Workers returns the size of the worker pool.
func (d *Distributor) Workers() int { return d.cfg.Workers }

// Claimed reports how many instances have been started.
func (d *Distributor) Claimed() int { return d.claimer.Claimed() }

func (d *Distributor) work(id int) {
	logger := d.cfg.Logger.WithField("worker", id)
	logger.Debug("worker started")

	src := d.cfg.NewSource(id)
	played := 0
	for {
		idx, ok := d.claimer.Claim()
		if !ok {
			break
		}
		rounds, err := d.playOne(src)
		if err != nil {
			logger.WithField("instance", idx).WithError(err).Error("worker stopped")
			d.agg.RecordFault(Fault{Worker: id, Instance: idx, Reason: err.Error()})
			return
		}
		d.agg.Record(rounds)
		played++
		if d.cfg.OnRecord != nil {
			d.cfg.OnRecord(rounds)
		}
	}
	logger.WithField("played", played).Debug("worker finished")
}

// playOne converts a panic inside a game into an error so that it stays
// local to this worker.
func (d *Distributor) playOne(src dice.Source) (rounds uint64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("game panicked: %v", r)
		}
	}()
	return d.cfg.Play(src)
}

// Simulate builds a distributor from cfg, runs it and returns the results.
func Simulate(cfg Config) (*Aggregator, error) {
	d, err := NewDistributor(cfg)
	if err != nil {
		return nil, err
	}
	return d.Run(), nil
}
