// internal/sim/driver.go
package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/betsim/internal/events"
	"github.com/rovshanmuradov/betsim/internal/game"
	"github.com/rovshanmuradov/betsim/internal/rng"
)

// Defaults for a run: ten batches of ten thousand trials on one worker.
const (
	DefaultBatches        = 10
	DefaultTrialsPerBatch = 10_000
	DefaultWorkers        = 1
)

var ErrCountMismatch = errors.New("wins and losses do not add up to trials")

// Options controls how many trials run and how they are scheduled.
type Options struct {
	Batches        int
	TrialsPerBatch int
	Workers        int
	// Seed is the master seed. Zero means draw one from the OS.
	Seed uint64
}

// DefaultOptions returns the standard run shape.
func DefaultOptions() Options {
	return Options{
		Batches:        DefaultBatches,
		TrialsPerBatch: DefaultTrialsPerBatch,
		Workers:        DefaultWorkers,
	}
}

// BatchResult holds the counts of one batch.
type BatchResult struct {
	Index    int           `json:"batch"`
	Trials   int           `json:"trials"`
	Wins     int           `json:"wins"`
	Losses   int           `json:"losses"`
	Duration time.Duration `json:"-"`
}

// SourceFactory returns the generator used by one trial.
type SourceFactory func(batch, trial int) rng.Source

// Option customises a Driver.
type Option func(*Driver)

// WithSourceFactory replaces the per-trial generator factory.
func WithSourceFactory(f SourceFactory) Option {
	return func(d *Driver) { d.sources = f }
}

// WithEventBus publishes batch progress to bus.
func WithEventBus(bus *events.Bus) Option {
	return func(d *Driver) { d.bus = bus }
}

// Driver repeats sessions in batches and counts wins and losses.
type Driver struct {
	params  game.Params
	opts    Options
	logger  *zap.Logger
	bus     *events.Bus
	sources SourceFactory
	seed    uint64
}

// NewDriver validates params and opts and builds a Driver.
func NewDriver(params game.Params, opts Options, logger *zap.Logger, options ...Option) (*Driver, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game params: %w", err)
	}
	if opts.Batches < 0 {
		return nil, fmt.Errorf("batches must not be negative: %d", opts.Batches)
	}
	if opts.TrialsPerBatch < 0 {
		return nil, fmt.Errorf("trials per batch must not be negative: %d", opts.TrialsPerBatch)
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rng.NewEntropySeed()
	}

	d := &Driver{
		params: params,
		opts:   opts,
		logger: logger.Named("driver"),
		seed:   seed,
	}
	d.sources = func(batch, trial int) rng.Source {
		return rng.NewSeeded(rng.Derive(seed, batch, trial))
	}
	for _, o := range options {
		o(d)
	}
	return d, nil
}

// Seed returns the master seed the run derives its generators from.
func (d *Driver) Seed() uint64 {
	return d.seed
}

// Options returns the effective run options.
func (d *Driver) Options() Options {
	return d.opts
}

// Run plays every batch in order. onBatch, if set, sees each result as soon
// as its batch is done; an error from it stops the run.
func (d *Driver) Run(ctx context.Context, onBatch func(BatchResult) error) ([]BatchResult, error) {
	start := time.Now()
	d.logger.Info("Simulation started",
		zap.Int("batches", d.opts.Batches),
		zap.Int("trials_per_batch", d.opts.TrialsPerBatch),
		zap.Int("workers", d.opts.Workers),
		zap.Uint64("seed", d.seed))

	results := make([]BatchResult, 0, d.opts.Batches)
	var runErr error
	for i := 0; i < d.opts.Batches; i++ {
		res, err := d.RunBatch(ctx, i)
		if err != nil {
			runErr = err
			break
		}
		results = append(results, res)

		if onBatch != nil {
			if err := onBatch(res); err != nil {
				runErr = fmt.Errorf("report batch %d: %w", i, err)
				break
			}
		}
	}

	var wins, losses int
	for _, r := range results {
		wins += r.Wins
		losses += r.Losses
	}
	d.publish(events.RunCompletedEvent{
		BaseEvent: events.NewBase(events.RunCompleted),
		Batches:   len(results),
		Wins:      wins,
		Losses:    losses,
		Seed:      d.seed,
		Duration:  time.Since(start),
		Err:       runErr,
	})

	if runErr != nil {
		return results, runErr
	}

	d.logger.Info("Simulation finished",
		zap.Int("wins", wins),
		zap.Int("losses", losses),
		zap.Duration("elapsed", time.Since(start)))
	return results, nil
}

// RunBatch plays one batch. Trials are split across the configured workers;
// each worker keeps its own counters and they are summed after Wait.
func (d *Driver) RunBatch(ctx context.Context, index int) (BatchResult, error) {
	start := time.Now()
	trials := d.opts.TrialsPerBatch
	d.publish(events.BatchStartedEvent{
		BaseEvent: events.NewBase(events.BatchStarted),
		Batch:     index,
		Trials:    trials,
	})

	workers := d.opts.Workers
	if workers > trials {
		workers = trials
	}

	var res BatchResult
	if workers <= 1 {
		wins, losses, err := d.playRange(ctx, index, 0, trials)
		if err != nil {
			return BatchResult{}, err
		}
		res = BatchResult{Index: index, Trials: trials, Wins: wins, Losses: losses}
	} else {
		wins := make([]int, workers)
		losses := make([]int, workers)
		g, gCtx := errgroup.WithContext(ctx)
		chunk := (trials + workers - 1) / workers
		for w := 0; w < workers; w++ {
			from := w * chunk
			to := min(from+chunk, trials)
			g.Go(func() error {
				var err error
				wins[w], losses[w], err = d.playRange(gCtx, index, from, to)
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return BatchResult{}, err
		}

		res = BatchResult{Index: index, Trials: trials}
		for w := range wins {
			res.Wins += wins[w]
			res.Losses += losses[w]
		}
	}

	if res.Wins+res.Losses != res.Trials {
		return BatchResult{}, fmt.Errorf("batch %d: %w", index, ErrCountMismatch)
	}
	res.Duration = time.Since(start)

	d.logger.Debug("Batch finished",
		zap.Int("batch", index),
		zap.Int("wins", res.Wins),
		zap.Int("losses", res.Losses),
		zap.Duration("elapsed", res.Duration))

	d.publish(events.BatchCompletedEvent{
		BaseEvent: events.NewBase(events.BatchCompleted),
		Batch:     index,
		Trials:    res.Trials,
		Wins:      res.Wins,
		Losses:    res.Losses,
		Duration:  res.Duration,
	})
	return res, nil
}

func (d *Driver) playRange(ctx context.Context, batch, from, to int) (wins, losses int, err error) {
	for trial := from; trial < to; trial++ {
		if err := ctx.Err(); err != nil {
			return wins, losses, err
		}
		final := game.PlaySession(d.params, d.sources(batch, trial))
		if game.Classify(d.params, final) == game.OutcomeWin {
			wins++
		} else {
			losses++
		}
	}
	return wins, losses, nil
}

func (d *Driver) publish(e events.Event) {
	if d.bus == nil {
		return
	}
	if err := d.bus.Publish(e); err != nil {
		d.logger.Debug("Event not published",
			zap.String("event_type", string(e.Type())),
			zap.Error(err))
	}
}
