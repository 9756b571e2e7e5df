package bench

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
	tomb "gopkg.in/tomb.v2"

	"gleipnir/internal/common"
	"gleipnir/internal/config"
	"gleipnir/internal/engine"
)

// Result is one instrument's benchmark outcome.
type Result struct {
	Instrument string
	Orders     int
	Trades     int
	Elapsed    time.Duration
	Throughput float64 // orders per second
}

// Runner feeds synthetic limit-order streams through the matching engine and
// measures throughput. Scaling follows the engine's contract: one OrderBook
// and one dedicated goroutine per instrument, no shared mutable state between
// them. Results append to a rolling text log, one summary line per
// instrument per run.
type Runner struct {
	cfg *config.Config
	log zerolog.Logger
}

func NewRunner(cfg *config.Config, logger zerolog.Logger) *Runner {
	return &Runner{cfg: cfg, log: logger}
}

// Run executes the benchmark across all configured instruments and appends
// the summary lines to the results file. Each run is stamped with a fresh
// run id so lines from different runs can be told apart.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	runID := uuid.NewString()
	instruments := r.cfg.Bench.Instruments

	r.log.Info().
		Str("run", runID).
		Int("instruments", len(instruments)).
		Int("orders", r.cfg.Bench.Orders).
		Int64("seed", r.cfg.Bench.Seed).
		Msg("benchmark starting")

	t, _ := tomb.WithContext(ctx)
	results := make([]Result, len(instruments))
	for i, instrument := range instruments {
		// Offset the seed per instrument so the streams differ while the
		// whole run stays reproducible.
		seed := r.cfg.Bench.Seed + int64(i)
		i, instrument := i, instrument
		t.Go(func() error {
			result, err := r.runInstrument(t, instrument, seed)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := t.Wait(); err != nil {
		return nil, fmt.Errorf("benchmark run %s: %w", runID, err)
	}

	for _, result := range results {
		r.log.Info().
			Str("run", runID).
			Str("instrument", result.Instrument).
			Int("orders", result.Orders).
			Int("trades", result.Trades).
			Dur("elapsed", result.Elapsed).
			Float64("throughput", result.Throughput).
			Msg("instrument complete")
	}

	if err := r.appendResults(runID, results); err != nil {
		return nil, err
	}
	return results, nil
}

// runInstrument drives one engine instance with a seeded stream of random
// limit orders: coin-flip side, price uniform in base +- band, quantity
// uniform in [1, max].
func (r *Runner) runInstrument(t *tomb.Tomb, instrument string, seed int64) (Result, error) {
	book := engine.New()
	rng := rand.New(rand.NewSource(seed))

	orders := r.cfg.Bench.Orders
	base := r.cfg.Bench.BasePrice
	band := r.cfg.Bench.PriceBand
	maxQty := int64(r.cfg.Bench.MaxQuantity)

	start := time.Now()
	for i := 0; i < orders; i++ {
		if i&0x3ff == 0 {
			select {
			case <-t.Dying():
				return Result{}, fmt.Errorf("instrument %s: run aborted", instrument)
			default:
			}
		}

		side := common.Buy
		if rng.Float64() < 0.5 {
			side = common.Sell
		}
		price := base + (rng.Float64()*2-1)*band
		quantity := uint64(rng.Int63n(maxQty) + 1)

		if _, err := book.AddLimitOrder(side, price, quantity); err != nil {
			return Result{}, fmt.Errorf("instrument %s: order %d: %w", instrument, i, err)
		}
	}
	elapsed := time.Since(start)

	throughput := float64(orders) / elapsed.Seconds()
	return Result{
		Instrument: instrument,
		Orders:     orders,
		Trades:     len(book.Trades()),
		Elapsed:    elapsed,
		Throughput: throughput,
	}, nil
}

// appendResults writes one human-readable summary line per instrument to the
// rolling results file.
func (r *Runner) appendResults(runID string, results []Result) error {
	out := &lumberjack.Logger{
		Filename:   r.cfg.Bench.ResultsPath,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
	}
	defer out.Close()

	timestamp := time.Now().Format("2006-01-02T15:04:05")
	for _, result := range results {
		line := fmt.Sprintf(
			"[%s] run=%s instrument=%s num_orders=%d, elapsed=%.4fs, throughput=%.0f orders/s\n",
			timestamp,
			runID,
			result.Instrument,
			result.Orders,
			result.Elapsed.Seconds(),
			result.Throughput,
		)
		if _, err := out.Write([]byte(line)); err != nil {
			return fmt.Errorf("appending results: %w", err)
		}
	}
	return nil
}
