package bench

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gleipnir/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Bench.Instruments = []string{"AAPL", "NVDA"}
	cfg.Bench.Orders = 2000
	cfg.Bench.ResultsPath = filepath.Join(t.TempDir(), "results.txt")
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestRunner_Run(t *testing.T) {
	cfg := testConfig(t)
	runner := NewRunner(cfg, zerolog.Nop())

	results, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)

	for i, result := range results {
		assert.Equal(t, cfg.Bench.Instruments[i], result.Instrument)
		assert.Equal(t, cfg.Bench.Orders, result.Orders)
		assert.Greater(t, result.Trades, 0, "a crossing random stream must trade")
		assert.Greater(t, result.Throughput, 0.0)
		assert.Positive(t, result.Elapsed)
	}
}

func TestRunner_AppendsOneLinePerInstrument(t *testing.T) {
	cfg := testConfig(t)
	runner := NewRunner(cfg, zerolog.Nop())

	_, err := runner.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.Bench.ResultsPath)
	require.NoError(t, err)

	contents := string(data)
	assert.Contains(t, contents, "instrument=AAPL")
	assert.Contains(t, contents, "instrument=NVDA")
	assert.Contains(t, contents, "num_orders=2000")

	// A second run appends rather than truncates.
	_, err = runner.Run(context.Background())
	require.NoError(t, err)

	data, err = os.ReadFile(cfg.Bench.ResultsPath)
	require.NoError(t, err)
	assert.Greater(t, len(data), len(contents))
}

func TestRunner_DeterministicForSeed(t *testing.T) {
	cfg := testConfig(t)
	cfg.Bench.Instruments = []string{"AAPL"}
	runner := NewRunner(cfg, zerolog.Nop())

	first, err := runner.Run(context.Background())
	require.NoError(t, err)
	second, err := runner.Run(context.Background())
	require.NoError(t, err)

	// Same seed, same stream, same number of executions.
	assert.Equal(t, first[0].Trades, second[0].Trades)
}
