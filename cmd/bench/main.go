package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gleipnir/internal/bench"
	"gleipnir/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config (built-in defaults when empty)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to load config")
		}
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to parse log level")
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	runner := bench.NewRunner(cfg, log.Logger)
	results, err := runner.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("benchmark failed")
	}

	for _, result := range results {
		fmt.Printf(
			"%s: processed %d orders in %.4f seconds (%.0f orders/second, %d trades)\n",
			result.Instrument,
			result.Orders,
			result.Elapsed.Seconds(),
			result.Throughput,
			result.Trades,
		)
	}
}
