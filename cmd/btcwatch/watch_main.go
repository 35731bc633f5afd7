package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/btcwatch/btcwatch/internal/advisor"
	"github.com/btcwatch/btcwatch/internal/config"
	"github.com/btcwatch/btcwatch/internal/provider/coingecko"
	"github.com/btcwatch/btcwatch/internal/report"
)

// minWatchInterval keeps the poll loop inside free-tier API budgets.
const minWatchInterval = 10 * time.Second

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the price series and print crossover signals",
		Long:  "Repeatedly fetches recent Bitcoin prices and prints the moving-average crossover signal",
		RunE:  runWatch,
	}
	cmd.Flags().Float64("hours", 0, "Hours of price history per poll (overrides config)")
	cmd.Flags().Int("interval", 60, "Seconds between polls")
	cmd.Flags().Int("iterations", 1, "Number of polls, 0 runs until interrupted")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if hours, _ := cmd.Flags().GetFloat64("hours"); hours > 0 {
		cfg.Signal.Hours = hours
	}
	intervalSecs, _ := cmd.Flags().GetInt("interval")
	iterations, _ := cmd.Flags().GetInt("iterations")

	interval := time.Duration(intervalSecs) * time.Second
	if interval < minWatchInterval {
		interval = minWatchInterval
	}

	client := coingecko.New(cfg.Provider, nil)
	ctx := cmd.Context()

	for iteration := 1; ; iteration++ {
		if err := watchTick(ctx, cmd, client, cfg); err != nil {
			// A failed poll is logged, not fatal; the next tick retries.
			log.Error().Err(err).Msg("market data refresh failed")
		}

		if iterations > 0 && iteration >= iterations {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}

func watchTick(ctx context.Context, cmd *cobra.Command, client *coingecko.Client, cfg config.Config) error {
	tickCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Provider.TimeoutSecs+5)*time.Second)
	defer cancel()

	points, err := client.PricePoints(tickCtx, cfg.Signal.Hours)
	if err != nil {
		return err
	}

	signal, err := advisor.Evaluate(points, cfg.Signal)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.RenderSignal(signal, cfg.Signal.ShortWindow, cfg.Signal.LongWindow))
	return nil
}
