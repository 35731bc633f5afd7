package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/btcwatch/btcwatch/internal/advisor"
	"github.com/btcwatch/btcwatch/internal/config"
	"github.com/btcwatch/btcwatch/internal/provider/coingecko"
	"github.com/btcwatch/btcwatch/internal/report"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch a market snapshot and print a recommendation",
		Long:  "Performs one fetch of current Bitcoin market statistics, classifies the momentum, and prints a colored report",
		RunE:  runOnce,
	}
	cmd.Flags().Int("timeout", 0, "Request timeout in seconds (overrides config)")
	return cmd
}

func runOnce(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if timeout, _ := cmd.Flags().GetInt("timeout"); timeout > 0 {
		cfg.Provider.TimeoutSecs = timeout
	}

	client := coingecko.New(cfg.Provider, nil)

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.Provider.TimeoutSecs+5)*time.Second)
	defer cancel()

	snap, err := client.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("fetch market snapshot: %w", err)
	}

	rec := advisor.Recommend(snap, cfg.Advisor)
	fmt.Fprint(cmd.OutOrStdout(), report.Render(snap, rec))
	return nil
}
