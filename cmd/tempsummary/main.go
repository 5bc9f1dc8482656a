// Command tempsummary reads a CSV log of timestamped temperature readings and
// writes one min/max line per calendar day to output.csv.
//
// Usage:
//
//	tempsummary input.csv
//
// Settings come from the environment; see internal/config.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/temperature-summary/internal/adapter/file"
	kafkaadapter "github.com/couchcryptid/temperature-summary/internal/adapter/kafka"
	"github.com/couchcryptid/temperature-summary/internal/config"
	"github.com/couchcryptid/temperature-summary/internal/domain"
	"github.com/couchcryptid/temperature-summary/internal/observability"
	"github.com/couchcryptid/temperature-summary/internal/pipeline"
	"github.com/spf13/cobra"
)

const usageText = "Usage:\n  tempsummary < CSV File >\n\nExample:\n  tempsummary input.csv\n\n"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(observability.NewMetrics()).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// newRootCommand builds the CLI. A wrong argument count or a missing input
// file prints usage and still succeeds; only real failures return an error.
// Flags are not parsed, so a dash-prefixed argument is taken as a path.
func newRootCommand(metrics *observability.Metrics) *cobra.Command {
	cmd := &cobra.Command{
		Use:                "tempsummary <CSV file>",
		Short:              "Summarize daily minimum and maximum temperatures",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) != 1 || args[0] == "-h" || args[0] == "--help" {
				printUsage(out)
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				slog.Error("failed to load config", "error", err)
				return err
			}
			logger := observability.NewLogger(cfg, cmd.ErrOrStderr())

			return summarize(cmd.Context(), cfg, args[0], out, logger, metrics)
		},
	}

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) { printUsage(c.OutOrStdout()) })
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		printUsage(c.OutOrStdout())
		return nil
	})
	return cmd
}

func summarize(ctx context.Context, cfg *config.Config, path string, out io.Writer, logger *slog.Logger, metrics *observability.Metrics) error {
	parser, err := domain.NewParser(cfg.UTCOffset, cfg.TemperaturePolicy)
	if err != nil {
		logger.Error("invalid parser settings", "error", err)
		return err
	}

	loaders := []pipeline.ReportLoader{file.NewSummaryWriter(cfg.OutputPath, logger)}
	if cfg.KafkaEnabled() {
		writer := kafkaadapter.NewWriter(cfg, logger, metrics)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		loaders = append(loaders, writer)
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	p := pipeline.New(file.NewLineSource(path), parser, loaders, logger, metrics)

	report, err := p.Run(ctx)
	if errors.Is(err, file.ErrNotFound) {
		fmt.Fprintf(out, "File not found: %s\n", path)
		printUsage(out)
		return nil
	}
	// A report stamped by the pipeline was parsed in full, even if a loader failed.
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(out, "Collected %d records.\n", report.Records)
	}
	if err != nil {
		logger.Error("summary failed", "path", path, "error", err)
		return err
	}

	fmt.Fprintf(out, "Analyzed to %d data items.\n", report.Days())

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("metrics export failed", "path", cfg.MetricsTextfile, "error", err)
			return err
		}
	}
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}
