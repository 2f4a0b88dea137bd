package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/finquery/finquery/internal/adapter"
	"github.com/finquery/finquery/internal/capability/eastmoney"
	"github.com/finquery/finquery/internal/config"
	"github.com/finquery/finquery/internal/dispatch"
	"github.com/finquery/finquery/internal/logger"
	"github.com/finquery/finquery/internal/metrics"
	"github.com/finquery/finquery/internal/query"
	"github.com/finquery/finquery/internal/render"
	"github.com/finquery/finquery/internal/script"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	queryText     string
	queryPlatform string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Answer one free-text market question",
	Long: `Parses a free-text question, resolves it against the market data
source and prints a plain-text answer. Failures are rendered as answer text;
the command still exits 0.`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "free-text question (required)")
	queryCmd.Flags().StringVarP(&queryPlatform, "platform", "p", "", "output platform (qq or telegram)")
	_ = queryCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if queryPlatform != "" {
		cfg.Render.Platform = queryPlatform
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	log := logger.Must(debug || cfg.Debug)
	defer log.Sync()

	met := metrics.NewRegistry()

	client := eastmoney.New(cfg.Capability, log)
	svc := adapter.New(client.Registry(),
		adapter.WithLogger(log),
		adapter.WithMetrics(met))

	runner := script.NewRunner(cfg.Scripts, log, met)
	d := dispatch.New(svc, runner,
		dispatch.WithLogger(log),
		dispatch.WithMetrics(met))

	parser := query.New(query.WithAliases(cfg.Query.Aliases))
	parsed := parser.Parse(queryText)
	log.Debug("query parsed",
		zap.String("intent", string(parsed.Intent)),
		zap.String("symbol", parsed.Symbol))

	res := d.Dispatch(context.Background(), parsed)

	out := render.New(cfg.Render.Platform).Render(parsed, res)
	fmt.Println(strings.TrimRight(out, "\n"))
	return nil
}
