package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/matchday/external/indexnow"
	"github.com/riskibarqy/matchday/internal/app"
	"github.com/riskibarqy/matchday/internal/config"
	"github.com/riskibarqy/matchday/internal/platform/logging"
	"github.com/riskibarqy/matchday/internal/usecase"
)

type seedCommand struct {
	name string
	date time.Time
}

func main() {
	_ = godotenv.Load()

	cmd, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := logging.NewJSON(cfg.LogLevel).With("service", "matchday-seed", "env", cfg.AppEnv)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer func() { _ = container.Close() }()

	if err := run(ctx, container.Seed, container.IndexNow, container.Logger, cmd); err != nil {
		logger.Error("seed failed", "command", cmd.name, "error", err)
		os.Exit(1)
	}
}

type seeder interface {
	SeedTournaments(ctx context.Context) (usecase.SeedSummary, error)
	SeedTeams(ctx context.Context) (usecase.SeedSummary, error)
	SyncMatches(ctx context.Context, date time.Time) (usecase.SeedSummary, error)
}

type urlNotifier interface {
	NotifyURLs(ctx context.Context, urls []string) ([]indexnow.Result, error)
}

// run executes the command's steps in order and stops at the first failure.
// Pages written by the steps that did finish are still submitted to IndexNow.
func run(ctx context.Context, s seeder, notifier urlNotifier, logger *logging.Logger, cmd seedCommand) error {
	syncMatches := func(ctx context.Context) (usecase.SeedSummary, error) {
		return s.SyncMatches(ctx, cmd.date)
	}

	var steps []func(context.Context) (usecase.SeedSummary, error)
	switch cmd.name {
	case "tournaments":
		steps = append(steps, s.SeedTournaments)
	case "teams":
		steps = append(steps, s.SeedTeams)
	case "matches":
		steps = append(steps, syncMatches)
	case "all":
		steps = append(steps, s.SeedTournaments, s.SeedTeams, syncMatches)
	}

	var (
		urls    []string
		stepErr error
	)
	for _, fn := range steps {
		summary, err := fn(ctx)
		if err != nil {
			stepErr = err
			break
		}
		urls = append(urls, summary.URLs...)
	}

	notifyIndexNow(ctx, notifier, logger, urls)
	return stepErr
}

func notifyIndexNow(ctx context.Context, notifier urlNotifier, logger *logging.Logger, urls []string) {
	if len(urls) == 0 {
		return
	}
	results, err := notifier.NotifyURLs(ctx, urls)
	if err != nil {
		logger.WarnContext(ctx, "indexnow notification failed", "url_count", len(urls), "error", err)
		return
	}
	logger.InfoContext(ctx, "indexnow notified", "url_count", len(urls), "endpoints", len(results))
}

func parseArgs(args []string) (seedCommand, error) {
	if len(args) == 0 {
		return seedCommand{}, fmt.Errorf("missing command")
	}

	cmd := seedCommand{name: strings.ToLower(strings.TrimSpace(args[0]))}
	switch cmd.name {
	case "tournaments", "teams":
		return cmd, nil
	case "matches", "all":
		if len(args) < 2 {
			return cmd, nil
		}
		date, err := time.Parse(time.DateOnly, strings.TrimSpace(args[1]))
		if err != nil {
			return seedCommand{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", args[1])
		}
		cmd.date = date
		return cmd, nil
	default:
		return seedCommand{}, fmt.Errorf("unknown command %q", args[0])
	}
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <tournaments|teams|matches|all> [YYYY-MM-DD]\n", name)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s tournaments\n", name)
	fmt.Fprintf(os.Stderr, "  %s matches 2025-08-16\n", name)
	fmt.Fprintf(os.Stderr, "  %s all\n", name)
}
