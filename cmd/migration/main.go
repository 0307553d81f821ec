package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/riskibarqy/matchday/internal/app"
	"github.com/riskibarqy/matchday/internal/config"
	"github.com/riskibarqy/matchday/internal/platform/logging"
)

var errUsage = errors.New("usage")

// migrator is the subset of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Steps(n int) error
	Migrate(version uint) error
	Force(version int) error
	Version() (uint, bool, error)
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.NewJSON(cfg.LogLevel).With("service", "matchday-migration", "env", cfg.AppEnv)
	defer func() { _ = logger.Sync() }()

	dir, err := migrationsDir(os.Getenv("MIGRATIONS_DIR"))
	if err != nil {
		logger.Error("resolve migrations dir", "error", err)
		os.Exit(1)
	}

	source := "file://" + filepath.ToSlash(dir)
	m, err := migrate.New(source, app.DataSourceName(cfg))
	if err != nil {
		logger.Error("create migrator", "source", source, "error", err)
		os.Exit(1)
	}

	err = run(m, os.Args[1:], os.Stdout, logger)
	srcErr, dbErr := m.Close()
	if closeErr := errors.Join(srcErr, dbErr); closeErr != nil {
		logger.Warn("close migrator", "error", closeErr)
	}

	switch {
	case errors.Is(err, errUsage):
		printUsage(os.Stderr)
		os.Exit(2)
	case err != nil:
		logger.Error("migration failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(m migrator, args []string, out io.Writer, logger *logging.Logger) error {
	cmd := strings.ToLower(strings.TrimSpace(args[0]))
	rest := args[1:]

	switch cmd {
	case "up":
		return applied(logger, m.Up(), "migrations applied")
	case "down":
		steps := 1
		if len(rest) > 0 {
			n, err := strconv.Atoi(strings.TrimSpace(rest[0]))
			if err != nil || n <= 0 {
				return fmt.Errorf("down steps must be a positive integer, got %q", rest[0])
			}
			steps = n
		}
		return applied(logger.With("steps", steps), m.Steps(-steps), "migrations rolled back")
	case "goto":
		if len(rest) == 0 {
			return fmt.Errorf("goto needs a target version: %w", errUsage)
		}
		target, err := strconv.ParseUint(strings.TrimSpace(rest[0]), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid target version %q: %w", rest[0], err)
		}
		return applied(logger.With("version", target), m.Migrate(uint(target)), "migrated")
	case "force":
		if len(rest) == 0 {
			return fmt.Errorf("force needs a version: %w", errUsage)
		}
		version, err := strconv.Atoi(strings.TrimSpace(rest[0]))
		if err != nil || version < -1 {
			return fmt.Errorf("invalid version %q", rest[0])
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
		logger.Info("forced migration version", "version", version)
		return nil
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			_, err = fmt.Fprintln(out, "version: none\ndirty: false")
			return err
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		_, err = fmt.Fprintf(out, "version: %d\ndirty: %t\n", version, dirty)
		return err
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

// applied treats ErrNoChange as success.
func applied(logger *logging.Logger, err error, msg string) error {
	switch {
	case err == nil:
		logger.Info(msg)
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("no migration changes")
	default:
		return err
	}
	return nil
}

func migrationsDir(override string) (string, error) {
	for _, candidate := range []string{strings.TrimSpace(override), "./db/migrations", "/app/db/migrations"} {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", errors.New("no migrations directory (checked MIGRATIONS_DIR, ./db/migrations, /app/db/migrations)")
}

func printUsage(w io.Writer) {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(w, "usage: %s <up|down [n]|goto <version>|force <version>|version>\n", name)
}
