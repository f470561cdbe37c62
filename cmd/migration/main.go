// Command migration applies the Postgres schema under db/migrations with
// golang-migrate. SQLite stores migrate themselves on open.
package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/riskibarqy/pickem-pool/internal/platform/logging"
)

var errUsage = errors.New("usage")

// command runs one subcommand against an open migrator.
type command struct {
	usage string
	run   func(m *migrate.Migrate, args []string, logger *logging.Logger) error
}

var commands = map[string]command{
	"up":      {usage: "up", run: runUp},
	"down":    {usage: "down [steps]", run: runDown},
	"version": {usage: "version", run: runVersion},
	"force":   {usage: "force <version>", run: runForce},
	"goto":    {usage: "goto <version>", run: runGoto},
}

func main() {
	logger := logging.NewJSON(logging.LevelInfo).Named("migration")

	err := run(os.Args[1:], logger)
	switch {
	case err == nil:
		_ = logger.Sync()
		return
	case errors.Is(err, errUsage):
		printUsage()
		os.Exit(2)
	default:
		logger.Error("migration failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(args []string, logger *logging.Logger) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[strings.ToLower(strings.TrimSpace(args[0]))]
	if !ok {
		return errUsage
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return fmt.Errorf("DB_URL is required")
	}
	if envBool("DB_DISABLE_PREPARED_BINARY_RESULT") {
		dbURL = withBinaryResultsDisabled(dbURL)
	}

	dir, err := migrationsDir()
	if err != nil {
		return err
	}
	source := "file://" + filepath.ToSlash(dir)
	m, err := migrate.New(source, dbURL)
	if err != nil {
		return fmt.Errorf("open migrator for %s: %w", source, err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			logger.Warn("close migrator", "error", err)
		}
	}()

	return cmd.run(m, args[1:], logger)
}

func runUp(m *migrate.Migrate, _ []string, logger *logging.Logger) error {
	if err := skipNoChange(m.Up()); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	logger.Info("schema up to date")
	return nil
}

func runDown(m *migrate.Migrate, args []string, logger *logging.Logger) error {
	steps := 1
	if len(args) > 0 {
		n, err := parseCount(args[0], "down steps")
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("down steps must be > 0")
		}
		steps = int(n)
	}
	if err := skipNoChange(m.Steps(-steps)); err != nil {
		return fmt.Errorf("migrate down %d: %w", steps, err)
	}
	logger.Info("migrations rolled back", "steps", steps)
	return nil
}

func runVersion(m *migrate.Migrate, _ []string, _ *logging.Logger) error {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		fmt.Println("version: none")
		dirty = false
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		fmt.Printf("version: %d\n", version)
	}
	fmt.Printf("dirty: %t\n", dirty)
	return nil
}

func runForce(m *migrate.Migrate, args []string, logger *logging.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("force requires a version argument")
	}
	version, err := parseCount(args[0], "version")
	if err != nil {
		return err
	}
	if err := m.Force(int(version)); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	logger.Info("migration version forced", "version", version)
	return nil
}

func runGoto(m *migrate.Migrate, args []string, logger *logging.Logger) error {
	if len(args) == 0 {
		return fmt.Errorf("goto requires a target version argument")
	}
	target, err := parseCount(args[0], "target version")
	if err != nil {
		return err
	}
	if err := skipNoChange(m.Migrate(target)); err != nil {
		return fmt.Errorf("migrate to %d: %w", target, err)
	}
	logger.Info("migrated", "version", target)
	return nil
}

// parseCount reads a non-negative integer argument named what.
func parseCount(raw, what string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 31)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a non-negative integer", what, raw)
	}
	return uint(n), nil
}

func skipNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

// migrationsDir picks MIGRATIONS_DIR, then the repo layout, then the
// container layout.
func migrationsDir() (string, error) {
	for _, dir := range []string{os.Getenv("MIGRATIONS_DIR"), "./db/migrations", "/app/db/migrations"} {
		if dir = strings.TrimSpace(dir); dir == "" {
			continue
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migrations directory not found; set MIGRATIONS_DIR")
}

// withBinaryResultsDisabled turns off binary prepared results for connection
// poolers such as PgBouncer. Key/value connection strings are returned unchanged.
func withBinaryResultsDisabled(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return raw
	}
	q := u.Query()
	if q.Has("disable_prepared_binary_result") {
		return raw
	}
	q.Set("disable_prepared_binary_result", "yes")
	u.RawQuery = q.Encode()
	return u.String()
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && v
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)

	fmt.Fprintf(os.Stderr, "usage: %s <command> [args]\n\ncommands:\n", name)
	for _, n := range names {
		fmt.Fprintf(os.Stderr, "  %s %s\n", name, commands[n].usage)
	}
}
