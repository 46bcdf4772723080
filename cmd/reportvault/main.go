package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fieldworks/reportvault/internal/config"
	"github.com/fieldworks/reportvault/internal/domain/allocation"
	"github.com/fieldworks/reportvault/internal/domain/artifact"
	"github.com/fieldworks/reportvault/internal/repository"
	"github.com/fieldworks/reportvault/internal/sqlite"
	"github.com/fieldworks/reportvault/internal/storage"
)

const dateLayout = "2006-01-02"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	app, err := newApp(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer app.db.Close()

	ctx := context.Background()
	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

type app struct {
	db        *sqlite.DB
	counters  *sqlite.CounterRepository
	settings  *sqlite.SettingsRepository
	alloc     *allocation.Service
	artifacts *artifact.Service
}

func newApp(cfg config.Config, logger *slog.Logger) (*app, error) {
	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("preparing database path: %w", err)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	counters := sqlite.NewCounterRepository(db)
	settings := sqlite.NewSettingsRepository(db)
	saves := sqlite.NewSaveLogRepository(db)

	allocSvc := allocation.NewService(counters, settings, nil, allocation.Config{
		BaseYear:      cfg.Allocation.BaseYear,
		YearBlock:     cfg.Allocation.YearBlock,
		DefaultPrefix: cfg.Allocation.DefaultPrefix,
		MaxAttempts:   cfg.Allocation.MaxAttempts,
	}, logger)

	resolver := storage.NewResolver(settings, cfg.Storage.DefaultRoot, cfg.Storage.FallbackDir, logger)
	files := storage.NewFileStore()
	artifactSvc := artifact.NewService(resolver, files, files, files, saves, logger)

	return &app{
		db:        db,
		counters:  counters,
		settings:  settings,
		alloc:     allocSvc,
		artifacts: artifactSvc,
	}, nil
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "allocate":
		return a.runAllocate(ctx, args)
	case "save":
		return a.runSave(ctx, args)
	case "history":
		return a.runHistory(ctx, args)
	case "counter":
		return a.runCounter(ctx, args)
	case "settings":
		return a.runSettings(ctx, args)
	case "migrate":
		// newApp already migrated; this command exists so provisioning
		// scripts have an explicit step.
		fmt.Println("migrations applied")
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) runAllocate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("allocate", flag.ExitOnError)
	tenant := fs.String("tenant", "", "tenant ID (required)")
	year := fs.Int("year", 0, "allocation year (default: current year)")
	fs.Parse(args)

	if *tenant == "" {
		return fmt.Errorf("-tenant is required")
	}

	var num allocation.Number
	var err error
	if *year > 0 {
		num, err = a.alloc.AllocateForYear(ctx, *tenant, *year)
	} else {
		num, err = a.alloc.Allocate(ctx, *tenant)
	}
	if err != nil {
		return err
	}

	fmt.Println(num.String())
	return nil
}

func (a *app) runSave(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	tenant := fs.String("tenant", "", "tenant ID (required)")
	project := fs.String("project", "", "project number (required)")
	categoryStr := fs.String("category", "", "report category (required)")
	dateStr := fs.String("date", "", "reference date YYYY-MM-DD (required)")
	forceRev := fs.Bool("revision", false, "force a revision save")
	fs.Parse(args)

	if *tenant == "" || *project == "" || *categoryStr == "" || *dateStr == "" {
		return fmt.Errorf("-tenant, -project, -category and -date are required")
	}

	category, err := artifact.ParseCategory(*categoryStr)
	if err != nil {
		return err
	}

	date, err := time.Parse(dateLayout, *dateStr)
	if err != nil {
		return fmt.Errorf("parsing -date: %w", err)
	}

	data, err := readPayload(fs.Arg(0))
	if err != nil {
		return err
	}

	res, err := a.artifacts.Save(ctx, *tenant, artifact.SaveRequest{
		ProjectNumber: *project,
		Category:      category,
		ReferenceDate: date,
		Data:          data,
		ForceRevision: *forceRev,
	})
	if err != nil {
		return err
	}

	if res.Persisted {
		fmt.Printf("saved %s (sequence %d, revision %d)\n", res.Path, res.Sequence, res.Revision)
	} else {
		// The report itself succeeded; only the on-disk save failed.
		fmt.Printf("not persisted: %s\n", res.PersistError)
	}
	return nil
}

func (a *app) runHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	tenant := fs.String("tenant", "", "tenant ID (required)")
	project := fs.String("project", "", "filter by project number")
	categoryStr := fs.String("category", "", "filter by category")
	persistedOnly := fs.Bool("persisted-only", false, "only successfully persisted saves")
	limit := fs.Int("limit", 20, "maximum entries")
	fs.Parse(args)

	if *tenant == "" {
		return fmt.Errorf("-tenant is required")
	}

	opts := artifact.ListSavesOptions{
		ProjectNumber: *project,
		PersistedOnly: *persistedOnly,
		Limit:         *limit,
	}
	if *categoryStr != "" {
		category, err := artifact.ParseCategory(*categoryStr)
		if err != nil {
			return err
		}
		opts.Category = &category
	}

	entries, err := a.artifacts.History(ctx, *tenant, opts)
	if err != nil {
		return err
	}

	for _, e := range entries {
		status := "ok"
		if !e.Persisted {
			status = "FAILED: " + e.PersistError
		}
		fmt.Printf("%s  %s  %s  seq=%d rev=%d  %s  [%s]\n",
			e.CreatedAt.Format(time.RFC3339), e.ProjectNumber, e.Category,
			e.Sequence, e.Revision, e.FileName, status)
	}
	return nil
}

func (a *app) runCounter(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("counter", flag.ExitOnError)
	tenant := fs.String("tenant", "", "tenant ID (required)")
	year := fs.Int("year", time.Now().Year(), "counter year")
	fs.Parse(args)

	if *tenant == "" {
		return fmt.Errorf("-tenant is required")
	}

	current, err := a.counters.Current(ctx, allocation.ScopeKey{TenantID: *tenant, Year: *year})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fmt.Printf("no allocations for tenant %s in %d\n", *tenant, *year)
			return nil
		}
		return err
	}

	fmt.Printf("last issued sequence for tenant %s in %d: %d\n", *tenant, *year, current)
	return nil
}

func (a *app) runSettings(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("settings requires get or set")
	}

	switch args[0] {
	case "get":
		fs := flag.NewFlagSet("settings get", flag.ExitOnError)
		tenant := fs.String("tenant", "", "tenant ID (required)")
		fs.Parse(args[1:])
		if *tenant == "" {
			return fmt.Errorf("-tenant is required")
		}

		storagePath, ok, err := a.settings.StoragePath(ctx, *tenant)
		if err != nil {
			return err
		}
		fmt.Printf("storage_path: %s\n", orUnset(storagePath, ok))

		prefix, ok, err := a.settings.NumberPrefix(ctx, *tenant)
		if err != nil {
			return err
		}
		fmt.Printf("number_prefix: %s\n", orUnset(prefix, ok))

		legacy, ok, err := a.settings.LegacySharedPath(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("legacy_shared_path: %s\n", orUnset(legacy, ok))
		return nil

	case "set":
		fs := flag.NewFlagSet("settings set", flag.ExitOnError)
		tenant := fs.String("tenant", "", "tenant ID")
		storagePath := fs.String("storage-path", "", "tenant storage path")
		prefix := fs.String("prefix", "", "tenant number prefix")
		legacy := fs.String("legacy-path", "", "instance-wide legacy shared path")
		fs.Parse(args[1:])

		if *legacy != "" {
			if err := a.settings.SetLegacySharedPath(ctx, *legacy); err != nil {
				return err
			}
		}
		if *storagePath != "" {
			if *tenant == "" {
				return fmt.Errorf("-tenant is required with -storage-path")
			}
			if err := a.settings.SetStoragePath(ctx, *tenant, *storagePath); err != nil {
				return err
			}
		}
		if *prefix != "" {
			if *tenant == "" {
				return fmt.Errorf("-tenant is required with -prefix")
			}
			if err := a.settings.SetNumberPrefix(ctx, *tenant, *prefix); err != nil {
				return err
			}
		}
		if *legacy == "" && *storagePath == "" && *prefix == "" {
			return fmt.Errorf("nothing to set")
		}
		fmt.Println("updated")
		return nil

	default:
		return fmt.Errorf("unknown settings subcommand %q", args[0])
	}
}

func readPayload(arg string) ([]byte, error) {
	if arg == "" || arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	return data, nil
}

func orUnset(value string, ok bool) string {
	if !ok {
		return "(unset)"
	}
	return value
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: reportvault <command> [flags]

commands:
  allocate  -tenant T [-year Y]                allocate the next project number
  save      -tenant T -project N -category C -date YYYY-MM-DD [-revision] [file|-]
                                               save a rendered report
  history   -tenant T [-project N] [-category C] [-persisted-only] [-limit K]
                                               list the save audit trail
  counter   -tenant T [-year Y]                show the last issued sequence
  settings  get -tenant T                      show effective settings
  settings  set [-tenant T] [-storage-path P] [-prefix X] [-legacy-path L]
  migrate                                      apply the schema`)
}
