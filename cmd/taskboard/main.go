package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/ritzau/taskboard/pkg/config"
	"github.com/ritzau/taskboard/pkg/logging"
	"github.com/ritzau/taskboard/pkg/output"
	"github.com/ritzau/taskboard/pkg/preset"
	"github.com/ritzau/taskboard/pkg/pubsub"
	"github.com/ritzau/taskboard/pkg/store"
	"github.com/ritzau/taskboard/pkg/watcher"
	"github.com/ritzau/taskboard/pkg/web"
)

// Debounce settings for preset file reloads
const (
	reloadQuietPeriod = 200 * time.Millisecond
	reloadMaxWait     = 2 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	f := pflag.NewFlagSet("taskboard", pflag.ExitOnError)
	f.String("config", config.DefaultFile, "Path to the config file")
	f.Int("port", 8080, "Port for the web server")
	f.String("presets", "", "TOML file with preset definitions (default: built-in presets)")
	f.String("preset", "", "Initially active preset id (default: first preset)")
	f.Int("history", 50, "Undo/redo depth")
	f.Bool("watch", false, "Reload the presets file when it changes")
	f.String("verbosity", "", "Log level: error, warn, info, debug, trace")
	f.CountP("verbose", "v", "Increase log verbosity (-v debug, -vv trace)")
	f.Bool("json-logs", false, "Emit structured JSON logs")
	f.Bool("list-presets", false, "Print the available presets and exit")
	f.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		// Flags use dashes, config keys use underscores
		return pflag.NormalizedName(strings.ReplaceAll(name, "-", "_"))
	})
	if err := f.Parse(os.Args[1:]); err != nil {
		return err
	}

	cfg, err := config.Load(f)
	if err != nil {
		return err
	}

	logging.Configure(os.Stderr, logging.ParseLevel(cfg.Verbosity, cfg.VerboseCnt), cfg.JSONLogs)

	registry, err := loadPresets(cfg.PresetsFile)
	if err != nil {
		return err
	}

	if cfg.ListPresets {
		active := cfg.Preset
		if _, ok := registry.Lookup(active); !ok {
			active = registry.First().ID
		}
		output.PrintPresets(os.Stdout, registry.Presets(), active)
		return nil
	}

	publisher := pubsub.NewSSEPublisher()
	st := store.New(store.Options{
		Presets:      registry,
		ActivePreset: cfg.Preset,
		HistoryLimit: cfg.HistoryLimit,
		Publisher:    publisher,
	})
	server := web.NewServer(st, publisher)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(ctx, cfg.Port)
	})
	g.Go(func() error {
		return server.RunViewDiffs(ctx)
	})

	if cfg.Watch {
		if cfg.PresetsFile == "" {
			logging.Warn("--watch needs --presets, not watching")
		} else if err := watchPresets(ctx, g, cfg.PresetsFile, st); err != nil {
			return err
		}
	}

	logging.Info("board ready", "preset", st.ActivePreset().ID, "presets", registry.Len(), "history", cfg.HistoryLimit)

	err = g.Wait()

	state := st.State()
	output.PrintBoardSummary(os.Stdout,
		output.Summarize(state.Nodes, state.Edges, st.BlockingCycles(), state.ActivePreset, st.Revision()))

	return err
}

func loadPresets(path string) (*preset.Registry, error) {
	if path == "" {
		return preset.Default(), nil
	}
	registry, err := preset.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load presets: %w", err)
	}
	logging.Info("loaded presets", "path", path, "count", registry.Len())
	return registry, nil
}

func watchPresets(ctx context.Context, g *errgroup.Group, path string, st *store.Store) error {
	fw, err := watcher.NewFileWatcher(path)
	if err != nil {
		return err
	}
	if err := fw.Start(ctx); err != nil {
		return err
	}

	debouncer := watcher.NewDebouncer(fw.Events(), reloadQuietPeriod, reloadMaxWait)
	debouncer.Start(ctx)

	g.Go(func() error {
		reloads := watcher.ReloadPresets(ctx, debouncer.Output(), path, st)
		logging.Debug("stopped watching presets", "reloads", reloads)
		return nil
	})
	return nil
}
