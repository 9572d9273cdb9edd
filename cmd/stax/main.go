// Command stax is a terminal music library manager: browse what you have,
// search a remote catalog for what you don't.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/odvcencio/stax/pkg/action"
	"github.com/odvcencio/stax/pkg/app"
	"github.com/odvcencio/stax/pkg/component"
	"github.com/odvcencio/stax/pkg/config"
	"github.com/odvcencio/stax/pkg/keymap"
	"github.com/odvcencio/stax/pkg/library"
	"github.com/odvcencio/stax/pkg/logging"
	"github.com/odvcencio/stax/pkg/provider/invidious"
	tcellbackend "github.com/odvcencio/stax/pkg/ui/backend/tcell"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "stax: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", defaultConfigPath(), "path to config file")
	dbPath := flag.String("db", "", "override database path")
	logLevel := flag.String("log-level", "info", "minimum log level (debug|info|warn|error)")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *dbPath != "" {
		cfg.DatabasePath = *dbPath
	}
	if cfg.KeybindingsPath == "" {
		cfg.KeybindingsPath = filepath.Join(filepath.Dir(*configPath), "keybindings.yaml")
	}

	logger, err := logging.New(cfg.LogDir, logging.Level(*logLevel))
	if err != nil {
		return err
	}
	defer logger.Close()

	store, err := library.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	searcher := invidious.New(cfg.Provider.BaseURL, cfg.Provider.Timeout,
		invidious.WithMaxResults(cfg.Provider.MaxResults))

	keys, err := loadKeymap(cfg.KeybindingsPath)
	if err != nil {
		return err
	}

	backend, err := tcellbackend.New()
	if err != nil {
		return fmt.Errorf("create terminal backend: %w", err)
	}

	// Construction order is draw order for overlapping strips: the input
	// bar draws after the search bar so it wins during input sessions.
	components := []component.Component{
		component.NewTitleBar(),
		component.NewIntro(),
		component.NewSearchBar(),
		component.NewSearchResults(searcher, store),
		component.NewSearchDetails(),
		component.NewSongList(store),
		component.NewInputArea(),
	}

	a := app.New(cfg, backend, keys, logger, components...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer stop()
		return a.Run(ctx)
	})
	group.Go(func() error {
		err := config.Watch(ctx, cfg.KeybindingsPath, func() {
			reloaded, err := loadKeymap(cfg.KeybindingsPath)
			if err != nil {
				logger.Warn(logging.CategoryApp, "keymap reload failed", map[string]any{"error": err.Error()})
				return
			}
			a.SwapKeymap(reloaded)
			a.Sender().Send(action.Refresh{})
			logger.Info(logging.CategoryApp, "keymap reloaded", nil)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			// A missing keymap directory just means no hot reload.
			logger.Warn(logging.CategoryApp, "keymap watch unavailable", map[string]any{"error": err.Error()})
		}
		return nil
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func loadKeymap(path string) (*keymap.Table, error) {
	keys := keymap.Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return keys, nil
		}
		return nil, err
	}
	if err := keys.ParseYAML(data); err != nil {
		return nil, err
	}
	return keys, nil
}

func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "stax", "config.yaml")
	}
	return "config.yaml"
}
