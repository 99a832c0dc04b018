package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"mimic/internal/api"
	"mimic/internal/config"
	"mimic/internal/server"
	"mimic/pkg/logging"
)

// Application owns the lifecycle of the simulators and the MCP server.
type Application struct {
	cfg     config.Config
	version string
}

// New creates an application for the given configuration.
func New(cfg config.Config, version string) *Application {
	return &Application{cfg: cfg, version: version}
}

// Run starts everything and blocks until ctx is cancelled. State files are
// loaded before serving and written back after the server has stopped.
func (a *Application) Run(ctx context.Context) error {
	sims := RegisterSimulators(a.cfg)
	defer DeregisterSimulators(sims)

	if err := a.loadStates(sims); err != nil {
		return err
	}

	srv := server.New(a.cfg, a.version)
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	logging.Info("App", "mimic serving on %s", srv.Endpoint())

	g, gctx := errgroup.WithContext(ctx)
	for _, sim := range sims {
		simCfg := a.cfg.Simulator(sim.Name())
		path := a.cfg.StatePath(sim.Name())
		if !simCfg.Watch || path == "" {
			continue
		}
		watcher, ok := sim.(api.StateWatcher)
		if !ok {
			continue
		}
		name := sim.Name()
		g.Go(func() error {
			logging.Info("App", "watching state file for %s: %s", name, path)
			err := watcher.WatchState(gctx, path)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	runErr := g.Wait()

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(stopCtx); err != nil {
		logging.Error("App", err, "error stopping server")
	}

	a.saveStates(sims)
	return runErr
}

// loadStates loads each simulator's configured state file. A missing file
// is not an error on startup, the seed state simply stays in place.
func (a *Application) loadStates(sims []api.Simulator) error {
	for _, sim := range sims {
		path := a.cfg.StatePath(sim.Name())
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			logging.Debug("App", "no state file for %s at %s, keeping seed state", sim.Name(), path)
			continue
		}
		if err := sim.LoadState(path); err != nil {
			return fmt.Errorf("loading state for %s: %w", sim.Name(), err)
		}
		logging.Info("App", "loaded state for %s from %s", sim.Name(), path)
	}
	return nil
}

// saveStates writes each simulator's state back to its configured file.
func (a *Application) saveStates(sims []api.Simulator) {
	for _, sim := range sims {
		path := a.cfg.StatePath(sim.Name())
		if path == "" {
			continue
		}
		if err := sim.SaveState(path); err != nil {
			logging.Error("App", err, "error saving state for %s", sim.Name())
			continue
		}
		logging.Info("App", "saved state for %s to %s", sim.Name(), path)
	}
}
