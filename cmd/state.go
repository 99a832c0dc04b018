package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mimic/internal/app"
	"mimic/internal/config"
)

var stateDir string

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Dump or check simulator state files",
}

var stateSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Write every simulator's current state to <dir>/<name>.json",
	Long: `Writes the state of every enabled simulator as one JSON file per
simulator. Run against a fresh process this materializes the seed states,
which is the starting point for editing fixtures by hand.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStateDir(func(cfg config.Config) error {
			sims := app.RegisterSimulators(cfg)
			defer app.DeregisterSimulators(sims)
			for _, sim := range sims {
				path := cfg.StatePath(sim.Name())
				if err := sim.SaveState(path); err != nil {
					return fmt.Errorf("saving %s: %w", sim.Name(), err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", path)
			}
			return nil
		})
	},
}

var stateLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Check that every state file in <dir> loads cleanly",
	Long: `Loads each simulator's state file from the directory and reports
files that fail to decode. Useful after editing fixtures by hand.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStateDir(func(cfg config.Config) error {
			sims := app.RegisterSimulators(cfg)
			defer app.DeregisterSimulators(sims)
			for _, sim := range sims {
				path := cfg.StatePath(sim.Name())
				if err := sim.LoadState(path); err != nil {
					return fmt.Errorf("loading %s: %w", sim.Name(), err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "loaded %s\n", path)
			}
			return nil
		})
	},
}

// withStateDir loads the config, forces the state directory from the --dir
// flag, and runs fn with the result.
func withStateDir(fn func(config.Config) error) error {
	initLogging()
	cfg, err := config.Load(rootConfigPath)
	if err != nil {
		return err
	}
	if stateDir != "" {
		cfg.StateDir = stateDir
	}
	if cfg.StateDir == "" {
		return fmt.Errorf("no state directory: pass --dir or set stateDir in the config")
	}
	return fn(cfg)
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.AddCommand(stateSaveCmd)
	stateCmd.AddCommand(stateLoadCmd)
	stateCmd.PersistentFlags().StringVar(&stateDir, "dir", "", "directory holding per-simulator state files")
}
