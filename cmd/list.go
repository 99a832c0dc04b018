package cmd

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"mimic/internal/api"
	"mimic/internal/app"
	"mimic/internal/config"
	mimicstrings "mimic/pkg/strings"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List simulators and their tools",
}

var listSimulatorsCmd = &cobra.Command{
	Use:   "simulators",
	Short: "List the enabled simulators",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		initLogging()
		cfg, err := config.Load(rootConfigPath)
		if err != nil {
			return err
		}
		sims := app.RegisterSimulators(cfg)
		defer app.DeregisterSimulators(sims)

		t := newTable(cmd)
		t.AppendHeader(table.Row{
			text.FgHiCyan.Sprint("SIMULATOR"),
			text.FgHiCyan.Sprint("TOOLS"),
			text.FgHiCyan.Sprint("STATE FILE"),
		})
		for _, sim := range sims {
			statePath := cfg.StatePath(sim.Name())
			if statePath == "" {
				statePath = "-"
			}
			t.AppendRow(table.Row{sim.Name(), len(sim.GetTools()), statePath})
		}
		t.Render()
		return nil
	},
}

var listToolsCmd = &cobra.Command{
	Use:   "tools [simulator]",
	Short: "List the tools exposed over MCP, optionally for one simulator",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		initLogging()
		cfg, err := config.Load(rootConfigPath)
		if err != nil {
			return err
		}
		sims := app.RegisterSimulators(cfg)
		defer app.DeregisterSimulators(sims)

		t := newTable(cmd)
		t.AppendHeader(table.Row{
			text.FgHiCyan.Sprint("TOOL"),
			text.FgHiCyan.Sprint("ARGS"),
			text.FgHiCyan.Sprint("DESCRIPTION"),
		})
		matched := false
		for _, sim := range sims {
			if len(args) == 1 && sim.Name() != args[0] {
				continue
			}
			matched = true
			for _, meta := range sim.GetTools() {
				t.AppendRow(table.Row{
					sim.Name() + "_" + meta.Name,
					argSummary(meta.Args),
					mimicstrings.TruncateDescription(meta.Description, mimicstrings.DefaultDescriptionMaxLen),
				})
			}
		}
		if len(args) == 1 && !matched {
			return fmt.Errorf("unknown simulator %q", args[0])
		}
		t.Render()
		return nil
	},
}

func newTable(cmd *cobra.Command) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleRounded)
	return t
}

// argSummary renders a compact argument list, marking required args with *.
func argSummary(args []api.ArgMetadata) string {
	names := make([]string, 0, len(args))
	for _, arg := range args {
		name := arg.Name
		if arg.Required {
			name += "*"
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.AddCommand(listSimulatorsCmd)
	listCmd.AddCommand(listToolsCmd)
}
