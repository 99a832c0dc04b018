package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mimic/internal/app"
	"mimic/internal/config"
)

var (
	serveTransport string
	serveHost      string
	servePort      int
	serveStateDir  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server hosting all enabled simulators",
	Long: `Starts the MCP server and serves every enabled simulator's tools over
the configured transport. Flags override the config file. With --state-dir
each simulator loads <dir>/<name>.json on startup and writes it back on
shutdown (SIGINT/SIGTERM).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	initLogging()

	cfg, err := config.Load(rootConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("transport") {
		cfg.Transport = config.Transport(serveTransport)
	}
	if cmd.Flags().Changed("host") {
		cfg.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("state-dir") {
		cfg.StateDir = serveStateDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.New(cfg, rootCmd.Version).Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveTransport, "transport", "", "transport: stdio, sse, or streamable-http")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "host to bind the HTTP transports to")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to bind the HTTP transports to")
	serveCmd.Flags().StringVar(&serveStateDir, "state-dir", "", "directory for per-simulator state files")
}
