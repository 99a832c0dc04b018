package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"mimic/pkg/logging"
)

var (
	rootConfigPath string
	rootDebug      bool
)

// rootCmd is the base command for the mimic binary.
var rootCmd = &cobra.Command{
	Use:   "mimic",
	Short: "Serve simulated third-party APIs as MCP tools",
	Long: `mimic hosts a set of API simulators (GitHub, Google Contacts, SMS
messaging, LinkedIn, Google Home, Hyper3D Rodin, a generic media library)
and exposes every simulator handler as an MCP tool. An LLM agent connects
over stdio, SSE, or streamable-http and exercises realistic API behavior
against an in-memory, JSON-persistable store.`,
	// SilenceUsage keeps handled errors from being followed by the usage text.
	SilenceUsage: true,
}

// SetVersion injects the build version from main.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the CLI. Called by main.main.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "mimic version %s\n" .Version}}`)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initLogging configures the logger once per invocation. Log output always
// goes to stderr: with the stdio transport, stdout carries the MCP stream.
func initLogging() {
	level := logging.LevelInfo
	if rootDebug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, os.Stderr)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "config file (default ./mimic.yaml)")
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "enable debug logging")
}
