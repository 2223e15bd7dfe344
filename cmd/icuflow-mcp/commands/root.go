package commands

import (
	"icuflow-mcp/internal/config"
	"icuflow-mcp/internal/logging"
	"icuflow-mcp/internal/mcp"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "icuflow-mcp",
	Short: "ICUFlow-MCP is an ICU workflow dynamics MCP server",
	Long: `A specialized MCP server that evaluates ICU workflow configurations:
interruption load, focus time, workload and burnout scoring, what-if
scenario comparison, and Monte Carlo trend projection.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("ICUFlow-MCP starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(cfg)
		if err != nil {
			return err
		}
		log.Info().Msg("MCP Server starting Stdio loop")
		return server.Serve()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
