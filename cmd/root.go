package cmd

import (
	"fmt"
	"os"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/spf13/cobra"
)

var (
	appConfig config.Config
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio site with a relayed contact form",
	Long: `portfolio serves a single-page personal portfolio: hero, technology
marquee, education, experience, projects and a contact form that forwards
messages through a third-party form relay.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error, silent (default from PORTFOLIO_LOG_LEVEL)")
}

func initializeConfig(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := logging.Initialize(cfg.LogLevel); err != nil {
		return err
	}
	appConfig = cfg
	return nil
}
