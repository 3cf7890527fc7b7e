package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/calllog/internal/cli"
	"github.com/Veraticus/calllog/internal/common"
	"github.com/Veraticus/calllog/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "calllog",
		Short: "📞 Support call log manager",
		Long: `calllog keeps a log of support calls in a semicolon-delimited file.

It lists calls sorted by reason or number, shows the calls whose problem is
still unresolved, and lets you record new calls interactively.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/calllog/config.yaml)")
	rootCmd.PersistentFlags().String("dir", "", "directory holding the call log (default: current directory)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	config.SetDefaults(viper.GetViper())

	// Bind flags to viper
	_ = viper.BindPFlag(config.KeyLogDir, rootCmd.PersistentFlags().Lookup("dir"))
	_ = viper.BindPFlag(config.KeyLoggingLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLoggingFormat, rootCmd.PersistentFlags().Lookup("log-format"))

	// Add commands
	rootCmd.AddCommand(countCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(unresolvedCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(flowCmd())
	rootCmd.AddCommand(archiveCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	interrupts := cli.NewInterruptHandler(os.Stderr)
	ctx, cancel := context.WithCancel(context.Background())
	ctx = interrupts.HandleInterrupts(ctx)

	err := rootCmd.ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		os.Exit(reportError(os.Stderr, err, interrupts.WasInterrupted()))
	}
}

// reportError prints err and returns the process exit code. After an
// interrupt the handler has already told the user what happened.
func reportError(w io.Writer, err error, interrupted bool) int {
	if interrupted {
		return 130
	}
	fmt.Fprintln(w, cli.FormatError(err.Error()))
	return 1
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(fmt.Sprintf("%s/.config/calllog", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	if err := common.SetupLogger(viper.GetString(config.KeyLoggingLevel), viper.GetString(config.KeyLoggingFormat)); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "calllog version %s\n", version)
			return err
		},
	}
}
