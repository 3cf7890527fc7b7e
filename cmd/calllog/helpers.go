package main

import (
	"fmt"
	"iter"

	"github.com/Veraticus/calllog/internal/cli"
	"github.com/Veraticus/calllog/internal/config"
	"github.com/Veraticus/calllog/internal/model"
	"github.com/Veraticus/calllog/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadConfig reads the call log settings from the global viper instance.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// openLog opens the call log inside dir, falling back to the configured
// directory when dir is empty.
func openLog(cfg config.Config, dir string) (*storage.CallLog, error) {
	path := cfg.LogPath(dir)

	log, err := storage.Open(path, storage.WithUnresolvedWord(cfg.UnresolvedWord))
	if err != nil {
		return nil, fmt.Errorf("failed to open call log %s: %w", path, err)
	}
	return log, nil
}

// dirArg returns the optional directory argument.
func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func printCalls(cmd *cobra.Command, cfg config.Config, title string, calls iter.Seq[model.Call]) error {
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	_, err := cli.WriteCalls(out, title, calls, storage.IsResolvedAs(cfg.UnresolvedWord))
	return err
}
