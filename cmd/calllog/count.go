package main

import (
	"fmt"

	"github.com/Veraticus/calllog/internal/cli"
	"github.com/Veraticus/calllog/internal/config"
	"github.com/Veraticus/calllog/internal/storage"
	"github.com/spf13/cobra"
)

func countCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count [dir]",
		Short: "Count the files in a directory",
		Long: `Count the regular files directly inside a directory. Subdirectories are
not counted. A missing directory counts as zero files.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCount,
	}
}

func runCount(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, err = countFiles(cmd, cfg, dirArg(args))
	return err
}

func countFiles(cmd *cobra.Command, cfg config.Config, dir string) (int, error) {
	if dir == "" {
		dir = cfg.Dir
	}
	dir = config.ExpandPath(dir)

	count, err := storage.CountFilesInDirectory(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to count files: %w", err)
	}

	msg := cli.FormatInfo(fmt.Sprintf("Files in %s: %d", dir, count))
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), msg); err != nil {
		return count, fmt.Errorf("failed to write output: %w", err)
	}
	return count, nil
}
