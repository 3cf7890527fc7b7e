package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/Veraticus/calllog/internal/cli"
	"github.com/Veraticus/calllog/internal/common"
	"github.com/Veraticus/calllog/internal/config"
	"github.com/Veraticus/calllog/internal/model"
	"github.com/Veraticus/calllog/internal/storage"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func archiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Mirror the call log into the SQLite archive",
		Long: `Copy every call in the log into the SQLite archive database, replacing
whatever was archived before for the same log file. The archive keeps calls
from several log files apart by their absolute path.`,
		Args: cobra.NoArgs,
		RunE: runArchive,
	}

	cmd.Flags().String("db", "", "archive database path (default: archive.path from config)")

	return cmd
}

func runArchive(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dbPath, err := cmd.Flags().GetString("db")
	if err != nil {
		return err
	}
	if dbPath == "" {
		dbPath = cfg.ArchivePath
	}
	dbPath = config.ExpandPath(dbPath)

	log, err := openLog(cfg, "")
	if err != nil {
		return err
	}

	source, err := filepath.Abs(log.Path())
	if err != nil {
		return fmt.Errorf("failed to resolve call log path: %w", err)
	}

	archive, err := storage.OpenArchive(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() {
		if closeErr := archive.Close(); closeErr != nil {
			slog.Error("failed to close archive", "error", closeErr)
		}
	}()

	if err := archive.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate archive: %w", err)
	}

	var bar *progressbar.ProgressBar
	var onEach func(model.Call)
	if log.Len() > 0 {
		bar = progressbar.NewOptions(log.Len(),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("Archiving calls..."),
			progressbar.OptionClearOnFinish(),
		)
		onEach = func(model.Call) {
			if addErr := bar.Add(1); addErr != nil {
				slog.Warn("Failed to update progress bar", "error", addErr)
			}
		}
	}

	if err := archive.Sync(ctx, source, slices.Collect(log.All()), onEach); err != nil {
		common.LogError(err, "Failed to archive calls", common.Fields{
			"source":  source,
			"archive": dbPath,
		})
		return fmt.Errorf("failed to archive calls: %w", err)
	}
	if bar != nil {
		if err := bar.Finish(); err != nil {
			slog.Warn("Failed to finish progress bar", "error", err)
		}
	}

	stored, err := archive.Count(ctx, source)
	if err != nil {
		return err
	}
	unresolved, err := archive.Unresolved(ctx, source, cfg.UnresolvedWord)
	if err != nil {
		return err
	}

	msg := cli.FormatSuccess(fmt.Sprintf("Archived %d call(s) from %s (%d unresolved) to %s",
		stored, source, len(unresolved), dbPath))
	_, err = fmt.Fprintln(out, msg)
	return err
}
