package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/calllog/internal/cli"
	"github.com/Veraticus/calllog/internal/common"
	"github.com/Veraticus/calllog/internal/storage"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Record new calls interactively",
		Long: `Record new calls one at a time. For each call you'll be prompted for:
  - the caller's phone (enter the stop word to finish)
  - the reason for the call
  - whether the problem was resolved

Calls are numbered automatically and the log is saved when you finish.`,
		Args: cobra.NoArgs,
		RunE: runAdd,
	}
}

func runAdd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := openLog(cfg, "")
	if err != nil {
		return err
	}

	prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), cfg.StopWord, cfg.YesWord)
	_, err = collectAndSave(cmd, prompter, log, false)
	return err
}

// collectAndSave runs the add loop and saves the log. Nothing is saved when
// input is canceled, or when no call was added unless saveEmpty is set.
func collectAndSave(cmd *cobra.Command, prompter *cli.Prompter, log *storage.CallLog, saveEmpty bool) (int, error) {
	out := cmd.OutOrStdout()

	added, err := prompter.CollectCalls(cmd.Context(), log)
	if err != nil {
		if errors.Is(err, cli.ErrInputCancelled) {
			return 0, common.NewUserError("input canceled, no calls were saved", err)
		}
		return 0, fmt.Errorf("failed to read new calls: %w", err)
	}

	if len(added) == 0 && !saveEmpty {
		_, err = fmt.Fprintln(out, cli.FormatInfo("No new calls recorded."))
		return 0, err
	}

	if err := log.Save(); err != nil {
		common.LogError(err, "Failed to save call log", common.Fields{
			"path":  log.Path(),
			"added": len(added),
		})
		return 0, common.NewUserError("could not save the call log", err)
	}

	msg := cli.FormatSuccess(fmt.Sprintf("Saved %d new call(s) to %s", len(added), log.Path()))
	if _, err := fmt.Fprintln(out, msg); err != nil {
		return len(added), fmt.Errorf("failed to write output: %w", err)
	}
	return len(added), nil
}

// Ensure CallLog implements the cli.CallAppender interface.
var _ cli.CallAppender = (*storage.CallLog)(nil)
