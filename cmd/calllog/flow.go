package main

import (
	"fmt"
	"slices"

	"github.com/Veraticus/calllog/internal/cli"
	"github.com/spf13/cobra"
)

func flowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flow [dir]",
		Short: "Review the call log and record new calls",
		Long: `Run the whole review session for the call log in a directory:

  1. Count the files in the directory
  2. List the calls sorted by reason, then by number
  3. List the unresolved calls
  4. Optionally record new calls and save the log`,
		Args: cobra.MaximumNArgs(1),
		RunE: runFlow,
	}
}

func runFlow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dir := dirArg(args)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := countFiles(cmd, cfg, dir); err != nil {
		return err
	}

	log, err := openLog(cfg, dir)
	if err != nil {
		return err
	}

	if err := printCalls(cmd, cfg, "Calls by reason", slices.Values(log.SortedByReason())); err != nil {
		return err
	}
	if err := printCalls(cmd, cfg, "Calls by number", slices.Values(log.SortedByNumber())); err != nil {
		return err
	}
	if err := printCalls(cmd, cfg, "Unresolved calls", log.Unresolved()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	prompter := cli.NewPrompter(cmd.InOrStdin(), out, cfg.StopWord, cfg.YesWord)
	addMore, err := prompter.Confirm(ctx, "Add new calls?")
	if err != nil {
		return fmt.Errorf("failed to read answer: %w", err)
	}
	if !addMore {
		return nil
	}

	_, err = collectAndSave(cmd, prompter, log, true)
	return err
}
