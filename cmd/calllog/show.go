package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "List the calls in the log",
		Long: `List every call in the log.

Calls are printed in file order unless --sort is given:
  reason  alphabetical by reason for the call
  number  ascending by call number`,
		Args: cobra.NoArgs,
		RunE: runShow,
	}

	cmd.Flags().String("sort", "none", "sort order (none, reason, number)")

	return cmd
}

func runShow(cmd *cobra.Command, _ []string) error {
	sortBy, err := cmd.Flags().GetString("sort")
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := openLog(cfg, "")
	if err != nil {
		return err
	}

	switch sortBy {
	case "none", "":
		return printCalls(cmd, cfg, "Calls", log.All())
	case "reason":
		return printCalls(cmd, cfg, "Calls by reason", slices.Values(log.SortedByReason()))
	case "number":
		return printCalls(cmd, cfg, "Calls by number", slices.Values(log.SortedByNumber()))
	default:
		return fmt.Errorf("invalid sort order %q: use none, reason or number", sortBy)
	}
}

func unresolvedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unresolved",
		Short: "List the calls whose problem is not resolved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			log, err := openLog(cfg, "")
			if err != nil {
				return err
			}

			return printCalls(cmd, cfg, "Unresolved calls", log.Unresolved())
		},
	}
}
