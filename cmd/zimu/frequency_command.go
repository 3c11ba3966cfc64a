package main

import (
	"github.com/spf13/cobra"

	"github.com/MrWong99/zimu/internal/frequency"
)

func newFrequencyCommand(cctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frequency",
		Short: "Build and inspect the corpus word-frequency model",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newFrequencyBuildCommand(cctx))
	cmd.AddCommand(newFrequencyStatsCommand(cctx))
	return cmd
}

func newFrequencyBuildCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Rebuild the word-frequency table and difficulty scores",
		Long: `Build scans every *.enriched.json artifact in the corpus directory,
counts eligible words, maps counts to 1-5 difficulty scores, persists both
tables to the cache directory, and prints a summary report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			table, err := frequency.Build(cfg.Frequency.CorpusDir)
			if err != nil {
				return err
			}
			scores := frequency.Scores(table)
			if err := frequency.SaveCaches(cfg.Frequency.CacheDir, table, scores); err != nil {
				return err
			}
			frequency.Report(cmd.OutOrStdout(), table, scores)
			return nil
		},
	}
}

func newFrequencyStatsCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print statistics for the cached word-frequency model",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			table, scores, err := frequency.LoadCaches(cfg.Frequency.CacheDir)
			if err != nil {
				return err
			}
			frequency.Report(cmd.OutOrStdout(), table, scores)
			return nil
		},
	}
}
