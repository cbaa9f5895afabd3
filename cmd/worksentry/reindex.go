package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/worksentry/worksentry/core"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Run a full bulk-index pass over every registered root",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := core.Open(newLogger(verbose))
		if err != nil {
			return err
		}
		defer svc.Close()

		stats, err := svc.Reindex(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("processed=%d written=%d skipped=%d orphaned=%d\n",
			stats.Processed, stats.Written, stats.Skipped, stats.Orphaned)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
