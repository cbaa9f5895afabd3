package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/worksentry/worksentry/core"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := core.Open(newLogger(verbose))
		if err != nil {
			return err
		}
		defer svc.Close()

		cfg := svc.GetConfig()
		fmt.Printf("hotkey=%s\n", cfg.Hotkey)
		fmt.Printf("theme=%s\n", cfg.Theme)
		fmt.Printf("max_results=%d\n", cfg.MaxResults)
		fmt.Printf("enable_bookmarks=%t\n", cfg.EnableBookmarks)
		fmt.Printf("enable_history=%t\n", cfg.EnableHistory)
		for _, r := range cfg.Roots {
			fmt.Printf("root=%s\n", r)
		}
		return nil
	},
}

var configSetBookmarksCmd = &cobra.Command{
	Use:   "set-bookmarks <true|false>",
	Short: "Enable or disable bookmark indexing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled, err := parseBool(args[0])
		if err != nil {
			return err
		}
		svc, err := core.Open(newLogger(verbose))
		if err != nil {
			return err
		}
		defer svc.Close()
		return svc.SetBookmarksEnabled(enabled)
	},
}

var configSetHistoryCmd = &cobra.Command{
	Use:   "set-history <true|false>",
	Short: "Enable or disable browser history indexing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled, err := parseBool(args[0])
		if err != nil {
			return err
		}
		svc, err := core.Open(newLogger(verbose))
		if err != nil {
			return err
		}
		defer svc.Close()
		return svc.SetHistoryEnabled(enabled)
	},
}

func parseBool(s string) (bool, error) {
	switch s {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetBookmarksCmd, configSetHistoryCmd)
	rootCmd.AddCommand(configCmd)
}
