package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/worksentry/worksentry/core"
	"github.com/worksentry/worksentry/query"
)

var (
	searchLimit  int
	searchPrefix bool
	searchFuzzy  bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the index and print ranked results",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := core.Open(newLogger(verbose))
		if err != nil {
			return err
		}
		defer svc.Close()

		results, err := svc.Search(strings.Join(args, " "), searchLimit, query.Options{
			Prefix: searchPrefix,
			Fuzzy:  searchFuzzy,
		})
		if err != nil {
			return err
		}

		for i, r := range results {
			fmt.Printf("%2d. %-40s %-10s score=%.1f  %s\n", i+1, r.Name, r.RecordType, r.Score, r.Path)
		}
		if len(results) == 0 {
			fmt.Println("no results")
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchPrefix, "prefix", false, "extend each term with a prefix match")
	searchCmd.Flags().BoolVar(&searchFuzzy, "fuzzy", false, "enable edit-distance matching")
	rootCmd.AddCommand(searchCmd)
}
