package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/worksentry/worksentry/core"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index size and record counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := core.Open(newLogger(verbose))
		if err != nil {
			return err
		}
		defer svc.Close()

		st, err := svc.GetIndexStats()
		if err != nil {
			return err
		}
		fmt.Printf("index_path=%s records=%d size_bytes=%d files=%d bookmarks=%d history=%d\n",
			st.IndexPath, st.TotalRecords, st.SizeBytes, st.FileCount, st.BookmarkCount, st.HistoryCount)

		browsers := svc.GetBrowserStatus()
		fmt.Printf("installed_browsers=%s\n", strings.Join(browsers, ","))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
