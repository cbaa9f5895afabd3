// Command worksentry drives core's operations from a terminal, for
// local testing of the index/search/watch pipeline without a UI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "worksentry",
	Short: "Local-first search index over files, bookmarks, and browser history",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger returns a development logger when --verbose is set, a
// no-op logger otherwise, so normal CLI runs stay quiet.
func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable structured logging to stderr")
}
