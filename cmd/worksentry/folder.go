package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/worksentry/worksentry/core"
)

var addFolderCmd = &cobra.Command{
	Use:   "add-folder <path>",
	Short: "Register a directory for indexing and watching",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := core.Open(newLogger(verbose))
		if err != nil {
			return err
		}
		defer svc.Close()

		if err := svc.AddFolder(args[0]); err != nil {
			return err
		}
		fmt.Printf("added %s\n", args[0])
		return nil
	},
}

var removeFolderCmd = &cobra.Command{
	Use:   "remove-folder <path>",
	Short: "Unwatch a directory and purge its records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := core.Open(newLogger(verbose))
		if err != nil {
			return err
		}
		defer svc.Close()

		if err := svc.RemoveFolder(args[0]); err != nil {
			return err
		}
		fmt.Printf("removed %s\n", args[0])
		return nil
	},
}

var listFoldersCmd = &cobra.Command{
	Use:   "list-folders",
	Short: "List every registered root directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := core.Open(newLogger(verbose))
		if err != nil {
			return err
		}
		defer svc.Close()

		for _, f := range svc.GetFolders() {
			fmt.Println(f)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addFolderCmd, removeFolderCmd, listFoldersCmd)
}
