package main

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your stored files",
	Long: `List the files stored under your namespace. Each entry carries a
presigned download URL valid for a few minutes.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	entries, err := client.ListFiles(cmd.Context())
	if err != nil {
		return err
	}

	return newFormatter(cmd).FormatList(cmd.OutOrStdout(), entries)
}
