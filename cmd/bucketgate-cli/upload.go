package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avelkon/bucketgate/clientcli"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload files through presigned URLs",
	Long: `Upload one or more local files. For each file the server issues a
short-lived presigned URL and the file is pushed directly to storage.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().String("name", "", "remote file name (single file only, default: local base name)")
	uploadCmd.Flags().String("content-type", "", "content type (default: detect from extension)")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	if name != "" && len(args) > 1 {
		return fmt.Errorf("--name cannot be used with multiple files")
	}
	contentType, _ := cmd.Flags().GetString("content-type")

	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	formatter := newFormatter(cmd)

	var failed int
	for _, path := range args {
		result, err := client.Upload(cmd.Context(), clientcli.UploadOptions{
			LocalPath:   path,
			FileName:    name,
			ContentType: contentType,
		})
		if err != nil {
			failed++
			if ferr := formatter.FormatError(cmd.ErrOrStderr(), err); ferr != nil {
				return ferr
			}
			continue
		}
		if err := formatter.FormatUpload(cmd.OutOrStdout(), &result); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(args))
	}
	return nil
}
