package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/avelkon/bucketgate/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "bucketgate",
	Short:   "Presigned-URL gateway for S3 uploads",
	Long: `Bucketgate issues short-lived S3 upload and download URLs to callers
presenting a valid identity token. Each caller only ever sees its own
storage namespace.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is loaded first so BUCKETGATE_* vars defined there are
		// visible to the config layer. Absence is not an error.
		_ = godotenv.Load()

		var files []string
		if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
			files = []string{configFile}
		}

		cfg, err := config.Load(files, cmd.Flags())
		if err != nil {
			return err
		}

		setupLogging(cfg)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().Int("port", 0, "HTTP server port (default: 3001, env: BUCKETGATE_SERVER_PORT)")
	rootCmd.PersistentFlags().String("bucket", "", "S3 bucket name (env: BUCKETGATE_S3_BUCKET)")
	rootCmd.PersistentFlags().String("s3-endpoint", "", "S3-compatible endpoint, e.g. a MinIO URL (env: BUCKETGATE_S3_ENDPOINT)")
	rootCmd.PersistentFlags().String("auth-mode", "", "token verifier: oidc, hmac (default: oidc, env: BUCKETGATE_AUTH_MODE)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
