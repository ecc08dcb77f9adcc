package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avelkon/bucketgate/clientcli"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "bucketgate-cli",
	Short:   "Client for a bucketgate server",
	Long: `bucketgate-cli talks to a bucketgate server: it requests presigned
upload URLs, pushes files through them, and lists your stored files.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "CLI config file (default: ~/.config/bucketgate/config.yaml)")
	rootCmd.PersistentFlags().String("profile", "", "profile name (default: the profile marked default)")
	rootCmd.PersistentFlags().Bool("json", false, "JSON output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")
}

func configPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path, nil
	}
	return clientcli.DefaultConfigPath()
}

// newClient loads the selected profile and builds a client from it.
func newClient(cmd *cobra.Command) (*clientcli.Client, error) {
	path, err := configPath(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := clientcli.LoadConfigFile(path)
	if err != nil {
		return nil, err
	}

	name, _ := cmd.Flags().GetString("profile")
	profile, err := cfg.GetProfile(name)
	if err != nil {
		return nil, fmt.Errorf("%w (run 'bucketgate-cli configure' first)", err)
	}

	return clientcli.New(profile)
}

func newFormatter(cmd *cobra.Command) clientcli.Formatter {
	jsonOut, _ := cmd.Flags().GetBool("json")
	quiet, _ := cmd.Flags().GetBool("quiet")
	return clientcli.NewFormatter(jsonOut, quiet)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
