package main

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/avelkon/bucketgate/clientcli"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Manage server profiles",
	Long: `Manage server profiles in the configuration file.

Profiles hold a server endpoint and the bearer token used against it,
and let you switch between servers with --profile.

Configuration is stored in ~/.config/bucketgate/config.yaml`,
}

var configureAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or update a profile",
	Long: `Add a profile interactively. You will be prompted for the endpoint
URL, the bearer token, and whether to make the profile the default.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigureAdd,
}

var configureListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured profiles",
	Long:  `List all profiles. The default profile is marked with an asterisk (*).`,
	RunE:  runConfigureList,
}

var configureRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a profile",
	Args:    cobra.ExactArgs(1),
	RunE:    runConfigureRemove,
}

func init() {
	configureCmd.AddCommand(configureAddCmd)
	configureCmd.AddCommand(configureListCmd)
	configureCmd.AddCommand(configureRemoveCmd)
	rootCmd.AddCommand(configureCmd)
}

func runConfigureAdd(cmd *cobra.Command, args []string) error {
	name := args[0]

	path, err := configPath(cmd)
	if err != nil {
		return err
	}
	cfg, err := clientcli.LoadConfigFile(path)
	if err != nil {
		return err
	}

	endpointPrompt := promptui.Prompt{
		Label:   "Endpoint URL",
		Default: clientcli.DefaultEndpoint,
		Validate: func(s string) error {
			u, err := url.Parse(s)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
				return errors.New("must be an http(s) URL")
			}
			return nil
		},
	}
	endpoint, err := endpointPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	tokenPrompt := promptui.Prompt{
		Label: "Bearer token",
		Mask:  '*',
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return clientcli.ErrTokenRequired
			}
			return nil
		},
	}
	token, err := tokenPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	defaultPrompt := promptui.Prompt{
		Label:     "Set as default profile",
		IsConfirm: true,
	}
	_, err = defaultPrompt.Run()
	isDefault := err == nil

	cfg.SetProfile(clientcli.Profile{
		Name:     name,
		Endpoint: strings.TrimSuffix(endpoint, "/"),
		Token:    strings.TrimSpace(token),
		Default:  isDefault,
	})

	if err := clientcli.SaveConfigFile(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Profile %q saved to %s\n", name, path)
	return nil
}

func runConfigureList(cmd *cobra.Command, args []string) error {
	path, err := configPath(cmd)
	if err != nil {
		return err
	}
	cfg, err := clientcli.LoadConfigFile(path)
	if err != nil {
		return err
	}

	if len(cfg.Profiles) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No profiles configured.")
		return nil
	}

	for i := range cfg.Profiles {
		p := &cfg.Profiles[i]
		marker := " "
		if p.Default {
			marker = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\n", marker, p.Name, p.Endpoint)
	}
	return nil
}

func runConfigureRemove(cmd *cobra.Command, args []string) error {
	path, err := configPath(cmd)
	if err != nil {
		return err
	}
	cfg, err := clientcli.LoadConfigFile(path)
	if err != nil {
		return err
	}

	if err := cfg.RemoveProfile(args[0]); err != nil {
		return err
	}

	if err := clientcli.SaveConfigFile(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Profile %q removed\n", args[0])
	return nil
}

// handlePromptError turns a Ctrl-C during a prompt into a clean abort.
func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) {
		return errors.New("aborted")
	}
	return err
}
