package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/avelkon/bucketgate/config"
	"github.com/avelkon/bucketgate/identity"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a development token (hmac mode only)",
	Long: `Issue an HS256 token signed with the configured shared secret.
Only works when auth.mode is hmac; production deployments get their
tokens from the OIDC provider.`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().String("uid", "", "subject id to embed in the token")
	tokenCmd.Flags().String("email", "", "optional email claim")
	tokenCmd.Flags().Duration("ttl", time.Hour, "token validity")
	_ = tokenCmd.MarkFlagRequired("uid")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	if cfg.Auth.Mode != "hmac" {
		return errors.New("token command requires auth.mode=hmac")
	}

	verifier, err := identity.NewHMACVerifier([]byte(cfg.Auth.HMAC.Secret))
	if err != nil {
		return err
	}

	uid, _ := cmd.Flags().GetString("uid")
	email, _ := cmd.Flags().GetString("email")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	token, err := verifier.Issue(uid, email, ttl)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
