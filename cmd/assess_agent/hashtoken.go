package main

import (
	"fmt"
	"os"

	"github.com/jonathan/candidate-assessor/internal/config"
	"github.com/spf13/cobra"
)

var hashTokenCmd = &cobra.Command{
	Use:   "hash-token TOKEN",
	Short: "Hash an admin token for the configuration",
	Long: `Hash an admin API token with bcrypt. Put the printed hash into
auth.admin_token_hash (or ASSESS_AUTH_ADMIN_TOKEN_HASH) to enable the admin
endpoints; the plain token is what callers present as the bearer token.`,
	Args: cobra.ExactArgs(1),
	RunE: runHashToken,
}

var hashTokenCost int

func init() {
	hashTokenCmd.Flags().IntVar(&hashTokenCost, "cost", 12, "bcrypt cost (10-14)")
	rootCmd.AddCommand(hashTokenCmd)
}

func runHashToken(_ *cobra.Command, args []string) error {
	adminCfg, err := config.NewAdminTokenConfig(config.AuthConfig{BcryptCost: hashTokenCost})
	if err != nil {
		return err
	}

	hash, err := adminCfg.HashToken(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%s\n", hash)
	return nil
}
