package main

import (
	"fmt"
	"time"

	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/config"
	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/token"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a token for the admin routes, signed with AUTH_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			tk, err := token.NewIssuer(token.IssuerConfig{
				Secret: []byte(cfg.AuthSecret),
				TTL:    ttl,
			}).Issue(subject)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), tk)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime, 0 for no expiry")
	return cmd
}
