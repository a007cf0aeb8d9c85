package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/config"
	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/conjugation"
	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/lookup"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	var policy string

	cmd := &cobra.Command{
		Use:   "show <verb>",
		Short: "Print the conjugation table of a verb",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LocalFromEnv()
			if policy != "" {
				cfg.Lookup.DedupPolicy = policy
			}
			return runShow(cmd.Context(), cmd.OutOrStdout(), cfg, args[0])
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "", "dedup policy: first-wins or prefer-masculine (default from LOOKUP_DEDUP_POLICY)")
	return cmd
}

func runShow(ctx context.Context, out io.Writer, cfg config.Config, name string) error {
	policy, err := conjugation.ParsePolicy(cfg.Lookup.DedupPolicy)
	if err != nil {
		return fmt.Errorf("dedup policy: %w", err)
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	sess := lookup.NewSession(lookup.NewService(st,
		lookup.WithPolicy(policy),
		lookup.WithTimeout(cfg.Lookup.Timeout),
	), slog.Default())
	defer sess.Close()

	states, unsubscribe := sess.Subscribe(4)
	defer unsubscribe()

	sess.Start(ctx, name)
	for s := range states {
		switch s.Status {
		case lookup.StatusLoading:
			slog.Debug("looking up verb", "verb", s.Name, "generation", s.Generation)
		case lookup.StatusSuccess:
			return printVerb(out, s.Verb)
		case lookup.StatusNotFound:
			return &lookup.NotFoundError{Name: s.Name}
		case lookup.StatusFailed:
			return fmt.Errorf("lookup %s: %w", s.Name, s.Err)
		}
	}

	return errors.New("lookup session closed")
}

func printVerb(out io.Writer, v conjugation.Verb) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, v.Name)
	for _, m := range v.Moods {
		fmt.Fprintf(tw, "\n%s\n", m.Name)
		for _, t := range m.Tenses {
			fmt.Fprintf(tw, "  %s\n", t.Name)
			for _, f := range t.Forms {
				fmt.Fprintf(tw, "    %s\t%s\n", f.Person.Label(), f.Text)
			}
		}
	}

	return tw.Flush()
}
