package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/catalog"
	"github.com/gamma-omg/lexi-conjugation/internal/services/conjugation/internal/config"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var opts catalog.ImportOptions

	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Load verbs and their forms from a YAML fixture",
		Long: `Load verbs and their forms from a YAML fixture into the configured store.

All verbs are imported in one transaction: if any of them fails, nothing is stored.
Forms are stored in the order they appear in the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), cmd.OutOrStdout(), config.LocalFromEnv(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.SkipExisting, "skip-existing", false, "skip verbs that are already stored instead of failing")
	return cmd
}

func runImport(ctx context.Context, out io.Writer, cfg config.Config, path string, opts catalog.ImportOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	fixture, err := catalog.ReadFixture(f)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	res, err := catalog.NewCatalog(st).ImportAll(ctx, fixture.Requests(), opts)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}

	for _, v := range res.Skipped {
		fmt.Fprintf(out, "skipped %s: already exists\n", v)
	}
	fmt.Fprintf(out, "imported %d verbs\n", len(res.Imported))
	return nil
}
