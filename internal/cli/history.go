package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pbx-insights-go/internal/render"
	"pbx-insights-go/internal/types"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and prune recorded runs",
	}
	cmd.AddCommand(newHistoryListCmd(opts), newHistoryShowCmd(opts), newHistoryPruneCmd(opts))
	return cmd
}

func newHistoryListCmd(opts *rootOptions) *cobra.Command {
	var (
		account string
		limit   int
	)
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List an account's runs, newest first",
		Example: `  pbxreport history list --account 42 --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if account == "" {
				return fmt.Errorf("specify --account <id>")
			}
			d, err := buildDeps(opts, false)
			if err != nil {
				return err
			}
			if err := d.requireStore(); err != nil {
				return err
			}
			defer d.Close()

			recs, err := d.store.List(account, limit)
			if err != nil {
				return fmt.Errorf("reading history: %w", err)
			}
			if opts.Format == render.FormatJSON {
				return render.JSON(cmd.OutOrStdout(), recs)
			}
			render.Runs(cmd.OutOrStdout(), recs)
			return nil
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "account id")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum runs to show (0 = all)")
	return cmd
}

func newHistoryShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps(opts, false)
			if err != nil {
				return err
			}
			if err := d.requireStore(); err != nil {
				return err
			}
			defer d.Close()

			rec, ok, err := d.store.Get(args[0])
			if err != nil {
				return fmt.Errorf("reading history: %w", err)
			}
			if !ok {
				return fmt.Errorf("run %q not found", args[0])
			}

			out := cmd.OutOrStdout()
			if opts.Format == render.FormatJSON {
				return render.JSON(out, rec)
			}
			render.Runs(out, []types.RunRecord{rec})
			if rec.Report != nil {
				fmt.Fprintln(out)
				return render.Report(out, rec.Report, render.FormatTable)
			}
			return nil
		},
	}
}

func newHistoryPruneCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete runs past their expiry",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps(opts, false)
			if err != nil {
				return err
			}
			if err := d.requireStore(); err != nil {
				return err
			}
			defer d.Close()

			n, err := d.store.Prune(time.Now())
			if err != nil {
				return fmt.Errorf("pruning history: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Pruned %d expired runs\n", n)
			return nil
		},
	}
}
