package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pbx-insights-go/internal/charts"
	"pbx-insights-go/internal/dataset"
	"pbx-insights-go/internal/processor"
	"pbx-insights-go/internal/render"
)

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	var (
		account    string
		name       string
		xlsxOut    string
		withCharts bool
	)
	cmd := &cobra.Command{
		Use:   "analyze <file.xml>",
		Short: "Analyze one PBX export",
		Example: `  pbxreport analyze queue.xml
  pbxreport analyze ivr.xml --format json --charts
  pbxreport analyze user.xml --xlsx user-report.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps(opts, true)
			if err != nil {
				return err
			}
			defer d.Close()

			if account == "" {
				account = "local"
			}
			rec, err := d.proc.Process(cmd.Context(), processor.Job{
				AccountID:   account,
				AccountName: name,
				Source:      processor.FileSource{Path: args[0]},
			})
			if err != nil {
				return fmt.Errorf("analyze %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			if err := render.Report(out, rec.Report, opts.Format); err != nil {
				return err
			}
			if withCharts {
				if opts.Format != render.FormatJSON {
					fmt.Fprintln(out)
				}
				if err := render.JSON(out, charts.Extract(rec.Report)); err != nil {
					return err
				}
			}
			if xlsxOut != "" {
				if err := dataset.WriteWorkbook(rec.Report, xlsxOut); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "✓ Workbook written to %s\n", xlsxOut)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&account, "account", "", "account id recorded with the run (default: local)")
	f.StringVar(&name, "name", "", "account name recorded with the run")
	f.StringVar(&xlsxOut, "xlsx", "", "also export the report as an xlsx workbook")
	f.BoolVar(&withCharts, "charts", false, "print chart data as JSON after the report")
	return cmd
}
