package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pbx-insights-go/internal/dataset"
	"pbx-insights-go/internal/processor"
	"pbx-insights-go/internal/render"
)

func newBatchCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <manifest.xlsx>",
		Short: "Analyze every export listed in a manifest workbook",
		Long: `Reads the first sheet of the manifest. Columns are found by header:
an account id column, an optional name column and an XML path column.
Relative paths are resolved against the manifest's directory.

A failing row never stops the batch; it is reported and recorded.`,
		Example: `  pbxreport batch accounts.xlsx
  pbxreport batch accounts.xlsx --workers 8 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps(opts, true)
			if err != nil {
				return err
			}
			defer d.Close()

			entries, err := dataset.LoadManifest(d.log, args[0])
			if err != nil {
				return fmt.Errorf("loading manifest: %w", err)
			}
			sum := d.proc.ProcessBatch(cmd.Context(), processor.JobsFromManifest(entries))

			out := cmd.OutOrStdout()
			if opts.Format == render.FormatJSON {
				return render.JSON(out, sum)
			}
			render.Runs(out, sum.Records)
			fmt.Fprintf(out, "\n%d total, %d successful, %d failed\n", sum.Total, sum.Successful, sum.Failed)
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "parallel analyses (default: BATCH_WORKERS or 4)")
	return cmd
}
