// Package render prints reports and run records as tables or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"pbx-insights-go/internal/extractor"
	"pbx-insights-go/internal/temporal"
	"pbx-insights-go/internal/types"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Report writes r in the requested format. Unknown formats fall back to
// the table view.
func Report(w io.Writer, r *types.CanonicalReport, format string) error {
	if format == FormatJSON {
		return JSON(w, r)
	}
	if err := Summary(w, r); err != nil {
		return err
	}
	if len(r.Hourly) > 0 {
		fmt.Fprintln(w)
		Hourly(w, r)
	}
	return nil
}

func JSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, headers []string) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(headers)
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)
	return tw
}

// Summary prints the report header, the summary fields and the ratings.
func Summary(w io.Writer, r *types.CanonicalReport) error {
	tw := newTable(w, []string{"FIELD", "VALUE"})
	tw.Append([]string{"report_type", r.ReportType.DisplayName()})
	tw.Append([]string{"period_range", r.PeriodRange})
	tw.Append([]string{"entity", r.Entity.Name})
	if r.Classification.Defaulted {
		tw.Append([]string{"classification", "default (no indicator)"})
	} else {
		tw.Append([]string{"classification", r.Classification.Indicator})
	}

	if r.Summary != nil {
		fields, err := flatten(r.Summary)
		if err != nil {
			return err
		}
		for _, kv := range fields {
			tw.Append(kv)
		}
	}
	insights, err := flatten(r.Insights)
	if err != nil {
		return err
	}
	for _, kv := range insights {
		tw.Append(kv)
	}
	tw.Render()
	return nil
}

// Hourly prints one row per hourly record with its derived metrics.
func Hourly(w io.Writer, r *types.CanonicalReport) {
	rateKey := ""
	if s, ok := extractor.SchemaFor(r.ReportType); ok {
		rateKey = s.Profile.RateName
	}
	peaks := map[string]bool{}
	for _, l := range temporal.Labels(r.HourlyAnalysis.PeakHours) {
		peaks[l] = true
	}

	tw := newTable(w, []string{"HOUR", "VOLUME", "RATE %", "ABANDON %", "EFFICIENCY", "PEAK"})
	tw.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})
	for _, h := range r.Hourly {
		peak := ""
		if peaks[h.Period] {
			peak = "*"
		}
		tw.Append([]string{
			h.Period,
			num(h.Metric(types.MetricVolume)),
			num(h.Metric(rateKey)),
			num(h.Metric(types.MetricAbandonmentRate)),
			num(h.Metric(types.MetricEfficiencyScore)),
			peak,
		})
	}
	tw.Render()
}

// Runs prints run records, one per row.
func Runs(w io.Writer, recs []types.RunRecord) {
	tw := newTable(w, []string{"ID", "ACCOUNT", "TYPE", "STATUS", "GENERATED", "DURATION", "PREVIEW"})
	for _, rec := range recs {
		status, preview := "ok", rec.Preview
		if !rec.Success {
			status, preview = "failed", rec.Error
		}
		tw.Append([]string{
			rec.ID,
			rec.AccountID,
			string(rec.ReportType),
			status,
			time.Unix(rec.GeneratedAt, 0).UTC().Format(time.RFC3339),
			fmt.Sprintf("%dms", rec.DurationMs),
			preview,
		})
	}
	tw.Render()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// flatten turns a struct into sorted key/value rows using its JSON names.
func flatten(v interface{}) ([][]string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %T: %w", v, err)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		switch val := m[k].(type) {
		case string, float64, bool:
			rows = append(rows, []string{k, fmt.Sprint(val)})
		case nil:
		case map[string]interface{}:
			if p, ok := val["period"]; ok {
				rows = append(rows, []string{k, fmt.Sprint(p)})
				continue
			}
			b, _ := json.Marshal(val)
			rows = append(rows, []string{k, string(b)})
		default:
			// nested values such as most_active_day or peak lists
			b, _ := json.Marshal(val)
			rows = append(rows, []string{k, string(b)})
		}
	}
	return rows, nil
}
