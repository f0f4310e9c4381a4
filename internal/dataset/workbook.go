package dataset

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"pbx-insights-go/internal/types"
)

// Sheet names written by WriteWorkbook, in order.
const (
	SheetSummary   = "Summary"
	SheetDaily     = "Daily"
	SheetHourly    = "Hourly"
	SheetWeekday   = "Weekday"
	SheetTransfers = "Transfers"
	SheetEntities  = "Entities"
)

// WriteWorkbook exports a canonical report as an xlsx file.
func WriteWorkbook(r *types.CanonicalReport, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetDaily, SheetHourly, SheetWeekday, SheetTransfers, SheetEntities} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("new sheet %s: %w", name, err)
		}
	}

	summary, err := summaryRows(r)
	if err != nil {
		return err
	}
	writers := []struct {
		sheet string
		rows  [][]interface{}
	}{
		{SheetSummary, summary},
		{SheetDaily, periodRows(r.Daily)},
		{SheetHourly, periodRows(r.Hourly)},
		{SheetWeekday, periodRows(r.Weekday)},
		{SheetTransfers, transferRows(r.TransferAnalysis)},
		{SheetEntities, entityRows(r.EntityCatalog)},
	}
	for _, w := range writers {
		if err := writeRows(f, w.sheet, w.rows); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// summaryRows flattens the header fields and the type-specific summary into
// field/value pairs.
func summaryRows(r *types.CanonicalReport) ([][]interface{}, error) {
	rows := [][]interface{}{
		{"Field", "Value"},
		{"report_type", r.ReportType.DisplayName()},
		{"period_range", r.PeriodRange},
		{"entity", r.Entity.Name},
	}
	if r.Summary == nil {
		return rows, nil
	}
	data, err := json.Marshal(r.Summary)
	if err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rows = append(rows, []interface{}{k, fields[k]})
	}
	return rows, nil
}

func periodRows(recs []types.PeriodRecord) [][]interface{} {
	seen := map[string]bool{}
	var metrics []string
	for _, rec := range recs {
		for k := range rec.Metrics {
			if !seen[k] {
				seen[k] = true
				metrics = append(metrics, k)
			}
		}
	}
	sort.Strings(metrics)

	header := []interface{}{"period", "type", "name"}
	for _, m := range metrics {
		header = append(header, m)
	}
	rows := [][]interface{}{header}
	for _, rec := range recs {
		row := []interface{}{rec.Period, string(rec.Role), rec.Name}
		for _, m := range metrics {
			row = append(row, rec.Metrics[m])
		}
		rows = append(rows, row)
	}
	return rows
}

func transferRows(t types.TransferAnalysis) [][]interface{} {
	names := make([]string, 0, len(t.Destinations))
	for name := range t.Destinations {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if t.Destinations[names[i]] != t.Destinations[names[j]] {
			return t.Destinations[names[i]] > t.Destinations[names[j]]
		}
		return names[i] < names[j]
	})

	rows := [][]interface{}{{"destination", "count", "share_pct"}}
	for _, name := range names {
		rows = append(rows, []interface{}{name, t.Destinations[name], t.Distribution[name]})
	}
	return rows
}

func entityRows(c types.EntityCatalog) [][]interface{} {
	cols := [][]string{
		c.UniqueFullNames, c.UniqueGroupingNames, c.UniqueIdentifiers,
		c.UniqueGroupNames, c.UniquePeriods, c.UniqueWeekdays,
	}
	rows := [][]interface{}{{"full_name", "grouping_name", "object_identifier", "group_names", "period", "weekday"}}
	height := 0
	for _, col := range cols {
		if len(col) > height {
			height = len(col)
		}
	}
	for i := 0; i < height; i++ {
		row := make([]interface{}, len(cols))
		for j, col := range cols {
			if i < len(col) {
				row[j] = col[i]
			} else {
				row[j] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}
