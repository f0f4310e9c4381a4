package temporal

import (
	"sort"
	"strings"
	"time"

	"pbx-insights-go/internal/kpi"
	"pbx-insights-go/internal/types"
)

// Trend and volatility labels.
const (
	TrendUp      = "crescente"
	TrendDown    = "decrescente"
	TrendFlat    = "stabile"
	VolStable    = "stabile"
	VolModerate  = "moderata"
	VolHigh      = "alta"
	VolNoData    = "insufficienti dati"
	periodNoData = "N/A"
)

var weekendDays = map[string]bool{
	"saturday": true,
	"sunday":   true,
	"sabato":   true,
	"domenica": true,
}

// AnalyzeDays computes the day-level insights.
func AnalyzeDays(daily, weekday []types.PeriodRecord) types.TemporalInsights {
	volumes := groupVolumes(daily)

	out := types.TemporalInsights{
		DailyTrend: DailyTrend(volumes),
		Volatility: Volatility(volumes),
	}
	if peak := maxByVolume(daily); peak != nil {
		out.PeakDay = peak
	}
	out.WeekendVsWeekday = WeekendVsWeekday(weekday)
	return out
}

func groupVolumes(daily []types.PeriodRecord) []float64 {
	var out []float64
	for _, d := range daily {
		if d.Role == types.RoleGroup {
			out = append(out, d.Metric(types.MetricVolume))
		}
	}
	return out
}

// DailyTrend compares the first and last volume. It is empty when fewer
// than two points exist.
func DailyTrend(volumes []float64) string {
	if len(volumes) < 2 {
		return ""
	}
	first, last := volumes[0], volumes[len(volumes)-1]
	switch {
	case last > first:
		return TrendUp
	case last < first:
		return TrendDown
	default:
		return TrendFlat
	}
}

// Volatility buckets the coefficient of variation of volumes.
func Volatility(volumes []float64) string {
	if len(volumes) < 2 {
		return VolNoData
	}
	mean := kpi.Mean(volumes)
	if mean <= 0 {
		return VolNoData
	}
	cv := kpi.StdDev(volumes) / mean * 100
	switch {
	case cv < 15:
		return VolStable
	case cv < 30:
		return VolModerate
	default:
		return VolHigh
	}
}

// WeekendVsWeekday averages weekend and working-day volumes. Nil when there
// are no weekday records.
func WeekendVsWeekday(weekday []types.PeriodRecord) *types.WeekendComparison {
	if len(weekday) == 0 {
		return nil
	}
	var weekend, work []float64
	for _, d := range weekday {
		v := d.Metric(types.MetricVolume)
		if IsWeekend(d.Period) {
			weekend = append(weekend, v)
		} else {
			work = append(work, v)
		}
	}
	return &types.WeekendComparison{
		WeekendAvg:        kpi.Round1(kpi.Mean(weekend)),
		WeekdayAvg:        kpi.Round1(kpi.Mean(work)),
		MostActiveWeekday: maxByVolume(weekday),
	}
}

// IsWeekend recognizes English and Italian weekend day names.
func IsWeekend(day string) bool {
	return weekendDays[strings.ToLower(strings.TrimSpace(day))]
}

// maxByVolume returns a copy of the first record with the highest volume.
func maxByVolume(records []types.PeriodRecord) *types.PeriodRecord {
	if len(records) == 0 {
		return nil
	}
	best := 0
	for i := range records {
		if records[i].Metric(types.MetricVolume) > records[best].Metric(types.MetricVolume) {
			best = i
		}
	}
	r := records[best]
	return &r
}

// PeriodRange spans the dated daily rows, "N/A" when none carry a date.
func PeriodRange(daily []types.PeriodRecord) string {
	var dates []string
	for _, d := range daily {
		if d.Period == types.TotalLabel || !strings.Contains(d.Period, "/") {
			continue
		}
		dates = append(dates, strings.Fields(d.Period)[0])
	}
	if len(dates) == 0 {
		return periodNoData
	}
	sortDates(dates)
	first, last := dates[0], dates[len(dates)-1]
	if first == last {
		return first
	}
	return first + " - " + last
}

// sortDates orders dd/mm/yyyy labels chronologically, falling back to
// lexical order when any label does not parse.
func sortDates(dates []string) {
	parsed := make(map[string]time.Time, len(dates))
	for _, d := range dates {
		t, err := time.Parse("2/1/2006", d)
		if err != nil {
			sort.Strings(dates)
			return
		}
		parsed[d] = t
	}
	sort.SliceStable(dates, func(i, j int) bool {
		return parsed[dates[i]].Before(parsed[dates[j]])
	})
}
