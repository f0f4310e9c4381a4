// Package temporal finds time-of-day and day-level patterns in the
// breakdown records of a report.
package temporal

import (
	"sort"

	"pbx-insights-go/internal/kpi"
	"pbx-insights-go/internal/types"
)

// Options selects the record metrics the analysis reads.
type Options struct {
	// RateKey is the success rate metric (connection_rate, answer_rate).
	RateKey string
	// RankByEfficiency ranks peak hours by efficiency score instead of volume.
	RankByEfficiency bool
}

const (
	criticalAbandonment = 50.0
	optimalRate         = 90.0
	lowRate             = 70.0
	peakHourCount       = 3
)

// AnalyzeHours buckets the hourly breakdown. Input order is preserved in
// every bucket.
func AnalyzeHours(hourly []types.PeriodRecord, opt Options) types.HourlyAnalysis {
	out := types.HourlyAnalysis{
		PeakHours:     PeakHours(hourly, opt),
		CriticalHours: []types.PeriodRecord{},
		DeadHours:     []types.PeriodRecord{},
		OptimalHours:  []types.PeriodRecord{},
		LowRateHours:  []types.PeriodRecord{},
	}

	scores := make([]float64, 0, len(hourly))
	for _, h := range hourly {
		volume := h.Metric(types.MetricVolume)
		rate := h.Metric(opt.RateKey)

		if volume == 0 {
			out.DeadHours = append(out.DeadHours, h)
		} else {
			out.ActiveHours++
			if rate < lowRate {
				out.LowRateHours = append(out.LowRateHours, h)
			}
		}
		if h.Metric(types.MetricAbandonmentRate) > criticalAbandonment {
			out.CriticalHours = append(out.CriticalHours, h)
		}
		if rate >= optimalRate && volume > 0 {
			out.OptimalHours = append(out.OptimalHours, h)
		}
		scores = append(scores, h.Metric(types.MetricEfficiencyScore))
	}

	out.AverageEfficiency = kpi.Round1(kpi.Mean(scores))
	out.DeadHoursCount = len(out.DeadHours)
	out.OptimalHoursCount = len(out.OptimalHours)
	return out
}

// PeakHours returns the top hours, ties kept in document order.
func PeakHours(hourly []types.PeriodRecord, opt Options) []types.PeriodRecord {
	key := types.MetricVolume
	if opt.RankByEfficiency {
		key = types.MetricEfficiencyScore
	}

	ranked := make([]types.PeriodRecord, len(hourly))
	copy(ranked, hourly)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Metric(key) > ranked[j].Metric(key)
	})
	if len(ranked) > peakHourCount {
		ranked = ranked[:peakHourCount]
	}
	return ranked
}

// Labels returns the period labels of records.
func Labels(records []types.PeriodRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Period)
	}
	return out
}
