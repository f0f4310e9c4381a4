package actionable

import (
	"fmt"

	"pbx-insights-go/internal/kpi"
	"pbx-insights-go/internal/temporal"
	"pbx-insights-go/internal/types"
)

const notAvailable = "N/A"

// Generate rates a report with the ladder of its family.
func Generate(r *types.CanonicalReport) types.Insights {
	peaks := temporal.Labels(r.HourlyAnalysis.PeakHours)

	switch s := r.Summary.(type) {
	case *types.IVRSummary:
		ins := types.Insights{
			BusiestHours:         peaks,
			ServiceQuality:       kpi.ServiceQuality(s.ConnectionRate, float64(s.AvgCallDuration)),
			EfficiencyTrend:      orNA(r.TemporalInsights.DailyTrend),
			VolatilityAssessment: orNA(r.TemporalInsights.Volatility),
			WeekendPerformance:   r.TemporalInsights.WeekendVsWeekday,
		}
		if w := r.TemporalInsights.WeekendVsWeekday; w != nil {
			ins.MostActiveDay = w.MostActiveWeekday
		}
		return ins

	case *types.ACDSummary:
		return types.Insights{
			ServiceQuality:  kpi.ServiceQuality(s.AnswerRate, float64(s.AvgSpeedOfAnswer)),
			QueueEfficiency: kpi.QueueEfficiency(s.ServiceLevel20s, float64(s.AvgSpeedOfAnswer)),
			PeakPeriods:     peaks,
		}

	case *types.HuntGroupSummary:
		return types.Insights{
			DistributionEfficiency: kpi.DistributionEfficiency(s.AnswerRate, s.OverflowRate),
			ServiceQuality:         kpi.ServiceQuality(s.AnswerRate, float64(s.AvgSpeedOfAnswer)),
			PeakPeriods:            peaks,
		}

	case *types.RuleBasedSummary:
		return types.Insights{
			RoutingEfficiency: kpi.RoutingEfficiency(s.ConnectionRate, s.Failures),
			ServiceQuality:    kpi.ServiceQuality(s.ConnectionRate, 0),
			PeakPeriods:       peaks,
		}

	case *types.UserSummary:
		return types.Insights{
			CallActivity: kpi.CallActivity(s.IncomingTotal, s.OutgoingTotal),
			Efficiency:   kpi.UserEfficiency(s.AnswerRate, s.IncomingAvgDuration),
			PeakPeriods:  peaks,
		}
	}
	return types.Insights{}
}

// Preview is a one-line digest used in history listings.
func Preview(r *types.CanonicalReport) string {
	head := fmt.Sprintf("%s %s", r.ReportType.DisplayName(), r.PeriodRange)
	switch s := r.Summary.(type) {
	case *types.IVRSummary:
		return fmt.Sprintf("%s: %d calls, %.1f%% connected, quality %s", head, s.TotalCalls, s.ConnectionRate, r.Insights.ServiceQuality)
	case *types.ACDSummary:
		return fmt.Sprintf("%s: %d calls, %.1f%% answered, queue %s", head, s.TotalIncomingCalls, s.AnswerRate, r.Insights.QueueEfficiency)
	case *types.HuntGroupSummary:
		return fmt.Sprintf("%s: %d calls, %.1f%% answered, %.1f%% overflow", head, s.IncomingTotal, s.AnswerRate, s.OverflowRate)
	case *types.RuleBasedSummary:
		return fmt.Sprintf("%s: %d handled, %.1f%% connected, %d failures", head, s.HandledByRulebase, s.ConnectionRate, s.Failures)
	case *types.UserSummary:
		return fmt.Sprintf("%s: %d in / %d out, %s", head, s.IncomingTotal, s.OutgoingTotal, r.Insights.CallActivity)
	case *types.UnsupportedSummary:
		return fmt.Sprintf("%s: %s", head, s.Message)
	}
	return head
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
