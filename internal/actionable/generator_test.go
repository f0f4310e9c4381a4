package actionable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pbx-insights-go/internal/kpi"
	"pbx-insights-go/internal/types"
)

func TestGenerateIVR(t *testing.T) {
	monday := types.PeriodRecord{Period: "Monday"}
	r := &types.CanonicalReport{
		ReportType: types.ReportIvr,
		Summary:    &types.IVRSummary{ConnectionRate: 90, AvgCallDuration: 12},
		HourlyAnalysis: types.HourlyAnalysis{
			PeakHours: []types.PeriodRecord{{Period: "09:00"}, {Period: "11:00"}},
		},
		TemporalInsights: types.TemporalInsights{
			Volatility:       "stabile",
			WeekendVsWeekday: &types.WeekendComparison{MostActiveWeekday: &monday},
		},
	}

	ins := Generate(r)
	assert.Equal(t, kpi.Excellent, ins.ServiceQuality)
	assert.Equal(t, []string{"09:00", "11:00"}, ins.BusiestHours)
	assert.Equal(t, "N/A", ins.EfficiencyTrend)
	assert.Equal(t, "stabile", ins.VolatilityAssessment)
	assert.Equal(t, "Monday", ins.MostActiveDay.Period)
}

func TestGeneratePerFamily(t *testing.T) {
	acd := Generate(&types.CanonicalReport{Summary: &types.ACDSummary{AnswerRate: 82, AvgSpeedOfAnswer: 25, ServiceLevel20s: 72}})
	assert.Equal(t, kpi.Acceptable, acd.ServiceQuality)
	assert.Equal(t, kpi.Good, acd.QueueEfficiency)

	hg := Generate(&types.CanonicalReport{Summary: &types.HuntGroupSummary{AnswerRate: 88, OverflowRate: 5, AvgSpeedOfAnswer: 10}})
	assert.Equal(t, kpi.Excellent, hg.DistributionEfficiency)
	assert.Equal(t, kpi.Good, hg.ServiceQuality)

	rb := Generate(&types.CanonicalReport{Summary: &types.RuleBasedSummary{ConnectionRate: 95, Failures: 1}})
	assert.Equal(t, kpi.Good, rb.RoutingEfficiency)
	assert.Equal(t, kpi.Excellent, rb.ServiceQuality)

	user := Generate(&types.CanonicalReport{Summary: &types.UserSummary{IncomingTotal: 40, OutgoingTotal: 20, AnswerRate: 91, IncomingAvgDuration: 200}})
	assert.Equal(t, kpi.ActivityModerate, user.CallActivity)
	assert.Equal(t, kpi.Good, user.Efficiency)

	assert.Equal(t, types.Insights{}, Generate(&types.CanonicalReport{Summary: &types.UnsupportedSummary{Type: types.ReportTrunk}}))
}

func TestPreview(t *testing.T) {
	r := &types.CanonicalReport{
		ReportType:  types.ReportAcd,
		PeriodRange: "01/03/2024 - 07/03/2024",
		Summary:     &types.ACDSummary{TotalIncomingCalls: 120, AnswerRate: 87.5},
		Insights:    types.Insights{QueueEfficiency: kpi.Good},
	}
	assert.Equal(t, "ACD 01/03/2024 - 07/03/2024: 120 calls, 87.5% answered, queue Buona", Preview(r))

	trunk := &types.CanonicalReport{ReportType: types.ReportTrunk, PeriodRange: "N/A", Summary: &types.UnsupportedSummary{Type: types.ReportTrunk, Message: "TRUNK analysis not implemented yet"}}
	assert.Equal(t, "TRUNK N/A: TRUNK analysis not implemented yet", Preview(trunk))
}
