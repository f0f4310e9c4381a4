package pipeline

import (
	"pbx-insights-go/internal/actionable"
	"pbx-insights-go/internal/aggregator"
	"pbx-insights-go/internal/classifier"
	"pbx-insights-go/internal/extractor"
	"pbx-insights-go/internal/temporal"
	"pbx-insights-go/internal/types"
)

// Assemble composes the analyzers over an extraction. It does no I/O.
func Assemble(cls classifier.Result, ex *extractor.Extraction) *types.CanonicalReport {
	opts := temporal.Options{
		RateKey:          ex.Schema.Profile.RateName,
		RankByEfficiency: ex.Schema.Profile.RankByEfficiency,
	}
	hours := temporal.AnalyzeHours(ex.Hourly, opts)
	transfers := aggregator.Transfers(ex.Daily, ex.Total)

	r := &types.CanonicalReport{
		ReportType:       cls.Type,
		Classification:   cls.Classification,
		PeriodRange:      temporal.PeriodRange(ex.Daily),
		Entity:           ex.Entity,
		Summary:          buildSummary(ex, hours, transfers),
		Daily:            nonNil(ex.Daily),
		Hourly:           nonNil(ex.Hourly),
		Weekday:          nonNil(ex.Weekday),
		HourlyAnalysis:   hours,
		TransferAnalysis: transfers,
		TemporalInsights: temporal.AnalyzeDays(ex.Daily, ex.Weekday),
		EntityCatalog:    ex.Catalog,
	}
	if ex.Schema.Members != nil {
		r.MemberAnalysis = aggregator.Members(ex.Daily, ex.Total)
	}
	r.Insights = actionable.Generate(r)
	return r
}

func unsupportedReport(cls classifier.Result) *types.CanonicalReport {
	return &types.CanonicalReport{
		ReportType:     cls.Type,
		Classification: cls.Classification,
		PeriodRange:    "N/A",
		Summary:        unsupported(cls.Type),
		Daily:          []types.PeriodRecord{},
		Hourly:         []types.PeriodRecord{},
		Weekday:        []types.PeriodRecord{},
		HourlyAnalysis: temporal.AnalyzeHours(nil, temporal.Options{}),
		TransferAnalysis: types.TransferAnalysis{
			Destinations: map[string]int{},
			Distribution: map[string]float64{},
		},
		TemporalInsights: temporal.AnalyzeDays(nil, nil),
		EntityCatalog: types.EntityCatalog{
			UniqueFullNames:     []string{},
			UniqueGroupingNames: []string{},
			UniqueIdentifiers:   []string{},
			UniqueGroupNames:    []string{},
			UniquePeriods:       []string{},
			UniqueWeekdays:      []string{},
		},
	}
}

func nonNil(in []types.PeriodRecord) []types.PeriodRecord {
	if in == nil {
		return []types.PeriodRecord{}
	}
	return in
}
