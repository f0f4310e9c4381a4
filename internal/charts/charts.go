// Package charts derives plot-ready series from a canonical report. It
// produces data only; drawing is left to the consumer.
package charts

import (
	"pbx-insights-go/internal/extractor"
	"pbx-insights-go/internal/kpi"
	"pbx-insights-go/internal/types"
)

const (
	maxHourlyPoints = 24
	maxDailyBars    = 7
)

const (
	StatusGood    = "good"
	StatusWarning = "warning"
	StatusDanger  = "danger"
)

type Series struct {
	X      []string  `json:"x"`
	Y      []float64 `json:"y"`
	Title  string    `json:"title"`
	XLabel string    `json:"xlabel"`
	YLabel string    `json:"ylabel"`
}

type DailyBars struct {
	Days     []string  `json:"days"`
	Incoming []float64 `json:"incoming"`
	Outgoing []float64 `json:"outgoing"`
	Title    string    `json:"title"`
}

// Gauge thresholds are fractions of Max. LowerIsBetter flips the status
// bands for metrics like abandonment.
type Gauge struct {
	Title            string  `json:"title"`
	Value            float64 `json:"value"`
	Max              float64 `json:"max"`
	ThresholdGood    float64 `json:"threshold_good"`
	ThresholdWarning float64 `json:"threshold_warning"`
	LowerIsBetter    bool    `json:"lower_is_better,omitempty"`
	Status           string  `json:"status"`
}

type Pie struct {
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

type ChartData struct {
	HourlyTrend    *Series    `json:"hourly_trend"`
	DailyBreakdown *DailyBars `json:"daily_breakdown"`
	KPIGauges      []Gauge    `json:"kpi_gauges"`
	PieCharts      []Pie      `json:"pie_charts"`
}

// Extract builds every chart the report has data for.
func Extract(r *types.CanonicalReport) ChartData {
	out := ChartData{KPIGauges: []Gauge{}, PieCharts: []Pie{}}
	if r == nil {
		return out
	}
	schema, ok := extractor.SchemaFor(r.ReportType)
	if !ok {
		return out
	}
	out.HourlyTrend = hourlyTrend(r.Hourly)
	out.DailyBreakdown = dailyBars(r.Daily, schema.Profile)
	out.KPIGauges = append(out.KPIGauges, gauges(r)...)
	if p := callPie(r.Summary); p != nil {
		out.PieCharts = append(out.PieCharts, *p)
	}
	return out
}

func hourlyTrend(hours []types.PeriodRecord) *Series {
	s := &Series{
		X:      []string{},
		Y:      []float64{},
		Title:  "Trend Chiamate per Ora",
		XLabel: "Ora",
		YLabel: "Numero Chiamate",
	}
	var seen bool
	for _, h := range hours {
		if len(s.X) == maxHourlyPoints {
			break
		}
		if h.Period == "" || h.Period == types.TotalLabel {
			continue
		}
		v := h.Metric(types.MetricVolume)
		s.X = append(s.X, kpi.NormalizeHourLabel(h.Period))
		s.Y = append(s.Y, v)
		seen = seen || v > 0
	}
	if !seen {
		return nil
	}
	return s
}

func dailyBars(days []types.PeriodRecord, p extractor.Profile) *DailyBars {
	var labels []string
	var in, out, ok, ko []float64
	for _, d := range days {
		if len(labels) == maxDailyBars {
			break
		}
		if d.Period == "" || d.Period == types.TotalLabel {
			continue
		}
		labels = append(labels, d.Period)
		in = append(in, d.Metric(p.Base))
		out = append(out, d.Metric("outgoing_total"))
		ok = append(ok, d.Metric(p.Success))
		ko = append(ko, d.Metric(p.Failure))
	}
	if len(labels) == 0 {
		return nil
	}
	switch {
	case anyPositive(in) || anyPositive(out):
		return &DailyBars{Days: labels, Incoming: in, Outgoing: out, Title: "Breakdown Giornaliero - Chiamate In/Out"}
	case anyPositive(ok) || anyPositive(ko):
		return &DailyBars{Days: labels, Incoming: ok, Outgoing: ko, Title: "Breakdown Giornaliero - Risposte/Non Risposte"}
	}
	return nil
}

func gauges(r *types.CanonicalReport) []Gauge {
	var rate, serviceLevel, abandonment float64
	var speed int
	rateTitle := "Tasso Risposta"

	switch s := r.Summary.(type) {
	case *types.IVRSummary:
		rate, abandonment = s.ConnectionRate, s.AbandonmentRate
		rateTitle = "Tasso Connessione"
	case *types.ACDSummary:
		rate, serviceLevel, abandonment, speed = s.AnswerRate, s.ServiceLevel20s, s.AbandonmentRate, s.AvgSpeedOfAnswer
	case *types.HuntGroupSummary:
		rate, speed = s.AnswerRate, s.AvgSpeedOfAnswer
	case *types.RuleBasedSummary:
		rate = s.ConnectionRate
	case *types.UserSummary:
		rate, speed = s.AnswerRate, s.IncomingAvgSpeedOfAnswer
	}

	var out []Gauge
	if rate > 0 {
		out = append(out, newGauge(rateTitle, rate, 100, 0.85, 0.70, false))
	}
	if serviceLevel > 0 {
		out = append(out, newGauge("Service Level", serviceLevel, 100, 0.80, 0.60, false))
	}
	if speed > 0 {
		// under 20s is good, under 30s acceptable
		out = append(out, newGauge("Velocità Risposta (s)", float64(speed), 60, 0.33, 0.50, true))
	}
	if abandonment > 0 {
		out = append(out, newGauge("Tasso Abbandono", abandonment, 100, 0.15, 0.25, true))
	}
	return out
}

func newGauge(title string, value, limit, good, warning float64, lowerIsBetter bool) Gauge {
	g := Gauge{
		Title:            title,
		Value:            value,
		Max:              limit,
		ThresholdGood:    good,
		ThresholdWarning: warning,
		LowerIsBetter:    lowerIsBetter,
	}
	frac := value / limit
	switch {
	case lowerIsBetter && frac <= good, !lowerIsBetter && frac >= good:
		g.Status = StatusGood
	case lowerIsBetter && frac <= warning, !lowerIsBetter && frac >= warning:
		g.Status = StatusWarning
	default:
		g.Status = StatusDanger
	}
	return g
}

// callPie splits calls into answered, unanswered and redirected slices.
// A single non-empty slice is not worth a pie.
func callPie(summary types.Summary) *Pie {
	var answered, unanswered, redirected int
	switch s := summary.(type) {
	case *types.IVRSummary:
		answered, unanswered = s.ConnectedCalls, s.AbandonedCalls
	case *types.ACDSummary:
		answered, unanswered, redirected = s.AnsweredCalls, s.UnansweredCalls, s.TotalRedirected
	case *types.HuntGroupSummary:
		answered, unanswered = s.AnsweredByMembers, s.UnansweredByMembers
	case *types.RuleBasedSummary:
		answered, unanswered = s.Connected, s.NotConnected
	case *types.UserSummary:
		answered, unanswered, redirected = s.IncomingAnswered, s.IncomingUnanswered, s.IncomingRedirected
	}

	p := &Pie{Title: "Distribuzione Chiamate"}
	for _, slice := range []struct {
		label string
		n     int
	}{
		{"Risposte", answered},
		{"Non Risposte", unanswered},
		{"Reindirizzate", redirected},
	} {
		if slice.n > 0 {
			p.Labels = append(p.Labels, slice.label)
			p.Values = append(p.Values, slice.n)
		}
	}
	if len(p.Labels) < 2 {
		return nil
	}
	return p
}

func anyPositive(vs []float64) bool {
	for _, v := range vs {
		if v > 0 {
			return true
		}
	}
	return false
}
