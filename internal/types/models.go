package types

import (
	"encoding/json"
	"fmt"
)

// ReportType identifies the family of a PBX export.
type ReportType string

const (
	ReportAcd       ReportType = "acd"
	ReportHuntGroup ReportType = "huntgroup"
	ReportRuleBased ReportType = "rulebased"
	ReportIvr       ReportType = "ivr"
	ReportUser      ReportType = "user"
	ReportTrunk     ReportType = "trunk"
	ReportDdi       ReportType = "ddi"
	ReportUnknown   ReportType = "unknown"
)

// DisplayName is the upper-case label used in subjects and tables.
func (t ReportType) DisplayName() string {
	switch t {
	case ReportAcd:
		return "ACD"
	case ReportHuntGroup:
		return "HUNTGROUP"
	case ReportRuleBased:
		return "RULEBASED"
	case ReportIvr:
		return "IVR"
	case ReportUser:
		return "USER"
	case ReportTrunk:
		return "TRUNK"
	case ReportDdi:
		return "DDI"
	default:
		return "UNKNOWN"
	}
}

// GroupingKind is the section of the export a record came from.
type GroupingKind string

const (
	GroupingDate    GroupingKind = "date"
	GroupingTime    GroupingKind = "time"
	GroupingWeekday GroupingKind = "weekday"
	GroupingMonth   GroupingKind = "month"
	GroupingPeriod  GroupingKind = "period"
	GroupingQuarter GroupingKind = "quarter"
)

// ElementName is the XML tag holding rows of this grouping.
func (g GroupingKind) ElementName() string {
	return string(g) + "__groupsobjects"
}

// PeriodRole tells aggregate rows apart from breakdown rows.
type PeriodRole string

const (
	RoleTotal  PeriodRole = "total"
	RoleGroup  PeriodRole = "group"
	RoleObject PeriodRole = "object"
)

// ParseRole maps the <type> text of a grouping row.
func ParseRole(s string) (PeriodRole, bool) {
	switch PeriodRole(s) {
	case RoleTotal, RoleGroup, RoleObject:
		return PeriodRole(s), true
	}
	return "", false
}

// TotalLabel is the period/name value the PBX writes on aggregate rows.
const TotalLabel = "Total"

// PeriodRecord is one row of a grouping section.
type PeriodRecord struct {
	Period           string             `json:"period"`
	Role             PeriodRole         `json:"role"`
	Grouping         GroupingKind       `json:"grouping"`
	Name             string             `json:"name,omitempty"`
	GroupingName     string             `json:"grouping_name,omitempty"`
	ObjectIdentifier string             `json:"object_identifier,omitempty"`
	GroupNames       string             `json:"group_names,omitempty"`
	Depth            int                `json:"depth_in_hierarchy"`
	Metrics          map[string]float64 `json:"metrics"`
	Transfers        map[string]int     `json:"transfers,omitempty"`
	Members          map[string]int     `json:"members,omitempty"`
}

// Metric returns a numeric field, zero when absent.
func (r PeriodRecord) Metric(name string) float64 {
	return r.Metrics[name]
}

// Count returns a numeric field truncated to int.
func (r PeriodRecord) Count(name string) int {
	return int(r.Metrics[name])
}

// EntityRef identifies the entity an aggregate row belongs to.
type EntityRef struct {
	Name             string `json:"name"`
	GroupingName     string `json:"grouping_name"`
	ObjectIdentifier string `json:"object_identifier"`
	GroupNames       string `json:"group_names"`
}

// Classification records how the report type was chosen.
type Classification struct {
	Matched   bool   `json:"matched"`
	Defaulted bool   `json:"defaulted"`
	Indicator string `json:"indicator,omitempty"`
}

// HourlyAnalysis buckets the hourly breakdown.
type HourlyAnalysis struct {
	ActiveHours       int            `json:"active_hours"`
	AverageEfficiency float64        `json:"average_efficiency"`
	PeakHours         []PeriodRecord `json:"peak_hours"`
	CriticalHours     []PeriodRecord `json:"critical_hours"`
	DeadHours         []PeriodRecord `json:"dead_hours"`
	OptimalHours      []PeriodRecord `json:"optimal_hours"`
	LowRateHours      []PeriodRecord `json:"low_rate_hours"`
	DeadHoursCount    int            `json:"dead_hours_count"`
	OptimalHoursCount int            `json:"optimal_hours_count"`
}

// Destination is a label with its merged count.
type Destination struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TransferAnalysis merges dynamic transfer columns across periods.
type TransferAnalysis struct {
	Destinations           map[string]int     `json:"destinations"`
	Distribution           map[string]float64 `json:"distribution"`
	MostPopularDestination *Destination       `json:"most_popular_destination"`
	TotalTransfers         int                `json:"total_transfers"`
}

// MemberAnalysis merges per-agent answer counts of ACD queues.
type MemberAnalysis struct {
	AnsweredByMembers map[string]int `json:"answered_by_members"`
	TopMembers        []Destination  `json:"top_members"`
}

// WeekendComparison contrasts weekend and weekday volumes.
type WeekendComparison struct {
	WeekendAvg        float64       `json:"weekend_avg"`
	WeekdayAvg        float64       `json:"weekday_avg"`
	MostActiveWeekday *PeriodRecord `json:"most_active_weekday"`
}

// TemporalInsights are the day-level findings.
type TemporalInsights struct {
	DailyTrend       string             `json:"daily_trend,omitempty"`
	Volatility       string             `json:"volatility"`
	PeakDay          *PeriodRecord      `json:"peak_day,omitempty"`
	WeekendVsWeekday *WeekendComparison `json:"weekend_vs_weekday,omitempty"`
}

// EntityCatalog lists distinct entity metadata seen in the breakdowns.
type EntityCatalog struct {
	UniqueFullNames     []string `json:"unique_full_names"`
	UniqueGroupingNames []string `json:"unique_grouping_names"`
	UniqueIdentifiers   []string `json:"unique_identifiers"`
	UniqueGroupNames    []string `json:"unique_group_names"`
	UniquePeriods       []string `json:"unique_periods"`
	UniqueWeekdays      []string `json:"unique_weekdays"`
}

// CanonicalReport is the normalized result of one document.
type CanonicalReport struct {
	ReportType       ReportType       `json:"report_type"`
	Classification   Classification   `json:"classification"`
	PeriodRange      string           `json:"period_range"`
	Entity           EntityRef        `json:"entity"`
	Summary          Summary          `json:"summary"`
	Daily            []PeriodRecord   `json:"daily"`
	Hourly           []PeriodRecord   `json:"hourly"`
	Weekday          []PeriodRecord   `json:"weekday"`
	HourlyAnalysis   HourlyAnalysis   `json:"hourly_analysis"`
	TransferAnalysis TransferAnalysis `json:"transfer_analysis"`
	MemberAnalysis   *MemberAnalysis  `json:"member_analysis,omitempty"`
	TemporalInsights TemporalInsights `json:"temporal_insights"`
	Insights         Insights         `json:"insights"`
	EntityCatalog    EntityCatalog    `json:"entity_catalog"`
}

// UnmarshalJSON restores the concrete Summary variant from report_type.
func (r *CanonicalReport) UnmarshalJSON(data []byte) error {
	type plain CanonicalReport
	aux := struct {
		*plain
		Summary json.RawMessage `json:"summary"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Summary) == 0 || string(aux.Summary) == "null" {
		r.Summary = nil
		return nil
	}
	s, err := newSummary(r.ReportType)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(aux.Summary, s); err != nil {
		return fmt.Errorf("decode %s summary: %w", r.ReportType, err)
	}
	r.Summary = s
	return nil
}

// Derived metric keys written on every extracted record.
const (
	MetricVolume          = "volume"
	MetricAbandonmentRate = "abandonment_rate"
	MetricEfficiencyScore = "efficiency_score"
)
