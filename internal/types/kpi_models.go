package types

import "fmt"

// Summary is the aggregate block of a report. The concrete type follows
// the report type, so consumers switch on it instead of reading a free map.
type Summary interface {
	SummaryType() ReportType
}

// --------------------------------------------
// IVR
// --------------------------------------------
type IVRSummary struct {
	TotalCalls            int     `json:"total_calls"`
	ConnectedCalls        int     `json:"connected_calls"`
	AbandonedCalls        int     `json:"abandoned_calls"`
	ConnectionRate        float64 `json:"connection_rate"`
	AbandonmentRate       float64 `json:"abandonment_rate"`
	AvgCallDuration       int     `json:"avg_call_duration"`
	TotalCallDuration     string  `json:"total_call_duration"`
	TotalCallSeconds      int     `json:"total_call_seconds"`
	SystemFailures        int     `json:"system_failures"`
	OperationalEfficiency float64 `json:"operational_efficiency"`
}

func (*IVRSummary) SummaryType() ReportType { return ReportIvr }

// --------------------------------------------
// ACD queues
// --------------------------------------------
type ACDSummary struct {
	TotalIncomingCalls     int     `json:"total_incoming_calls"`
	AnsweredCalls          int     `json:"answered_calls"`
	UnansweredCalls        int     `json:"unanswered_calls"`
	AnswerRate             float64 `json:"answer_rate"`
	AbandonmentRate        float64 `json:"abandonment_rate"`
	ServiceLevel20s        float64 `json:"service_level_20s"`
	QueueClosedCalls       int     `json:"queue_closed_calls"`
	CallbacksRequested     int     `json:"callbacks_requested"`
	CallbacksResolved      int     `json:"callbacks_resolved"`
	TotalRedirected        int     `json:"total_redirected"`
	RedirectedNoAgents     int     `json:"redirected_no_agents"`
	RedirectedTimeout      int     `json:"redirected_timeout"`
	RedirectedNightmode    int     `json:"redirected_nightmode"`
	AvgSpeedOfAnswer       int     `json:"avg_speed_of_answer"`
	AvgCallDuration        int     `json:"avg_call_duration"`
	AvgQueueTimeUnanswered int     `json:"avg_queue_time_unanswered"`
}

func (*ACDSummary) SummaryType() ReportType { return ReportAcd }

// --------------------------------------------
// Hunt groups
// --------------------------------------------
type HuntGroupSummary struct {
	IncomingTotal       int     `json:"incoming_total"`
	AnsweredByMembers   int     `json:"answered_by_members"`
	UnansweredByMembers int     `json:"unanswered_by_members"`
	SentToOverflow      int     `json:"sent_to_overflow"`
	AnswerRate          float64 `json:"answer_rate"`
	OverflowRate        float64 `json:"overflow_rate"`
	AvgSpeedOfAnswer    int     `json:"avg_speed_of_answer"`
	AvgCallDuration     int     `json:"avg_call_duration"`
	TotalCallDuration   string  `json:"total_call_duration"`
}

func (*HuntGroupSummary) SummaryType() ReportType { return ReportHuntGroup }

// --------------------------------------------
// Rule based routing
// --------------------------------------------
type RuleBasedSummary struct {
	HandledByRulebase int     `json:"handled_by_rulebase"`
	Connected         int     `json:"connected"`
	NotConnected      int     `json:"not_connected"`
	ConnectionRate    float64 `json:"connection_rate"`
	Failures          int     `json:"failures"`
	TotalTransfers    int     `json:"total_transfers"`
}

func (*RuleBasedSummary) SummaryType() ReportType { return ReportRuleBased }

// --------------------------------------------
// Per-user activity
// --------------------------------------------
type UserSummary struct {
	IncomingTotal               int     `json:"incoming_total"`
	IncomingExternal            int     `json:"incoming_external"`
	IncomingInternal            int     `json:"incoming_internal"`
	IncomingFromQueues          int     `json:"incoming_from_queues"`
	IncomingAnswered            int     `json:"incoming_answered"`
	IncomingUnanswered          int     `json:"incoming_unanswered"`
	IncomingBusy                int     `json:"incoming_busy"`
	IncomingRedirected          int     `json:"incoming_redirected"`
	IncomingRedirectedVoicemail int     `json:"incoming_redirected_voicemail"`
	IncomingAvgSpeedOfAnswer    int     `json:"incoming_avg_speed_of_answer"`
	IncomingAvgDuration         int     `json:"incoming_avg_duration"`
	OutgoingTotal               int     `json:"outgoing_total"`
	OutgoingExternal            int     `json:"outgoing_external"`
	OutgoingInternal            int     `json:"outgoing_internal"`
	OutgoingAnswered            int     `json:"outgoing_answered"`
	OutgoingUnanswered          int     `json:"outgoing_unanswered"`
	OutgoingAvgDuration         int     `json:"outgoing_avg_duration"`
	TransferredOut              int     `json:"transferred_out"`
	TotalCalls                  int     `json:"total_calls"`
	TotalDuration               string  `json:"total_duration"`
	Failures                    int     `json:"failures"`
	AnswerRate                  float64 `json:"answer_rate"`
}

func (*UserSummary) SummaryType() ReportType { return ReportUser }

// UnsupportedSummary is returned for families the engine recognizes but
// does not analyze (trunk, ddi).
type UnsupportedSummary struct {
	Type    ReportType `json:"type"`
	Message string     `json:"message"`
}

func (s *UnsupportedSummary) SummaryType() ReportType { return s.Type }

func newSummary(t ReportType) (Summary, error) {
	switch t {
	case ReportIvr:
		return &IVRSummary{}, nil
	case ReportAcd:
		return &ACDSummary{}, nil
	case ReportHuntGroup:
		return &HuntGroupSummary{}, nil
	case ReportRuleBased:
		return &RuleBasedSummary{}, nil
	case ReportUser:
		return &UserSummary{}, nil
	case ReportTrunk, ReportDdi, ReportUnknown:
		return &UnsupportedSummary{Type: t}, nil
	}
	return nil, fmt.Errorf("unknown report type %q", t)
}

// --------------------------------------------
// Qualitative assessments
// --------------------------------------------

// Insights holds the rating ladders and highlights. Only the fields that
// apply to the report family are set.
type Insights struct {
	ServiceQuality         string             `json:"service_quality,omitempty"`
	MostActiveDay          *PeriodRecord      `json:"most_active_day,omitempty"`
	BusiestHours           []string           `json:"busiest_hours,omitempty"`
	EfficiencyTrend        string             `json:"efficiency_trend,omitempty"`
	VolatilityAssessment   string             `json:"volatility_assessment,omitempty"`
	WeekendPerformance     *WeekendComparison `json:"weekend_performance,omitempty"`
	QueueEfficiency        string             `json:"queue_efficiency,omitempty"`
	PeakPeriods            []string           `json:"peak_periods,omitempty"`
	DistributionEfficiency string             `json:"distribution_efficiency,omitempty"`
	RoutingEfficiency      string             `json:"routing_efficiency,omitempty"`
	CallActivity           string             `json:"call_activity,omitempty"`
	Efficiency             string             `json:"efficiency,omitempty"`
}

// RunRecord is the outcome of processing one account's document.
type RunRecord struct {
	ID          string           `json:"id"`
	AccountID   string           `json:"account_id"`
	AccountName string           `json:"account_name,omitempty"`
	ReportType  ReportType       `json:"report_type,omitempty"`
	Success     bool             `json:"success"`
	Error       string           `json:"error,omitempty"`
	Preview     string           `json:"preview,omitempty"`
	GeneratedAt int64            `json:"generated_at"`
	ExpiresAt   int64            `json:"expires_at"`
	DurationMs  int64            `json:"duration_ms"`
	Report      *CanonicalReport `json:"report,omitempty"`
}

// ManifestEntry is one row of a batch manifest.
type ManifestEntry struct {
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
	XMLPath     string `json:"xml_path"`
}
