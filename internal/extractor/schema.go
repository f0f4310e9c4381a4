package extractor

import "pbx-insights-go/internal/types"

// Kind is how a field's text is converted.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindDuration
)

// Field maps a canonical metric name to the XML tags that may carry it.
// The first tag present on a row wins.
type Field struct {
	Name string
	Tags []string
	Kind Kind
}

// DynamicSpec locates a *_specification/dynamic_column block.
type DynamicSpec struct {
	Tag    string
	Prefix string
}

// Profile names the fields that drive rates, buckets and ranking.
type Profile struct {
	// Volume fields are summed into the record's volume.
	Volume []string
	// Base is the denominator of the success and abandonment rates.
	Base        string
	Success     string
	Failure     string
	AvgDuration string
	// RateName is the key the success rate is stored under.
	RateName         string
	RankByEfficiency bool
}

// Schema describes one report family.
type Schema struct {
	Type              types.ReportType
	Fields            []Field
	Groupings         []types.GroupingKind
	Transfers         *DynamicSpec
	Members           *DynamicSpec
	Profile           Profile
	PromoteObjectName bool
}

var (
	dateTime        = []types.GroupingKind{types.GroupingDate, types.GroupingTime}
	dateTimeWeekday = []types.GroupingKind{types.GroupingDate, types.GroupingTime, types.GroupingWeekday}
)

func f(name string, kind Kind, tags ...string) Field {
	if len(tags) == 0 {
		tags = []string{name}
	}
	return Field{Name: name, Tags: tags, Kind: kind}
}

var schemas = map[types.ReportType]Schema{
	types.ReportIvr: {
		Type: types.ReportIvr,
		Fields: []Field{
			f("total_handled", KindInt, "incoming_total_handled_by_ivr"),
			f("connected", KindInt, "incoming_connected"),
			f("not_connected", KindInt, "incoming_not_connected"),
			f("avg_duration", KindDuration, "incoming_average_call_duration_for_ivr"),
			f("total_duration", KindDuration, "incoming_total_call_duration_for_ivr"),
			f("failures", KindInt, "incoming_terminated_because_of_failure"),
		},
		Groupings: dateTimeWeekday,
		Transfers: &DynamicSpec{Tag: "transferred_to_specification", Prefix: "Connected to "},
		Profile: Profile{
			Volume:           []string{"total_handled"},
			Base:             "total_handled",
			Success:          "connected",
			Failure:          "not_connected",
			AvgDuration:      "avg_duration",
			RateName:         "connection_rate",
			RankByEfficiency: true,
		},
	},
	types.ReportAcd: {
		Type: types.ReportAcd,
		Fields: []Field{
			f("incoming_total", KindInt),
			f("incoming_answered", KindInt),
			f("incoming_unanswered", KindInt),
			f("incoming_queue_closed", KindInt),
			f("incoming_callbacks_requested", KindInt),
			f("outgoing_callbacks_resolved", KindInt),
			f("incoming_total_redirected", KindInt),
			f("incoming_redirected_no_agents_overflow", KindInt,
				"incoming_redirected_no_agents_owerflow", "incoming_redirected_no_agents_overflow"),
			f("incoming_redirected_queue_timeout", KindInt),
			f("incoming_redirected_nightmode", KindInt),
			f("avg_speed_of_answer", KindDuration, "incoming_answered_average_queue_time"),
			f("avg_call_duration", KindDuration, "incoming_answered_average_call_duration"),
			f("total_call_duration", KindDuration, "incoming_answered_total_call_duration"),
			f("avg_queue_time_unanswered", KindDuration, "incoming_unanswered_average_queue_time"),
			f("percent_answered", KindFloat, "incoming_percent_answered"),
			f("percent_unanswered", KindFloat, "incoming_percent_unanswered"),
			f("percent_redirected", KindFloat, "incoming_percent_redirected"),
			f("service_level", KindFloat, "incoming_service_level"),
			f("answered_within_service_time", KindInt, "incoming_answered_within_service_time"),
			f("unanswered_within_service_time", KindInt, "incoming_unanswered_within_service_time"),
		},
		Groupings: dateTime,
		Members:   &DynamicSpec{Tag: "incoming_answered_by_member_specification"},
		Profile: Profile{
			Volume:           []string{"incoming_total"},
			Base:             "incoming_total",
			Success:          "incoming_answered",
			Failure:          "incoming_unanswered",
			AvgDuration:      "avg_call_duration",
			RateName:         "answer_rate",
			RankByEfficiency: true,
		},
	},
	types.ReportHuntGroup: {
		Type: types.ReportHuntGroup,
		Fields: []Field{
			f("incoming_total", KindInt),
			f("answered_by_members", KindInt, "incoming_answered_by_huntgroup_members"),
			f("unanswered_by_members", KindInt, "incoming_unanswered_by_huntgroup_members"),
			f("sent_to_overflow", KindInt, "incoming_sent_to_overflow_number"),
			f("avg_speed_of_answer", KindDuration, "incoming_answered_by_huntgroup_members_average_speed_of_answer"),
			f("avg_call_duration", KindDuration, "incoming_answered_by_huntgroup_members_average_call_duration"),
			f("total_call_duration", KindDuration, "incoming_answered_by_huntgroup_members_total_call_duration"),
		},
		Groupings: dateTime,
		Profile: Profile{
			Volume:      []string{"incoming_total"},
			Base:        "incoming_total",
			Success:     "answered_by_members",
			Failure:     "unanswered_by_members",
			AvgDuration: "avg_call_duration",
			RateName:    "answer_rate",
		},
	},
	types.ReportRuleBased: {
		Type: types.ReportRuleBased,
		Fields: []Field{
			f("handled_by_rulebase", KindInt, "incoming_total_handled_by_rulebase"),
			f("connected", KindInt, "incoming_connected"),
			f("not_connected", KindInt, "incoming_not_connected"),
			f("failures", KindInt, "incoming_failure"),
		},
		Groupings: dateTime,
		Transfers: &DynamicSpec{Tag: "incoming_transferred_to_specification", Prefix: "Transferred to "},
		Profile: Profile{
			Volume:   []string{"handled_by_rulebase"},
			Base:     "handled_by_rulebase",
			Success:  "connected",
			Failure:  "not_connected",
			RateName: "connection_rate",
		},
	},
	types.ReportUser: {
		Type: types.ReportUser,
		Fields: []Field{
			f("incoming_total", KindInt),
			f("incoming_external", KindInt, "incoming_from_external"),
			f("incoming_internal", KindInt, "incoming_from_internal"),
			f("incoming_from_queues", KindInt),
			f("incoming_answered", KindInt),
			f("incoming_unanswered", KindInt),
			f("incoming_busy", KindInt),
			f("incoming_total_redirected", KindInt),
			f("incoming_redirected_voicemail", KindInt, "incoming_redirected_to_voicemail"),
			f("incoming_redirected_other", KindInt, "incoming_redirected_to_other"),
			f("incoming_avg_speed_of_answer", KindDuration, "incoming_answered_average_speed_of_answer"),
			f("incoming_avg_duration", KindDuration, "incoming_answered_average_duration"),
			f("incoming_total_duration", KindDuration),
			f("outgoing_total", KindInt),
			f("outgoing_external", KindInt, "outgoing_to_external"),
			f("outgoing_internal", KindInt, "outgoing_to_internal"),
			f("outgoing_answered", KindInt),
			f("outgoing_unanswered", KindInt),
			f("outgoing_busy", KindInt),
			f("outgoing_avg_duration", KindDuration, "outgoing_answered_average_duration"),
			f("outgoing_total_duration", KindDuration, "outgoing_answered_total_duration"),
			f("transferred_out", KindInt, "outgoing_transferred_out"),
			f("total_calls", KindInt),
			f("total_calls_duration", KindDuration),
			f("failures", KindInt),
			f("percent_answered", KindFloat, "incoming_percent_answered"),
		},
		Groupings: dateTime,
		Profile: Profile{
			Volume:      []string{"incoming_total", "outgoing_total"},
			Base:        "incoming_total",
			Success:     "incoming_answered",
			Failure:     "incoming_unanswered",
			AvgDuration: "incoming_avg_duration",
			RateName:    "answer_rate",
		},
		PromoteObjectName: true,
	},
}

// SchemaFor returns the extraction schema of an analyzable report type.
func SchemaFor(t types.ReportType) (Schema, bool) {
	s, ok := schemas[t]
	return s, ok
}
