package pipeline

import (
	"pbx-insights-go/internal/extractor"
	"pbx-insights-go/internal/kpi"
	"pbx-insights-go/internal/types"
)

func buildSummary(ex *extractor.Extraction, hours types.HourlyAnalysis, transfers types.TransferAnalysis) types.Summary {
	var t types.PeriodRecord
	if ex.Total != nil {
		t = *ex.Total
	}

	switch ex.Schema.Type {
	case types.ReportIvr:
		total := t.Metric("total_handled")
		return &types.IVRSummary{
			TotalCalls:            int(total),
			ConnectedCalls:        t.Count("connected"),
			AbandonedCalls:        t.Count("not_connected"),
			ConnectionRate:        kpi.Percentage(t.Metric("connected"), total),
			AbandonmentRate:       kpi.Percentage(t.Metric("not_connected"), total),
			AvgCallDuration:       t.Count("avg_duration"),
			TotalCallDuration:     kpi.FormatDuration(t.Count("total_duration")),
			TotalCallSeconds:      t.Count("total_duration"),
			SystemFailures:        t.Count("failures"),
			OperationalEfficiency: hours.AverageEfficiency,
		}

	case types.ReportAcd:
		total := t.Metric("incoming_total")
		return &types.ACDSummary{
			TotalIncomingCalls:     int(total),
			AnsweredCalls:          t.Count("incoming_answered"),
			UnansweredCalls:        t.Count("incoming_unanswered"),
			AnswerRate:             kpi.Percentage(t.Metric("incoming_answered"), total),
			AbandonmentRate:        kpi.Percentage(t.Metric("incoming_unanswered"), total),
			ServiceLevel20s:        kpi.ClampRate(t.Metric("service_level")),
			QueueClosedCalls:       t.Count("incoming_queue_closed"),
			CallbacksRequested:     t.Count("incoming_callbacks_requested"),
			CallbacksResolved:      t.Count("outgoing_callbacks_resolved"),
			TotalRedirected:        t.Count("incoming_total_redirected"),
			RedirectedNoAgents:     t.Count("incoming_redirected_no_agents_overflow"),
			RedirectedTimeout:      t.Count("incoming_redirected_queue_timeout"),
			RedirectedNightmode:    t.Count("incoming_redirected_nightmode"),
			AvgSpeedOfAnswer:       t.Count("avg_speed_of_answer"),
			AvgCallDuration:        t.Count("avg_call_duration"),
			AvgQueueTimeUnanswered: t.Count("avg_queue_time_unanswered"),
		}

	case types.ReportHuntGroup:
		total := t.Metric("incoming_total")
		return &types.HuntGroupSummary{
			IncomingTotal:       int(total),
			AnsweredByMembers:   t.Count("answered_by_members"),
			UnansweredByMembers: t.Count("unanswered_by_members"),
			SentToOverflow:      t.Count("sent_to_overflow"),
			AnswerRate:          kpi.Percentage(t.Metric("answered_by_members"), total),
			OverflowRate:        kpi.Percentage(t.Metric("sent_to_overflow"), total),
			AvgSpeedOfAnswer:    t.Count("avg_speed_of_answer"),
			AvgCallDuration:     t.Count("avg_call_duration"),
			TotalCallDuration:   kpi.FormatDuration(t.Count("total_call_duration")),
		}

	case types.ReportRuleBased:
		handled := t.Metric("handled_by_rulebase")
		return &types.RuleBasedSummary{
			HandledByRulebase: int(handled),
			Connected:         t.Count("connected"),
			NotConnected:      t.Count("not_connected"),
			ConnectionRate:    kpi.Percentage(t.Metric("connected"), handled),
			Failures:          t.Count("failures"),
			TotalTransfers:    transfers.TotalTransfers,
		}

	case types.ReportUser:
		incoming := t.Metric("incoming_total")
		return &types.UserSummary{
			IncomingTotal:               int(incoming),
			IncomingExternal:            t.Count("incoming_external"),
			IncomingInternal:            t.Count("incoming_internal"),
			IncomingFromQueues:          t.Count("incoming_from_queues"),
			IncomingAnswered:            t.Count("incoming_answered"),
			IncomingUnanswered:          t.Count("incoming_unanswered"),
			IncomingBusy:                t.Count("incoming_busy"),
			IncomingRedirected:          t.Count("incoming_total_redirected"),
			IncomingRedirectedVoicemail: t.Count("incoming_redirected_voicemail"),
			IncomingAvgSpeedOfAnswer:    t.Count("incoming_avg_speed_of_answer"),
			IncomingAvgDuration:         t.Count("incoming_avg_duration"),
			OutgoingTotal:               t.Count("outgoing_total"),
			OutgoingExternal:            t.Count("outgoing_external"),
			OutgoingInternal:            t.Count("outgoing_internal"),
			OutgoingAnswered:            t.Count("outgoing_answered"),
			OutgoingUnanswered:          t.Count("outgoing_unanswered"),
			OutgoingAvgDuration:         t.Count("outgoing_avg_duration"),
			TransferredOut:              t.Count("transferred_out"),
			TotalCalls:                  t.Count("total_calls"),
			TotalDuration:               kpi.FormatDuration(t.Count("total_calls_duration")),
			Failures:                    t.Count("failures"),
			AnswerRate:                  kpi.Percentage(t.Metric("incoming_answered"), incoming),
		}
	}
	return unsupported(ex.Schema.Type)
}

func unsupported(t types.ReportType) *types.UnsupportedSummary {
	return &types.UnsupportedSummary{
		Type:    t,
		Message: t.DisplayName() + " analysis not implemented yet",
	}
}
