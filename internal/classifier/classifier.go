// Package classifier decides which report family an XML export belongs to
// by looking for indicator tags anywhere in the tree.
package classifier

import (
	"github.com/beevik/etree"

	"pbx-insights-go/internal/types"
)

// Result is the chosen report type and how it was reached.
type Result struct {
	Type types.ReportType
	types.Classification
}

type rule struct {
	reportType types.ReportType
	tags       []string
}

// rules are checked in order; the first rule with any tag present wins.
var rules = []rule{
	{types.ReportAcd, []string{
		"incoming_queue_closed",
		"incoming_service_level",
		"incoming_answered_within_service_time",
		"incoming_unanswered_within_service_time",
		"incoming_callbacks_requested",
		"outgoing_callbacks_resolved",
		"incoming_answered_by_member_specification",
		"incoming_answered_average_queue_time",
		"incoming_unanswered_average_queue_time",
		"incoming_redirected_no_agents_owerflow",
		"incoming_redirected_no_agents_overflow",
		"incoming_redirected_queue_timeout",
		"incoming_redirected_nightmode",
	}},
	{types.ReportHuntGroup, []string{
		"incoming_answered_by_huntgroup_members",
		"incoming_unanswered_by_huntgroup_members",
		"incoming_sent_to_overflow_number",
		"incoming_answered_by_huntgroup_members_average_speed_of_answer",
	}},
	{types.ReportRuleBased, []string{
		"incoming_total_handled_by_rulebase",
		"incoming_transferred_to_specification",
		"incoming_failure",
	}},
	{types.ReportIvr, []string{
		"incoming_total_handled_by_ivr",
		"incoming_average_call_duration_for_ivr",
		"incoming_total_call_duration_for_ivr",
		"incoming_terminated_because_of_failure",
	}},
	{types.ReportUser, []string{
		"incoming_from_external",
		"incoming_from_internal",
		"incoming_from_queues",
		"outgoing_to_external",
		"outgoing_to_internal",
		"outgoing_transferred_out",
		"total_calls",
		"total_calls_duration",
	}},
	{types.ReportTrunk, []string{"trunk", "sip_trunk"}},
	{types.ReportAcd, []string{"queue", "queue_stats"}},
	{types.ReportDdi, []string{"ddi", "direct_dial"}},
}

// Classify inspects every element of doc. It always returns a type:
// when nothing matches the result is Acd with Defaulted set.
func Classify(doc *etree.Document) Result {
	seen := tagSet(doc)

	for _, r := range rules {
		for _, tag := range r.tags {
			if seen[tag] {
				return Result{
					Type:           r.reportType,
					Classification: types.Classification{Matched: true, Indicator: tag},
				}
			}
		}
	}

	if (seen["incoming_total"] || seen["outgoing_total"]) &&
		seen["incoming_answered"] && seen["outgoing_answered"] {
		return Result{
			Type:           types.ReportUser,
			Classification: types.Classification{Matched: true, Indicator: "incoming_answered+outgoing_answered"},
		}
	}

	return Result{
		Type:           types.ReportAcd,
		Classification: types.Classification{Defaulted: true},
	}
}

func tagSet(doc *etree.Document) map[string]bool {
	seen := make(map[string]bool)
	if doc == nil {
		return seen
	}
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		seen[el.Tag] = true
		for _, c := range el.ChildElements() {
			walk(c)
		}
	}
	for _, el := range doc.ChildElements() {
		walk(el)
	}
	return seen
}
