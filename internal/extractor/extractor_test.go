package extractor

import (
	"io"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbx-insights-go/internal/logger"
	"pbx-insights-go/internal/types"
)

func newExtractor() *Extractor {
	return New(logger.NewWithWriter(io.Discard))
}

func parse(t *testing.T, xml string) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	return doc
}

func schema(t *testing.T, rt types.ReportType) Schema {
	t.Helper()
	s, ok := SchemaFor(rt)
	require.True(t, ok)
	return s
}

const ivrDoc = `<report><ivr>
  <date__groupsobjects>
    <period>Total</period><type>total</type><name>Main IVR</name>
    <grouping_name>Main</grouping_name><object_identifier>900</object_identifier>
    <incoming_total_handled_by_ivr>30</incoming_total_handled_by_ivr>
    <incoming_connected>27</incoming_connected>
    <incoming_not_connected>3</incoming_not_connected>
    <incoming_average_call_duration_for_ivr>00:12</incoming_average_call_duration_for_ivr>
    <incoming_total_call_duration_for_ivr>360</incoming_total_call_duration_for_ivr>
  </date__groupsobjects>
  <date__groupsobjects>
    <period>01/03/2024</period><type>group</type><name>Main IVR</name>
    <incoming_total_handled_by_ivr>10</incoming_total_handled_by_ivr>
    <incoming_connected>9</incoming_connected>
    <transferred_to_specification>
      <dynamic_column><column_name>Connected to Sales</column_name><column_value>4</column_value></dynamic_column>
      <dynamic_column><column_name>Connected to Support</column_name><column_value>n/a</column_value></dynamic_column>
    </transferred_to_specification>
  </date__groupsobjects>
  <date__groupsobjects>
    <period>02/03/2024</period><type>object</type><name>Main IVR</name>
    <incoming_total_handled_by_ivr>20</incoming_total_handled_by_ivr>
    <incoming_connected>18</incoming_connected>
    <transferred_to_specification>
      <dynamic_column><column_name>Connected to Support</column_name><column_value>6</column_value></dynamic_column>
    </transferred_to_specification>
  </date__groupsobjects>
  <time__groupsobjects>
    <period>09:00 - 10:00</period><type>group</type>
    <incoming_total_handled_by_ivr>10</incoming_total_handled_by_ivr>
    <incoming_connected>4</incoming_connected>
    <incoming_not_connected>6</incoming_not_connected>
    <incoming_average_call_duration_for_ivr>10</incoming_average_call_duration_for_ivr>
  </time__groupsobjects>
  <time__groupsobjects>
    <period>Total</period><type>group</type>
    <incoming_total_handled_by_ivr>99</incoming_total_handled_by_ivr>
  </time__groupsobjects>
  <weekday__groupsobjects>
    <period>Saturday</period><type>group</type>
    <incoming_total_handled_by_ivr>5</incoming_total_handled_by_ivr>
  </weekday__groupsobjects>
  <weekday__groupsobjects>
    <period>Monday</period><type>object</type>
    <incoming_total_handled_by_ivr>25</incoming_total_handled_by_ivr>
  </weekday__groupsobjects>
  <weekday__groupsobjects>
    <type>group</type>
  </weekday__groupsobjects>
</ivr></report>`

func TestExtractIVR(t *testing.T) {
	ex := newExtractor().Extract(parse(t, ivrDoc), schema(t, types.ReportIvr))

	require.NotNil(t, ex.Total)
	assert.Equal(t, 30, ex.Total.Count("total_handled"))
	assert.Equal(t, 12.0, ex.Total.Metric("avg_duration"))
	assert.Equal(t, 90.0, ex.Total.Metric("connection_rate"))
	assert.Equal(t, "Main IVR", ex.Entity.Name)
	assert.Equal(t, "900", ex.Entity.ObjectIdentifier)

	require.Len(t, ex.Daily, 2)
	assert.Equal(t, types.RoleGroup, ex.Daily[0].Role)
	assert.Equal(t, types.RoleObject, ex.Daily[1].Role)
	assert.Equal(t, map[string]int{"Sales": 4}, ex.Daily[0].Transfers)
	assert.Equal(t, map[string]int{"Support": 6}, ex.Daily[1].Transfers)

	require.Len(t, ex.Hourly, 1)
	h := ex.Hourly[0]
	assert.Equal(t, 40.0, h.Metric("connection_rate"))
	assert.Equal(t, 60.0, h.Metric(types.MetricAbandonmentRate))
	assert.Equal(t, 10.0, h.Metric(types.MetricVolume))
	assert.Equal(t, 30.0+20+20, h.Metric(types.MetricEfficiencyScore))

	require.Len(t, ex.Weekday, 2)
	assert.Equal(t, []string{"Monday", "Saturday"}, ex.Catalog.UniqueWeekdays)
	assert.Equal(t, []string{"01/03/2024", "02/03/2024"}, ex.Catalog.UniquePeriods)
	assert.Equal(t, []string{"Main IVR"}, ex.Catalog.UniqueFullNames)
}

func TestExtractACDMembersAndOverflowSpelling(t *testing.T) {
	doc := parse(t, `<report>
	  <date__groupsobjects>
	    <period>Total</period><type>total</type>
	    <incoming_total>100</incoming_total>
	    <incoming_answered>80</incoming_answered>
	    <incoming_redirected_no_agents_owerflow>7</incoming_redirected_no_agents_owerflow>
	    <incoming_service_level>85.5</incoming_service_level>
	    <incoming_answered_average_queue_time>00:00:18</incoming_answered_average_queue_time>
	  </date__groupsobjects>
	  <date__groupsobjects>
	    <period>04/03/2024</period><type>group</type>
	    <incoming_total>100</incoming_total>
	    <incoming_answered_by_member_specification>
	      <dynamic_column><column_name> Anna </column_name><column_value>50</column_value></dynamic_column>
	      <dynamic_column><column_name>Bruno</column_name><column_value>30</column_value></dynamic_column>
	      <dynamic_column><column_name>Carla</column_name><column_value></column_value></dynamic_column>
	    </incoming_answered_by_member_specification>
	  </date__groupsobjects>
	</report>`)

	ex := newExtractor().Extract(doc, schema(t, types.ReportAcd))

	require.NotNil(t, ex.Total)
	assert.Equal(t, 7, ex.Total.Count("incoming_redirected_no_agents_overflow"))
	assert.Equal(t, 85.5, ex.Total.Metric("service_level"))
	assert.Equal(t, 18, ex.Total.Count("avg_speed_of_answer"))
	assert.Equal(t, 80.0, ex.Total.Metric("answer_rate"))
	assert.Equal(t, map[string]int{"Anna": 50, "Bruno": 30}, ex.Daily[0].Members)
}

func TestExtractUserPromotesObjectName(t *testing.T) {
	doc := parse(t, `<report>
	  <date__groupsobjects>
	    <period>Total</period><type>total</type><name>Total</name>
	    <incoming_total>12</incoming_total><outgoing_total>3</outgoing_total>
	  </date__groupsobjects>
	  <date__groupsobjects>
	    <period>05/03/2024</period><type>object</type><name>Total</name>
	    <incoming_total>12</incoming_total>
	  </date__groupsobjects>
	  <month__groupsobjects>
	    <period>March</period><type>object</type>
	    <name>Others/b.rossi - Bianca Rossi</name>
	    <object_identifier>204</object_identifier>
	  </month__groupsobjects>
	</report>`)

	ex := newExtractor().Extract(doc, schema(t, types.ReportUser))

	assert.Equal(t, "Others/b.rossi - Bianca Rossi", ex.Entity.Name)
	assert.Equal(t, "204", ex.Entity.ObjectIdentifier)
	require.NotNil(t, ex.Total)
	assert.Equal(t, "Others/b.rossi - Bianca Rossi", ex.Total.Name)
	assert.Equal(t, 15.0, ex.Total.Metric(types.MetricVolume))
	assert.Equal(t, []string{"Others/b.rossi - Bianca Rossi"}, ex.Catalog.UniqueFullNames)
}

func TestExtractDuplicateTotalsKeepsLast(t *testing.T) {
	doc := parse(t, `<report>
	  <hg><date__groupsobjects><period>Total</period><type>total</type><incoming_total>4</incoming_total></date__groupsobjects></hg>
	  <hg><date__groupsobjects><period>Total</period><type>total</type><incoming_total>9</incoming_total></date__groupsobjects></hg>
	</report>`)

	ex := newExtractor().Extract(doc, schema(t, types.ReportHuntGroup))
	require.NotNil(t, ex.Total)
	assert.Equal(t, 9, ex.Total.Count("incoming_total"))
}

func TestExtractSummaryFallsBackToTimeTotal(t *testing.T) {
	doc := parse(t, `<report>
	  <time__groupsobjects><period>Total</period><type>total</type>
	    <incoming_total_handled_by_rulebase>6</incoming_total_handled_by_rulebase>
	  </time__groupsobjects>
	</report>`)

	ex := newExtractor().Extract(doc, schema(t, types.ReportRuleBased))
	require.NotNil(t, ex.Total)
	assert.Equal(t, types.GroupingTime, ex.Total.Grouping)
	assert.Equal(t, 6, ex.Total.Count("handled_by_rulebase"))
}

func TestExtractEmptyDocument(t *testing.T) {
	ex := newExtractor().Extract(parse(t, `<report/>`), schema(t, types.ReportAcd))
	assert.Nil(t, ex.Total)
	assert.Empty(t, ex.Daily)
	assert.Empty(t, ex.Catalog.UniqueFullNames)
}

func TestStripPrefix(t *testing.T) {
	assert.Equal(t, "Sales", StripPrefix("  Connected to Sales ", "Connected to "))
	assert.Equal(t, "Queue 2", StripPrefix("Transferred to Queue 2", "Transferred to "))
	assert.Equal(t, "Sales", StripPrefix("Sales", "Connected to "))
	assert.Equal(t, "Anna", StripPrefix(" Anna", ""))
}

func TestSchemaForUnsupported(t *testing.T) {
	_, ok := SchemaFor(types.ReportTrunk)
	assert.False(t, ok)
	for _, rt := range []types.ReportType{types.ReportIvr, types.ReportAcd, types.ReportHuntGroup, types.ReportRuleBased, types.ReportUser} {
		s, ok := SchemaFor(rt)
		require.True(t, ok)
		assert.NotEmpty(t, s.Profile.RateName)
	}
}
