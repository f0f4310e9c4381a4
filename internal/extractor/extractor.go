// Package extractor turns the grouping sections of a PBX export into typed
// period records, driven by a per-family Schema.
package extractor

import (
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"pbx-insights-go/internal/kpi"
	"pbx-insights-go/internal/logger"
	"pbx-insights-go/internal/types"
	"pbx-insights-go/internal/xmlfield"
)

// Extraction is everything read from one document.
type Extraction struct {
	Schema Schema
	// Total is the aggregate row the summary is computed from, nil when
	// the document has none.
	Total   *types.PeriodRecord
	Totals  map[types.GroupingKind]types.PeriodRecord
	Daily   []types.PeriodRecord
	Hourly  []types.PeriodRecord
	Weekday []types.PeriodRecord
	Entity  types.EntityRef
	Catalog types.EntityCatalog
}

type Extractor struct {
	log *logger.Logger
}

func New(log *logger.Logger) *Extractor {
	return &Extractor{log: log.Component("extractor")}
}

// Extract walks every grouping section named by the schema. Multiple
// entities of the same family contribute rows to the same lists.
func (x *Extractor) Extract(doc *etree.Document, s Schema) *Extraction {
	out := &Extraction{
		Schema: s,
		Totals: map[types.GroupingKind]types.PeriodRecord{},
	}

	for _, kind := range s.Groupings {
		for _, el := range doc.FindElements("//" + kind.ElementName()) {
			rec, ok := readRecord(el, kind, s)
			if !ok {
				continue
			}
			if rec.Role == types.RoleTotal {
				if _, dup := out.Totals[kind]; dup {
					x.log.WithField("grouping", kind).Warn("multiple total rows, keeping the last one")
				}
				out.Totals[kind] = rec
				continue
			}
			if rec.Period == types.TotalLabel {
				continue
			}
			switch kind {
			case types.GroupingDate:
				out.Daily = append(out.Daily, rec)
			case types.GroupingTime:
				out.Hourly = append(out.Hourly, rec)
			case types.GroupingWeekday:
				out.Weekday = append(out.Weekday, rec)
			}
		}
	}

	for _, kind := range []types.GroupingKind{types.GroupingDate, types.GroupingTime, types.GroupingWeekday} {
		if t, ok := out.Totals[kind]; ok {
			out.Total = &t
			out.Entity = types.EntityRef{
				Name:             t.Name,
				GroupingName:     t.GroupingName,
				ObjectIdentifier: t.ObjectIdentifier,
				GroupNames:       t.GroupNames,
			}
			break
		}
	}

	if s.PromoteObjectName {
		promoteObjectName(doc, out)
	}
	out.Catalog = buildCatalog(out)

	x.log.WithFields(logrus.Fields{
		"report_type": s.Type,
		"daily":       len(out.Daily),
		"hourly":      len(out.Hourly),
		"weekday":     len(out.Weekday),
		"has_total":   out.Total != nil,
	}).Debug("records extracted")
	return out
}

func readRecord(el *etree.Element, kind types.GroupingKind, s Schema) (types.PeriodRecord, bool) {
	if !xmlfield.Has(el, "period") || !xmlfield.Has(el, "type") {
		return types.PeriodRecord{}, false
	}
	role, ok := types.ParseRole(xmlfield.Text(el, "type"))
	if !ok {
		return types.PeriodRecord{}, false
	}

	rec := types.PeriodRecord{
		Period:           xmlfield.Text(el, "period"),
		Role:             role,
		Grouping:         kind,
		Name:             xmlfield.Text(el, "name"),
		GroupingName:     xmlfield.Text(el, "grouping_name"),
		ObjectIdentifier: xmlfield.Text(el, "object_identifier"),
		GroupNames:       xmlfield.Text(el, "group_names"),
		Depth:            xmlfield.Int(el, "depth_in_hierarchy"),
		Metrics:          make(map[string]float64, len(s.Fields)+4),
	}
	for _, fld := range s.Fields {
		rec.Metrics[fld.Name] = readField(el, fld)
	}
	if s.Transfers != nil {
		rec.Transfers = dynamicColumns(el, *s.Transfers)
	}
	if s.Members != nil {
		rec.Members = dynamicColumns(el, *s.Members)
	}
	derive(&rec, s.Profile)
	return rec, true
}

func readField(el *etree.Element, fld Field) float64 {
	for _, tag := range fld.Tags {
		if !xmlfield.Has(el, tag) {
			continue
		}
		switch fld.Kind {
		case KindFloat:
			return xmlfield.Float(el, tag)
		case KindDuration:
			return float64(xmlfield.DurationSeconds(el, tag))
		default:
			return float64(xmlfield.Int(el, tag))
		}
	}
	return 0
}

// derive adds volume, success rate, abandonment rate and, for families
// ranked by it, the efficiency score.
func derive(rec *types.PeriodRecord, p Profile) {
	var volume float64
	for _, name := range p.Volume {
		volume += rec.Metrics[name]
	}
	rec.Metrics[types.MetricVolume] = volume

	base := rec.Metrics[p.Base]
	rec.Metrics[p.RateName] = kpi.Percentage(rec.Metrics[p.Success], base)
	rec.Metrics[types.MetricAbandonmentRate] = kpi.Percentage(rec.Metrics[p.Failure], base)
	if p.RankByEfficiency {
		rec.Metrics[types.MetricEfficiencyScore] = kpi.EfficiencyScore(
			int(base), int(rec.Metrics[p.Success]), rec.Metrics[p.AvgDuration])
	}
}

// dynamicColumns reads label/count pairs. Labels lose the configured prefix;
// entries whose value is not an integer are skipped.
func dynamicColumns(el *etree.Element, spec DynamicSpec) map[string]int {
	block := el.SelectElement(spec.Tag)
	if block == nil {
		return nil
	}
	out := map[string]int{}
	for _, col := range block.SelectElements("dynamic_column") {
		if !xmlfield.Has(col, "column_name") {
			continue
		}
		n, ok := xmlfield.ParseInt(xmlfield.Text(col, "column_value"))
		if !ok {
			continue
		}
		label := StripPrefix(xmlfield.Text(col, "column_name"), spec.Prefix)
		out[label] += n
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// StripPrefix removes a known label prefix such as "Connected to ".
func StripPrefix(label, prefix string) string {
	label = strings.TrimSpace(label)
	if prefix != "" {
		label = strings.TrimPrefix(label, prefix)
	}
	return label
}

// promoteObjectName replaces an anonymous aggregate name with the first
// named object row, since user exports label the total row "Total".
func promoteObjectName(doc *etree.Document, out *Extraction) {
	kinds := []types.GroupingKind{types.GroupingDate, types.GroupingMonth, types.GroupingPeriod, types.GroupingQuarter}
	for _, kind := range kinds {
		for _, el := range doc.FindElements("//" + kind.ElementName()) {
			if xmlfield.Text(el, "type") != string(types.RoleObject) {
				continue
			}
			name := xmlfield.Text(el, "name")
			if name == "" || name == types.TotalLabel {
				continue
			}
			out.Entity.Name = name
			if id := xmlfield.Text(el, "object_identifier"); id != "" {
				out.Entity.ObjectIdentifier = id
			}
			if out.Total != nil {
				out.Total.Name = out.Entity.Name
				out.Total.ObjectIdentifier = out.Entity.ObjectIdentifier
			}
			return
		}
	}
}

func buildCatalog(out *Extraction) types.EntityCatalog {
	names, groupings, ids, groups := set{}, set{}, set{}, set{}
	periods, weekdays := set{}, set{}

	add := func(r types.PeriodRecord) {
		names.add(r.Name)
		groupings.add(r.GroupingName)
		ids.add(r.ObjectIdentifier)
		groups.add(r.GroupNames)
	}
	for _, r := range out.Daily {
		add(r)
		periods.add(r.Period)
	}
	for _, r := range out.Hourly {
		add(r)
	}
	for _, r := range out.Weekday {
		add(r)
		weekdays.add(r.Period)
	}
	if out.Schema.PromoteObjectName {
		names.add(out.Entity.Name)
	}

	return types.EntityCatalog{
		UniqueFullNames:     names.sorted(),
		UniqueGroupingNames: groupings.sorted(),
		UniqueIdentifiers:   ids.sorted(),
		UniqueGroupNames:    groups.sorted(),
		UniquePeriods:       periods.sorted(),
		UniqueWeekdays:      weekdays.sorted(),
	}
}

type set map[string]struct{}

func (s set) add(v string) {
	v = strings.TrimSpace(v)
	if v == "" || v == types.TotalLabel {
		return
	}
	s[v] = struct{}{}
}

func (s set) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
