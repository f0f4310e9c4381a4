package aggregator

import (
	"sort"

	"pbx-insights-go/internal/kpi"
	"pbx-insights-go/internal/types"
)

const topMembers = 5

// Tally sums label counts and remembers first-seen order.
type Tally struct {
	counts map[string]int
	order  []string
}

func NewTally() *Tally {
	return &Tally{counts: map[string]int{}}
}

func (t *Tally) Add(label string, n int) {
	if _, ok := t.counts[label]; !ok {
		t.order = append(t.order, label)
	}
	t.counts[label] += n
}

func (t *Tally) Merge(m map[string]int) {
	labels := make([]string, 0, len(m))
	for k := range m {
		labels = append(labels, k)
	}
	// labels within one record are taken in name order
	sort.Strings(labels)
	for _, k := range labels {
		t.Add(k, m[k])
	}
}

func (t *Tally) Counts() map[string]int {
	out := make(map[string]int, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}

func (t *Tally) Total() int {
	sum := 0
	for _, v := range t.counts {
		sum += v
	}
	return sum
}

// Max is the highest count, ties going to the label seen first.
func (t *Tally) Max() *types.Destination {
	var best *types.Destination
	for _, k := range t.order {
		if best == nil || t.counts[k] > best.Count {
			best = &types.Destination{Name: k, Count: t.counts[k]}
		}
	}
	return best
}

// Top returns up to n labels by descending count, ties in first-seen order.
func (t *Tally) Top(n int) []types.Destination {
	out := make([]types.Destination, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, types.Destination{Name: k, Count: t.counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Distribution is each label's share of the total, one decimal.
func Distribution(counts map[string]int) map[string]float64 {
	out := map[string]float64{}
	total := 0
	for _, v := range counts {
		total += v
	}
	if total == 0 {
		return out
	}
	for k, v := range counts {
		out[k] = kpi.Round1(float64(v) / float64(total) * 100)
	}
	return out
}

// Transfers merges the transfer maps of the breakdown rows. When no row
// carries transfers the aggregate row is used instead.
func Transfers(breakdown []types.PeriodRecord, total *types.PeriodRecord) types.TransferAnalysis {
	t := NewTally()
	for _, r := range breakdown {
		t.Merge(r.Transfers)
	}
	if len(t.order) == 0 && total != nil {
		t.Merge(total.Transfers)
	}
	counts := t.Counts()
	return types.TransferAnalysis{
		Destinations:           counts,
		Distribution:           Distribution(counts),
		MostPopularDestination: t.Max(),
		TotalTransfers:         t.Total(),
	}
}

// Members merges per-agent answer counts the same way as Transfers.
func Members(breakdown []types.PeriodRecord, total *types.PeriodRecord) *types.MemberAnalysis {
	t := NewTally()
	for _, r := range breakdown {
		t.Merge(r.Members)
	}
	if len(t.order) == 0 && total != nil {
		t.Merge(total.Members)
	}
	return &types.MemberAnalysis{
		AnsweredByMembers: t.Counts(),
		TopMembers:        t.Top(topMembers),
	}
}
