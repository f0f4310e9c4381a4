package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pbx-insights-go/internal/types"
)

func withTransfers(m map[string]int) types.PeriodRecord {
	return types.PeriodRecord{Transfers: m}
}

func TestTransfersDistribution(t *testing.T) {
	res := Transfers([]types.PeriodRecord{
		withTransfers(map[string]int{"X": 10}),
		withTransfers(map[string]int{"X": 20, "Y": 30}),
		withTransfers(nil),
		withTransfers(map[string]int{"Y": 40}),
	}, nil)

	assert.Equal(t, map[string]int{"X": 30, "Y": 70}, res.Destinations)
	assert.Equal(t, map[string]float64{"X": 30.0, "Y": 70.0}, res.Distribution)
	require.NotNil(t, res.MostPopularDestination)
	assert.Equal(t, types.Destination{Name: "Y", Count: 70}, *res.MostPopularDestination)
	assert.Equal(t, 100, res.TotalTransfers)
}

func TestTransfersTieGoesToFirstSeen(t *testing.T) {
	res := Transfers([]types.PeriodRecord{
		withTransfers(map[string]int{"Sales": 5}),
		withTransfers(map[string]int{"Billing": 5}),
	}, nil)
	assert.Equal(t, "Sales", res.MostPopularDestination.Name)
}

func TestTransfersFallBackToTotal(t *testing.T) {
	total := withTransfers(map[string]int{"Desk": 3})
	res := Transfers([]types.PeriodRecord{withTransfers(nil)}, &total)
	assert.Equal(t, map[string]int{"Desk": 3}, res.Destinations)
	assert.Equal(t, 100.0, res.Distribution["Desk"])
}

func TestTransfersEmpty(t *testing.T) {
	res := Transfers(nil, nil)
	assert.Empty(t, res.Destinations)
	assert.Empty(t, res.Distribution)
	assert.Nil(t, res.MostPopularDestination)
	assert.Zero(t, res.TotalTransfers)
}

func TestDistributionRounding(t *testing.T) {
	d := Distribution(map[string]int{"a": 1, "b": 1, "c": 1})
	assert.Equal(t, 33.3, d["a"])
	assert.Empty(t, Distribution(map[string]int{"a": 0}))
}

func TestMembersTopFive(t *testing.T) {
	rows := []types.PeriodRecord{
		{Members: map[string]int{"a": 1, "b": 9, "c": 4}},
		{Members: map[string]int{"d": 7, "e": 4, "f": 2, "a": 1}},
	}
	res := Members(rows, nil)

	assert.Equal(t, 2, res.AnsweredByMembers["a"])
	require.Len(t, res.TopMembers, 5)
	assert.Equal(t, []types.Destination{
		{Name: "b", Count: 9},
		{Name: "d", Count: 7},
		{Name: "c", Count: 4},
		{Name: "e", Count: 4},
		{Name: "a", Count: 2},
	}, res.TopMembers)
}
