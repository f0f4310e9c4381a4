package kpi

import (
	"fmt"
	"math"
	"strings"
)

// Round1 rounds half away from zero to one decimal.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Percentage is 100*num/den rounded to one decimal, clamped to [0,100].
// A zero denominator yields 0.
func Percentage(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	p := Round1(num / den * 100)
	switch {
	case p < 0 || math.IsNaN(p):
		return 0
	case p > 100:
		return 100
	}
	return p
}

// FormatDuration renders seconds as "45s" or "2m 5s".
func FormatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// NormalizeHourLabel keeps the start of a "14:00 - 14:30" range and drops
// seconds, so labels read as "14:00".
func NormalizeHourLabel(label string) string {
	label = strings.TrimSpace(label)
	if i := strings.Index(label, " - "); i >= 0 {
		label = strings.TrimSpace(label[:i])
	}
	if parts := strings.Split(label, ":"); len(parts) == 3 {
		label = parts[0] + ":" + parts[1]
	}
	return label
}

// EfficiencyScore rates an hour from 0 to 100 on volume (30), success
// ratio (50) and average duration (20). Hours without traffic score 0.
func EfficiencyScore(total, connected int, avgDuration float64) float64 {
	if total <= 0 {
		return 0
	}
	volume := math.Min(float64(total)/10, 1) * 30
	connection := float64(connected) / float64(total) * 50
	if connection > 50 {
		connection = 50
	} else if connection < 0 {
		connection = 0
	}

	var duration float64
	switch {
	case avgDuration >= 8 && avgDuration <= 20:
		duration = 20
	case avgDuration < 8:
		duration = 15
	case avgDuration <= 30:
		duration = 10
	default:
		duration = 5
	}
	return Round1(volume + connection + duration)
}

// Mean is the arithmetic mean, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev is the population standard deviation.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := Mean(values)
	var acc float64
	for _, v := range values {
		acc += (v - m) * (v - m)
	}
	return math.Sqrt(acc / float64(len(values)))
}

// ClampRate bounds an exported percentage to [0,100].
func ClampRate(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
