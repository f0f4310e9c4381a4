package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceQuality(t *testing.T) {
	assert.Equal(t, Excellent, ServiceQuality(90, 12))
	assert.Equal(t, Good, ServiceQuality(82, 18))
	assert.Equal(t, Acceptable, ServiceQuality(72, 40))
	assert.Equal(t, NeedsImprovement, ServiceQuality(50, 0))
	assert.Equal(t, Good, ServiceQuality(95, 16))
}

func TestQueueEfficiency(t *testing.T) {
	assert.Equal(t, Excellent, QueueEfficiency(80, 20))
	assert.Equal(t, Good, QueueEfficiency(85, 25))
	assert.Equal(t, Acceptable, QueueEfficiency(60, 90))
	assert.Equal(t, NeedsImprovement, QueueEfficiency(59.9, 0))
}

func TestDistributionEfficiency(t *testing.T) {
	assert.Equal(t, Excellent, DistributionEfficiency(85, 10))
	assert.Equal(t, Good, DistributionEfficiency(90, 12))
	assert.Equal(t, Acceptable, DistributionEfficiency(70, 40))
	assert.Equal(t, NeedsImprovement, DistributionEfficiency(64, 0))
}

func TestRoutingEfficiency(t *testing.T) {
	assert.Equal(t, Excellent, RoutingEfficiency(95, 0))
	assert.Equal(t, Good, RoutingEfficiency(95, 2))
	assert.Equal(t, Acceptable, RoutingEfficiency(75, 9))
	assert.Equal(t, NeedsImprovement, RoutingEfficiency(10, 0))
}

func TestCallActivity(t *testing.T) {
	assert.Equal(t, ActivityHigh, CallActivity(60, 41))
	assert.Equal(t, ActivityModerate, CallActivity(50, 1))
	assert.Equal(t, ActivityLow, CallActivity(11, 0))
	assert.Equal(t, ActivityMinimal, CallActivity(5, 5))
}

func TestUserEfficiency(t *testing.T) {
	assert.Equal(t, Excellent, UserEfficiency(90, 180))
	assert.Equal(t, Good, UserEfficiency(92, 200))
	assert.Equal(t, Acceptable, UserEfficiency(70, 10))
	assert.Equal(t, NeedsImprovement, UserEfficiency(0, 0))
}
