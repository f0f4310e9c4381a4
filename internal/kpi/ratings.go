package kpi

// Rating labels shared by the assessment ladders.
const (
	Excellent        = "Eccellente"
	Good             = "Buona"
	Acceptable       = "Accettabile"
	NeedsImprovement = "Necessita miglioramenti"

	ActivityHigh     = "Alta attività"
	ActivityModerate = "Attività moderata"
	ActivityLow      = "Attività bassa"
	ActivityMinimal  = "Attività minima"
)

// ServiceQuality rates a connection/answer rate and an average duration
// or speed of answer in seconds.
func ServiceQuality(rate, avgSeconds float64) string {
	switch {
	case rate >= 90 && avgSeconds <= 15:
		return Excellent
	case rate >= 80 && avgSeconds <= 20:
		return Good
	case rate >= 70:
		return Acceptable
	default:
		return NeedsImprovement
	}
}

// QueueEfficiency rates an ACD queue on service level and speed of answer.
func QueueEfficiency(serviceLevel, avgSpeed float64) string {
	switch {
	case serviceLevel >= 80 && avgSpeed <= 20:
		return Excellent
	case serviceLevel >= 70 && avgSpeed <= 30:
		return Good
	case serviceLevel >= 60:
		return Acceptable
	default:
		return NeedsImprovement
	}
}

// DistributionEfficiency rates a hunt group on answer and overflow rate.
func DistributionEfficiency(answerRate, overflowRate float64) string {
	switch {
	case answerRate >= 85 && overflowRate <= 10:
		return Excellent
	case answerRate >= 75 && overflowRate <= 15:
		return Good
	case answerRate >= 65:
		return Acceptable
	default:
		return NeedsImprovement
	}
}

// RoutingEfficiency rates rule based routing on connection rate and failures.
func RoutingEfficiency(connectionRate float64, failures int) string {
	switch {
	case connectionRate >= 90 && failures == 0:
		return Excellent
	case connectionRate >= 80 && failures <= 2:
		return Good
	case connectionRate >= 70:
		return Acceptable
	default:
		return NeedsImprovement
	}
}

// CallActivity buckets a user's combined call volume.
func CallActivity(incoming, outgoing int) string {
	total := incoming + outgoing
	switch {
	case total > 100:
		return ActivityHigh
	case total > 50:
		return ActivityModerate
	case total > 10:
		return ActivityLow
	default:
		return ActivityMinimal
	}
}

// UserEfficiency rates a user's answer rate and average call duration.
func UserEfficiency(answerRate float64, avgDuration int) string {
	switch {
	case answerRate >= 90 && avgDuration <= 180:
		return Excellent
	case answerRate >= 80:
		return Good
	case answerRate >= 70:
		return Acceptable
	default:
		return NeedsImprovement
	}
}
