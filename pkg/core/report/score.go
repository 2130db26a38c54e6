package report

// Status is the dashboard label derived from the sentiment score.
type Status string

const (
	StatusExtremelySatisfied Status = "Extremely Satisfied"
	StatusSatisfied          Status = "Satisfied"
	StatusNeutral            Status = "Neutral"
	StatusDissatisfied       Status = "Dissatisfied"
	StatusCritical           Status = "Critical"
)

// StatusForScore maps a sentiment score to its status label.
// Total over [0,10]; out-of-range input clamps to the nearest band.
func StatusForScore(score int) Status {
	switch {
	case score >= 9:
		return StatusExtremelySatisfied
	case score >= 7:
		return StatusSatisfied
	case score >= 5:
		return StatusNeutral
	case score >= 3:
		return StatusDissatisfied
	default:
		return StatusCritical
	}
}
