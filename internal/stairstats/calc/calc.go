// Package calc converts a finished stair session into climbed height and
// burned calories.
//
// One repetition is a full round trip up and down the configured flight.
// Only the up-leg counts towards the climbed height. Energy uses a MET
// model with a fixed reference body weight, since no per-user weight is
// recorded: each repetition's time is split evenly between the up-leg
// and the down-leg.
package calc

const (
	// MetsUp is the metabolic equivalent of climbing stairs.
	MetsUp = 8.0
	// MetsDown is the metabolic equivalent of walking down stairs.
	MetsDown = 3.5
	// MetsTimeFactor converts MET * kg * minute into kcal.
	MetsTimeFactor = 0.0175
	// ReferenceWeightKg is the body weight used for every session.
	ReferenceWeightKg = 70.0
)

// Staircase holds the dimensions a session is computed against.
type Staircase struct {
	StepHeightCm int
	StepCount    int
}

type Result struct {
	HeightClimbedMeters float64 `json:"heightClimbedMeters"`
	CaloriesBurned      float64 `json:"caloriesBurned"`
}

// Compute returns the derived metrics of a session. Inputs are expected to
// be non-negative. Zero repetitions yield zero for both outputs, however
// long the timer ran.
func Compute(repetitionCount, durationSeconds int, staircase Staircase) Result {
	if repetitionCount == 0 {
		return Result{}
	}
	return Result{
		HeightClimbedMeters: HeightClimbed(repetitionCount, staircase),
		CaloriesBurned:      CaloriesBurned(repetitionCount, durationSeconds),
	}
}

// HeightClimbed is the up-leg distance of all repetitions, in meters.
func HeightClimbed(repetitionCount int, staircase Staircase) float64 {
	return float64(repetitionCount*staircase.StepHeightCm*staircase.StepCount) / 100
}

// CaloriesBurned sums the up-leg and down-leg energy of every repetition.
func CaloriesBurned(repetitionCount, durationSeconds int) float64 {
	if repetitionCount == 0 {
		return 0
	}
	reps := float64(repetitionCount)
	legMinutes := float64(durationSeconds) / reps / 2 / 60
	upLeg := legEnergy(MetsUp, legMinutes)
	downLeg := legEnergy(MetsDown, legMinutes)
	return reps * (upLeg + downLeg)
}

func legEnergy(mets, minutes float64) float64 {
	return mets * ReferenceWeightKg * minutes * MetsTimeFactor
}
