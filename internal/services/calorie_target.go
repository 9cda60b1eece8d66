package services

import (
	"math"
	"time"

	"github.com/Guotai812/FitTrack-Back/internal/models"
)

// Goal offsets applied on top of TDEE, in kcal.
const goalOffsetKcal = 300

var activityMultipliers = map[string]float64{
	models.FrequencyNone:     1.20,
	models.FrequencyLight:    1.375,
	models.FrequencyModerate: 1.55,
	models.FrequencyHeavy:    1.725,
}

type ProfileInput struct {
	WeightKG  float64
	HeightCM  float64
	BirthDate time.Time
	Gender    string
	Frequency string
	Goal      string
}

// ComputeCalorieTarget derives the daily calorie budget from biometric
// inputs via Mifflin-St Jeor, scaled by the activity bucket and shifted by
// the goal. Age is a plain year difference; calendar-day precision is not
// required. An unrecognized frequency bucket falls back to a multiplier of
// 1.0 rather than failing.
func ComputeCalorieTarget(input ProfileInput, now time.Time) (int, error) {
	if input.WeightKG <= 0 || input.HeightCM <= 0 {
		return 0, ErrInvalidInput
	}
	if input.BirthDate.IsZero() || input.BirthDate.After(now) {
		return 0, ErrInvalidInput
	}

	age := now.Year() - input.BirthDate.Year()

	basal := 10*input.WeightKG + 6.25*input.HeightCM - 5*float64(age)
	if input.Gender != "male" {
		basal -= 161
	}

	multiplier, ok := activityMultipliers[input.Frequency]
	if !ok {
		multiplier = 1.0
	}
	tdee := basal * multiplier

	switch input.Goal {
	case models.GoalMaintain:
	case models.GoalCut:
		tdee -= goalOffsetKcal
	case models.GoalBulk:
		tdee += goalOffsetKcal
	default:
		return 0, ErrInvalidInput
	}

	return int(math.Round(tdee)), nil
}
