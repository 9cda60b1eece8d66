package services

import (
	"context"
	"log"

	"github.com/Guotai812/FitTrack-Back/internal/models"
)

type FoodLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Food, error)
}

type ExerciseLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Exercise, error)
}

// AerobicKcal converts minutes of an aerobic exercise into kilocalories:
// MET x 3.5 x bodyweight / 200 per minute.
func AerobicKcal(met, bodyWeightKG, durationMinutes float64) float64 {
	return durationMinutes * met * 3.5 * bodyWeightKG / 200
}

// AnaerobicKcal sums the mechanical work of each set group (weight x reps x
// sets x range of motion, in kg-metres) scaled by the exercise's derived
// kcal-per-kg-metre multiplier. Exercises without a resistance profile
// contribute nothing.
func AnaerobicKcal(ex *models.Exercise, sets []models.SetGroup) float64 {
	if ex.DefaultROM == nil || ex.KcalPerKgMeter == nil {
		return 0
	}
	total := 0.0
	for _, group := range sets {
		work := group.WeightKG * float64(group.Reps) * float64(group.Sets) * *ex.DefaultROM
		total += work * *ex.KcalPerKgMeter
	}
	return total
}

// TotalExpenditure recomputes the day's exercise energy from the full log.
// A catalog entry that cannot be resolved, or an aerobic entry without a
// MET value, contributes zero: a deleted exercise definition must never
// make the balance uncomputable.
func TotalExpenditure(ctx context.Context, exercises ExerciseLookup, entries models.ExerciseEntries, bodyWeightKG float64) float64 {
	total := 0.0

	for _, entry := range entries.Aerobic {
		ex, err := exercises.GetByID(ctx, entry.ExerciseID)
		if err != nil {
			log.Printf("expenditure: skipping aerobic log %s: exercise %d lookup failed: %v", entry.LogID, entry.ExerciseID, err)
			continue
		}
		if ex.MET == nil {
			continue
		}
		total += AerobicKcal(*ex.MET, bodyWeightKG, entry.DurationMinutes)
	}

	for _, entry := range entries.Anaerobic {
		ex, err := exercises.GetByID(ctx, entry.ExerciseID)
		if err != nil {
			log.Printf("expenditure: skipping anaerobic log %s: exercise %d lookup failed: %v", entry.LogID, entry.ExerciseID, err)
			continue
		}
		total += AnaerobicKcal(ex, entry.Sets)
	}

	return total
}
