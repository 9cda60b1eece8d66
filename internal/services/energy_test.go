package services

import (
	"context"
	"math"
	"testing"

	"github.com/Guotai812/FitTrack-Back/internal/models"
	"github.com/jackc/pgx/v5"
)

type stubExerciseLookup struct {
	exercises map[int64]*models.Exercise
}

func (s *stubExerciseLookup) GetByID(_ context.Context, id int64) (*models.Exercise, error) {
	ex, ok := s.exercises[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return ex, nil
}

func floatPtr(v float64) *float64 { return &v }

func anaerobicExercise(rom, efficiency, buffer float64) *models.Exercise {
	ex := &models.Exercise{
		Variant:    models.VariantAnaerobic,
		DefaultROM: floatPtr(rom),
		Efficiency: efficiency,
		Buffer:     buffer,
	}
	ex.RecomputeKcalPerKgMeter()
	return ex
}

func TestAerobicKcal(t *testing.T) {
	// 30 min x MET 8 x 3.5 x 70kg / 200 = 294
	got := AerobicKcal(8, 70, 30)
	if math.Abs(got-294) > 1e-9 {
		t.Fatalf("expected 294 kcal, got %f", got)
	}
}

func TestAnaerobicKcal(t *testing.T) {
	ex := anaerobicExercise(1.0, 0.2, 1.15)

	// 50kg x 5 reps x 3 sets x 1.0m = 750 kg-metres
	sets := []models.SetGroup{{WeightKG: 50, Reps: 5, Sets: 3}}
	got := AnaerobicKcal(ex, sets)

	want := 750 * (9.81 / 4184.0 / 0.2) * 1.15
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %f kcal, got %f", want, got)
	}
}

func TestAnaerobicKcalSumsSetGroups(t *testing.T) {
	ex := anaerobicExercise(0.5, 0.2, 1.15)

	single := AnaerobicKcal(ex, []models.SetGroup{{WeightKG: 60, Reps: 8, Sets: 3}})
	split := AnaerobicKcal(ex, []models.SetGroup{
		{WeightKG: 60, Reps: 8, Sets: 2},
		{WeightKG: 60, Reps: 8, Sets: 1},
	})
	if math.Abs(single-split) > 1e-9 {
		t.Fatalf("expected group split to be equivalent, got %f and %f", single, split)
	}
}

func TestAnaerobicKcalWithoutResistanceProfile(t *testing.T) {
	ex := &models.Exercise{Variant: models.VariantAnaerobic}
	if got := AnaerobicKcal(ex, []models.SetGroup{{WeightKG: 50, Reps: 5, Sets: 3}}); got != 0 {
		t.Fatalf("expected 0 kcal without a resistance profile, got %f", got)
	}
}

func TestTotalExpenditureSkipsUnresolvedExercises(t *testing.T) {
	lookup := &stubExerciseLookup{exercises: map[int64]*models.Exercise{
		1: {Variant: models.VariantAerobic, MET: floatPtr(8)},
	}}

	entries := models.ExerciseEntries{
		Aerobic: []models.AerobicLogEntry{
			{LogID: "a", ExerciseID: 1, DurationMinutes: 30},
			{LogID: "b", ExerciseID: 99, DurationMinutes: 60},
		},
		Anaerobic: []models.AnaerobicLogEntry{
			{LogID: "c", ExerciseID: 42, Sets: []models.SetGroup{{WeightKG: 50, Reps: 5, Sets: 3}}},
		},
	}

	got := TotalExpenditure(context.Background(), lookup, entries, 70)
	if math.Abs(got-294) > 1e-9 {
		t.Fatalf("expected only the resolvable entry to count (294), got %f", got)
	}
}

func TestTotalExpenditureSkipsAerobicWithoutMET(t *testing.T) {
	lookup := &stubExerciseLookup{exercises: map[int64]*models.Exercise{
		1: {Variant: models.VariantAerobic},
	}}

	entries := models.ExerciseEntries{
		Aerobic: []models.AerobicLogEntry{{LogID: "a", ExerciseID: 1, DurationMinutes: 45}},
	}

	if got := TotalExpenditure(context.Background(), lookup, entries, 70); got != 0 {
		t.Fatalf("expected 0 for MET-less aerobic entry, got %f", got)
	}
}
