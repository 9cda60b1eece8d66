package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Guotai812/FitTrack-Back/internal/models"
	"github.com/jackc/pgx/v5"
)

type stubFoodLookup struct {
	foods map[int64]*models.Food
}

func (s *stubFoodLookup) GetByID(_ context.Context, id int64) (*models.Food, error) {
	food, ok := s.foods[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return food, nil
}

func TestAddOrMergeDietEntryReplacesGrams(t *testing.T) {
	record := &models.DailyRecord{}

	AddOrMergeDietEntry(record, models.MealBreakfast, models.SubSlotMain, 7, 100)
	AddOrMergeDietEntry(record, models.MealBreakfast, models.SubSlotMain, 7, 150)

	entries := record.Diets[models.MealBreakfast].Main
	if len(entries) != 1 {
		t.Fatalf("expected a single merged entry, got %d", len(entries))
	}
	if entries[0].Grams != 150 {
		t.Fatalf("expected grams replaced with 150, got %f", entries[0].Grams)
	}
}

func TestAddOrMergeDietEntryKeepsSubSlotsSeparate(t *testing.T) {
	record := &models.DailyRecord{}

	AddOrMergeDietEntry(record, models.MealLunch, models.SubSlotMain, 7, 100)
	AddOrMergeDietEntry(record, models.MealLunch, models.SubSlotExtra, 7, 40)

	meals := record.Diets[models.MealLunch]
	if len(meals.Main) != 1 || len(meals.Extra) != 1 {
		t.Fatalf("expected one entry per sub-slot, got main=%d extra=%d", len(meals.Main), len(meals.Extra))
	}
}

func TestEditDietEntryMissingFood(t *testing.T) {
	record := &models.DailyRecord{}

	err := EditDietEntry(record, models.MealDinner, models.SubSlotMain, 7, 120)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveDietEntryAbsentIsNoOp(t *testing.T) {
	record := &models.DailyRecord{}
	AddOrMergeDietEntry(record, models.MealDinner, models.SubSlotMain, 7, 100)

	RemoveDietEntry(record, models.MealDinner, models.SubSlotMain, 99)

	if len(record.Diets[models.MealDinner].Main) != 1 {
		t.Fatal("expected existing entry to survive removal of an absent food")
	}
}

func TestTotalConsumedKcalSumsAcrossSlots(t *testing.T) {
	foods := &stubFoodLookup{foods: map[int64]*models.Food{
		1: {ID: 1, KcalPer100g: 250},
		2: {ID: 2, KcalPer100g: 80},
	}}

	record := &models.DailyRecord{}
	AddOrMergeDietEntry(record, models.MealBreakfast, models.SubSlotMain, 1, 200) // 500
	AddOrMergeDietEntry(record, models.MealLunch, models.SubSlotExtra, 2, 150)    // 120
	AddOrMergeDietEntry(record, models.MealDinner, models.SubSlotMain, 1, 100)    // 250

	got := TotalConsumedKcal(context.Background(), foods, record)
	if math.Abs(got-870) > 1e-9 {
		t.Fatalf("expected 870 kcal, got %f", got)
	}
}

func TestTotalConsumedKcalSkipsUnresolvedFoods(t *testing.T) {
	foods := &stubFoodLookup{foods: map[int64]*models.Food{
		1: {ID: 1, KcalPer100g: 100},
	}}

	record := &models.DailyRecord{}
	AddOrMergeDietEntry(record, models.MealBreakfast, models.SubSlotMain, 1, 100)
	AddOrMergeDietEntry(record, models.MealBreakfast, models.SubSlotMain, 99, 500)

	got := TotalConsumedKcal(context.Background(), foods, record)
	if math.Abs(got-100) > 1e-9 {
		t.Fatalf("expected unresolved food to contribute zero, got %f", got)
	}
}
