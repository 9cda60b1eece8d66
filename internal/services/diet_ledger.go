package services

import (
	"context"
	"log"

	"github.com/Guotai812/FitTrack-Back/internal/models"
)

func slotEntries(record *models.DailyRecord, meal models.MealSlot, sub models.SubSlot) *[]models.DietEntry {
	if record.Diets == nil {
		record.Diets = map[models.MealSlot]*models.MealEntries{}
	}
	entries, ok := record.Diets[meal]
	if !ok {
		entries = &models.MealEntries{}
		record.Diets[meal] = entries
	}
	if sub == models.SubSlotMain {
		return &entries.Main
	}
	return &entries.Extra
}

// AddOrMergeDietEntry logs grams of a food into a (meal, sub-slot). If the
// food is already present there, its grams are replaced, not summed: the
// client always sends the new absolute amount, so last write wins.
func AddOrMergeDietEntry(record *models.DailyRecord, meal models.MealSlot, sub models.SubSlot, foodID int64, grams float64) models.DietEntry {
	entries := slotEntries(record, meal, sub)
	for i := range *entries {
		if (*entries)[i].FoodID == foodID {
			(*entries)[i].Grams = grams
			return (*entries)[i]
		}
	}
	entry := models.DietEntry{FoodID: foodID, Grams: grams}
	*entries = append(*entries, entry)
	return entry
}

// EditDietEntry updates the grams of an existing entry and fails with
// ErrNotFound if the food was never logged in that slot.
func EditDietEntry(record *models.DailyRecord, meal models.MealSlot, sub models.SubSlot, foodID int64, grams float64) error {
	entries := slotEntries(record, meal, sub)
	for i := range *entries {
		if (*entries)[i].FoodID == foodID {
			(*entries)[i].Grams = grams
			return nil
		}
	}
	return ErrNotFound
}

// RemoveDietEntry deletes the entry if present. Removing an absent entry is
// a no-op, not an error.
func RemoveDietEntry(record *models.DailyRecord, meal models.MealSlot, sub models.SubSlot, foodID int64) {
	entries := slotEntries(record, meal, sub)
	for i := range *entries {
		if (*entries)[i].FoodID == foodID {
			*entries = append((*entries)[:i], (*entries)[i+1:]...)
			return
		}
	}
}

// TotalConsumedKcal walks every entry in every (meal, sub-slot) group and
// sums kcal from each food's energy density. It is always computed from the
// full entry set; the balance never trusts an incremental delta. Foods that
// can no longer be resolved contribute zero.
func TotalConsumedKcal(ctx context.Context, foods FoodLookup, record *models.DailyRecord) float64 {
	total := 0.0
	for _, meals := range record.Diets {
		if meals == nil {
			continue
		}
		for _, group := range [][]models.DietEntry{meals.Main, meals.Extra} {
			for _, entry := range group {
				food, err := foods.GetByID(ctx, entry.FoodID)
				if err != nil {
					log.Printf("consumed: skipping food %d: lookup failed: %v", entry.FoodID, err)
					continue
				}
				total += food.KcalPer100g * entry.Grams / 100
			}
		}
	}
	return total
}
