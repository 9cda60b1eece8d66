package models

import "time"

type MealSlot string

const (
	MealBreakfast MealSlot = "breakfast"
	MealLunch     MealSlot = "lunch"
	MealDinner    MealSlot = "dinner"
)

type SubSlot string

const (
	SubSlotMain  SubSlot = "main"
	SubSlotExtra SubSlot = "extra"
)

// DietEntry logs grams of one food in one (meal, sub-slot). At most one
// entry exists per food within a slot; re-logging the same food replaces
// the grams.
type DietEntry struct {
	FoodID int64   `json:"food_id"`
	Grams  float64 `json:"grams"`
}

type MealEntries struct {
	Main  []DietEntry `json:"main"`
	Extra []DietEntry `json:"extra"`
}

// SetGroup is one line of a resistance workout: the same weight lifted for
// Reps repetitions across Sets sets.
type SetGroup struct {
	WeightKG float64 `json:"weight_kg"`
	Reps     int     `json:"reps"`
	Sets     int     `json:"sets"`
}

// AerobicLogEntry and AnaerobicLogEntry are located by LogID for edits and
// deletes; positions shift when entries are removed, so indexes are never
// used as handles.
type AerobicLogEntry struct {
	LogID           string  `json:"log_id"`
	ExerciseID      int64   `json:"exercise_id"`
	DurationMinutes float64 `json:"duration_minutes"`
}

type AnaerobicLogEntry struct {
	LogID      string     `json:"log_id"`
	ExerciseID int64      `json:"exercise_id"`
	Sets       []SetGroup `json:"sets"`
}

type ExerciseEntries struct {
	Aerobic   []AerobicLogEntry   `json:"aerobic"`
	Anaerobic []AnaerobicLogEntry `json:"anaerobic"`
}

// DailyRecord is the per (user, date) calorie ledger. TargetKcal and
// WeightKG are copied from the profile when the record is created and stay
// frozen for the rest of the day, even if the profile changes. CurrentKcal
// is always recomputed from the full entry set, never adjusted by deltas.
type DailyRecord struct {
	ID          int64                     `json:"id"`
	UserID      int64                     `json:"user_id"`
	Date        string                    `json:"date"`
	WeightKG    float64                   `json:"weight_kg"`
	HeightCM    float64                   `json:"height_cm"`
	TargetKcal  int                       `json:"kcal"`
	CurrentKcal float64                   `json:"current_kcal"`
	Diets       map[MealSlot]*MealEntries `json:"diets"`
	Exercises   ExerciseEntries           `json:"exercises"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

func ValidMealSlot(m MealSlot) bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner:
		return true
	}
	return false
}

func ValidSubSlot(s SubSlot) bool {
	return s == SubSlotMain || s == SubSlotExtra
}
