package models

import "time"

// UserProfile carries the biometric inputs the calorie target is derived
// from, plus the cached target itself. IsCompleted flips exactly once, at
// profile setup; the target is recomputed whenever any input changes.
type UserProfile struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	WeightKG    float64    `json:"weight_kg"`
	HeightCM    float64    `json:"height_cm"`
	BirthDate   *time.Time `json:"birth_date"`
	Gender      string     `json:"gender"`
	Frequency   string     `json:"frequency"`
	Goal        string     `json:"goal"`
	TargetKcal  int        `json:"target_kcal"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Activity frequency buckets.
const (
	FrequencyNone     = "none"
	FrequencyLight    = "light"
	FrequencyModerate = "moderate"
	FrequencyHeavy    = "heavy"
)

// Goals.
const (
	GoalMaintain = "maintain"
	GoalCut      = "cut"
	GoalBulk     = "bulk"
)
