package models

import "time"

// Food is a reusable catalog entry. Energy density and macros are per 100 g.
// A nil CreatorID marks an official (seeded) food; user-created foods may
// only be updated by their creator.
type Food struct {
	ID          int64     `json:"id"`
	CreatorID   *int64    `json:"creator_id"`
	IsPublic    bool      `json:"is_public"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"image_url"`
	KcalPer100g float64   `json:"kcal"`
	CarbsG      float64   `json:"carbs"`
	ProteinG    float64   `json:"protein"`
	FatG        float64   `json:"fat"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}
