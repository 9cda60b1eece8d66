package models

import "time"

type ExerciseVariant string

const (
	VariantAerobic   ExerciseVariant = "aerobic"
	VariantAnaerobic ExerciseVariant = "anaerobic"
)

// Physical constants used to derive the anaerobic energy multiplier.
const (
	standardGravity = 9.81
	joulesPerKcal   = 4184.0
)

// Exercise is a reusable catalog entry, tagged by variant.
//
// Aerobic entries carry a MET value used to derive kcal/minute from body
// weight. Anaerobic entries carry a resistance-training profile (range of
// motion per rep in metres, muscle efficiency, a stabilizer/EPOC buffer)
// collapsed into KcalPerKgMeter.
type Exercise struct {
	ID        int64           `json:"id"`
	CreatorID *int64          `json:"creator_id"`
	IsPublic  bool            `json:"is_public"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url"`
	Variant   ExerciseVariant `json:"variant"`
	SubType   *string         `json:"sub_type"`

	// aerobic
	MET *float64 `json:"met"`

	// anaerobic
	DefaultROM     *float64 `json:"default_rom"`
	Efficiency     float64  `json:"efficiency"`
	Buffer         float64  `json:"buffer"`
	KcalPerKgMeter *float64 `json:"kcal_per_kg_meter"`

	CreatedAt time.Time `json:"created_at"`
}

// RecomputeKcalPerKgMeter rederives the stored multiplier from its inputs.
// It must run on every anaerobic save; the multiplier is never accepted
// from callers, so it cannot drift from efficiency and buffer.
func (e *Exercise) RecomputeKcalPerKgMeter() {
	if e.Variant != VariantAnaerobic || e.Efficiency <= 0 {
		e.KcalPerKgMeter = nil
		return
	}
	v := (standardGravity / joulesPerKcal / e.Efficiency) * e.Buffer
	e.KcalPerKgMeter = &v
}
