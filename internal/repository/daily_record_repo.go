package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Guotai812/FitTrack-Back/internal/models"
)

type CreateDailyRecordInput struct {
	UserID     int64
	Date       string
	WeightKG   float64
	HeightCM   float64
	TargetKcal int
}

type DailyRecordRepository struct {
	db DBTX
}

func NewDailyRecordRepository(db DBTX) *DailyRecordRepository {
	return &DailyRecordRepository{db: db}
}

const dailyRecordColumns = `id, user_id, date, weight_kg, height_cm, target_kcal,
	current_kcal, diets, exercises, created_at, updated_at`

func scanDailyRecord(row interface{ Scan(dest ...any) error }) (*models.DailyRecord, error) {
	var (
		record        models.DailyRecord
		dietsJSON     []byte
		exercisesJSON []byte
	)
	err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.Date,
		&record.WeightKG,
		&record.HeightCM,
		&record.TargetKcal,
		&record.CurrentKcal,
		&dietsJSON,
		&exercisesJSON,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(dietsJSON, &record.Diets); err != nil {
		return nil, fmt.Errorf("decode diets: %w", err)
	}
	if err := json.Unmarshal(exercisesJSON, &record.Exercises); err != nil {
		return nil, fmt.Errorf("decode exercises: %w", err)
	}
	if record.Diets == nil {
		record.Diets = map[models.MealSlot]*models.MealEntries{}
	}
	return &record, nil
}

func (r *DailyRecordRepository) FindByUserAndDate(ctx context.Context, userID int64, date string) (*models.DailyRecord, error) {
	query := `SELECT ` + dailyRecordColumns + ` FROM daily_records WHERE user_id = $1 AND date = $2`
	return scanDailyRecord(r.db.QueryRow(ctx, query, userID, date))
}

// Create seeds a fresh record for the day. The starting balance equals the
// target: nothing consumed, nothing expended yet.
func (r *DailyRecordRepository) Create(ctx context.Context, input CreateDailyRecordInput) (*models.DailyRecord, error) {
	query := `
		INSERT INTO daily_records (user_id, date, weight_kg, height_cm, target_kcal, current_kcal, diets, exercises)
		VALUES ($1, $2, $3, $4, $5, $6, '{}'::jsonb, '{"aerobic":[],"anaerobic":[]}'::jsonb)
		RETURNING ` + dailyRecordColumns
	return scanDailyRecord(r.db.QueryRow(ctx, query,
		input.UserID,
		input.Date,
		input.WeightKG,
		input.HeightCM,
		input.TargetKcal,
		float64(input.TargetKcal),
	))
}

// Save persists the mutable part of a record: both entry collections and
// the recomputed balance. Identity and the frozen day seed never change.
func (r *DailyRecordRepository) Save(ctx context.Context, record *models.DailyRecord) error {
	dietsJSON, err := json.Marshal(record.Diets)
	if err != nil {
		return fmt.Errorf("encode diets: %w", err)
	}
	exercisesJSON, err := json.Marshal(record.Exercises)
	if err != nil {
		return fmt.Errorf("encode exercises: %w", err)
	}

	query := `
		UPDATE daily_records
		SET diets = $1,
			exercises = $2,
			current_kcal = $3,
			updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`
	return r.db.QueryRow(ctx, query, dietsJSON, exercisesJSON, record.CurrentKcal, record.ID).
		Scan(&record.UpdatedAt)
}
