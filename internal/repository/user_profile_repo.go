package repository

import (
	"context"
	"time"

	"github.com/Guotai812/FitTrack-Back/internal/models"
)

type UserProfileRepository struct {
	db DBTX
}

func NewUserProfileRepository(db DBTX) *UserProfileRepository {
	return &UserProfileRepository{db: db}
}

func (r *UserProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `INSERT INTO user_profiles (user_id) VALUES ($1)`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *UserProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	query := `
		SELECT id, user_id, weight_kg, height_cm, birth_date, gender, frequency, goal,
			   target_kcal, is_completed, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`
	var profile models.UserProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.WeightKG,
		&profile.HeightCM,
		&profile.BirthDate,
		&profile.Gender,
		&profile.Frequency,
		&profile.Goal,
		&profile.TargetKcal,
		&profile.IsCompleted,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

type CompleteProfileInput struct {
	WeightKG   float64
	HeightCM   float64
	BirthDate  time.Time
	Gender     string
	Frequency  string
	Goal       string
	TargetKcal int
}

// CompleteSetup writes the biometric inputs, caches the derived target and
// flips is_completed. The WHERE clause doubles as the one-time guard: a
// profile that is already completed matches no row.
func (r *UserProfileRepository) CompleteSetup(ctx context.Context, userID int64, input CompleteProfileInput) (*models.UserProfile, error) {
	query := `
		UPDATE user_profiles
		SET weight_kg = $1,
			height_cm = $2,
			birth_date = $3,
			gender = $4,
			frequency = $5,
			goal = $6,
			target_kcal = $7,
			is_completed = TRUE,
			updated_at = NOW()
		WHERE user_id = $8 AND is_completed = FALSE
		RETURNING id, user_id, weight_kg, height_cm, birth_date, gender, frequency, goal,
				  target_kcal, is_completed, created_at, updated_at
	`
	var profile models.UserProfile
	err := r.db.QueryRow(ctx, query,
		input.WeightKG,
		input.HeightCM,
		input.BirthDate,
		input.Gender,
		input.Frequency,
		input.Goal,
		input.TargetKcal,
		userID,
	).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.WeightKG,
		&profile.HeightCM,
		&profile.BirthDate,
		&profile.Gender,
		&profile.Frequency,
		&profile.Goal,
		&profile.TargetKcal,
		&profile.IsCompleted,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
