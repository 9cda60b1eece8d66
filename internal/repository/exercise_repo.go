package repository

import (
	"context"

	"github.com/Guotai812/FitTrack-Back/internal/models"
)

type CreateExerciseInput struct {
	CreatorID  *int64
	IsPublic   bool
	Name       string
	ImageURL   string
	Variant    models.ExerciseVariant
	SubType    *string
	MET        *float64
	DefaultROM *float64
	Efficiency float64
	Buffer     float64
	// derived from Efficiency and Buffer before insert, nil for aerobic
	KcalPerKgMeter *float64
}

type ExerciseRepository struct {
	db DBTX
}

func NewExerciseRepository(db DBTX) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

const exerciseColumns = `id, creator_id, is_public, name, image_url, variant, sub_type,
	met, default_rom, efficiency, buffer, kcal_per_kg_meter, created_at`

func scanExercise(row interface{ Scan(dest ...any) error }) (*models.Exercise, error) {
	var ex models.Exercise
	err := row.Scan(
		&ex.ID,
		&ex.CreatorID,
		&ex.IsPublic,
		&ex.Name,
		&ex.ImageURL,
		&ex.Variant,
		&ex.SubType,
		&ex.MET,
		&ex.DefaultROM,
		&ex.Efficiency,
		&ex.Buffer,
		&ex.KcalPerKgMeter,
		&ex.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

func (r *ExerciseRepository) Create(ctx context.Context, input CreateExerciseInput) (*models.Exercise, error) {
	query := `
		INSERT INTO exercises (creator_id, is_public, name, image_url, variant, sub_type,
							   met, default_rom, efficiency, buffer, kcal_per_kg_meter)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + exerciseColumns
	return scanExercise(r.db.QueryRow(ctx, query,
		input.CreatorID,
		input.IsPublic,
		input.Name,
		input.ImageURL,
		input.Variant,
		input.SubType,
		input.MET,
		input.DefaultROM,
		input.Efficiency,
		input.Buffer,
		input.KcalPerKgMeter,
	))
}

func (r *ExerciseRepository) GetByID(ctx context.Context, id int64) (*models.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE id = $1`
	return scanExercise(r.db.QueryRow(ctx, query, id))
}

func (r *ExerciseRepository) ListVisible(ctx context.Context, userID int64) ([]models.Exercise, error) {
	query := `
		SELECT ` + exerciseColumns + `
		FROM exercises
		WHERE is_public = TRUE AND (creator_id IS NULL OR creator_id = $1)
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		ex, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, *ex)
	}
	return exercises, rows.Err()
}

// Update rewrites the variant-specific fields alongside the shared ones.
// kcal_per_kg_meter always travels with efficiency and buffer so the stored
// multiplier cannot outlive its inputs.
func (r *ExerciseRepository) Update(ctx context.Context, ex *models.Exercise) (*models.Exercise, error) {
	query := `
		UPDATE exercises
		SET name = $1,
			sub_type = $2,
			met = $3,
			default_rom = $4,
			efficiency = $5,
			buffer = $6,
			kcal_per_kg_meter = $7
		WHERE id = $8
		RETURNING ` + exerciseColumns
	return scanExercise(r.db.QueryRow(ctx, query,
		ex.Name,
		ex.SubType,
		ex.MET,
		ex.DefaultROM,
		ex.Efficiency,
		ex.Buffer,
		ex.KcalPerKgMeter,
		ex.ID,
	))
}
