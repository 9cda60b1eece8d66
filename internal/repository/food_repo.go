package repository

import (
	"context"

	"github.com/Guotai812/FitTrack-Back/internal/models"
)

type CreateFoodInput struct {
	CreatorID   *int64
	IsPublic    bool
	Name        string
	ImageURL    string
	KcalPer100g float64
	CarbsG      float64
	ProteinG    float64
	FatG        float64
	Category    string
}

type UpdateFoodInput struct {
	Name        *string
	KcalPer100g *float64
	CarbsG      *float64
	ProteinG    *float64
	FatG        *float64
	Category    *string
}

type FoodRepository struct {
	db DBTX
}

func NewFoodRepository(db DBTX) *FoodRepository {
	return &FoodRepository{db: db}
}

const foodColumns = `id, creator_id, is_public, name, image_url, kcal_per_100g,
	carbs_g, protein_g, fat_g, category, created_at`

func scanFood(row interface{ Scan(dest ...any) error }) (*models.Food, error) {
	var food models.Food
	err := row.Scan(
		&food.ID,
		&food.CreatorID,
		&food.IsPublic,
		&food.Name,
		&food.ImageURL,
		&food.KcalPer100g,
		&food.CarbsG,
		&food.ProteinG,
		&food.FatG,
		&food.Category,
		&food.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *FoodRepository) Create(ctx context.Context, input CreateFoodInput) (*models.Food, error) {
	query := `
		INSERT INTO foods (creator_id, is_public, name, image_url, kcal_per_100g, carbs_g, protein_g, fat_g, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + foodColumns
	return scanFood(r.db.QueryRow(ctx, query,
		input.CreatorID,
		input.IsPublic,
		input.Name,
		input.ImageURL,
		input.KcalPer100g,
		input.CarbsG,
		input.ProteinG,
		input.FatG,
		input.Category,
	))
}

func (r *FoodRepository) GetByID(ctx context.Context, id int64) (*models.Food, error) {
	query := `SELECT ` + foodColumns + ` FROM foods WHERE id = $1`
	return scanFood(r.db.QueryRow(ctx, query, id))
}

// ListVisible returns public foods that are either official (no creator) or
// created by the given user.
func (r *FoodRepository) ListVisible(ctx context.Context, userID int64) ([]models.Food, error) {
	query := `
		SELECT ` + foodColumns + `
		FROM foods
		WHERE is_public = TRUE AND (creator_id IS NULL OR creator_id = $1)
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var foods []models.Food
	for rows.Next() {
		food, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		foods = append(foods, *food)
	}
	return foods, rows.Err()
}

// ListVisiblePage is the paged variant used by the catalog browser.
func (r *FoodRepository) ListVisiblePage(ctx context.Context, userID int64, limit, offset int) ([]models.Food, error) {
	query := `
		SELECT ` + foodColumns + `
		FROM foods
		WHERE is_public = TRUE AND (creator_id IS NULL OR creator_id = $1)
		ORDER BY id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var foods []models.Food
	for rows.Next() {
		food, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		foods = append(foods, *food)
	}
	return foods, rows.Err()
}

func (r *FoodRepository) CountVisible(ctx context.Context, userID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM foods
		WHERE is_public = TRUE AND (creator_id IS NULL OR creator_id = $1)
	`
	var total int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *FoodRepository) UpdatePartial(ctx context.Context, id int64, input UpdateFoodInput) (*models.Food, error) {
	query := `
		UPDATE foods
		SET name = COALESCE($1, name),
			kcal_per_100g = COALESCE($2, kcal_per_100g),
			carbs_g = COALESCE($3, carbs_g),
			protein_g = COALESCE($4, protein_g),
			fat_g = COALESCE($5, fat_g),
			category = COALESCE($6, category)
		WHERE id = $7
		RETURNING ` + foodColumns
	return scanFood(r.db.QueryRow(ctx, query,
		input.Name,
		input.KcalPer100g,
		input.CarbsG,
		input.ProteinG,
		input.FatG,
		input.Category,
		id,
	))
}
