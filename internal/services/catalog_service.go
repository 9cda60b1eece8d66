package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Guotai812/FitTrack-Back/internal/models"
	"github.com/Guotai812/FitTrack-Back/internal/repository"
	"github.com/jackc/pgx/v5"
)

// Defaults for the anaerobic resistance profile: ~20% muscle efficiency and
// +15% for stabilizers/EPOC.
const (
	defaultEfficiency = 0.2
	defaultBuffer     = 1.15
)

type foodStore interface {
	Create(ctx context.Context, input repository.CreateFoodInput) (*models.Food, error)
	GetByID(ctx context.Context, id int64) (*models.Food, error)
	ListVisible(ctx context.Context, userID int64) ([]models.Food, error)
	ListVisiblePage(ctx context.Context, userID int64, limit, offset int) ([]models.Food, error)
	CountVisible(ctx context.Context, userID int64) (int, error)
	UpdatePartial(ctx context.Context, id int64, input repository.UpdateFoodInput) (*models.Food, error)
}

type exerciseStore interface {
	Create(ctx context.Context, input repository.CreateExerciseInput) (*models.Exercise, error)
	GetByID(ctx context.Context, id int64) (*models.Exercise, error)
	ListVisible(ctx context.Context, userID int64) ([]models.Exercise, error)
	Update(ctx context.Context, ex *models.Exercise) (*models.Exercise, error)
}

// CatalogService manages the food and exercise pools: reusable definitions
// referenced by, but not embedded in, ledger entries.
type CatalogService struct {
	foodRepo     foodStore
	exerciseRepo exerciseStore
}

func NewCatalogService(foodRepo foodStore, exerciseRepo exerciseStore) *CatalogService {
	return &CatalogService{foodRepo: foodRepo, exerciseRepo: exerciseRepo}
}

// Pool is the catalog visible to one user, keyed by id for client lookup.
type Pool struct {
	Foods     map[int64]models.Food     `json:"foods"`
	Exercises map[int64]models.Exercise `json:"exercises"`
}

func (s *CatalogService) GetPool(ctx context.Context, userID int64) (*Pool, error) {
	foods, err := s.foodRepo.ListVisible(ctx, userID)
	if err != nil {
		return nil, err
	}
	exercises, err := s.exerciseRepo.ListVisible(ctx, userID)
	if err != nil {
		return nil, err
	}

	pool := &Pool{
		Foods:     make(map[int64]models.Food, len(foods)),
		Exercises: make(map[int64]models.Exercise, len(exercises)),
	}
	for _, food := range foods {
		pool.Foods[food.ID] = food
	}
	for _, ex := range exercises {
		pool.Exercises[ex.ID] = ex
	}
	return pool, nil
}

func (s *CatalogService) ListFoodsPage(ctx context.Context, userID int64, limit, offset int) ([]models.Food, int, error) {
	foods, err := s.foodRepo.ListVisiblePage(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.foodRepo.CountVisible(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return foods, total, nil
}

type CreateFoodInput struct {
	Name        string
	ImageURL    string
	KcalPer100g float64
	CarbsG      float64
	ProteinG    float64
	FatG        float64
	Category    string
}

func (s *CatalogService) CreateFood(ctx context.Context, creatorID int64, input CreateFoodInput) (*models.Food, error) {
	if strings.TrimSpace(input.Name) == "" || input.Category == "" {
		return nil, ErrInvalidInput
	}
	if input.KcalPer100g < 0 || input.CarbsG < 0 || input.ProteinG < 0 || input.FatG < 0 {
		return nil, ErrInvalidInput
	}
	return s.foodRepo.Create(ctx, repository.CreateFoodInput{
		CreatorID:   &creatorID,
		IsPublic:    true,
		Name:        input.Name,
		ImageURL:    input.ImageURL,
		KcalPer100g: input.KcalPer100g,
		CarbsG:      input.CarbsG,
		ProteinG:    input.ProteinG,
		FatG:        input.FatG,
		Category:    input.Category,
	})
}

// UpdateFood applies a partial update. Only the creator may touch a food;
// official (creatorless) foods are immutable through this path.
func (s *CatalogService) UpdateFood(ctx context.Context, userID, foodID int64, input repository.UpdateFoodInput) (*models.Food, error) {
	food, err := s.foodRepo.GetByID(ctx, foodID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if food.CreatorID == nil || *food.CreatorID != userID {
		return nil, ErrForbidden
	}
	return s.foodRepo.UpdatePartial(ctx, foodID, input)
}

type CreateExerciseInput struct {
	Name       string
	ImageURL   string
	Variant    models.ExerciseVariant
	SubType    *string
	MET        *float64
	DefaultROM *float64
	Efficiency float64
	Buffer     float64
}

func (s *CatalogService) CreateExercise(ctx context.Context, creatorID int64, input CreateExerciseInput) (*models.Exercise, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidInput
	}

	ex := models.Exercise{
		Variant:    input.Variant,
		Efficiency: input.Efficiency,
		Buffer:     input.Buffer,
	}
	switch input.Variant {
	case models.VariantAerobic:
		if input.MET == nil || *input.MET <= 0 {
			return nil, ErrInvalidInput
		}
	case models.VariantAnaerobic:
		if input.DefaultROM == nil || *input.DefaultROM <= 0 {
			return nil, ErrInvalidInput
		}
		if ex.Efficiency == 0 {
			ex.Efficiency = defaultEfficiency
		}
		if ex.Buffer == 0 {
			ex.Buffer = defaultBuffer
		}
		if ex.Efficiency <= 0 || ex.Buffer <= 0 {
			return nil, ErrInvalidInput
		}
	default:
		return nil, ErrInvalidInput
	}
	ex.RecomputeKcalPerKgMeter()

	return s.exerciseRepo.Create(ctx, repository.CreateExerciseInput{
		CreatorID:      &creatorID,
		IsPublic:       true,
		Name:           input.Name,
		ImageURL:       input.ImageURL,
		Variant:        input.Variant,
		SubType:        input.SubType,
		MET:            input.MET,
		DefaultROM:     input.DefaultROM,
		Efficiency:     ex.Efficiency,
		Buffer:         ex.Buffer,
		KcalPerKgMeter: ex.KcalPerKgMeter,
	})
}

type UpdateExerciseInput struct {
	Name       *string
	SubType    *string
	MET        *float64
	DefaultROM *float64
	Efficiency *float64
	Buffer     *float64
}

// UpdateExercise applies a partial update and rederives kcal_per_kg_meter
// whenever the resistance profile changed, so the stored multiplier always
// matches its inputs.
func (s *CatalogService) UpdateExercise(ctx context.Context, userID, exerciseID int64, input UpdateExerciseInput) (*models.Exercise, error) {
	ex, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if ex.CreatorID == nil || *ex.CreatorID != userID {
		return nil, ErrForbidden
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidInput
		}
		ex.Name = *input.Name
	}
	if input.SubType != nil {
		ex.SubType = input.SubType
	}
	switch ex.Variant {
	case models.VariantAerobic:
		if input.MET != nil {
			if *input.MET <= 0 {
				return nil, ErrInvalidInput
			}
			ex.MET = input.MET
		}
	case models.VariantAnaerobic:
		if input.DefaultROM != nil {
			if *input.DefaultROM <= 0 {
				return nil, ErrInvalidInput
			}
			ex.DefaultROM = input.DefaultROM
		}
		if input.Efficiency != nil {
			if *input.Efficiency <= 0 {
				return nil, ErrInvalidInput
			}
			ex.Efficiency = *input.Efficiency
		}
		if input.Buffer != nil {
			if *input.Buffer <= 0 {
				return nil, ErrInvalidInput
			}
			ex.Buffer = *input.Buffer
		}
	}
	ex.RecomputeKcalPerKgMeter()

	return s.exerciseRepo.Update(ctx, ex)
}
