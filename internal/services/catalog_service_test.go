package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Guotai812/FitTrack-Back/internal/models"
	"github.com/Guotai812/FitTrack-Back/internal/repository"
	"github.com/jackc/pgx/v5"
)

type stubFoodStore struct {
	foods       map[int64]*models.Food
	created     *repository.CreateFoodInput
	lastPartial *repository.UpdateFoodInput
}

func (s *stubFoodStore) Create(_ context.Context, input repository.CreateFoodInput) (*models.Food, error) {
	s.created = &input
	return &models.Food{
		ID:          1,
		CreatorID:   input.CreatorID,
		IsPublic:    input.IsPublic,
		Name:        input.Name,
		KcalPer100g: input.KcalPer100g,
		Category:    input.Category,
	}, nil
}

func (s *stubFoodStore) GetByID(_ context.Context, id int64) (*models.Food, error) {
	food, ok := s.foods[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return food, nil
}

func (s *stubFoodStore) ListVisible(_ context.Context, _ int64) ([]models.Food, error) {
	var foods []models.Food
	for _, food := range s.foods {
		foods = append(foods, *food)
	}
	return foods, nil
}

func (s *stubFoodStore) ListVisiblePage(_ context.Context, _ int64, _, _ int) ([]models.Food, error) {
	return s.ListVisible(nil, 0)
}

func (s *stubFoodStore) CountVisible(_ context.Context, _ int64) (int, error) {
	return len(s.foods), nil
}

func (s *stubFoodStore) UpdatePartial(_ context.Context, id int64, input repository.UpdateFoodInput) (*models.Food, error) {
	s.lastPartial = &input
	return s.foods[id], nil
}

type stubExerciseStore struct {
	exercises map[int64]*models.Exercise
	created   *repository.CreateExerciseInput
	updated   *models.Exercise
}

func (s *stubExerciseStore) Create(_ context.Context, input repository.CreateExerciseInput) (*models.Exercise, error) {
	s.created = &input
	return &models.Exercise{
		ID:             1,
		CreatorID:      input.CreatorID,
		Name:           input.Name,
		Variant:        input.Variant,
		MET:            input.MET,
		DefaultROM:     input.DefaultROM,
		Efficiency:     input.Efficiency,
		Buffer:         input.Buffer,
		KcalPerKgMeter: input.KcalPerKgMeter,
	}, nil
}

func (s *stubExerciseStore) GetByID(_ context.Context, id int64) (*models.Exercise, error) {
	ex, ok := s.exercises[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return ex, nil
}

func (s *stubExerciseStore) ListVisible(_ context.Context, _ int64) ([]models.Exercise, error) {
	var exercises []models.Exercise
	for _, ex := range s.exercises {
		exercises = append(exercises, *ex)
	}
	return exercises, nil
}

func (s *stubExerciseStore) Update(_ context.Context, ex *models.Exercise) (*models.Exercise, error) {
	s.updated = ex
	return ex, nil
}

func int64Ptr(v int64) *int64 { return &v }

func TestCreateExerciseAnaerobicDefaultsProfile(t *testing.T) {
	store := &stubExerciseStore{}
	service := NewCatalogService(&stubFoodStore{}, store)

	ex, err := service.CreateExercise(context.Background(), 5, CreateExerciseInput{
		Name:       "Bench Press",
		Variant:    models.VariantAnaerobic,
		DefaultROM: floatPtr(0.4),
	})
	if err != nil {
		t.Fatalf("CreateExercise: %v", err)
	}
	if ex.Efficiency != defaultEfficiency || ex.Buffer != defaultBuffer {
		t.Fatalf("expected default resistance profile, got eff=%f buf=%f", ex.Efficiency, ex.Buffer)
	}
	if ex.KcalPerKgMeter == nil {
		t.Fatal("expected derived kcal_per_kg_meter")
	}
	want := (9.81 / 4184.0 / defaultEfficiency) * defaultBuffer
	if math.Abs(*ex.KcalPerKgMeter-want) > 1e-12 {
		t.Fatalf("expected multiplier %f, got %f", want, *ex.KcalPerKgMeter)
	}
}

func TestCreateExerciseAerobicRequiresMET(t *testing.T) {
	service := NewCatalogService(&stubFoodStore{}, &stubExerciseStore{})

	_, err := service.CreateExercise(context.Background(), 5, CreateExerciseInput{
		Name:    "Running",
		Variant: models.VariantAerobic,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateExerciseRederivesMultiplier(t *testing.T) {
	ex := anaerobicExercise(0.4, 0.2, 1.15)
	ex.ID = 1
	ex.CreatorID = int64Ptr(5)
	ex.Name = "Squat"
	before := *ex.KcalPerKgMeter

	store := &stubExerciseStore{exercises: map[int64]*models.Exercise{1: ex}}
	service := NewCatalogService(&stubFoodStore{}, store)

	updated, err := service.UpdateExercise(context.Background(), 5, 1, UpdateExerciseInput{
		Efficiency: floatPtr(0.25),
	})
	if err != nil {
		t.Fatalf("UpdateExercise: %v", err)
	}
	if updated.KcalPerKgMeter == nil || *updated.KcalPerKgMeter == before {
		t.Fatal("expected multiplier to change with efficiency")
	}
	want := (9.81 / 4184.0 / 0.25) * 1.15
	if math.Abs(*updated.KcalPerKgMeter-want) > 1e-12 {
		t.Fatalf("expected multiplier %f, got %f", want, *updated.KcalPerKgMeter)
	}
}

func TestUpdateExerciseOnlyCreator(t *testing.T) {
	ex := anaerobicExercise(0.4, 0.2, 1.15)
	ex.ID = 1
	ex.CreatorID = int64Ptr(5)

	store := &stubExerciseStore{exercises: map[int64]*models.Exercise{1: ex}}
	service := NewCatalogService(&stubFoodStore{}, store)

	if _, err := service.UpdateExercise(context.Background(), 6, 1, UpdateExerciseInput{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdateFoodOfficialEntriesImmutable(t *testing.T) {
	store := &stubFoodStore{foods: map[int64]*models.Food{
		1: {ID: 1, Name: "Rice", KcalPer100g: 130},
	}}
	service := NewCatalogService(store, &stubExerciseStore{})

	if _, err := service.UpdateFood(context.Background(), 5, 1, repository.UpdateFoodInput{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for creatorless food, got %v", err)
	}
}

func TestCreateFoodValidatesInput(t *testing.T) {
	service := NewCatalogService(&stubFoodStore{}, &stubExerciseStore{})

	if _, err := service.CreateFood(context.Background(), 5, CreateFoodInput{Name: " ", Category: "grain"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
	if _, err := service.CreateFood(context.Background(), 5, CreateFoodInput{Name: "Rice", Category: "grain", KcalPer100g: -1}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative kcal, got %v", err)
	}
}

func TestGetPoolKeysById(t *testing.T) {
	foodStore := &stubFoodStore{foods: map[int64]*models.Food{
		1: {ID: 1, Name: "Rice"},
		2: {ID: 2, Name: "Egg"},
	}}
	ex := anaerobicExercise(0.4, 0.2, 1.15)
	ex.ID = 9
	exerciseStore := &stubExerciseStore{exercises: map[int64]*models.Exercise{9: ex}}
	service := NewCatalogService(foodStore, exerciseStore)

	pool, err := service.GetPool(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetPool: %v", err)
	}
	if len(pool.Foods) != 2 || len(pool.Exercises) != 1 {
		t.Fatalf("unexpected pool sizes: foods=%d exercises=%d", len(pool.Foods), len(pool.Exercises))
	}
	if pool.Foods[2].Name != "Egg" {
		t.Fatalf("expected foods keyed by id, got %+v", pool.Foods)
	}
}
