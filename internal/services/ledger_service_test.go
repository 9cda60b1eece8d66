package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Guotai812/FitTrack-Back/internal/models"
	"github.com/Guotai812/FitTrack-Back/internal/repository"
	"github.com/jackc/pgx/v5"
)

type stubRecordStore struct {
	records map[string]*models.DailyRecord
	creates int
	saves   int
	nextID  int64
}

func newStubRecordStore() *stubRecordStore {
	return &stubRecordStore{records: map[string]*models.DailyRecord{}}
}

func (s *stubRecordStore) FindByUserAndDate(_ context.Context, _ int64, date string) (*models.DailyRecord, error) {
	record, ok := s.records[date]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return record, nil
}

func (s *stubRecordStore) Create(_ context.Context, input repository.CreateDailyRecordInput) (*models.DailyRecord, error) {
	s.creates++
	s.nextID++
	record := &models.DailyRecord{
		ID:          s.nextID,
		UserID:      input.UserID,
		Date:        input.Date,
		WeightKG:    input.WeightKG,
		HeightCM:    input.HeightCM,
		TargetKcal:  input.TargetKcal,
		CurrentKcal: float64(input.TargetKcal),
		Diets:       map[models.MealSlot]*models.MealEntries{},
	}
	s.records[input.Date] = record
	return record, nil
}

func (s *stubRecordStore) Save(_ context.Context, _ *models.DailyRecord) error {
	s.saves++
	return nil
}

type stubProfileReader struct {
	profile *models.UserProfile
}

func (s *stubProfileReader) GetByUserID(_ context.Context, _ int64) (*models.UserProfile, error) {
	if s.profile == nil {
		return nil, pgx.ErrNoRows
	}
	return s.profile, nil
}

type stubHistoryRepo struct {
	appended []repository.AppendExerciseLogInput
	listed   []repository.ExerciseLogRecord
	fail     error
}

func (s *stubHistoryRepo) Append(_ context.Context, input repository.AppendExerciseLogInput) error {
	if s.fail != nil {
		return s.fail
	}
	s.appended = append(s.appended, input)
	return nil
}

func (s *stubHistoryRepo) ListByUserAndExercise(_ context.Context, _, _ int64) ([]repository.ExerciseLogRecord, error) {
	return s.listed, nil
}

type ledgerFixture struct {
	service *LedgerService
	store   *stubRecordStore
	profile *stubProfileReader
	history *stubHistoryRepo
	now     *time.Time
}

func setupLedgerService(t *testing.T) *ledgerFixture {
	t.Helper()

	store := newStubRecordStore()
	profile := &stubProfileReader{profile: &models.UserProfile{
		UserID:      1,
		WeightKG:    70,
		HeightCM:    175,
		TargetKcal:  2000,
		IsCompleted: true,
	}}
	foods := &stubFoodLookup{foods: map[int64]*models.Food{
		7: {ID: 7, KcalPer100g: 250},
	}}
	exercises := &stubExerciseLookup{exercises: map[int64]*models.Exercise{
		3: {ID: 3, Variant: models.VariantAerobic, MET: floatPtr(8)},
		4: anaerobicExercise(1.0, 0.2, 1.15),
	}}
	exercises.exercises[4].ID = 4
	history := &stubHistoryRepo{}

	now := time.Date(2026, 9, 1, 18, 30, 0, 0, time.UTC)
	service := NewLedgerService(nil, store, profile, foods, exercises, history, time.UTC)
	service.now = func() time.Time { return now }
	service.newLogID = func() string { return "log-1" }

	return &ledgerFixture{
		service: service,
		store:   store,
		profile: profile,
		history: history,
		now:     &now,
	}
}

func TestGetOrCreateDailyRecordSeedsFromProfile(t *testing.T) {
	f := setupLedgerService(t)

	record, err := f.service.GetOrCreateDailyRecord(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetOrCreateDailyRecord: %v", err)
	}
	if record.Date != "2026-09-01" {
		t.Fatalf("expected date 2026-09-01, got %s", record.Date)
	}
	if record.TargetKcal != 2000 || record.CurrentKcal != 2000 {
		t.Fatalf("expected fresh record seeded at target, got target=%d current=%f", record.TargetKcal, record.CurrentKcal)
	}

	again, err := f.service.GetOrCreateDailyRecord(context.Background(), 1)
	if err != nil {
		t.Fatalf("second GetOrCreateDailyRecord: %v", err)
	}
	if again.ID != record.ID {
		t.Fatal("expected the same record on repeat access")
	}
	if f.store.creates != 1 {
		t.Fatalf("expected exactly one create, got %d", f.store.creates)
	}
}

func TestGetOrCreateDailyRecordRequiresCompletedProfile(t *testing.T) {
	f := setupLedgerService(t)
	f.profile.profile.IsCompleted = false

	if _, err := f.service.GetOrCreateDailyRecord(context.Background(), 1); !errors.Is(err, ErrProfileIncomplete) {
		t.Fatalf("expected ErrProfileIncomplete, got %v", err)
	}
	if f.store.creates != 0 {
		t.Fatal("expected no record to be created")
	}
}

func TestGetOrCreateDailyRecordSplitsDays(t *testing.T) {
	f := setupLedgerService(t)

	first, err := f.service.GetOrCreateDailyRecord(context.Background(), 1)
	if err != nil {
		t.Fatalf("day one: %v", err)
	}

	*f.now = f.now.AddDate(0, 0, 1)

	second, err := f.service.GetOrCreateDailyRecord(context.Background(), 1)
	if err != nil {
		t.Fatalf("day two: %v", err)
	}
	if first.Date == second.Date || first.ID == second.ID {
		t.Fatalf("expected distinct records per day, got %s and %s", first.Date, second.Date)
	}
	if f.store.creates != 2 {
		t.Fatalf("expected two creates, got %d", f.store.creates)
	}
}

func TestLogDietRecomputesBalance(t *testing.T) {
	f := setupLedgerService(t)

	// 200g at 250 kcal/100g = 500 kcal consumed
	record, err := f.service.LogDiet(context.Background(), 1, models.MealBreakfast, models.SubSlotMain, 7, 200)
	if err != nil {
		t.Fatalf("LogDiet: %v", err)
	}
	if math.Abs(record.CurrentKcal-1500) > 1e-9 {
		t.Fatalf("expected balance 1500, got %f", record.CurrentKcal)
	}
	if f.store.saves != 1 {
		t.Fatalf("expected one save, got %d", f.store.saves)
	}
}

func TestLogThenRemoveDietRestoresBalance(t *testing.T) {
	f := setupLedgerService(t)

	if _, err := f.service.LogDiet(context.Background(), 1, models.MealBreakfast, models.SubSlotMain, 7, 200); err != nil {
		t.Fatalf("LogDiet: %v", err)
	}
	record, err := f.service.RemoveDiet(context.Background(), 1, models.MealBreakfast, models.SubSlotMain, 7)
	if err != nil {
		t.Fatalf("RemoveDiet: %v", err)
	}
	if math.Abs(record.CurrentKcal-2000) > 1e-9 {
		t.Fatalf("expected balance restored to 2000, got %f", record.CurrentKcal)
	}
}

func TestLogDietUnknownFood(t *testing.T) {
	f := setupLedgerService(t)

	if _, err := f.service.LogDiet(context.Background(), 1, models.MealBreakfast, models.SubSlotMain, 99, 100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if f.store.saves != 0 {
		t.Fatal("expected no save for an unknown food")
	}
}

func TestLogDietRejectsInvalidSlot(t *testing.T) {
	f := setupLedgerService(t)

	if _, err := f.service.LogDiet(context.Background(), 1, "brunch", models.SubSlotMain, 7, 100); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := f.service.LogDiet(context.Background(), 1, models.MealLunch, models.SubSlotMain, 7, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero grams, got %v", err)
	}
}

func TestEditDietMissingEntryLeavesBalance(t *testing.T) {
	f := setupLedgerService(t)

	if _, err := f.service.GetOrCreateDailyRecord(context.Background(), 1); err != nil {
		t.Fatalf("GetOrCreateDailyRecord: %v", err)
	}

	if _, err := f.service.EditDiet(context.Background(), 1, models.MealDinner, models.SubSlotMain, 7, 120); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if f.store.saves != 0 {
		t.Fatal("expected no save for a failed edit")
	}
	if f.store.records["2026-09-01"].CurrentKcal != 2000 {
		t.Fatal("expected balance untouched by failed edit")
	}
}

func TestLogExerciseAerobic(t *testing.T) {
	f := setupLedgerService(t)

	record, logID, err := f.service.LogExercise(context.Background(), 1, LogExerciseInput{
		ExerciseID:      3,
		Variant:         models.VariantAerobic,
		DurationMinutes: 30,
	})
	if err != nil {
		t.Fatalf("LogExercise: %v", err)
	}
	if logID != "log-1" {
		t.Fatalf("expected generated log id, got %q", logID)
	}
	// 30 min x MET 8 x 3.5 x 70kg / 200 = 294 expended
	if math.Abs(record.CurrentKcal-2294) > 1e-9 {
		t.Fatalf("expected balance 2294, got %f", record.CurrentKcal)
	}
	if len(f.history.appended) != 1 {
		t.Fatalf("expected one history append, got %d", len(f.history.appended))
	}
	if f.history.appended[0].LogID != "log-1" || f.history.appended[0].Date != "2026-09-01" {
		t.Fatalf("unexpected history entry: %+v", f.history.appended[0])
	}
}

func TestLogExerciseHistoryFailureIsNonFatal(t *testing.T) {
	f := setupLedgerService(t)
	f.history.fail = errors.New("history unavailable")

	record, _, err := f.service.LogExercise(context.Background(), 1, LogExerciseInput{
		ExerciseID:      3,
		Variant:         models.VariantAerobic,
		DurationMinutes: 30,
	})
	if err != nil {
		t.Fatalf("expected record write to succeed despite history failure, got %v", err)
	}
	if len(record.Exercises.Aerobic) != 1 {
		t.Fatal("expected the log entry to be recorded")
	}
}

func TestLogExerciseVariantMismatch(t *testing.T) {
	f := setupLedgerService(t)

	_, _, err := f.service.LogExercise(context.Background(), 1, LogExerciseInput{
		ExerciseID: 3,
		Variant:    models.VariantAnaerobic,
		Sets:       []models.SetGroup{{WeightKG: 50, Reps: 5, Sets: 3}},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for variant mismatch, got %v", err)
	}
}

func TestEditExerciseUnknownLogID(t *testing.T) {
	f := setupLedgerService(t)

	if _, _, err := f.service.LogExercise(context.Background(), 1, LogExerciseInput{
		ExerciseID:      3,
		Variant:         models.VariantAerobic,
		DurationMinutes: 30,
	}); err != nil {
		t.Fatalf("LogExercise: %v", err)
	}
	savesAfterLog := f.store.saves

	_, err := f.service.EditExercise(context.Background(), 1, "no-such-log", EditExerciseInput{
		Variant:         models.VariantAerobic,
		DurationMinutes: 60,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if f.store.saves != savesAfterLog {
		t.Fatal("expected no save for a failed edit")
	}
	if f.store.records["2026-09-01"].Exercises.Aerobic[0].DurationMinutes != 30 {
		t.Fatal("expected the logged entry untouched by failed edit")
	}
}

func TestEditExerciseRejectsInvalidInput(t *testing.T) {
	f := setupLedgerService(t)

	if _, _, err := f.service.LogExercise(context.Background(), 1, LogExerciseInput{
		ExerciseID:      3,
		Variant:         models.VariantAerobic,
		DurationMinutes: 30,
	}); err != nil {
		t.Fatalf("LogExercise: %v", err)
	}

	if _, err := f.service.EditExercise(context.Background(), 1, "log-1", EditExerciseInput{
		Variant:         models.VariantAerobic,
		DurationMinutes: 0,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero duration, got %v", err)
	}
	if _, err := f.service.EditExercise(context.Background(), 1, "log-1", EditExerciseInput{
		Variant: "stretching",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown variant, got %v", err)
	}
}

func TestLogExerciseAnaerobicValidatesSets(t *testing.T) {
	f := setupLedgerService(t)

	cases := [][]models.SetGroup{
		nil,
		{{WeightKG: 0, Reps: 5, Sets: 3}},
		{{WeightKG: 50, Reps: 0, Sets: 3}},
	}
	for _, sets := range cases {
		_, _, err := f.service.LogExercise(context.Background(), 1, LogExerciseInput{
			ExerciseID: 4,
			Variant:    models.VariantAnaerobic,
			Sets:       sets,
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for sets %+v, got %v", sets, err)
		}
	}
}
