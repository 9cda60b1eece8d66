package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Guotai812/FitTrack-Back/internal/models"
	"github.com/Guotai812/FitTrack-Back/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrForbidden         = errors.New("forbidden")
	ErrProfileIncomplete = errors.New("profile incomplete")
	ErrProfileCompleted  = errors.New("profile already completed")
)

type dailyRecordStore interface {
	FindByUserAndDate(ctx context.Context, userID int64, date string) (*models.DailyRecord, error)
	Create(ctx context.Context, input repository.CreateDailyRecordInput) (*models.DailyRecord, error)
	Save(ctx context.Context, record *models.DailyRecord) error
}

type profileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
}

type exerciseHistoryAppender interface {
	Append(ctx context.Context, input repository.AppendExerciseLogInput) error
	ListByUserAndExercise(ctx context.Context, userID, exerciseID int64) ([]repository.ExerciseLogRecord, error)
}

// LedgerService owns the daily calorie balance. Every mutation funnels
// through recompute: the balance is always a pure function of the current
// entry set, never an incrementally adjusted number.
type LedgerService struct {
	db           *pgxpool.Pool
	recordRepo   dailyRecordStore
	profileRepo  profileReader
	foodRepo     FoodLookup
	exerciseRepo ExerciseLookup
	historyRepo  exerciseHistoryAppender
	loc          *time.Location

	now      func() time.Time
	newLogID func() string
}

func NewLedgerService(
	db *pgxpool.Pool,
	recordRepo dailyRecordStore,
	profileRepo profileReader,
	foodRepo FoodLookup,
	exerciseRepo ExerciseLookup,
	historyRepo exerciseHistoryAppender,
	loc *time.Location,
) *LedgerService {
	return &LedgerService{
		db:           db,
		recordRepo:   recordRepo,
		profileRepo:  profileRepo,
		foodRepo:     foodRepo,
		exerciseRepo: exerciseRepo,
		historyRepo:  historyRepo,
		loc:          loc,
		now:          time.Now,
		newLogID:     uuid.NewString,
	}
}

// DateKey formats the day key for t in the configured reference zone. One
// zone decides every day boundary, regardless of deployment locale.
func (s *LedgerService) DateKey(t time.Time) string {
	return t.In(s.loc).Format("2006-01-02")
}

// GetOrCreateDailyRecord lazily creates the day's record, seeded from the
// profile's current target and body weight. The seed is frozen: a profile
// change later in the day does not touch an existing record.
func (s *LedgerService) GetOrCreateDailyRecord(ctx context.Context, userID int64) (*models.DailyRecord, error) {
	date := s.DateKey(s.now())

	record, err := s.recordRepo.FindByUserAndDate(ctx, userID, date)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !profile.IsCompleted {
		return nil, ErrProfileIncomplete
	}

	record, err = s.recordRepo.Create(ctx, repository.CreateDailyRecordInput{
		UserID:     userID,
		Date:       date,
		WeightKG:   profile.WeightKG,
		HeightCM:   profile.HeightCM,
		TargetKcal: profile.TargetKcal,
	})
	if err != nil {
		// Lost a create race for the same day: the winner's record is the
		// one to use.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return s.recordRepo.FindByUserAndDate(ctx, userID, date)
		}
		return nil, err
	}
	return record, nil
}

func (s *LedgerService) recompute(ctx context.Context, record *models.DailyRecord) {
	consumed := TotalConsumedKcal(ctx, s.foodRepo, record)
	expended := TotalExpenditure(ctx, s.exerciseRepo, record.Exercises, record.WeightKG)
	record.CurrentKcal = float64(record.TargetKcal) - consumed + expended
}

func (s *LedgerService) LogDiet(ctx context.Context, userID int64, meal models.MealSlot, sub models.SubSlot, foodID int64, grams float64) (*models.DailyRecord, error) {
	if !models.ValidMealSlot(meal) || !models.ValidSubSlot(sub) || grams <= 0 {
		return nil, ErrInvalidInput
	}
	if _, err := s.foodRepo.GetByID(ctx, foodID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	record, err := s.GetOrCreateDailyRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	AddOrMergeDietEntry(record, meal, sub, foodID, grams)
	s.recompute(ctx, record)
	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *LedgerService) EditDiet(ctx context.Context, userID int64, meal models.MealSlot, sub models.SubSlot, foodID int64, grams float64) (*models.DailyRecord, error) {
	if !models.ValidMealSlot(meal) || !models.ValidSubSlot(sub) || grams <= 0 {
		return nil, ErrInvalidInput
	}

	record, err := s.GetOrCreateDailyRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := EditDietEntry(record, meal, sub, foodID, grams); err != nil {
		return nil, err
	}
	s.recompute(ctx, record)
	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *LedgerService) RemoveDiet(ctx context.Context, userID int64, meal models.MealSlot, sub models.SubSlot, foodID int64) (*models.DailyRecord, error) {
	if !models.ValidMealSlot(meal) || !models.ValidSubSlot(sub) {
		return nil, ErrInvalidInput
	}

	record, err := s.GetOrCreateDailyRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	RemoveDietEntry(record, meal, sub, foodID)
	s.recompute(ctx, record)
	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

type LogExerciseInput struct {
	ExerciseID      int64
	Variant         models.ExerciseVariant
	DurationMinutes float64
	Sets            []models.SetGroup
}

func validateSetGroups(sets []models.SetGroup) bool {
	if len(sets) == 0 {
		return false
	}
	for _, group := range sets {
		if group.WeightKG <= 0 || group.Reps <= 0 || group.Sets <= 0 {
			return false
		}
	}
	return true
}

// LogExercise appends a log entry to today's record and mirrors it into the
// user's long-term history. The record write is authoritative; a failed
// history append is logged but does not fail the request.
func (s *LedgerService) LogExercise(ctx context.Context, userID int64, input LogExerciseInput) (*models.DailyRecord, string, error) {
	switch input.Variant {
	case models.VariantAerobic:
		if input.DurationMinutes <= 0 {
			return nil, "", ErrInvalidInput
		}
	case models.VariantAnaerobic:
		if !validateSetGroups(input.Sets) {
			return nil, "", ErrInvalidInput
		}
	default:
		return nil, "", ErrInvalidInput
	}

	ex, err := s.exerciseRepo.GetByID(ctx, input.ExerciseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	if ex.Variant != input.Variant {
		return nil, "", ErrInvalidInput
	}

	record, err := s.GetOrCreateDailyRecord(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	logID := s.newLogID()
	var payload any
	if input.Variant == models.VariantAerobic {
		record.Exercises.Aerobic = append(record.Exercises.Aerobic, models.AerobicLogEntry{
			LogID:           logID,
			ExerciseID:      input.ExerciseID,
			DurationMinutes: input.DurationMinutes,
		})
		payload = input.DurationMinutes
	} else {
		record.Exercises.Anaerobic = append(record.Exercises.Anaerobic, models.AnaerobicLogEntry{
			LogID:      logID,
			ExerciseID: input.ExerciseID,
			Sets:       input.Sets,
		})
		payload = input.Sets
	}

	s.recompute(ctx, record)
	if err := s.recordRepo.Save(ctx, record); err != nil {
		return nil, "", err
	}

	if err := s.historyRepo.Append(ctx, repository.AppendExerciseLogInput{
		UserID:     userID,
		ExerciseID: input.ExerciseID,
		Variant:    input.Variant,
		LogID:      logID,
		Date:       record.Date,
		Payload:    payload,
	}); err != nil {
		log.Printf("exercise history append failed for log %s: %v", logID, err)
	}

	return record, logID, nil
}

type EditExerciseInput struct {
	Variant         models.ExerciseVariant
	DurationMinutes float64
	Sets            []models.SetGroup
}

// EditExercise overwrites the logged value of the entry with the given log
// id, then recomputes the balance. The day record and the history row
// change together or not at all.
func (s *LedgerService) EditExercise(ctx context.Context, userID int64, logID string, input EditExerciseInput) (*models.DailyRecord, error) {
	record, err := s.GetOrCreateDailyRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		payload    any
		exerciseID int64
	)
	switch input.Variant {
	case models.VariantAerobic:
		if input.DurationMinutes <= 0 {
			return nil, ErrInvalidInput
		}
		entry := findAerobicEntry(record.Exercises.Aerobic, logID)
		if entry == nil {
			return nil, ErrNotFound
		}
		entry.DurationMinutes = input.DurationMinutes
		payload = input.DurationMinutes
		exerciseID = entry.ExerciseID
	case models.VariantAnaerobic:
		if !validateSetGroups(input.Sets) {
			return nil, ErrInvalidInput
		}
		entry := findAnaerobicEntry(record.Exercises.Anaerobic, logID)
		if entry == nil {
			return nil, ErrNotFound
		}
		entry.Sets = input.Sets
		payload = input.Sets
		exerciseID = entry.ExerciseID
	default:
		return nil, ErrInvalidInput
	}

	s.recompute(ctx, record)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txRecordRepo := repository.NewDailyRecordRepository(tx)
	txHistoryRepo := repository.NewExerciseLogRepository(tx)

	if err := txRecordRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	if err := txHistoryRepo.Upsert(ctx, repository.AppendExerciseLogInput{
		UserID:     userID,
		ExerciseID: exerciseID,
		Variant:    input.Variant,
		LogID:      logID,
		Date:       record.Date,
		Payload:    payload,
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return record, nil
}

// ExerciseHistory lists every logged entry of one exercise across days.
func (s *LedgerService) ExerciseHistory(ctx context.Context, userID, exerciseID int64) ([]repository.ExerciseLogRecord, error) {
	return s.historyRepo.ListByUserAndExercise(ctx, userID, exerciseID)
}

// RemoveExercise deletes the entry with the given log id from today's
// record and from the user's history in one transaction.
func (s *LedgerService) RemoveExercise(ctx context.Context, userID int64, variant models.ExerciseVariant, logID string) (*models.DailyRecord, error) {
	record, err := s.GetOrCreateDailyRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	var removed bool
	switch variant {
	case models.VariantAerobic:
		record.Exercises.Aerobic, removed = removeAerobicEntry(record.Exercises.Aerobic, logID)
	case models.VariantAnaerobic:
		record.Exercises.Anaerobic, removed = removeAnaerobicEntry(record.Exercises.Anaerobic, logID)
	default:
		return nil, ErrInvalidInput
	}
	if !removed {
		return nil, ErrNotFound
	}

	s.recompute(ctx, record)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txRecordRepo := repository.NewDailyRecordRepository(tx)
	txHistoryRepo := repository.NewExerciseLogRepository(tx)

	if err := txRecordRepo.Save(ctx, record); err != nil {
		return nil, err
	}
	if err := txHistoryRepo.Delete(ctx, userID, logID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return record, nil
}
