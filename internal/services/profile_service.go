package services

import (
	"context"
	"errors"
	"time"

	"github.com/Guotai812/FitTrack-Back/internal/models"
	"github.com/Guotai812/FitTrack-Back/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileService handles the one-time profile setup. Completion writes the
// profile and seeds today's daily record inside a single transaction: both
// become visible together or not at all.
type ProfileService struct {
	db          *pgxpool.Pool
	profileRepo *repository.UserProfileRepository
	loc         *time.Location

	now func() time.Time
}

func NewProfileService(db *pgxpool.Pool, profileRepo *repository.UserProfileRepository, loc *time.Location) *ProfileService {
	return &ProfileService{
		db:          db,
		profileRepo: profileRepo,
		loc:         loc,
		now:         time.Now,
	}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) CompleteSetup(ctx context.Context, userID int64, input ProfileInput) (*models.UserProfile, *models.DailyRecord, error) {
	now := s.now()

	target, err := ComputeCalorieTarget(input, now)
	if err != nil {
		return nil, nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if profile.IsCompleted {
		return nil, nil, ErrProfileCompleted
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txProfileRepo := repository.NewUserProfileRepository(tx)
	txRecordRepo := repository.NewDailyRecordRepository(tx)

	updated, err := txProfileRepo.CompleteSetup(ctx, userID, repository.CompleteProfileInput{
		WeightKG:   input.WeightKG,
		HeightCM:   input.HeightCM,
		BirthDate:  input.BirthDate,
		Gender:     input.Gender,
		Frequency:  input.Frequency,
		Goal:       input.Goal,
		TargetKcal: target,
	})
	if err != nil {
		// The completed-guard in the UPDATE matched no row: someone else
		// finished setup between our read and this write.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrProfileCompleted
		}
		return nil, nil, err
	}

	record, err := txRecordRepo.Create(ctx, repository.CreateDailyRecordInput{
		UserID:     userID,
		Date:       now.In(s.loc).Format("2006-01-02"),
		WeightKG:   input.WeightKG,
		HeightCM:   input.HeightCM,
		TargetKcal: target,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, nil, ErrConflict
		}
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return updated, record, nil
}
