package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Guotai812/FitTrack-Back/internal/models"
)

// ExerciseLogRecord is one row of a user's long-term exercise history,
// mirroring the entry embedded in that day's DailyRecord. Payload is the
// duration (aerobic) or the set groups (anaerobic), keyed by the shared
// log id.
type ExerciseLogRecord struct {
	ID         int64                  `json:"id"`
	UserID     int64                  `json:"user_id"`
	ExerciseID int64                  `json:"exercise_id"`
	Variant    models.ExerciseVariant `json:"variant"`
	LogID      string                 `json:"log_id"`
	Date       string                 `json:"date"`
	Payload    json.RawMessage        `json:"payload"`
	CreatedAt  time.Time              `json:"created_at"`
}

type AppendExerciseLogInput struct {
	UserID     int64
	ExerciseID int64
	Variant    models.ExerciseVariant
	LogID      string
	Date       string
	Payload    any
}

type ExerciseLogRepository struct {
	db DBTX
}

func NewExerciseLogRepository(db DBTX) *ExerciseLogRepository {
	return &ExerciseLogRepository{db: db}
}

func (r *ExerciseLogRepository) Append(ctx context.Context, input AppendExerciseLogInput) error {
	payload, err := json.Marshal(input.Payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	query := `
		INSERT INTO exercise_logs (user_id, exercise_id, variant, log_id, date, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.Exec(ctx, query,
		input.UserID, input.ExerciseID, input.Variant, input.LogID, input.Date, payload)
	return err
}

// Upsert rewrites the payload of the history row keyed by (user_id, log_id),
// inserting the row if it is missing. Appends are best-effort, so a record
// entry may exist without its history row; an edit heals that gap instead of
// failing on it.
func (r *ExerciseLogRepository) Upsert(ctx context.Context, input AppendExerciseLogInput) error {
	payload, err := json.Marshal(input.Payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	query := `
		INSERT INTO exercise_logs (user_id, exercise_id, variant, log_id, date, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, log_id) DO UPDATE SET payload = EXCLUDED.payload
	`
	_, err = r.db.Exec(ctx, query,
		input.UserID, input.ExerciseID, input.Variant, input.LogID, input.Date, payload)
	return err
}

func (r *ExerciseLogRepository) Delete(ctx context.Context, userID int64, logID string) error {
	query := `DELETE FROM exercise_logs WHERE user_id = $1 AND log_id = $2`
	_, err := r.db.Exec(ctx, query, userID, logID)
	return err
}

func (r *ExerciseLogRepository) ListByUserAndExercise(ctx context.Context, userID, exerciseID int64) ([]ExerciseLogRecord, error) {
	query := `
		SELECT id, user_id, exercise_id, variant, log_id, date, payload, created_at
		FROM exercise_logs
		WHERE user_id = $1 AND exercise_id = $2
		ORDER BY date, id
	`
	rows, err := r.db.Query(ctx, query, userID, exerciseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []ExerciseLogRecord
	for rows.Next() {
		var rec ExerciseLogRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.ExerciseID,
			&rec.Variant,
			&rec.LogID,
			&rec.Date,
			&rec.Payload,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, rec)
	}
	return logs, rows.Err()
}
