package repository

import (
	"context"

	"github.com/EricStrohmaier/motivations-bot/internal/models"
)

type GoalProgressRepository struct {
	db DBTX
}

func NewGoalProgressRepository(db DBTX) *GoalProgressRepository {
	return &GoalProgressRepository{db: db}
}

func (r *GoalProgressRepository) SaveGoalProgress(
	ctx context.Context,
	userID int64,
	goal string,
	status models.GoalStatus,
	notes string,
) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO goal_progress (
			user_id, goal, status, start_date, completion_date, notes
		) VALUES (
			$1, $2, $3, CURRENT_TIMESTAMP,
			CASE WHEN $3 = 'completed' THEN CURRENT_TIMESTAMP ELSE NULL END,
			$4
		)
	`, userID, goal, status, notes)
	return err
}

func (r *GoalProgressRepository) GetGoalProgress(
	ctx context.Context,
	userID int64,
) ([]models.GoalProgress, error) {
	query := `
		SELECT id, user_id, goal, status, start_date, completion_date, COALESCE(notes, '')
		FROM goal_progress
		WHERE user_id = $1
		ORDER BY start_date DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]models.GoalProgress, 0)
	for rows.Next() {
		var record models.GoalProgress
		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.Goal,
			&record.Status,
			&record.StartDate,
			&record.CompletionDate,
			&record.Notes,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
