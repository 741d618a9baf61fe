package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/EricStrohmaier/motivations-bot/internal/models"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// SaveUser upserts the whole profile keyed by user id. Goals and custom
// motivation messages travel as jsonb alongside the scalar columns.
func (r *UserRepository) SaveUser(ctx context.Context, profile *models.UserProfile) error {
	goals, err := json.Marshal(profile.Goals)
	if err != nil {
		return fmt.Errorf("marshal goals: %w", err)
	}
	messages := profile.CustomMotivationMessages
	if messages == nil {
		messages = []string{}
	}
	custom, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("marshal custom messages: %w", err)
	}

	query := `
		INSERT INTO users (
			user_id, username, goals, motivation_frequency,
			timezone, check_in_enabled, last_message_date, custom_motivation_messages
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			goals = EXCLUDED.goals,
			motivation_frequency = EXCLUDED.motivation_frequency,
			timezone = EXCLUDED.timezone,
			check_in_enabled = EXCLUDED.check_in_enabled,
			last_message_date = EXCLUDED.last_message_date,
			custom_motivation_messages = EXCLUDED.custom_motivation_messages
	`
	_, err = r.db.Exec(ctx, query,
		profile.UserID,
		profile.Username,
		goals,
		profile.MotivationFrequency,
		profile.Timezone,
		profile.CheckInEnabled,
		profile.LastMessageDate,
		custom,
	)
	return err
}

func (r *UserRepository) GetUser(ctx context.Context, userID int64) (*models.UserProfile, error) {
	query := `
		SELECT user_id, username, goals, motivation_frequency,
		       timezone, check_in_enabled, last_message_date, custom_motivation_messages
		FROM users
		WHERE user_id = $1
	`
	profile, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *UserRepository) GetAllUsers(ctx context.Context) ([]models.UserProfile, error) {
	query := `
		SELECT user_id, username, goals, motivation_frequency,
		       timezone, check_in_enabled, last_message_date, custom_motivation_messages
		FROM users
		ORDER BY user_id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.UserProfile, 0)
	for rows.Next() {
		profile, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func scanUser(row pgx.Row) (*models.UserProfile, error) {
	var profile models.UserProfile
	var goals, custom []byte
	err := row.Scan(
		&profile.UserID,
		&profile.Username,
		&goals,
		&profile.MotivationFrequency,
		&profile.Timezone,
		&profile.CheckInEnabled,
		&profile.LastMessageDate,
		&custom,
	)
	if err != nil {
		return nil, err
	}
	if len(goals) > 0 {
		if err := json.Unmarshal(goals, &profile.Goals); err != nil {
			return nil, fmt.Errorf("unmarshal goals: %w", err)
		}
	}
	if profile.Goals == nil {
		profile.Goals = []models.Goal{}
	}
	if len(custom) > 0 {
		if err := json.Unmarshal(custom, &profile.CustomMotivationMessages); err != nil {
			return nil, fmt.Errorf("unmarshal custom messages: %w", err)
		}
	}
	return &profile, nil
}
