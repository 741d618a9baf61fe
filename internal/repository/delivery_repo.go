package repository

import (
	"context"
)

// DeliveryRepository is the dedup ledger for scheduled notifications.
// A row per (user, trigger, goal, local hour bucket) turns the
// at-most-once-per-hour assumption into a guarantee: re-running the
// poller inside the same clock hour finds the ledger entry and skips
// the send.
type DeliveryRepository struct {
	db DBTX
}

func NewDeliveryRepository(db DBTX) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

// WasDelivered reports whether the trigger already fired for this user
// in the given local calendar hour. goalID is empty for non-goal
// triggers.
func (r *DeliveryRepository) WasDelivered(
	ctx context.Context,
	userID int64,
	trigger string,
	goalID string,
	bucket string,
) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM notification_deliveries
			WHERE user_id = $1 AND trigger_kind = $2 AND goal_id = $3 AND bucket = $4
		)
	`, userID, trigger, goalID, bucket).Scan(&exists)
	return exists, err
}

// RecordDelivery writes the ledger entry after a successful send. The
// unique index makes a concurrent duplicate a no-op.
func (r *DeliveryRepository) RecordDelivery(
	ctx context.Context,
	userID int64,
	trigger string,
	goalID string,
	bucket string,
) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notification_deliveries (user_id, trigger_kind, goal_id, bucket)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, trigger_kind, goal_id, bucket) DO NOTHING
	`, userID, trigger, goalID, bucket)
	return err
}
