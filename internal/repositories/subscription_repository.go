package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"nyumbaBack/internal/models"
)

type SubscriptionRepository struct {
	DB *sql.DB
}

func (r *SubscriptionRepository) GetActiveSubscription(ctx context.Context, userID int) (models.Subscription, error) {
	var s models.Subscription
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, plan, slots, status, renews_at, created_at, updated_at
		FROM subscriptions
		WHERE user_id = ? AND status = 'active'
		ORDER BY renews_at DESC LIMIT 1`, userID).
		Scan(&s.ID, &s.UserID, &s.Plan, &s.Slots, &s.Status, &s.RenewsAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Subscription{}, models.ErrNoRecord
		}
		return models.Subscription{}, err
	}
	return s, nil
}

// ActivatePlan starts or extends a subscription after a successful payment.
// An existing active subscription of the same user is extended by a month
// and re-sized to the paid plan; otherwise a fresh row is inserted.
func (r *SubscriptionRepository) ActivatePlan(ctx context.Context, userID int, plan string, slots int, now time.Time) error {
	existing, err := r.GetActiveSubscription(ctx, userID)
	if err != nil && !errors.Is(err, models.ErrNoRecord) {
		return err
	}

	if err == nil {
		base := existing.RenewsAt
		if base.Before(now) {
			base = now
		}
		_, err = r.DB.ExecContext(ctx, `
			UPDATE subscriptions SET plan = ?, slots = ?, renews_at = ?, updated_at = NOW()
			WHERE id = ?`, plan, slots, base.AddDate(0, 1, 0), existing.ID)
		return err
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO subscriptions (user_id, plan, slots, status, renews_at, created_at)
		VALUES (?, ?, ?, 'active', ?, NOW())`, userID, plan, slots, now.AddDate(0, 1, 0))
	return err
}

// ArchiveExpiredProviderListings expires lapsed subscriptions and archives
// the listings of providers who no longer hold any active slots. Returns the
// number of subscriptions processed.
func (r *SubscriptionRepository) ArchiveExpiredProviderListings(ctx context.Context, now time.Time) (int, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id FROM subscriptions WHERE status = 'active' AND renews_at < ?`, now)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	type lapsed struct{ id, userID int }
	var expired []lapsed
	for rows.Next() {
		var l lapsed
		if err := rows.Scan(&l.id, &l.userID); err != nil {
			return 0, err
		}
		expired = append(expired, l)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	processed := 0
	for _, l := range expired {
		tx, err := r.DB.BeginTx(ctx, nil)
		if err != nil {
			return processed, err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE subscriptions SET status = 'expired', updated_at = NOW() WHERE id = ?`, l.id); err != nil {
			tx.Rollback()
			return processed, err
		}
		// Archive only when the user has no other active subscription.
		var stillActive int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM subscriptions WHERE user_id = ? AND status = 'active' AND renews_at >= ? AND id <> ?`,
			l.userID, now, l.id).Scan(&stillActive); err != nil {
			tx.Rollback()
			return processed, err
		}
		if stillActive == 0 {
			if _, err := tx.ExecContext(ctx,
				`UPDATE services SET archived = 1, updated_at = NOW() WHERE user_id = ? AND archived = 0`, l.userID); err != nil {
				tx.Rollback()
				return processed, err
			}
			if _, err := tx.ExecContext(ctx,
				`UPDATE properties SET archived = 1, updated_at = NOW() WHERE user_id = ? AND archived = 0`, l.userID); err != nil {
				tx.Rollback()
				return processed, err
			}
		}
		if err := tx.Commit(); err != nil {
			return processed, err
		}
		processed++
	}
	return processed, nil
}
