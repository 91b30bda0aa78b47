package repositories

import (
	"context"
	"database/sql"
	"errors"

	"nyumbaBack/internal/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r *PaymentRepository) CreatePayment(ctx context.Context, p models.Payment) (models.Payment, error) {
	query := `
		INSERT INTO payments (reference, user_id, purpose, target_id, plan, amount, currency, payer_phone, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`
	result, err := r.DB.ExecContext(ctx, query,
		p.Reference, p.UserID, p.Purpose, p.TargetID, p.Plan, p.Amount, p.Currency, p.PayerPhone, models.PaymentPending)
	if err != nil {
		return models.Payment{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Payment{}, err
	}
	p.ID = int(id)
	p.Status = models.PaymentPending
	return p, nil
}

func (r *PaymentRepository) GetPaymentByReference(ctx context.Context, reference string) (models.Payment, error) {
	var p models.Payment
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, reference, user_id, purpose, target_id, plan, amount, currency, payer_phone, status, reason, created_at, updated_at
		FROM payments WHERE reference = ?`, reference).
		Scan(&p.ID, &p.Reference, &p.UserID, &p.Purpose, &p.TargetID, &p.Plan, &p.Amount, &p.Currency,
			&p.PayerPhone, &p.Status, &p.Reason, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Payment{}, models.ErrPaymentNotFound
		}
		return models.Payment{}, err
	}
	return p, nil
}

// UpdateStatus transitions the payment row out of PENDING. Terminal rows are
// left untouched so a late provider callback cannot flip a settled payment.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, reference, status string, reason *string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE payments SET status = ?, reason = ?, updated_at = NOW() WHERE reference = ? AND status = ?`,
		status, reason, reference, models.PaymentPending)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// RevertToPending undoes a SUCCESSFUL transition whose side effect (plan
// activation, booking mark-paid) did not land, so the next poll retries it.
func (r *PaymentRepository) RevertToPending(ctx context.Context, reference string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE payments SET status = ?, reason = NULL, updated_at = NOW() WHERE reference = ? AND status = ?`,
		models.PaymentPending, reference, models.PaymentSuccessful)
	return err
}

func (r *PaymentRepository) GetPaymentsByUser(ctx context.Context, userID int) ([]models.Payment, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, reference, user_id, purpose, target_id, plan, amount, currency, payer_phone, status, reason, created_at, updated_at
		FROM payments WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.Reference, &p.UserID, &p.Purpose, &p.TargetID, &p.Plan, &p.Amount, &p.Currency,
			&p.PayerPhone, &p.Status, &p.Reason, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// TotalRevenue sums successful payments for the admin dashboard.
func (r *PaymentRepository) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.DB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = ?`, models.PaymentSuccessful).Scan(&total)
	return total, err
}
