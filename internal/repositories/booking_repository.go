package repositories

import (
	"context"
	"database/sql"
	"errors"

	"nyumbaBack/internal/models"
)

type BookingRepository struct {
	DB *sql.DB
}

const bookingSelect = `
	SELECT b.id, b.target_type, b.target_id,
	       CASE b.target_type WHEN 'service' THEN COALESCE(s.title, '') ELSE COALESCE(p.title, '') END AS target_title,
	       b.client_id, b.provider_id, b.scheduled_at, b.note, b.amount, b.status, b.paid,
	       b.created_at, b.updated_at,
	       c.id, c.name, c.surname, c.phone, c.avatar_path, c.review_rating, c.reviews_count,
	       pr.id, pr.name, pr.surname, pr.phone, pr.avatar_path, pr.review_rating, pr.reviews_count
	FROM bookings b
	JOIN users c ON c.id = b.client_id
	JOIN users pr ON pr.id = b.provider_id
	LEFT JOIN services s ON b.target_type = 'service' AND s.id = b.target_id
	LEFT JOIN properties p ON b.target_type = 'property' AND p.id = b.target_id
`

func scanBooking(row interface {
	Scan(dest ...any) error
}) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.TargetType, &b.TargetID, &b.TargetTitle,
		&b.ClientID, &b.ProviderID, &b.ScheduledAt, &b.Note, &b.Amount, &b.Status, &b.Paid,
		&b.CreatedAt, &b.UpdatedAt,
		&b.Client.ID, &b.Client.Name, &b.Client.Surname, &b.Client.Phone, &b.Client.AvatarPath,
		&b.Client.ReviewRating, &b.Client.ReviewsCount,
		&b.Provider.ID, &b.Provider.Name, &b.Provider.Surname, &b.Provider.Phone, &b.Provider.AvatarPath,
		&b.Provider.ReviewRating, &b.Provider.ReviewsCount,
	)
	return b, err
}

func (r *BookingRepository) CreateBooking(ctx context.Context, b models.Booking) (models.Booking, error) {
	query := `
		INSERT INTO bookings (target_type, target_id, client_id, provider_id, scheduled_at, note, amount, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`
	result, err := r.DB.ExecContext(ctx, query,
		b.TargetType, b.TargetID, b.ClientID, b.ProviderID, b.ScheduledAt, b.Note, b.Amount, models.BookingPending)
	if err != nil {
		return models.Booking{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Booking{}, err
	}
	return r.GetBookingByID(ctx, int(id))
}

func (r *BookingRepository) GetBookingByID(ctx context.Context, id int) (models.Booking, error) {
	b, err := scanBooking(r.DB.QueryRowContext(ctx, bookingSelect+` WHERE b.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, models.ErrBookingNotFound
		}
		return models.Booking{}, err
	}
	return b, nil
}

func (r *BookingRepository) GetBookingsByClient(ctx context.Context, clientID int) ([]models.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, bookingSelect+` WHERE b.client_id = ? ORDER BY b.scheduled_at DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *BookingRepository) GetBookingsByProvider(ctx context.Context, providerID int) ([]models.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, bookingSelect+` WHERE b.provider_id = ? ORDER BY b.scheduled_at DESC`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func collectBookings(rows *sql.Rows) ([]models.Booking, error) {
	bookings := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// UpdateStatus writes the new status only when the booking is still in the
// expected current status, so concurrent transitions cannot race each other.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int, from, to string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET status = ?, updated_at = NOW() WHERE id = ? AND status = ?`,
		to, id, from)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrInvalidBookingState
	}
	return nil
}

func (r *BookingRepository) MarkPaid(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET paid = 1, updated_at = NOW() WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}

// CountByStatus feeds the admin dashboard.
func (r *BookingRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *BookingRepository) CountCreatedSince(ctx context.Context, daysAgo int) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE created_at >= DATE_SUB(NOW(), INTERVAL ? DAY)`, daysAgo).Scan(&count)
	return count, err
}
