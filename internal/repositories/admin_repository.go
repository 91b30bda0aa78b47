package repositories

import (
	"context"
	"database/sql"
)

// AdminRepository holds the counting queries that feed the dashboard and do
// not belong to any single entity repository.
type AdminRepository struct {
	DB *sql.DB
}

func (r *AdminRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func (r *AdminRepository) CountUsersByRole(ctx context.Context, role string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = ?`, role).Scan(&count)
	return count, err
}

func (r *AdminRepository) CountProperties(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties WHERE archived = 0`).Scan(&count)
	return count, err
}

func (r *AdminRepository) CountServices(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM services WHERE archived = 0`).Scan(&count)
	return count, err
}

func (r *AdminRepository) CountPendingListings(ctx context.Context) (int, error) {
	var count int
	query := `
		SELECT (SELECT COUNT(*) FROM properties WHERE verification_status = 'pending' AND archived = 0)
		     + (SELECT COUNT(*) FROM services WHERE verification_status = 'pending' AND archived = 0)
	`
	err := r.DB.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}

func (r *AdminRepository) CountSignupsSince(ctx context.Context, daysAgo int) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE created_at >= DATE_SUB(NOW(), INTERVAL ? DAY)`, daysAgo).Scan(&count)
	return count, err
}
