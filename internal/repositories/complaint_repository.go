package repositories

import (
	"context"
	"database/sql"

	"nyumbaBack/internal/models"
)

type ComplaintRepository struct {
	DB *sql.DB
}

func (r *ComplaintRepository) CreateComplaint(ctx context.Context, c models.Complaint) (models.Complaint, error) {
	result, err := r.DB.ExecContext(ctx, `
		INSERT INTO complaints (reporter_id, listing_type, listing_id, target_user_id, reason, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())`,
		c.ReporterID, c.ListingType, c.ListingID, c.TargetUserID, c.Reason)
	if err != nil {
		return models.Complaint{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Complaint{}, err
	}
	c.ID = int(id)
	return c, nil
}

func (r *ComplaintRepository) GetComplaints(ctx context.Context, onlyOpen bool) ([]models.Complaint, error) {
	query := `
		SELECT id, reporter_id, listing_type, listing_id, target_user_id, reason, resolved, created_at, resolved_at
		FROM complaints`
	if onlyOpen {
		query += ` WHERE resolved = 0`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	complaints := []models.Complaint{}
	for rows.Next() {
		var c models.Complaint
		if err := rows.Scan(&c.ID, &c.ReporterID, &c.ListingType, &c.ListingID, &c.TargetUserID,
			&c.Reason, &c.Resolved, &c.CreatedAt, &c.ResolvedAt); err != nil {
			return nil, err
		}
		complaints = append(complaints, c)
	}
	return complaints, rows.Err()
}

func (r *ComplaintRepository) ResolveComplaint(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE complaints SET resolved = 1, resolved_at = NOW() WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrComplaintNotFound
	}
	return nil
}

func (r *ComplaintRepository) DeleteComplaint(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM complaints WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrComplaintNotFound
	}
	return nil
}
