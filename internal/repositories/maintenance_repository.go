package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"nyumbaBack/internal/models"
)

type MaintenanceRepository struct {
	DB *sql.DB
}

const assetSelect = `
	SELECT a.id, a.property_id, p.user_id AS owner_id, a.name, a.description,
	       a.interval_days, a.last_serviced_at, a.next_due_at, a.notified_at,
	       a.created_at, a.updated_at
	FROM maintenance_assets a
	JOIN properties p ON p.id = a.property_id
`

func scanAsset(row interface {
	Scan(dest ...any) error
}) (models.MaintenanceAsset, error) {
	var a models.MaintenanceAsset
	err := row.Scan(
		&a.ID, &a.PropertyID, &a.OwnerID, &a.Name, &a.Description,
		&a.IntervalDays, &a.LastServicedAt, &a.NextDueAt, &a.NotifiedAt,
		&a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *MaintenanceRepository) CreateAsset(ctx context.Context, a models.MaintenanceAsset) (models.MaintenanceAsset, error) {
	result, err := r.DB.ExecContext(ctx, `
		INSERT INTO maintenance_assets (property_id, name, description, interval_days, last_serviced_at, next_due_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())`,
		a.PropertyID, a.Name, a.Description, a.IntervalDays, a.LastServicedAt, a.NextDueAt)
	if err != nil {
		return models.MaintenanceAsset{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.MaintenanceAsset{}, err
	}
	return r.GetAssetByID(ctx, int(id))
}

func (r *MaintenanceRepository) GetAssetByID(ctx context.Context, id int) (models.MaintenanceAsset, error) {
	a, err := scanAsset(r.DB.QueryRowContext(ctx, assetSelect+` WHERE a.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.MaintenanceAsset{}, models.ErrAssetNotFound
		}
		return models.MaintenanceAsset{}, err
	}
	return a, nil
}

func (r *MaintenanceRepository) GetAssetsByProperty(ctx context.Context, propertyID int) ([]models.MaintenanceAsset, error) {
	rows, err := r.DB.QueryContext(ctx, assetSelect+` WHERE a.property_id = ? ORDER BY a.next_due_at ASC`, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssets(rows)
}

func (r *MaintenanceRepository) GetAssetsByOwner(ctx context.Context, ownerID int) ([]models.MaintenanceAsset, error) {
	rows, err := r.DB.QueryContext(ctx, assetSelect+` WHERE p.user_id = ? ORDER BY a.next_due_at ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssets(rows)
}

func collectAssets(rows *sql.Rows) ([]models.MaintenanceAsset, error) {
	assets := []models.MaintenanceAsset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// GetDueAssets returns assets whose next service falls inside the reminder
// window and that have not been notified during the current cycle
// (notified_at predates the cycle start last_serviced_at, or is null).
func (r *MaintenanceRepository) GetDueAssets(ctx context.Context, deadline time.Time) ([]models.MaintenanceAsset, error) {
	rows, err := r.DB.QueryContext(ctx,
		assetSelect+` WHERE a.next_due_at <= ? AND (a.notified_at IS NULL OR a.notified_at < a.last_serviced_at)
		ORDER BY a.next_due_at ASC`, deadline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAssets(rows)
}

func (r *MaintenanceRepository) MarkNotified(ctx context.Context, assetID int, at time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE maintenance_assets SET notified_at = ?, updated_at = NOW() WHERE id = ?`, at, assetID)
	return err
}

// CompleteService resets the maintenance cycle from the given service date.
func (r *MaintenanceRepository) CompleteService(ctx context.Context, assetID int, servicedAt, nextDueAt time.Time) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE maintenance_assets
		SET last_serviced_at = ?, next_due_at = ?, notified_at = NULL, updated_at = NOW()
		WHERE id = ?`, servicedAt, nextDueAt, assetID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrAssetNotFound
	}
	return nil
}

func (r *MaintenanceRepository) UpdateAsset(ctx context.Context, a models.MaintenanceAsset) (models.MaintenanceAsset, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE maintenance_assets
		SET name = ?, description = ?, interval_days = ?, next_due_at = ?, updated_at = NOW()
		WHERE id = ?`, a.Name, a.Description, a.IntervalDays, a.NextDueAt, a.ID)
	if err != nil {
		return models.MaintenanceAsset{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.MaintenanceAsset{}, err
	}
	if affected == 0 {
		return models.MaintenanceAsset{}, models.ErrAssetNotFound
	}
	return r.GetAssetByID(ctx, a.ID)
}

func (r *MaintenanceRepository) DeleteAsset(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM maintenance_assets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrAssetNotFound
	}
	return nil
}
