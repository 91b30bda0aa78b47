package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"nyumbaBack/internal/models"
)

type ServiceRepository struct {
	DB *sql.DB
}

const serviceSelect = `
	SELECT s.id, s.user_id, s.title, s.description, s.category_id, COALESCE(s.subcategory_id, 0),
	       COALESCE(cat.name, '') AS category_name, COALESCE(sub.name, '') AS subcategory_name,
	       s.price, s.price_type, s.city_id, COALESCE(c.name, '') AS city_name, s.address, s.images,
	       s.verification_status, s.rejection_reason, s.archived,
	       s.avg_rating, s.reviews_count, s.created_at, s.updated_at,
	       u.id, u.name, u.surname, u.phone, u.avatar_path, u.review_rating, u.reviews_count,
	       EXISTS(SELECT 1 FROM favorites f WHERE f.user_id = ? AND f.listing_type = 'service' AND f.listing_id = s.id) AS liked
	FROM services s
	JOIN users u ON u.id = s.user_id
	LEFT JOIN categories cat ON cat.id = s.category_id
	LEFT JOIN subcategories sub ON sub.id = s.subcategory_id
	LEFT JOIN cities c ON c.id = s.city_id
`

func scanService(row interface {
	Scan(dest ...any) error
}) (models.Service, error) {
	var s models.Service
	var imagesRaw []byte
	err := row.Scan(
		&s.ID, &s.UserID, &s.Title, &s.Description, &s.CategoryID, &s.SubcategoryID,
		&s.CategoryName, &s.SubcategoryName,
		&s.Price, &s.PriceType, &s.CityID, &s.CityName, &s.Address, &imagesRaw,
		&s.VerificationStatus, &s.RejectionReason, &s.Archived,
		&s.AvgRating, &s.ReviewsCount, &s.CreatedAt, &s.UpdatedAt,
		&s.User.ID, &s.User.Name, &s.User.Surname, &s.User.Phone, &s.User.AvatarPath,
		&s.User.ReviewRating, &s.User.ReviewsCount,
		&s.Liked,
	)
	if err != nil {
		return models.Service{}, err
	}
	s.Images = unmarshalImages(imagesRaw)
	return s, nil
}

func collectServices(rows *sql.Rows) ([]models.Service, error) {
	services := []models.Service{}
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

func (r *ServiceRepository) CreateService(ctx context.Context, s models.Service) (models.Service, error) {
	imagesJSON, err := marshalImages(s.Images)
	if err != nil {
		return models.Service{}, err
	}
	var subcategoryID any
	if s.SubcategoryID > 0 {
		subcategoryID = s.SubcategoryID
	}
	query := `
		INSERT INTO services
			(user_id, title, description, category_id, subcategory_id, price, price_type,
			 city_id, address, images, verification_status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`
	result, err := r.DB.ExecContext(ctx, query,
		s.UserID, s.Title, s.Description, s.CategoryID, subcategoryID,
		s.Price, s.PriceType, s.CityID, s.Address, imagesJSON, models.VerificationPending,
	)
	if err != nil {
		return models.Service{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Service{}, err
	}
	return r.GetServiceByID(ctx, int(id), s.UserID)
}

func (r *ServiceRepository) GetServiceByID(ctx context.Context, id, viewerID int) (models.Service, error) {
	row := r.DB.QueryRowContext(ctx, serviceSelect+` WHERE s.id = ?`, viewerID, id)
	s, err := scanService(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Service{}, models.ErrServiceNotFound
		}
		return models.Service{}, err
	}
	return s, nil
}

func (r *ServiceRepository) GetServicesByUserID(ctx context.Context, userID int) ([]models.Service, error) {
	rows, err := r.DB.QueryContext(ctx, serviceSelect+` WHERE s.user_id = ? ORDER BY s.created_at DESC`, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectServices(rows)
}

func (r *ServiceRepository) GetFilteredServices(ctx context.Context, req models.ServiceFilterRequest) (models.ServiceListResponse, error) {
	where := []string{"s.verification_status = 'verified'", "s.archived = 0"}
	args := []any{req.UserID}

	if len(req.CategoryIDs) > 0 {
		where = append(where, "s.category_id IN ("+placeholders(len(req.CategoryIDs))+")")
		for _, id := range req.CategoryIDs {
			args = append(args, id)
		}
	}
	if len(req.SubcategoryIDs) > 0 {
		where = append(where, "s.subcategory_id IN ("+placeholders(len(req.SubcategoryIDs))+")")
		for _, id := range req.SubcategoryIDs {
			args = append(args, id)
		}
	}
	if len(req.CityIDs) > 0 {
		where = append(where, "s.city_id IN ("+placeholders(len(req.CityIDs))+")")
		for _, id := range req.CityIDs {
			args = append(args, id)
		}
	}
	if req.PriceFrom > 0 {
		where = append(where, "s.price >= ?")
		args = append(args, req.PriceFrom)
	}
	if req.PriceTo > 0 {
		where = append(where, "s.price <= ?")
		args = append(args, req.PriceTo)
	}
	if len(req.AvgRatings) > 0 {
		where = append(where, "FLOOR(s.avg_rating) IN ("+placeholders(len(req.AvgRatings))+")")
		for _, rating := range req.AvgRatings {
			args = append(args, rating)
		}
	}

	order := "s.created_at DESC"
	switch req.Sorting {
	case 1:
		order = "s.reviews_count DESC, s.avg_rating DESC"
	case 2:
		order = "s.price DESC"
	case 3:
		order = "s.price ASC"
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	whereClause := strings.Join(where, " AND ")
	query := serviceSelect + ` WHERE ` + whereClause +
		fmt.Sprintf(" ORDER BY %s LIMIT ? OFFSET ?", order)
	listArgs := append(append([]any{}, args...), limit, offset)

	rows, err := r.DB.QueryContext(ctx, query, listArgs...)
	if err != nil {
		return models.ServiceListResponse{}, err
	}
	defer rows.Close()

	services, err := collectServices(rows)
	if err != nil {
		return models.ServiceListResponse{}, err
	}

	aggQuery := `
		SELECT COUNT(*), COALESCE(MIN(s.price), 0), COALESCE(MAX(s.price), 0)
		FROM services s WHERE ` + whereClause
	resp := models.ServiceListResponse{Services: services}
	if err := r.DB.QueryRowContext(ctx, aggQuery, args[1:]...).Scan(&resp.Total, &resp.MinPrice, &resp.MaxPrice); err != nil {
		return models.ServiceListResponse{}, err
	}
	return resp, nil
}

func (r *ServiceRepository) UpdateService(ctx context.Context, s models.Service) (models.Service, error) {
	imagesJSON, err := marshalImages(s.Images)
	if err != nil {
		return models.Service{}, err
	}
	var subcategoryID any
	if s.SubcategoryID > 0 {
		subcategoryID = s.SubcategoryID
	}
	query := `
		UPDATE services
		SET title = ?, description = ?, category_id = ?, subcategory_id = ?, price = ?, price_type = ?,
		    city_id = ?, address = ?, images = ?, verification_status = 'pending', rejection_reason = NULL,
		    updated_at = NOW()
		WHERE id = ? AND user_id = ?
	`
	res, err := r.DB.ExecContext(ctx, query,
		s.Title, s.Description, s.CategoryID, subcategoryID, s.Price, s.PriceType,
		s.CityID, s.Address, imagesJSON, s.ID, s.UserID,
	)
	if err != nil {
		return models.Service{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Service{}, err
	}
	if affected == 0 {
		return models.Service{}, models.ErrServiceNotFound
	}
	return r.GetServiceByID(ctx, s.ID, s.UserID)
}

func (r *ServiceRepository) SetVerificationStatus(ctx context.Context, id int, status string, reason *string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE services SET verification_status = ?, rejection_reason = ?, updated_at = NOW() WHERE id = ?`,
		status, reason, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrServiceNotFound
	}
	return nil
}

func (r *ServiceRepository) DeleteService(ctx context.Context, id, userID int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM services WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrServiceNotFound
	}
	return nil
}

func (r *ServiceRepository) GetPendingServices(ctx context.Context, page, limit int) ([]models.Service, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit
	rows, err := r.DB.QueryContext(ctx,
		serviceSelect+` WHERE s.verification_status = 'pending' AND s.archived = 0 ORDER BY s.created_at ASC LIMIT ? OFFSET ?`,
		0, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectServices(rows)
}

// CountActiveListings counts a provider's live (non-archived, not rejected)
// listings across both kinds. Used by the subscription slot guard.
func (r *ServiceRepository) CountActiveListings(ctx context.Context, userID int) (int, error) {
	var count int
	query := `
		SELECT (SELECT COUNT(*) FROM services WHERE user_id = ? AND archived = 0 AND verification_status <> 'rejected')
		     + (SELECT COUNT(*) FROM properties WHERE user_id = ? AND archived = 0 AND verification_status <> 'rejected')
	`
	err := r.DB.QueryRowContext(ctx, query, userID, userID).Scan(&count)
	return count, err
}
