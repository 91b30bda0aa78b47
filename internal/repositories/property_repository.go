package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"nyumbaBack/internal/models"
)

type PropertyRepository struct {
	DB *sql.DB
}

func marshalImages(images []models.Image) ([]byte, error) {
	if images == nil {
		images = []models.Image{}
	}
	return json.Marshal(images)
}

func unmarshalImages(raw []byte) []models.Image {
	images := []models.Image{}
	if len(raw) == 0 {
		return images
	}
	if err := json.Unmarshal(raw, &images); err != nil {
		return []models.Image{}
	}
	return images
}

func (r *PropertyRepository) CreateProperty(ctx context.Context, p models.Property) (models.Property, error) {
	imagesJSON, err := marshalImages(p.Images)
	if err != nil {
		return models.Property{}, err
	}
	query := `
		INSERT INTO properties
			(user_id, title, description, listing_type, price, bedrooms, bathrooms, area_sqm, furnished,
			 city_id, address, latitude, longitude, images, amenities, verification_status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`
	result, err := r.DB.ExecContext(ctx, query,
		p.UserID, p.Title, p.Description, p.ListingType, p.Price, p.Bedrooms, p.Bathrooms,
		p.AreaSqm, p.Furnished, p.CityID, p.Address, p.Latitude, p.Longitude,
		imagesJSON, p.Amenities, models.VerificationPending,
	)
	if err != nil {
		return models.Property{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Property{}, err
	}
	return r.GetPropertyByID(ctx, int(id), p.UserID)
}

const propertySelect = `
	SELECT p.id, p.user_id, p.title, p.description, p.listing_type, p.price, p.bedrooms, p.bathrooms,
	       p.area_sqm, p.furnished, p.city_id, COALESCE(c.name, '') AS city_name, p.address,
	       p.latitude, p.longitude, p.images, p.amenities,
	       p.verification_status, p.rejection_reason, p.archived,
	       p.avg_rating, p.reviews_count, p.created_at, p.updated_at,
	       u.id, u.name, u.surname, u.phone, u.avatar_path, u.review_rating, u.reviews_count,
	       EXISTS(SELECT 1 FROM favorites f WHERE f.user_id = ? AND f.listing_type = 'property' AND f.listing_id = p.id) AS liked
	FROM properties p
	JOIN users u ON u.id = p.user_id
	LEFT JOIN cities c ON c.id = p.city_id
`

func scanProperty(rows interface {
	Scan(dest ...any) error
}) (models.Property, error) {
	var p models.Property
	var imagesRaw []byte
	err := rows.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Description, &p.ListingType, &p.Price, &p.Bedrooms, &p.Bathrooms,
		&p.AreaSqm, &p.Furnished, &p.CityID, &p.CityName, &p.Address,
		&p.Latitude, &p.Longitude, &imagesRaw, &p.Amenities,
		&p.VerificationStatus, &p.RejectionReason, &p.Archived,
		&p.AvgRating, &p.ReviewsCount, &p.CreatedAt, &p.UpdatedAt,
		&p.User.ID, &p.User.Name, &p.User.Surname, &p.User.Phone, &p.User.AvatarPath,
		&p.User.ReviewRating, &p.User.ReviewsCount,
		&p.Liked,
	)
	if err != nil {
		return models.Property{}, err
	}
	p.Images = unmarshalImages(imagesRaw)
	return p, nil
}

// GetPropertyByID returns a property without visibility gating; callers that
// serve public traffic must check the verification status themselves.
// viewerID drives the liked flag and may be 0.
func (r *PropertyRepository) GetPropertyByID(ctx context.Context, id, viewerID int) (models.Property, error) {
	row := r.DB.QueryRowContext(ctx, propertySelect+` WHERE p.id = ?`, viewerID, id)
	p, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Property{}, models.ErrPropertyNotFound
		}
		return models.Property{}, err
	}
	return p, nil
}

func (r *PropertyRepository) GetPropertiesByUserID(ctx context.Context, userID int) ([]models.Property, error) {
	rows, err := r.DB.QueryContext(ctx, propertySelect+` WHERE p.user_id = ? ORDER BY p.created_at DESC`, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProperties(rows)
}

func collectProperties(rows *sql.Rows) ([]models.Property, error) {
	properties := []models.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}

// GetFilteredProperties serves the public search. Only verified, non-archived
// listings are returned.
func (r *PropertyRepository) GetFilteredProperties(ctx context.Context, req models.PropertyFilterRequest) (models.PropertyListResponse, error) {
	where := []string{"p.verification_status = 'verified'", "p.archived = 0"}
	args := []any{req.UserID}

	if len(req.CityIDs) > 0 {
		where = append(where, "p.city_id IN ("+placeholders(len(req.CityIDs))+")")
		for _, id := range req.CityIDs {
			args = append(args, id)
		}
	}
	if req.ListingType != "" {
		where = append(where, "p.listing_type = ?")
		args = append(args, req.ListingType)
	}
	if req.PriceFrom > 0 {
		where = append(where, "p.price >= ?")
		args = append(args, req.PriceFrom)
	}
	if req.PriceTo > 0 {
		where = append(where, "p.price <= ?")
		args = append(args, req.PriceTo)
	}
	if len(req.Bedrooms) > 0 {
		where = append(where, "p.bedrooms IN ("+placeholders(len(req.Bedrooms))+")")
		for _, b := range req.Bedrooms {
			args = append(args, b)
		}
	}
	if req.Furnished != nil {
		where = append(where, "p.furnished = ?")
		args = append(args, *req.Furnished)
	}

	order := "p.created_at DESC"
	switch req.Sorting {
	case 2:
		order = "p.price DESC"
	case 3:
		order = "p.price ASC"
	case 4:
		order = "p.avg_rating DESC, p.reviews_count DESC"
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

	query := propertySelect + ` WHERE ` + whereClause +
		fmt.Sprintf(" ORDER BY %s LIMIT ? OFFSET ?", order)
	listArgs := append(append([]any{}, args...), limit, offset)

	rows, err := r.DB.QueryContext(ctx, query, listArgs...)
	if err != nil {
		return models.PropertyListResponse{}, err
	}
	defer rows.Close()

	properties, err := collectProperties(rows)
	if err != nil {
		return models.PropertyListResponse{}, err
	}

	// Aggregates over the same filter, without pagination. The filter args
	// skip the viewerID placeholder used by the liked subquery.
	aggQuery := `
		SELECT COUNT(*), COALESCE(MIN(p.price), 0), COALESCE(MAX(p.price), 0)
		FROM properties p WHERE ` + whereClause
	resp := models.PropertyListResponse{Properties: properties}
	if err := r.DB.QueryRowContext(ctx, aggQuery, args[1:]...).Scan(&resp.Total, &resp.MinPrice, &resp.MaxPrice); err != nil {
		return models.PropertyListResponse{}, err
	}
	return resp, nil
}

func (r *PropertyRepository) UpdateProperty(ctx context.Context, p models.Property) (models.Property, error) {
	imagesJSON, err := marshalImages(p.Images)
	if err != nil {
		return models.Property{}, err
	}
	// Any owner edit puts the listing back on the moderation queue.
	query := `
		UPDATE properties
		SET title = ?, description = ?, listing_type = ?, price = ?, bedrooms = ?, bathrooms = ?,
		    area_sqm = ?, furnished = ?, city_id = ?, address = ?, latitude = ?, longitude = ?,
		    images = ?, amenities = ?, verification_status = 'pending', rejection_reason = NULL,
		    updated_at = NOW()
		WHERE id = ? AND user_id = ?
	`
	res, err := r.DB.ExecContext(ctx, query,
		p.Title, p.Description, p.ListingType, p.Price, p.Bedrooms, p.Bathrooms,
		p.AreaSqm, p.Furnished, p.CityID, p.Address, p.Latitude, p.Longitude,
		imagesJSON, p.Amenities, p.ID, p.UserID,
	)
	if err != nil {
		return models.Property{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Property{}, err
	}
	if affected == 0 {
		return models.Property{}, models.ErrPropertyNotFound
	}
	return r.GetPropertyByID(ctx, p.ID, p.UserID)
}

func (r *PropertyRepository) SetVerificationStatus(ctx context.Context, id int, status string, reason *string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE properties SET verification_status = ?, rejection_reason = ?, updated_at = NOW() WHERE id = ?`,
		status, reason, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) SetArchived(ctx context.Context, id, userID int, archived bool) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE properties SET archived = ?, updated_at = NOW() WHERE id = ? AND user_id = ?`,
		archived, id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) DeleteProperty(ctx context.Context, id, userID int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM properties WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrPropertyNotFound
	}
	return nil
}

// GetPendingProperties feeds the admin moderation queue.
func (r *PropertyRepository) GetPendingProperties(ctx context.Context, page, limit int) ([]models.Property, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit
	rows, err := r.DB.QueryContext(ctx,
		propertySelect+` WHERE p.verification_status = 'pending' AND p.archived = 0 ORDER BY p.created_at ASC LIMIT ? OFFSET ?`,
		0, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProperties(rows)
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
