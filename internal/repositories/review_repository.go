package repositories

import (
	"context"
	"database/sql"
	"errors"

	"nyumbaBack/internal/models"
)

type ReviewRepository struct {
	DB *sql.DB
}

// CreateReview inserts the review and recomputes the listing's stored
// average/count in the same transaction.
func (r *ReviewRepository) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reviews WHERE user_id = ? AND listing_type = ? AND listing_id = ?`,
		rev.UserID, rev.ListingType, rev.ListingID).Scan(&count); err != nil {
		return models.Review{}, err
	}
	if count > 0 {
		return models.Review{}, models.ErrAlreadyReviewed
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Review{}, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO reviews (user_id, listing_type, listing_id, rating, comment, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())`,
		rev.UserID, rev.ListingType, rev.ListingID, rev.Rating, rev.Comment,
	)
	if err != nil {
		return models.Review{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Review{}, err
	}
	rev.ID = int(id)

	if err := recomputeListingRating(ctx, tx, rev.ListingType, rev.ListingID); err != nil {
		return models.Review{}, err
	}
	if err := recomputeOwnerRating(ctx, tx, rev.ListingType, rev.ListingID); err != nil {
		return models.Review{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Review{}, err
	}
	return rev, nil
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, id int) (models.Review, error) {
	var rev models.Review
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, listing_type, listing_id, rating, comment, created_at, updated_at FROM reviews WHERE id = ?`, id).
		Scan(&rev.ID, &rev.UserID, &rev.ListingType, &rev.ListingID, &rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Review{}, models.ErrReviewNotFound
		}
		return models.Review{}, err
	}
	return rev, nil
}

func (r *ReviewRepository) GetReviewsByListing(ctx context.Context, listingType string, listingID int) ([]models.Review, error) {
	query := `
		SELECT r.id, r.user_id, r.listing_type, r.listing_id, r.rating, r.comment,
		       u.name, u.surname, u.avatar_path,
		       r.created_at, r.updated_at
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		WHERE r.listing_type = ? AND r.listing_id = ?
		ORDER BY r.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, listingType, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		err := rows.Scan(&rev.ID, &rev.UserID, &rev.ListingType, &rev.ListingID, &rev.Rating, &rev.Comment,
			&rev.UserName, &rev.UserSurname, &rev.UserAvatarPath,
			&rev.CreatedAt, &rev.UpdatedAt)
		if err != nil {
			return nil, err
		}
		if rev.UserAvatarPath != nil && *rev.UserAvatarPath == "" {
			rev.UserAvatarPath = nil
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) UpdateReview(ctx context.Context, rev models.Review) error {
	existing, err := r.GetReviewByID(ctx, rev.ID)
	if err != nil {
		return err
	}
	if existing.UserID != rev.UserID {
		return models.ErrForbidden
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE reviews SET rating = ?, comment = ?, updated_at = NOW() WHERE id = ?`,
		rev.Rating, rev.Comment, rev.ID); err != nil {
		return err
	}
	if err := recomputeListingRating(ctx, tx, existing.ListingType, existing.ListingID); err != nil {
		return err
	}
	if err := recomputeOwnerRating(ctx, tx, existing.ListingType, existing.ListingID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, id, userID int, isAdmin bool) error {
	existing, err := r.GetReviewByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && existing.UserID != userID {
		return models.ErrForbidden
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id); err != nil {
		return err
	}
	if err := recomputeListingRating(ctx, tx, existing.ListingType, existing.ListingID); err != nil {
		return err
	}
	if err := recomputeOwnerRating(ctx, tx, existing.ListingType, existing.ListingID); err != nil {
		return err
	}
	return tx.Commit()
}
