package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"nyumbaBack/internal/models"
)

// listingTable maps a review listing type onto the table that carries the
// denormalized avg_rating / reviews_count columns.
func listingTable(listingType string) (string, error) {
	switch listingType {
	case models.BookingTargetProperty:
		return "properties", nil
	case models.BookingTargetService:
		return "services", nil
	}
	return "", fmt.Errorf("unknown listing type %q", listingType)
}

// recomputeListingRating refreshes the stored average rating and review count
// of a listing inside the caller's transaction.
func recomputeListingRating(ctx context.Context, tx *sql.Tx, listingType string, listingID int) error {
	table, err := listingTable(listingType)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		UPDATE %s SET
			avg_rating = (SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE listing_type = ? AND listing_id = ?),
			reviews_count = (SELECT COUNT(*) FROM reviews WHERE listing_type = ? AND listing_id = ?)
		WHERE id = ?`, table)
	_, err = tx.ExecContext(ctx, query, listingType, listingID, listingType, listingID, listingID)
	return err
}

// recomputeOwnerRating refreshes the owner-level rating shown on profiles:
// the average over every review left on any of the owner's listings.
func recomputeOwnerRating(ctx context.Context, tx *sql.Tx, listingType string, listingID int) error {
	table, err := listingTable(listingType)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		UPDATE users u
		JOIN %s l ON l.id = ?
		SET u.review_rating = (
			SELECT COALESCE(AVG(r.rating), 0) FROM reviews r
			WHERE (r.listing_type = 'property' AND r.listing_id IN (SELECT id FROM properties WHERE user_id = l.user_id))
			   OR (r.listing_type = 'service' AND r.listing_id IN (SELECT id FROM services WHERE user_id = l.user_id))
		),
		u.reviews_count = (
			SELECT COUNT(*) FROM reviews r
			WHERE (r.listing_type = 'property' AND r.listing_id IN (SELECT id FROM properties WHERE user_id = l.user_id))
			   OR (r.listing_type = 'service' AND r.listing_id IN (SELECT id FROM services WHERE user_id = l.user_id))
		)
		WHERE u.id = l.user_id`, table)
	_, err = tx.ExecContext(ctx, query, listingID)
	return err
}
