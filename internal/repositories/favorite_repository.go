package repositories

import (
	"context"
	"database/sql"

	"nyumbaBack/internal/models"
)

type FavoriteRepository struct {
	DB *sql.DB
}

func (r *FavoriteRepository) AddToFavorites(ctx context.Context, fav models.Favorite) error {
	// INSERT IGNORE keeps the operation idempotent under a unique
	// (user_id, listing_type, listing_id) key.
	_, err := r.DB.ExecContext(ctx,
		`INSERT IGNORE INTO favorites (user_id, listing_type, listing_id, created_at) VALUES (?, ?, ?, NOW())`,
		fav.UserID, fav.ListingType, fav.ListingID)
	return err
}

func (r *FavoriteRepository) RemoveFromFavorites(ctx context.Context, userID int, listingType string, listingID int) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND listing_type = ? AND listing_id = ?`,
		userID, listingType, listingID)
	return err
}

func (r *FavoriteRepository) IsFavorite(ctx context.Context, userID int, listingType string, listingID int) (bool, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE user_id = ? AND listing_type = ? AND listing_id = ?`,
		userID, listingType, listingID).Scan(&count)
	return count > 0, err
}

func (r *FavoriteRepository) GetFavoriteRefs(ctx context.Context, userID int) ([]models.Favorite, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, user_id, listing_type, listing_id, created_at FROM favorites WHERE user_id = ? ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := []models.Favorite{}
	for rows.Next() {
		var f models.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.ListingType, &f.ListingID, &f.CreatedAt); err != nil {
			return nil, err
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}
