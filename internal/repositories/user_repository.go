package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"nyumbaBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
		INSERT INTO users (name, surname, phone, email, password, city, role, avatar_path, phone_verified, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`
	result, err := r.DB.ExecContext(ctx, query,
		user.Name, user.Surname, user.Phone, user.Email, user.Password,
		user.City, user.Role, user.AvatarPath, user.PhoneVerified,
	)
	if err != nil {
		return models.User{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	user.ID = int(id)
	user.Password = ""
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	query := `
		SELECT id, name, surname, phone, email, city, role, avatar_path, phone_verified, blocked,
		       review_rating, reviews_count, created_at, updated_at
		FROM users WHERE id = ?
	`
	var u models.User
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Surname, &u.Phone, &u.Email, &u.City, &u.Role,
		&u.AvatarPath, &u.PhoneVerified, &u.Blocked,
		&u.ReviewRating, &u.ReviewsCount, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrUserNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

// GetUserByEmail returns a zero User when the email is not registered.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	if email == "" {
		return models.User{}, nil
	}
	query := `SELECT id, name, email, phone, password, role, blocked FROM users WHERE email = ?`
	var u models.User
	err := r.DB.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Password, &u.Role, &u.Blocked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, nil
		}
		return models.User{}, err
	}
	return u, nil
}

func (r *UserRepository) GetUserByPhone(ctx context.Context, phone string) (models.User, error) {
	if phone == "" {
		return models.User{}, nil
	}
	query := `SELECT id, name, email, phone, password, role, blocked FROM users WHERE phone = ?`
	var u models.User
	err := r.DB.QueryRowContext(ctx, query, phone).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Password, &u.Role, &u.Blocked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, nil
		}
		return models.User{}, err
	}
	return u, nil
}

func (r *UserRepository) GetUsers(ctx context.Context, search string, page, limit int) ([]models.User, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := `
		SELECT id, name, surname, phone, email, city, role, avatar_path, phone_verified, blocked,
		       review_rating, reviews_count, created_at, updated_at
		FROM users
		WHERE (? = '' OR name LIKE CONCAT('%', ?, '%') OR phone LIKE CONCAT('%', ?, '%') OR email LIKE CONCAT('%', ?, '%'))
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`
	rows, err := r.DB.QueryContext(ctx, query, search, search, search, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Surname, &u.Phone, &u.Email, &u.City, &u.Role,
			&u.AvatarPath, &u.PhoneVerified, &u.Blocked,
			&u.ReviewRating, &u.ReviewsCount, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	query := `
		UPDATE users
		SET name = ?, surname = ?, city = ?, avatar_path = COALESCE(?, avatar_path), updated_at = NOW()
		WHERE id = ?
	`
	res, err := r.DB.ExecContext(ctx, query, user.Name, user.Surname, user.City, user.AvatarPath, user.ID)
	if err != nil {
		return models.User{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.User{}, err
	}
	if affected == 0 {
		if _, err := r.GetUserByID(ctx, user.ID); err != nil {
			return models.User{}, err
		}
	}
	return r.GetUserByID(ctx, user.ID)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID int, hashed string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET password = ?, updated_at = NOW() WHERE id = ?`, hashed, userID)
	return err
}

func (r *UserRepository) GetPasswordHash(ctx context.Context, userID int) (string, error) {
	var hash string
	err := r.DB.QueryRowContext(ctx, `SELECT password FROM users WHERE id = ?`, userID).Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", models.ErrUserNotFound
		}
		return "", err
	}
	return hash, nil
}

func (r *UserRepository) UpdatePhone(ctx context.Context, userID int, phone string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET phone = ?, phone_verified = 0, updated_at = NOW() WHERE id = ?`, phone, userID)
	return err
}

func (r *UserRepository) UpdateEmail(ctx context.Context, userID int, email string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET email = ?, updated_at = NOW() WHERE id = ?`, email, userID)
	return err
}

func (r *UserRepository) MarkPhoneVerified(ctx context.Context, phone string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET phone_verified = 1, updated_at = NOW() WHERE phone = ?`, phone)
	return err
}

func (r *UserRepository) UpdateRole(ctx context.Context, userID int, role string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET role = ?, updated_at = NOW() WHERE id = ?`, role, userID)
	return err
}

func (r *UserRepository) SetBlocked(ctx context.Context, userID int, blocked bool) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE users SET blocked = ?, updated_at = NOW() WHERE id = ?`, blocked, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, userID int, avatarPath string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET avatar_path = ?, updated_at = NOW() WHERE id = ?`, avatarPath, userID)
	return err
}

func (r *UserRepository) DeleteUser(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// RecentSignups feeds the admin dashboard.
func (r *UserRepository) RecentSignups(ctx context.Context, since time.Time) ([]models.RecentSignup, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, role, created_at FROM users WHERE created_at >= ? ORDER BY created_at DESC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	signups := []models.RecentSignup{}
	for rows.Next() {
		var s models.RecentSignup
		if err := rows.Scan(&s.ID, &s.Name, &s.Role, &s.CreatedAt); err != nil {
			return nil, err
		}
		signups = append(signups, s)
	}
	return signups, rows.Err()
}
