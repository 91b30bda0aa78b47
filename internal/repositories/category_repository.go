package repositories

import (
	"context"
	"database/sql"
	"errors"

	"nyumbaBack/internal/models"
)

type CategoryRepository struct {
	DB *sql.DB
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	result, err := r.DB.ExecContext(ctx,
		`INSERT INTO categories (name, image_path, created_at) VALUES (?, ?, NOW())`,
		c.Name, c.ImagePath)
	if err != nil {
		return models.Category{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Category{}, err
	}
	c.ID = int(id)
	return c, nil
}

func (r *CategoryRepository) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, image_path, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ImagePath, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id int) (models.Category, error) {
	var c models.Category
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, image_path, created_at, updated_at FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.ImagePath, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Category{}, models.ErrCategoryNotFound
		}
		return models.Category{}, err
	}
	return c, nil
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, c models.Category) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE categories SET name = ?, image_path = COALESCE(NULLIF(?, ''), image_path), updated_at = NOW() WHERE id = ?`,
		c.Name, c.ImagePath, c.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.GetCategoryByID(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) CreateSubcategory(ctx context.Context, s models.Subcategory) (models.Subcategory, error) {
	result, err := r.DB.ExecContext(ctx,
		`INSERT INTO subcategories (category_id, name, created_at) VALUES (?, ?, NOW())`,
		s.CategoryID, s.Name)
	if err != nil {
		return models.Subcategory{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Subcategory{}, err
	}
	s.ID = int(id)
	return s, nil
}

func (r *CategoryRepository) GetSubcategoriesByCategory(ctx context.Context, categoryID int) ([]models.Subcategory, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, category_id, name, created_at, updated_at FROM subcategories WHERE category_id = ? ORDER BY name`,
		categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subcategories := []models.Subcategory{}
	for rows.Next() {
		var s models.Subcategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subcategories = append(subcategories, s)
	}
	return subcategories, rows.Err()
}

func (r *CategoryRepository) DeleteSubcategory(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM subcategories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrCategoryNotFound
	}
	return nil
}
