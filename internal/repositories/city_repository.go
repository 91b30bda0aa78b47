package repositories

import (
	"context"
	"database/sql"
	"errors"

	"nyumbaBack/internal/models"
)

type CityRepository struct {
	DB *sql.DB
}

func (r *CityRepository) CreateCity(ctx context.Context, city models.City) (models.City, error) {
	result, err := r.DB.ExecContext(ctx,
		`INSERT INTO cities (name, region, created_at) VALUES (?, ?, NOW())`,
		city.Name, city.Region)
	if err != nil {
		return models.City{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.City{}, err
	}
	city.ID = int(id)
	return city, nil
}

func (r *CityRepository) GetCities(ctx context.Context) ([]models.City, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, region, created_at, updated_at FROM cities ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cities := []models.City{}
	for rows.Next() {
		var c models.City
		if err := rows.Scan(&c.ID, &c.Name, &c.Region, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

func (r *CityRepository) GetCityByID(ctx context.Context, id int) (models.City, error) {
	var c models.City
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, region, created_at, updated_at FROM cities WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Region, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.City{}, models.ErrCityNotFound
		}
		return models.City{}, err
	}
	return c, nil
}

func (r *CityRepository) UpdateCity(ctx context.Context, city models.City) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE cities SET name = ?, region = ?, updated_at = NOW() WHERE id = ?`,
		city.Name, city.Region, city.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.GetCityByID(ctx, city.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *CityRepository) DeleteCity(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM cities WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrCityNotFound
	}
	return nil
}
