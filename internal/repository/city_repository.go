package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// ErrCityNotFound is returned when a city cannot be found in the DB.
var ErrCityNotFound = errors.New("city not found")

// CityRepo encapsulates database queries for cities.  Cities are a flat
// reference table used to group hotels for public browsing.
type CityRepo struct {
	db *sql.DB
}

// NewCityRepo constructs a CityRepo with the provided DB handle.
func NewCityRepo(db *sql.DB) *CityRepo { return &CityRepo{db: db} }

// List returns all cities ordered by name.
func (r *CityRepo) List(ctx context.Context) ([]*model.City, error) {
	const q = `SELECT id, name, country, created_at FROM cities ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.City, 0)
	for rows.Next() {
		c := new(model.City)
		if err := rows.Scan(&c.ID, &c.Name, &c.Country, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches one city.  ErrCityNotFound is returned if no row
// matches.
func (r *CityRepo) GetByID(ctx context.Context, id uint64) (*model.City, error) {
	const q = `SELECT id, name, country, created_at FROM cities WHERE id = ?`
	var c model.City
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.Country, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCityNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a new city and populates the generated id.
func (r *CityRepo) Create(ctx context.Context, c *model.City) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cities (name, country) VALUES (?, ?)`, c.Name, c.Country)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}
