package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CityRepository = CRUD[domain.City, domain.CityFilter]

type PGCityRepository struct {
	db *pgxpool.Pool
}

func NewCityRepository(db *pgxpool.Pool) CityRepository {
	return &PGCityRepository{db: db}
}

var cityColumns = []string{"ci.id", "ci.name", "ci.country_id", "co.name"}

func cityQuery(f domain.CityFilter) sq.SelectBuilder {
	q := psql.Select().From("cities ci").Join("countries co ON co.id = ci.country_id")
	if f.Name != "" {
		q = q.Where(sq.ILike{"ci.name": contains(f.Name)})
	}
	if f.Country != "" {
		q = q.Where(sq.ILike{"co.name": contains(f.Country)})
	}
	return q
}

func scanCity(row pgx.CollectableRow) (domain.City, error) {
	c := domain.City{Country: &domain.Country{}}
	err := row.Scan(&c.ID, &c.Name, &c.CountryID, &c.Country.Name)
	c.Country.ID = c.CountryID
	return c, err
}

func (r *PGCityRepository) List(ctx context.Context, f domain.CityFilter, page domain.Page) ([]domain.City, int, error) {
	return listPage(ctx, r.db, cityQuery(f), cityColumns, "ci.id", page, scanCity)
}

func (r *PGCityRepository) GetByID(ctx context.Context, id int64) (*domain.City, error) {
	q := cityQuery(domain.CityFilter{}).Columns(cityColumns...).Where(sq.Eq{"ci.id": id})
	return getOne(ctx, r.db, q, scanCity)
}

func (r *PGCityRepository) Create(ctx context.Context, c *domain.City) error {
	id, err := insertReturningID(ctx, r.db, psql.Insert("cities").Columns("name", "country_id").Values(c.Name, c.CountryID))
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r *PGCityRepository) Update(ctx context.Context, c *domain.City) error {
	return update(ctx, r.db, psql.Update("cities").
		Set("name", c.Name).
		Set("country_id", c.CountryID).
		Where(sq.Eq{"id": c.ID}))
}

func (r *PGCityRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "cities", id)
}

var _ CityRepository = (*PGCityRepository)(nil)
