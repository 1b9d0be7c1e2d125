package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AirportRepository = CRUD[domain.Airport, domain.AirportFilter]

type PGAirportRepository struct {
	db *pgxpool.Pool
}

func NewAirportRepository(db *pgxpool.Pool) AirportRepository {
	return &PGAirportRepository{db: db}
}

var airportColumns = []string{"a.id", "a.name", "a.closest_big_city_id", "ci.name", "ci.country_id", "co.name"}

func airportQuery(f domain.AirportFilter) sq.SelectBuilder {
	q := psql.Select().From("airports a").
		Join("cities ci ON ci.id = a.closest_big_city_id").
		Join("countries co ON co.id = ci.country_id")
	if f.Name != "" {
		q = q.Where(sq.ILike{"a.name": contains(f.Name)})
	}
	if f.ClosestCity != "" {
		q = q.Where(sq.ILike{"ci.name": contains(f.ClosestCity)})
	}
	return q
}

func scanAirport(row pgx.CollectableRow) (domain.Airport, error) {
	a := domain.Airport{ClosestBigCity: &domain.City{Country: &domain.Country{}}}
	city := a.ClosestBigCity
	err := row.Scan(&a.ID, &a.Name, &a.ClosestBigCityID, &city.Name, &city.CountryID, &city.Country.Name)
	city.ID = a.ClosestBigCityID
	city.Country.ID = city.CountryID
	return a, err
}

func (r *PGAirportRepository) List(ctx context.Context, f domain.AirportFilter, page domain.Page) ([]domain.Airport, int, error) {
	return listPage(ctx, r.db, airportQuery(f), airportColumns, "a.id", page, scanAirport)
}

func (r *PGAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	q := airportQuery(domain.AirportFilter{}).Columns(airportColumns...).Where(sq.Eq{"a.id": id})
	return getOne(ctx, r.db, q, scanAirport)
}

func (r *PGAirportRepository) Create(ctx context.Context, a *domain.Airport) error {
	id, err := insertReturningID(ctx, r.db, psql.Insert("airports").
		Columns("name", "closest_big_city_id").
		Values(a.Name, a.ClosestBigCityID))
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (r *PGAirportRepository) Update(ctx context.Context, a *domain.Airport) error {
	return update(ctx, r.db, psql.Update("airports").
		Set("name", a.Name).
		Set("closest_big_city_id", a.ClosestBigCityID).
		Where(sq.Eq{"id": a.ID}))
}

func (r *PGAirportRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "airports", id)
}

var _ AirportRepository = (*PGAirportRepository)(nil)
