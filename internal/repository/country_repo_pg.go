package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CountryRepository = CRUD[domain.Country, domain.NameFilter]

type PGCountryRepository struct {
	db *pgxpool.Pool
}

func NewCountryRepository(db *pgxpool.Pool) CountryRepository {
	return &PGCountryRepository{db: db}
}

var countryColumns = []string{"c.id", "c.name"}

func countryQuery(f domain.NameFilter) sq.SelectBuilder {
	q := psql.Select().From("countries c")
	if f.Name != "" {
		q = q.Where(sq.ILike{"c.name": contains(f.Name)})
	}
	return q
}

func scanCountry(row pgx.CollectableRow) (domain.Country, error) {
	var c domain.Country
	err := row.Scan(&c.ID, &c.Name)
	return c, err
}

func (r *PGCountryRepository) List(ctx context.Context, f domain.NameFilter, page domain.Page) ([]domain.Country, int, error) {
	return listPage(ctx, r.db, countryQuery(f), countryColumns, "c.id", page, scanCountry)
}

func (r *PGCountryRepository) GetByID(ctx context.Context, id int64) (*domain.Country, error) {
	q := countryQuery(domain.NameFilter{}).Columns(countryColumns...).Where(sq.Eq{"c.id": id})
	return getOne(ctx, r.db, q, scanCountry)
}

func (r *PGCountryRepository) Create(ctx context.Context, c *domain.Country) error {
	id, err := insertReturningID(ctx, r.db, psql.Insert("countries").Columns("name").Values(c.Name))
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r *PGCountryRepository) Update(ctx context.Context, c *domain.Country) error {
	return update(ctx, r.db, psql.Update("countries").Set("name", c.Name).Where(sq.Eq{"id": c.ID}))
}

func (r *PGCountryRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "countries", id)
}

var _ CountryRepository = (*PGCountryRepository)(nil)
