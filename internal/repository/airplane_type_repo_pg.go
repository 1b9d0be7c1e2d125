package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AirplaneTypeRepository = CRUD[domain.AirplaneType, domain.NameFilter]

type PGAirplaneTypeRepository struct {
	db *pgxpool.Pool
}

func NewAirplaneTypeRepository(db *pgxpool.Pool) AirplaneTypeRepository {
	return &PGAirplaneTypeRepository{db: db}
}

var airplaneTypeColumns = []string{"t.id", "t.name"}

func airplaneTypeQuery(f domain.NameFilter) sq.SelectBuilder {
	q := psql.Select().From("airplane_types t")
	if f.Name != "" {
		q = q.Where(sq.ILike{"t.name": contains(f.Name)})
	}
	return q
}

func scanAirplaneType(row pgx.CollectableRow) (domain.AirplaneType, error) {
	var t domain.AirplaneType
	err := row.Scan(&t.ID, &t.Name)
	return t, err
}

func (r *PGAirplaneTypeRepository) List(ctx context.Context, f domain.NameFilter, page domain.Page) ([]domain.AirplaneType, int, error) {
	return listPage(ctx, r.db, airplaneTypeQuery(f), airplaneTypeColumns, "t.id", page, scanAirplaneType)
}

func (r *PGAirplaneTypeRepository) GetByID(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	q := airplaneTypeQuery(domain.NameFilter{}).Columns(airplaneTypeColumns...).Where(sq.Eq{"t.id": id})
	return getOne(ctx, r.db, q, scanAirplaneType)
}

func (r *PGAirplaneTypeRepository) Create(ctx context.Context, t *domain.AirplaneType) error {
	id, err := insertReturningID(ctx, r.db, psql.Insert("airplane_types").Columns("name").Values(t.Name))
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

func (r *PGAirplaneTypeRepository) Update(ctx context.Context, t *domain.AirplaneType) error {
	return update(ctx, r.db, psql.Update("airplane_types").Set("name", t.Name).Where(sq.Eq{"id": t.ID}))
}

func (r *PGAirplaneTypeRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "airplane_types", id)
}

var _ AirplaneTypeRepository = (*PGAirplaneTypeRepository)(nil)
