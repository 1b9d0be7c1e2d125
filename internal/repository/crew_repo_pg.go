package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CrewRepository = CRUD[domain.Crew, domain.NameFilter]

type PGCrewRepository struct {
	db *pgxpool.Pool
}

func NewCrewRepository(db *pgxpool.Pool) CrewRepository {
	return &PGCrewRepository{db: db}
}

var crewColumns = []string{"c.id", "c.first_name", "c.last_name", "c.flying_hours"}

func crewQuery(f domain.NameFilter) sq.SelectBuilder {
	q := psql.Select().From("crews c")
	if f.Name != "" {
		pattern := contains(f.Name)
		q = q.Where(sq.Or{
			sq.ILike{"c.first_name": pattern},
			sq.ILike{"c.last_name": pattern},
		})
	}
	return q
}

func scanCrew(row pgx.CollectableRow) (domain.Crew, error) {
	var c domain.Crew
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.FlyingHours)
	return c, err
}

func (r *PGCrewRepository) List(ctx context.Context, f domain.NameFilter, page domain.Page) ([]domain.Crew, int, error) {
	return listPage(ctx, r.db, crewQuery(f), crewColumns, "c.id", page, scanCrew)
}

func (r *PGCrewRepository) GetByID(ctx context.Context, id int64) (*domain.Crew, error) {
	q := crewQuery(domain.NameFilter{}).Columns(crewColumns...).Where(sq.Eq{"c.id": id})
	return getOne(ctx, r.db, q, scanCrew)
}

func (r *PGCrewRepository) Create(ctx context.Context, c *domain.Crew) error {
	id, err := insertReturningID(ctx, r.db, psql.Insert("crews").
		Columns("first_name", "last_name", "flying_hours").
		Values(c.FirstName, c.LastName, c.FlyingHours))
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r *PGCrewRepository) Update(ctx context.Context, c *domain.Crew) error {
	return update(ctx, r.db, psql.Update("crews").
		Set("first_name", c.FirstName).
		Set("last_name", c.LastName).
		Set("flying_hours", c.FlyingHours).
		Where(sq.Eq{"id": c.ID}))
}

func (r *PGCrewRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "crews", id)
}

var _ CrewRepository = (*PGCrewRepository)(nil)
