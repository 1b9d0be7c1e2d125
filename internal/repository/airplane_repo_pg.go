package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AirplaneRepository = CRUD[domain.Airplane, domain.NameFilter]

type PGAirplaneRepository struct {
	db *pgxpool.Pool
}

func NewAirplaneRepository(db *pgxpool.Pool) AirplaneRepository {
	return &PGAirplaneRepository{db: db}
}

var airplaneColumns = []string{"p.id", "p.name", `p."rows"`, "p.seats_in_row", "p.airplane_type_id", "t.name"}

func airplaneQuery(f domain.NameFilter) sq.SelectBuilder {
	q := psql.Select().From("airplanes p").Join("airplane_types t ON t.id = p.airplane_type_id")
	if f.Name != "" {
		q = q.Where(sq.ILike{"p.name": contains(f.Name)})
	}
	return q
}

func scanAirplane(row pgx.CollectableRow) (domain.Airplane, error) {
	a := domain.Airplane{AirplaneType: &domain.AirplaneType{}}
	err := row.Scan(&a.ID, &a.Name, &a.Rows, &a.SeatsInRow, &a.AirplaneTypeID, &a.AirplaneType.Name)
	a.AirplaneType.ID = a.AirplaneTypeID
	return a, err
}

func (r *PGAirplaneRepository) List(ctx context.Context, f domain.NameFilter, page domain.Page) ([]domain.Airplane, int, error) {
	return listPage(ctx, r.db, airplaneQuery(f), airplaneColumns, "p.id", page, scanAirplane)
}

func (r *PGAirplaneRepository) GetByID(ctx context.Context, id int64) (*domain.Airplane, error) {
	q := airplaneQuery(domain.NameFilter{}).Columns(airplaneColumns...).Where(sq.Eq{"p.id": id})
	return getOne(ctx, r.db, q, scanAirplane)
}

func (r *PGAirplaneRepository) Create(ctx context.Context, a *domain.Airplane) error {
	id, err := insertReturningID(ctx, r.db, psql.Insert("airplanes").
		Columns("name", `"rows"`, "seats_in_row", "airplane_type_id").
		Values(a.Name, a.Rows, a.SeatsInRow, a.AirplaneTypeID))
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

// Update refuses to shrink the seat grid below any ticket already booked on
// one of the airplane's flights.
func (r *PGAirplaneRepository) Update(ctx context.Context, a *domain.Airplane) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := update(ctx, tx, psql.Update("airplanes").
		Set("name", a.Name).
		Set(`"rows"`, a.Rows).
		Set("seats_in_row", a.SeatsInRow).
		Set("airplane_type_id", a.AirplaneTypeID).
		Where(sq.Eq{"id": a.ID})); err != nil {
		return err
	}
	if err := checkSeatGrid(ctx, tx, sq.Eq{"p.id": a.ID}, "rows", "seats_in_row"); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PGAirplaneRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "airplanes", id)
}

var _ AirplaneRepository = (*PGAirplaneRepository)(nil)
