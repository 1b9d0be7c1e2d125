package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RouteRepository = CRUD[domain.Route, domain.RouteFilter]

type PGRouteRepository struct {
	db *pgxpool.Pool
}

func NewRouteRepository(db *pgxpool.Pool) RouteRepository {
	return &PGRouteRepository{db: db}
}

var routeColumns = []string{
	"r.id", "r.source_id", "r.destination_id", "r.distance",
	"s.name", "s.closest_big_city_id", "sc.name",
	"d.name", "d.closest_big_city_id", "dc.name",
}

// routeJoins adds the source and destination airports as s and d.
func routeJoins(q sq.SelectBuilder) sq.SelectBuilder {
	return q.
		Join("airports s ON s.id = r.source_id").
		Join("airports d ON d.id = r.destination_id")
}

func routeQuery(f domain.RouteFilter) sq.SelectBuilder {
	q := routeJoins(psql.Select().From("routes r")).
		Join("cities sc ON sc.id = s.closest_big_city_id").
		Join("cities dc ON dc.id = d.closest_big_city_id")
	if f.From != "" {
		q = q.Where(sq.ILike{"s.name": contains(f.From)})
	}
	if f.To != "" {
		q = q.Where(sq.ILike{"d.name": contains(f.To)})
	}
	return q
}

func scanRoute(row pgx.CollectableRow) (domain.Route, error) {
	r := domain.Route{
		Source:      &domain.Airport{ClosestBigCity: &domain.City{}},
		Destination: &domain.Airport{ClosestBigCity: &domain.City{}},
	}
	err := row.Scan(
		&r.ID, &r.SourceID, &r.DestinationID, &r.Distance,
		&r.Source.Name, &r.Source.ClosestBigCityID, &r.Source.ClosestBigCity.Name,
		&r.Destination.Name, &r.Destination.ClosestBigCityID, &r.Destination.ClosestBigCity.Name,
	)
	r.Source.ID = r.SourceID
	r.Source.ClosestBigCity.ID = r.Source.ClosestBigCityID
	r.Destination.ID = r.DestinationID
	r.Destination.ClosestBigCity.ID = r.Destination.ClosestBigCityID
	return r, err
}

func (r *PGRouteRepository) List(ctx context.Context, f domain.RouteFilter, page domain.Page) ([]domain.Route, int, error) {
	return listPage(ctx, r.db, routeQuery(f), routeColumns, "r.id", page, scanRoute)
}

func (r *PGRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	q := routeQuery(domain.RouteFilter{}).Columns(routeColumns...).Where(sq.Eq{"r.id": id})
	return getOne(ctx, r.db, q, scanRoute)
}

func (r *PGRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	id, err := insertReturningID(ctx, r.db, psql.Insert("routes").
		Columns("source_id", "destination_id", "distance").
		Values(route.SourceID, route.DestinationID, route.Distance))
	if err != nil {
		return err
	}
	route.ID = id
	return nil
}

func (r *PGRouteRepository) Update(ctx context.Context, route *domain.Route) error {
	return update(ctx, r.db, psql.Update("routes").
		Set("source_id", route.SourceID).
		Set("destination_id", route.DestinationID).
		Set("distance", route.Distance).
		Where(sq.Eq{"id": route.ID}))
}

func (r *PGRouteRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "routes", id)
}

var _ RouteRepository = (*PGRouteRepository)(nil)
