package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository = CRUD[domain.Flight, domain.FlightFilter]

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

var flightColumns = []string{
	"f.id", "f.route_id", "f.airplane_id", "f.departure_time", "f.arrival_time",
	"r.source_id", "r.destination_id", "r.distance", "s.name", "d.name",
	"p.name", `p."rows"`, "p.seats_in_row", "p.airplane_type_id", "t.name",
	`p."rows" * p.seats_in_row - b.booked AS tickets_available`,
}

// bookedSeatsJoin counts the tickets of each flight row in the same query.
const bookedSeatsJoin = "LATERAL (SELECT COUNT(*) AS booked FROM tickets tk WHERE tk.flight_id = f.id) b ON true"

func flightQuery(f domain.FlightFilter) sq.SelectBuilder {
	q := routeJoins(psql.Select().From("flights f").Join("routes r ON r.id = f.route_id")).
		Join("airplanes p ON p.id = f.airplane_id").
		Join("airplane_types t ON t.id = p.airplane_type_id")
	if len(f.IDs) > 0 {
		q = q.Where(sq.Eq{"f.id": f.IDs})
	}
	if f.From != "" {
		q = q.Where(sq.ILike{"s.name": contains(f.From)})
	}
	if f.To != "" {
		q = q.Where(sq.ILike{"d.name": contains(f.To)})
	}
	if f.PlaneName != "" {
		q = q.Where(sq.ILike{"p.name": contains(f.PlaneName)})
	}
	return q
}

func scanFlight(row pgx.CollectableRow) (domain.Flight, error) {
	f := domain.Flight{
		Route: &domain.Route{
			Source:      &domain.Airport{},
			Destination: &domain.Airport{},
		},
		Airplane: &domain.Airplane{AirplaneType: &domain.AirplaneType{}},
	}
	err := row.Scan(
		&f.ID, &f.RouteID, &f.AirplaneID, &f.DepartureTime, &f.ArrivalTime,
		&f.Route.SourceID, &f.Route.DestinationID, &f.Route.Distance, &f.Route.Source.Name, &f.Route.Destination.Name,
		&f.Airplane.Name, &f.Airplane.Rows, &f.Airplane.SeatsInRow, &f.Airplane.AirplaneTypeID, &f.Airplane.AirplaneType.Name,
		&f.TicketsAvailable,
	)
	f.Route.ID = f.RouteID
	f.Route.Source.ID = f.Route.SourceID
	f.Route.Destination.ID = f.Route.DestinationID
	f.Airplane.ID = f.AirplaneID
	f.Airplane.AirplaneType.ID = f.Airplane.AirplaneTypeID
	return f, err
}

func (r *PGFlightRepository) List(ctx context.Context, filter domain.FlightFilter, page domain.Page) ([]domain.Flight, int, error) {
	total, err := count(ctx, r.db, flightQuery(filter))
	if err != nil {
		return nil, 0, err
	}
	flights := make([]domain.Flight, 0)
	if total == 0 {
		return flights, 0, nil
	}

	q := flightQuery(filter).LeftJoin(bookedSeatsJoin).Columns(flightColumns...).OrderBy("f.departure_time", "f.id")
	rows, err := query(ctx, r.db, paginate(q, page))
	if err != nil {
		return nil, 0, err
	}
	flights, err = pgx.CollectRows(rows, scanFlight)
	if err != nil {
		return nil, 0, err
	}
	if err := r.attachCrews(ctx, flights); err != nil {
		return nil, 0, err
	}
	return flights, total, nil
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	q := flightQuery(domain.FlightFilter{}).
		LeftJoin(bookedSeatsJoin).
		Columns(flightColumns...).
		Where(sq.Eq{"f.id": id})
	f, err := getOne(ctx, r.db, q, scanFlight)
	if err != nil {
		return nil, err
	}

	one := []domain.Flight{*f}
	if err := r.attachCrews(ctx, one); err != nil {
		return nil, err
	}
	flight := one[0]

	rows, err := r.db.Query(ctx, `SELECT "row", seat FROM tickets WHERE flight_id = $1 ORDER BY "row", seat`, id)
	if err != nil {
		return nil, err
	}
	flight.TakenPlaces, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Seat, error) {
		var s domain.Seat
		err := row.Scan(&s.Row, &s.Seat)
		return s, err
	})
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

// attachCrews loads the crews of all given flights with one query.
func (r *PGFlightRepository) attachCrews(ctx context.Context, flights []domain.Flight) error {
	if len(flights) == 0 {
		return nil
	}
	ids := make([]int64, len(flights))
	for i, f := range flights {
		ids[i] = f.ID
	}

	rows, err := r.db.Query(ctx, `SELECT fc.flight_id, c.id, c.first_name, c.last_name, c.flying_hours
		FROM flight_crews fc
		JOIN crews c ON c.id = fc.crew_id
		WHERE fc.flight_id = ANY($1)
		ORDER BY c.id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	byFlight := make(map[int64][]domain.Crew, len(flights))
	for rows.Next() {
		var flightID int64
		var c domain.Crew
		if err := rows.Scan(&flightID, &c.ID, &c.FirstName, &c.LastName, &c.FlyingHours); err != nil {
			return err
		}
		byFlight[flightID] = append(byFlight[flightID], c)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range flights {
		crews := byFlight[flights[i].ID]
		flights[i].Crews = crews
		flights[i].CrewIDs = make([]int64, len(crews))
		for j, c := range crews {
			flights[i].CrewIDs[j] = c.ID
		}
	}
	return nil
}

func (r *PGFlightRepository) Create(ctx context.Context, f *domain.Flight) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	id, err := insertReturningID(ctx, tx, psql.Insert("flights").
		Columns("route_id", "airplane_id", "departure_time", "arrival_time").
		Values(f.RouteID, f.AirplaneID, f.DepartureTime, f.ArrivalTime))
	if err != nil {
		return err
	}
	if err := setFlightCrews(ctx, tx, id, f.CrewIDs); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	f.ID = id
	return nil
}

// Update rejects an airplane swap that leaves booked tickets without a seat.
func (r *PGFlightRepository) Update(ctx context.Context, f *domain.Flight) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := update(ctx, tx, psql.Update("flights").
		Set("route_id", f.RouteID).
		Set("airplane_id", f.AirplaneID).
		Set("departure_time", f.DepartureTime).
		Set("arrival_time", f.ArrivalTime).
		Where(sq.Eq{"id": f.ID})); err != nil {
		return err
	}
	if err := checkSeatGrid(ctx, tx, sq.Eq{"f.id": f.ID}, "airplane", "airplane"); err != nil {
		return err
	}
	if err := setFlightCrews(ctx, tx, f.ID, f.CrewIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func setFlightCrews(ctx context.Context, tx pgx.Tx, flightID int64, crewIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM flight_crews WHERE flight_id = $1`, flightID); err != nil {
		return err
	}
	if len(crewIDs) == 0 {
		return nil
	}
	if _, err := tx.Exec(ctx, `INSERT INTO flight_crews (flight_id, crew_id) SELECT $1::bigint, unnest($2::bigint[])`, flightID, crewIDs); err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "flights", id)
}

var _ FlightRepository = (*PGFlightRepository)(nil)
