package repository

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository interface {
	List(ctx context.Context, filter domain.TicketFilter, page domain.Page) ([]domain.Ticket, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
}

type PGTicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{db: db}
}

var ticketColumns = []string{
	"tk.id", `tk."row"`, "tk.seat", "tk.flight_id", "tk.order_id",
	"s.name", "d.name", "p.name", "f.departure_time", "f.arrival_time",
	"o.created_at", "o.user_id",
}

func ticketQuery(f domain.TicketFilter) sq.SelectBuilder {
	q := routeJoins(psql.Select().From("tickets tk").
		Join("flights f ON f.id = tk.flight_id").
		Join("routes r ON r.id = f.route_id")).
		Join("airplanes p ON p.id = f.airplane_id").
		Join("orders o ON o.id = tk.order_id")
	if len(f.IDs) > 0 {
		q = q.Where(sq.Eq{"tk.id": f.IDs})
	}
	if f.Route != "" {
		pattern := contains(f.Route)
		q = q.Where(sq.Or{
			sq.ILike{"s.name": pattern},
			sq.ILike{"d.name": pattern},
		})
	}
	return q
}

func scanTicket(row pgx.CollectableRow) (domain.Ticket, error) {
	t := domain.Ticket{Flight: &domain.FlightSummary{}, Order: &domain.Order{}}
	err := row.Scan(
		&t.ID, &t.Row, &t.Seat, &t.FlightID, &t.OrderID,
		&t.Flight.Source, &t.Flight.Destination, &t.Flight.AirplaneName, &t.Flight.DepartureTime, &t.Flight.ArrivalTime,
		&t.Order.CreatedAt, &t.Order.UserID,
	)
	t.Flight.ID = t.FlightID
	t.Order.ID = t.OrderID
	return t, err
}

func (r *PGTicketRepository) List(ctx context.Context, f domain.TicketFilter, page domain.Page) ([]domain.Ticket, int, error) {
	return listPage(ctx, r.db, ticketQuery(f), ticketColumns, "tk.id", page, scanTicket)
}

func (r *PGTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	q := ticketQuery(domain.TicketFilter{}).Columns(ticketColumns...).Where(sq.Eq{"tk.id": id})
	return getOne(ctx, r.db, q, scanTicket)
}

var _ TicketRepository = (*PGTicketRepository)(nil)
