package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository interface {
	List(ctx context.Context, filter domain.OrderFilter, page domain.Page) ([]domain.Order, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// Create inserts the order and all of its tickets in one transaction.
	// Tickets are checked against the seat layouts read in that transaction.
	Create(ctx context.Context, order *domain.Order) error
	// ReplaceTickets swaps the order's ticket set for order.Tickets in one
	// transaction, with the same seat layout check as Create.
	ReplaceTickets(ctx context.Context, order *domain.Order) error
	Delete(ctx context.Context, id int64) error
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

var orderColumns = []string{"o.id", "o.created_at", "o.user_id"}

func orderQuery(f domain.OrderFilter) sq.SelectBuilder {
	q := psql.Select().From("orders o")
	if f.UserID != "" {
		q = q.Where(sq.Eq{"o.user_id": f.UserID})
	}
	if len(f.TicketIDs) > 0 {
		q = q.Where(sq.Expr("EXISTS (SELECT 1 FROM tickets ot WHERE ot.order_id = o.id AND ot.id = ANY(?))", f.TicketIDs))
	}
	return q
}

func scanOrder(row pgx.CollectableRow) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.CreatedAt, &o.UserID)
	return o, err
}

func (r *PGOrderRepository) List(ctx context.Context, f domain.OrderFilter, page domain.Page) ([]domain.Order, int, error) {
	orders, total, err := listPage(ctx, r.db, orderQuery(f), orderColumns, "o.id", page, scanOrder)
	if err != nil {
		return nil, 0, err
	}
	if err := r.attachTickets(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *PGOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	q := orderQuery(domain.OrderFilter{}).Columns(orderColumns...).Where(sq.Eq{"o.id": id})
	o, err := getOne(ctx, r.db, q, scanOrder)
	if err != nil {
		return nil, err
	}
	one := []domain.Order{*o}
	if err := r.attachTickets(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

// attachTickets loads the tickets of all given orders with one query.
func (r *PGOrderRepository) attachTickets(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	q := ticketQuery(domain.TicketFilter{}).
		Columns(ticketColumns...).
		Where(sq.Expr("tk.order_id = ANY(?)", ids)).
		OrderBy("tk.id")
	rows, err := query(ctx, r.db, q)
	if err != nil {
		return err
	}
	tickets, err := pgx.CollectRows(rows, scanTicket)
	if err != nil {
		return err
	}

	byOrder := make(map[int64][]domain.Ticket, len(orders))
	for _, t := range tickets {
		t.Order = nil
		byOrder[t.OrderID] = append(byOrder[t.OrderID], t)
	}
	for i := range orders {
		orders[i].Tickets = byOrder[orders[i].ID]
	}
	return nil
}

func (r *PGOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := validateTickets(ctx, tx, order.Tickets); err != nil {
		return err
	}

	var (
		id        int64
		createdAt time.Time
	)
	if err := tx.QueryRow(ctx, `INSERT INTO orders (user_id) VALUES ($1) RETURNING id, created_at`, order.UserID).
		Scan(&id, &createdAt); err != nil {
		return mapWriteError(err)
	}
	if err := insertTickets(ctx, tx, id, order.Tickets); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	order.ID = id
	order.CreatedAt = createdAt
	return nil
}

func (r *PGOrderRepository) ReplaceTickets(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `SELECT created_at, user_id FROM orders WHERE id = $1 FOR UPDATE`, order.ID).
		Scan(&order.CreatedAt, &order.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if err := validateTickets(ctx, tx, order.Tickets); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM tickets WHERE order_id = $1`, order.ID); err != nil {
		return err
	}
	if err := insertTickets(ctx, tx, order.ID, order.Tickets); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// insertTickets inserts tickets for orderID as one batch, filling in their ids.
func insertTickets(ctx context.Context, tx pgx.Tx, orderID int64, tickets []domain.Ticket) error {
	batch := &pgx.Batch{}
	for _, t := range tickets {
		batch.Queue(`INSERT INTO tickets ("row", seat, flight_id, order_id) VALUES ($1, $2, $3, $4) RETURNING id`,
			t.Row, t.Seat, t.FlightID, orderID)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range tickets {
		if err := br.QueryRow().Scan(&tickets[i].ID); err != nil {
			br.Close()
			return mapWriteError(err)
		}
		tickets[i].OrderID = orderID
	}
	return br.Close()
}

func (r *PGOrderRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "orders", id)
}

var _ OrderRepository = (*PGOrderRepository)(nil)
