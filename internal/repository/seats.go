package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airport/internal/domain"
	sq "github.com/Masterminds/squirrel"
)

// seatLayoutsQuery reads the seat grid of each flight and share-locks the
// flight and airplane rows so neither can be re-planned until the caller's
// transaction ends.
func seatLayoutsQuery(flightIDs []int64) sq.SelectBuilder {
	return psql.Select("f.id", `p."rows"`, "p.seats_in_row").
		From("flights f").
		Join("airplanes p ON p.id = f.airplane_id").
		Where(sq.Eq{"f.id": flightIDs}).
		Suffix("FOR SHARE OF f, p")
}

func seatLayouts(ctx context.Context, db querier, flightIDs []int64) (map[int64]domain.SeatLayout, error) {
	layouts := make(map[int64]domain.SeatLayout, len(flightIDs))
	if len(flightIDs) == 0 {
		return layouts, nil
	}

	rows, err := query(ctx, db, seatLayoutsQuery(flightIDs))
	if err != nil {
		return nil, fmt.Errorf("load seat layouts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.SeatLayout
		if err := rows.Scan(&l.FlightID, &l.Rows, &l.SeatsInRow); err != nil {
			return nil, err
		}
		layouts[l.FlightID] = l
	}
	return layouts, rows.Err()
}

// validateTickets checks tickets against the seat layouts as seen inside the
// writing transaction.
func validateTickets(ctx context.Context, db querier, tickets []domain.Ticket) error {
	layouts, err := seatLayouts(ctx, db, domain.FlightIDs(tickets))
	if err != nil {
		return err
	}
	return domain.ValidateTickets(tickets, layouts)
}

// seatGridQuery reports whether any ticket matched by where sits beyond the
// row count or the seats per row of its flight's airplane.
func seatGridQuery(where sq.Sqlizer) sq.SelectBuilder {
	return psql.Select(
		`COALESCE(bool_or(tk."row" > p."rows"), false)`,
		`COALESCE(bool_or(tk.seat > p.seats_in_row), false)`,
	).
		From("tickets tk").
		Join("flights f ON f.id = tk.flight_id").
		Join("airplanes p ON p.id = f.airplane_id").
		Where(where)
}

// checkSeatGrid rejects a plane or flight change that leaves booked tickets
// outside the seat grid. It must run after the UPDATE in the same transaction.
func checkSeatGrid(ctx context.Context, db querier, where sq.Sqlizer, rowField, seatField string) error {
	sql, args, err := seatGridQuery(where).ToSql()
	if err != nil {
		return fmt.Errorf("build seat grid check: %w", err)
	}
	var rowOut, seatOut bool
	if err := db.QueryRow(ctx, sql, args...).Scan(&rowOut, &seatOut); err != nil {
		return err
	}
	return seatGridError(rowOut, seatOut, rowField, seatField)
}

func seatGridError(rowOut, seatOut bool, rowField, seatField string) error {
	v := &domain.ValidationError{}
	if rowOut {
		v.Add(rowField, "booked tickets use a row outside the new seat grid")
	}
	if seatOut {
		v.Add(seatField, "booked tickets use a seat outside the new seat grid")
	}
	return v.Err()
}
