package repository

import (
	"errors"
	"fmt"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// constraintFields names the request field a schema constraint guards.
var constraintFields = map[string]string{
	"cities_country_fk":         "country",
	"airports_city_fk":          "closest_big_city",
	"routes_source_fk":          "source",
	"routes_destination_fk":     "destination",
	"routes_distinct_airports":  "destination",
	"routes_distance_positive":  "distance",
	"crews_flying_hours_nonneg": "flying_hours",
	"airplanes_type_fk":         "airplane_type",
	"airplanes_rows_positive":   "rows",
	"airplanes_seats_positive":  "seats_in_row",
	"flights_route_fk":          "route",
	"flights_airplane_fk":       "airplane",
	"flights_times_ordered":     "arrival_time",
	"flight_crews_crew_fk":      "crews",
	"tickets_flight_fk":         "flight",
	"tickets_row_positive":      "row",
	"tickets_seat_positive":     "seat",
}

func constraintField(name string) string {
	if f, ok := constraintFields[name]; ok {
		return f
	}
	return "non_field_errors"
}

// mapWriteError turns driver errors from INSERT/UPDATE into domain errors.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		if pgErr.ConstraintName == "tickets_seat_unique" {
			return fmt.Errorf("%w: seat is already booked (%s)", domain.ErrConflict, pgErr.Detail)
		}
		return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.Detail)
	case pgerrcode.ForeignKeyViolation:
		return domain.NewValidationError(constraintField(pgErr.ConstraintName), "referenced object does not exist")
	case pgerrcode.CheckViolation:
		return domain.NewValidationError(constraintField(pgErr.ConstraintName), "violates constraint "+pgErr.ConstraintName)
	}
	return err
}

// mapDeleteError reports a delete blocked by a restricting foreign key as a conflict.
func mapDeleteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return fmt.Errorf("%w: still referenced by %s", domain.ErrConflict, pgErr.TableName)
	}
	return err
}
