package domain

import "time"

// Flight is one airplane operating one route. Route, Airplane, Crews,
// TicketsAvailable and TakenPlaces are populated on reads only.
type Flight struct {
	ID            int64
	RouteID       int64     `validate:"required,gt=0"`
	AirplaneID    int64     `validate:"required,gt=0"`
	DepartureTime time.Time `validate:"required"`
	ArrivalTime   time.Time `validate:"required,gtfield=DepartureTime"`
	CrewIDs       []int64   `field:"crews" validate:"unique,dive,gt=0"`

	Route            *Route    `validate:"-"`
	Airplane         *Airplane `validate:"-"`
	Crews            []Crew    `validate:"-"`
	TicketsAvailable int
	TakenPlaces      []Seat `validate:"-"`
}

type Seat struct {
	Row  int
	Seat int
}

func (f Flight) Validate() error {
	return check(f)
}

// FlightSummary is the compact flight shape nested into tickets.
type FlightSummary struct {
	ID            int64
	Source        string
	Destination   string
	AirplaneName  string
	DepartureTime time.Time
	ArrivalTime   time.Time
}

// SeatLayout is the seating grid of the airplane assigned to a flight.
type SeatLayout struct {
	FlightID   int64
	Rows       int
	SeatsInRow int
}

func (l SeatLayout) HasRow(row int) bool {
	return row >= 1 && row <= l.Rows
}

func (l SeatLayout) HasSeat(seat int) bool {
	return seat >= 1 && seat <= l.SeatsInRow
}
