package api

import "time"

// action selects the response shape of a resource.
type action int

const (
	actionList action = iota
	actionRetrieve
	actionWrite
)

// projection is the response shape of T per action. Actions without an
// entry fall back to the retrieve shape.
type projection[T any] map[action]func(*T) any

func (p projection[T]) render(a action, item *T) any {
	if view, ok := p[a]; ok {
		return view(item)
	}
	return p[actionRetrieve](item)
}

type countryView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type cityDetailView struct {
	ID      int64       `json:"id"`
	Name    string      `json:"name"`
	Country countryView `json:"country"`
}

type airportSummaryView struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

type routeDetailView struct {
	ID          int64              `json:"id"`
	Source      airportSummaryView `json:"source"`
	Destination airportSummaryView `json:"destination"`
	Distance    float64            `json:"distance"`
}

type crewView struct {
	ID          int64   `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	FullName    string  `json:"full_name"`
	FlyingHours float64 `json:"flying_hours"`
}

type airplaneTypeView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type airplaneDetailView struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Rows         int              `json:"rows"`
	SeatsInRow   int              `json:"seats_in_row"`
	Capacity     int              `json:"capacity"`
	AirplaneType airplaneTypeView `json:"airplane_type"`
}

type flightSummaryView struct {
	ID            int64     `json:"id"`
	Source        string    `json:"source"`
	Destination   string    `json:"destination"`
	AirplaneName  string    `json:"airplane_name"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

type orderSummaryView struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	User      string    `json:"user"`
}
