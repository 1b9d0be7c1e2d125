package domain

// Page is a window into a list result.
type Page struct {
	Limit  int
	Offset int
}

// NameFilter matches a case-insensitive substring of the name.
type NameFilter struct {
	Name string
}

type CityFilter struct {
	Name    string
	Country string
}

type AirportFilter struct {
	Name        string
	ClosestCity string
}

type RouteFilter struct {
	From string
	To   string
}

type FlightFilter struct {
	IDs       []int64
	From      string
	To        string
	PlaneName string
}

type OrderFilter struct {
	TicketIDs []int64
	// UserID restricts the result to one owner when set.
	UserID string
}

type TicketFilter struct {
	IDs []int64
	// Route matches the source or the destination airport name.
	Route string
}
