package domain

import (
	"fmt"
	"time"
)

// Order groups the tickets bought together by one user.
type Order struct {
	ID        int64
	CreatedAt time.Time
	UserID    string
	Tickets   []Ticket
}

// Ticket reserves one seat on one flight. Flight and Order are populated on
// detail reads.
type Ticket struct {
	ID       int64
	Row      int
	Seat     int
	FlightID int64
	OrderID  int64

	Flight *FlightSummary
	Order  *Order
}

// ValidateTickets checks a ticket set against the seat layouts of its
// flights. Every failing ticket is reported under "tickets[i].<field>".
func ValidateTickets(tickets []Ticket, layouts map[int64]SeatLayout) error {
	v := &ValidationError{}
	if len(tickets) == 0 {
		v.Add("tickets", "at least one ticket is required")
		return v
	}

	taken := make(map[[3]int64]int, len(tickets))
	for i, t := range tickets {
		prefix := fmt.Sprintf("tickets[%d]", i)
		layout, ok := layouts[t.FlightID]
		if !ok {
			v.Add(prefix+".flight", fmt.Sprintf("flight %d does not exist", t.FlightID))
			continue
		}
		if !layout.HasRow(t.Row) {
			v.Add(prefix+".row", fmt.Sprintf("must be in range [1, %d]", layout.Rows))
		}
		if !layout.HasSeat(t.Seat) {
			v.Add(prefix+".seat", fmt.Sprintf("must be in range [1, %d]", layout.SeatsInRow))
		}
		key := [3]int64{t.FlightID, int64(t.Row), int64(t.Seat)}
		if first, dup := taken[key]; dup {
			v.Add(prefix+".seat", fmt.Sprintf("duplicates tickets[%d]", first))
			continue
		}
		taken[key] = i
	}
	return v.Err()
}

// FlightIDs returns the distinct flights referenced by tickets.
func FlightIDs(tickets []Ticket) []int64 {
	seen := make(map[int64]struct{}, len(tickets))
	ids := make([]int64, 0, len(tickets))
	for _, t := range tickets {
		if _, ok := seen[t.FlightID]; ok {
			continue
		}
		seen[t.FlightID] = struct{}{}
		ids = append(ids, t.FlightID)
	}
	return ids
}
