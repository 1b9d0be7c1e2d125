package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errReadOnly = errors.New("read-only fixture")

// bookingStore keeps one flight with its orders in memory and derives seat
// availability from the booked tickets, as the flight queries do.
type bookingStore struct {
	mu         sync.Mutex
	flight     domain.Flight
	orders     map[int64]*domain.Order
	lastOrder  int64
	lastTicket int64
}

func newBookingStore() *bookingStore {
	departure := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	return &bookingStore{
		flight: domain.Flight{
			ID:            1,
			RouteID:       1,
			AirplaneID:    2,
			DepartureTime: departure,
			ArrivalTime:   departure.Add(2 * time.Hour),
			Airplane:      &domain.Airplane{ID: 2, Name: "Mriya", Rows: 10, SeatsInRow: 10, AirplaneTypeID: 1},
		},
		orders: make(map[int64]*domain.Order),
	}
}

// booked returns every ticket ordered by id. Callers hold mu.
func (s *bookingStore) booked() []domain.Ticket {
	all := make([]domain.Ticket, 0)
	for _, o := range s.orders {
		all = append(all, o.Tickets...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

func (s *bookingStore) flightWithSeats() domain.Flight {
	f := s.flight
	taken := 0
	for _, t := range s.booked() {
		if t.FlightID == f.ID {
			taken++
			f.TakenPlaces = append(f.TakenPlaces, domain.Seat{Row: t.Row, Seat: t.Seat})
		}
	}
	f.TicketsAvailable = f.Airplane.Capacity() - taken
	return f
}

// saveTickets validates tickets and numbers them for orderID. Callers hold mu.
func (s *bookingStore) saveTickets(orderID int64, tickets []domain.Ticket) error {
	layouts := map[int64]domain.SeatLayout{
		s.flight.ID: {FlightID: s.flight.ID, Rows: s.flight.Airplane.Rows, SeatsInRow: s.flight.Airplane.SeatsInRow},
	}
	if err := domain.ValidateTickets(tickets, layouts); err != nil {
		return err
	}
	for _, b := range s.booked() {
		if b.OrderID == orderID {
			continue
		}
		for _, t := range tickets {
			if b.FlightID == t.FlightID && b.Row == t.Row && b.Seat == t.Seat {
				return fmt.Errorf("%w: seat is already booked", domain.ErrConflict)
			}
		}
	}
	for i := range tickets {
		s.lastTicket++
		tickets[i].ID = s.lastTicket
		tickets[i].OrderID = orderID
	}
	return nil
}

type memoryFlights struct{ *bookingStore }

func (r memoryFlights) List(ctx context.Context, filter domain.FlightFilter, page domain.Page) ([]domain.Flight, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return []domain.Flight{r.flightWithSeats()}, 1, nil
}

func (r memoryFlights) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id != r.flight.ID {
		return nil, domain.ErrNotFound
	}
	f := r.flightWithSeats()
	return &f, nil
}

func (r memoryFlights) Create(ctx context.Context, f *domain.Flight) error { return errReadOnly }

func (r memoryFlights) Update(ctx context.Context, f *domain.Flight) error { return errReadOnly }

func (r memoryFlights) Delete(ctx context.Context, id int64) error { return errReadOnly }

type memoryOrders struct{ *bookingStore }

func (r memoryOrders) List(ctx context.Context, filter domain.OrderFilter, page domain.Page) ([]domain.Order, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	orders := make([]domain.Order, 0)
	for _, o := range r.orders {
		if filter.UserID == "" || o.UserID == filter.UserID {
			orders = append(orders, *o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, len(orders), nil
}

func (r memoryOrders) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	found := *o
	found.Tickets = append([]domain.Ticket(nil), o.Tickets...)
	return &found, nil
}

func (r memoryOrders) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.lastOrder + 1
	if err := r.saveTickets(id, order.Tickets); err != nil {
		return err
	}
	r.lastOrder = id
	order.ID = id
	order.CreatedAt = time.Now().UTC()
	stored := *order
	stored.Tickets = append([]domain.Ticket(nil), order.Tickets...)
	r.orders[id] = &stored
	return nil
}

func (r memoryOrders) ReplaceTickets(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.orders[order.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if err := r.saveTickets(order.ID, order.Tickets); err != nil {
		return err
	}
	current.Tickets = append([]domain.Ticket(nil), order.Tickets...)
	return nil
}

func (r memoryOrders) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

type memoryTickets struct{ *bookingStore }

func (r memoryTickets) List(ctx context.Context, filter domain.TicketFilter, page domain.Page) ([]domain.Ticket, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.booked()
	return all, len(all), nil
}

func (r memoryTickets) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.booked() {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, domain.ErrNotFound
}

var (
	_ repository.FlightRepository = memoryFlights{}
	_ repository.OrderRepository  = memoryOrders{}
	_ repository.TicketRepository = memoryTickets{}
)

func bookingRouter(store *bookingStore) http.Handler {
	return NewRouter(Services{
		Flights: catalog.NewService[domain.Flight, domain.FlightFilter](memoryFlights{store}),
		Orders:  booking.NewOrderService(memoryOrders{store}),
		Tickets: booking.NewTicketService(memoryTickets{store}),
	}, testOptions())
}

func ticketsAvailable(t *testing.T, router http.Handler) float64 {
	t.Helper()
	w := doRequest(t, router, http.MethodGet, "/api/flights/1/", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode(t, w)["tickets_available"].(float64)
}

func TestBookingFlow_OrderLifecycle(t *testing.T) {
	router := bookingRouter(newBookingStore())

	before := ticketsAvailable(t, router)
	assert.Equal(t, float64(100), before)

	w := doRequest(t, router, http.MethodPost, "/api/orders/", aliceToken, `{"tickets":[{"row":3,"seat":4,"flight":1}]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	orderPath := fmt.Sprintf("/api/orders/%d/", int64(created["id"].(float64)))
	ticketID := created["tickets"].([]any)[0].(map[string]any)["id"].(float64)

	assert.Equal(t, before-1, ticketsAvailable(t, router))

	w = doRequest(t, router, http.MethodGet, "/api/flights/1/", aliceToken, nil)
	assert.Equal(t, []any{map[string]any{"row": float64(3), "seat": float64(4)}}, decode(t, w)["taken_places"])

	w = doRequest(t, router, http.MethodGet, "/api/tickets/", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	results := decode(t, w)["results"].([]any)
	require.Len(t, results, 1)
	assert.Equal(t, ticketID, results[0].(map[string]any)["id"])

	w = doRequest(t, router, http.MethodDelete, orderPath, aliceToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodGet, orderPath, aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/tickets/", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(0), body["count"])
	assert.Empty(t, body["results"])

	w = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/tickets/%d/", int64(ticketID)), aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, before, ticketsAvailable(t, router))
}

func TestBookingFlow_RejectedOrdersKeepAvailability(t *testing.T) {
	router := bookingRouter(newBookingStore())

	w := doRequest(t, router, http.MethodPost, "/api/orders/", aliceToken, `{"tickets":[{"row":11,"seat":1,"flight":1}]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]any{"tickets[0].row": "must be in range [1, 10]"}, decode(t, w)["details"])
	assert.Equal(t, float64(100), ticketsAvailable(t, router))

	w = doRequest(t, router, http.MethodPost, "/api/orders/", aliceToken, `{"tickets":[{"row":1,"seat":1,"flight":1}]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodPost, "/api/orders/", staffToken, `{"tickets":[{"row":1,"seat":1,"flight":1}]}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, float64(99), ticketsAvailable(t, router))
}
