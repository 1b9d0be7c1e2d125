// Package booking sells seats: orders and the tickets they hold.
package booking

import (
	"context"
	"log"
	"strconv"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/repository"
)

type OrderUseCase interface {
	ListOrders(ctx context.Context, caller domain.Identity, filter domain.OrderFilter, page domain.Page) ([]domain.Order, int, error)
	GetOrder(ctx context.Context, caller domain.Identity, id int64) (*domain.Order, error)
	CreateOrder(ctx context.Context, caller domain.Identity, tickets []domain.Ticket) (*domain.Order, error)
	// UpdateOrder replaces the whole ticket set of the order.
	UpdateOrder(ctx context.Context, caller domain.Identity, id int64, tickets []domain.Ticket) (*domain.Order, error)
	DeleteOrder(ctx context.Context, caller domain.Identity, id int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

type OrderService struct {
	orders             repository.OrderRepository
	producer           Producer
	eventsTopic        string
	notificationsTopic string
	ownerOnlyReads     bool
}

type OrderServiceOption func(*OrderService)

// WithProducer enables order events on topic.
func WithProducer(producer Producer, topic string) OrderServiceOption {
	return func(s *OrderService) {
		s.producer = producer
		s.eventsTopic = topic
	}
}

func WithNotificationsTopic(topic string) OrderServiceOption {
	return func(s *OrderService) {
		s.notificationsTopic = topic
	}
}

// WithOwnerOnlyReads switches list and retrieve between owner-or-staff
// visibility (true, the default) and visibility to every authenticated caller.
func WithOwnerOnlyReads(enabled bool) OrderServiceOption {
	return func(s *OrderService) {
		s.ownerOnlyReads = enabled
	}
}

func NewOrderService(orders repository.OrderRepository, opts ...OrderServiceOption) *OrderService {
	service := &OrderService{
		orders:         orders,
		ownerOnlyReads: true,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *OrderService) ListOrders(ctx context.Context, caller domain.Identity, filter domain.OrderFilter, page domain.Page) ([]domain.Order, int, error) {
	if caller.Subject == "" {
		return nil, 0, domain.ErrUnauthenticated
	}
	filter.UserID = ""
	if s.ownerOnlyReads && !caller.IsStaff {
		filter.UserID = caller.Subject
	}
	return s.orders.List(ctx, filter, page)
}

func (s *OrderService) GetOrder(ctx context.Context, caller domain.Identity, id int64) (*domain.Order, error) {
	if caller.Subject == "" {
		return nil, domain.ErrUnauthenticated
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.ownerOnlyReads && !caller.CanSee(order.UserID) {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, caller domain.Identity, tickets []domain.Ticket) (*domain.Order, error) {
	if caller.Subject == "" {
		return nil, domain.ErrUnauthenticated
	}
	if err := requireTickets(tickets); err != nil {
		return nil, err
	}

	order := &domain.Order{UserID: caller.Subject, Tickets: tickets}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.OrderCreated, order)
	return order, nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, caller domain.Identity, id int64, tickets []domain.Ticket) (*domain.Order, error) {
	order, err := s.owned(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := requireTickets(tickets); err != nil {
		return nil, err
	}

	order.Tickets = tickets
	if err := s.orders.ReplaceTickets(ctx, order); err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.OrderUpdated, order)
	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, caller domain.Identity, id int64) error {
	order, err := s.owned(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, kafka.OrderDeleted, order)
	return nil
}

// owned loads an order the caller may modify. Writes are owner-or-staff
// regardless of the read policy.
func (s *OrderService) owned(ctx context.Context, caller domain.Identity, id int64) (*domain.Order, error) {
	if caller.Subject == "" {
		return nil, domain.ErrUnauthenticated
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanSee(order.UserID) {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// requireTickets rejects an empty ticket set before touching storage. Seat
// bounds and duplicates are checked by the repository inside its write
// transaction.
func requireTickets(tickets []domain.Ticket) error {
	if len(tickets) == 0 {
		return domain.NewValidationError("tickets", "at least one ticket is required")
	}
	return nil
}

// publish is best effort: the order is already committed.
func (s *OrderService) publish(ctx context.Context, eventType string, order *domain.Order) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}

	tickets := make([]kafka.TicketEvent, len(order.Tickets))
	for i, t := range order.Tickets {
		tickets[i] = kafka.TicketEvent{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat}
	}
	event := kafka.NewOrderEvent(eventType, order.ID, order.UserID, tickets)
	key := strconv.FormatInt(order.ID, 10)

	if err := s.producer.Publish(ctx, s.eventsTopic, key, event); err != nil {
		log.Printf("WARNING: failed to publish %s for order %d: %v", eventType, order.ID, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			log.Printf("WARNING: failed to publish %s notification for order %d: %v", eventType, order.ID, err)
		}
	}
}

var _ OrderUseCase = (*OrderService)(nil)
