package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) List(ctx context.Context, filter domain.OrderFilter, page domain.Page) ([]domain.Order, int, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) ReplaceTickets(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value any) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

var (
	alice = domain.Identity{Subject: "alice"}
	bob   = domain.Identity{Subject: "bob"}
	staff = domain.Identity{Subject: "admin", IsStaff: true}
)

func TestOrderService_CreateOrder_Success(t *testing.T) {
	orders := &MockOrderRepository{}
	producer := &MockProducer{}
	service := NewOrderService(orders,
		WithProducer(producer, "order-events"),
		WithNotificationsTopic("notifications"),
	)
	ctx := context.Background()

	tickets := []domain.Ticket{{Row: 7, Seat: 6, FlightID: 1}}
	orders.On("Create", ctx, mock.MatchedBy(func(o *domain.Order) bool {
		return o.UserID == "alice" && len(o.Tickets) == 1
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Order).ID = 11
	}).Return(nil).Once()

	isCreated := mock.MatchedBy(func(e kafka.OrderEvent) bool {
		return e.Type == kafka.OrderCreated && e.OrderID == 11 && e.UserID == "alice" &&
			len(e.Tickets) == 1 && e.Tickets[0] == kafka.TicketEvent{FlightID: 1, Row: 7, Seat: 6}
	})
	producer.On("Publish", ctx, "order-events", "11", isCreated).Return(nil).Once()
	producer.On("Publish", ctx, "notifications", "11", isCreated).Return(nil).Once()

	order, err := service.CreateOrder(ctx, alice, tickets)

	require.NoError(t, err)
	assert.Equal(t, int64(11), order.ID)
	assert.Equal(t, "alice", order.UserID)
	orders.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestOrderService_CreateOrder_SeatErrorsFromRepository(t *testing.T) {
	orders := &MockOrderRepository{}
	producer := &MockProducer{}
	service := NewOrderService(orders, WithProducer(producer, "order-events"))
	ctx := context.Background()

	seatErr := domain.NewValidationError("tickets[0].row", "must be in range [1, 10]")
	orders.On("Create", ctx, mock.Anything).Return(seatErr).Once()

	order, err := service.CreateOrder(ctx, alice, []domain.Ticket{{Row: 11, Seat: 2, FlightID: 1}})

	assert.Nil(t, order)
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v))
	assert.Equal(t, map[string]string{"tickets[0].row": "must be in range [1, 10]"}, v.Fields)
	producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_RequiresTickets(t *testing.T) {
	orders := &MockOrderRepository{}
	service := NewOrderService(orders)

	_, err := service.CreateOrder(context.Background(), alice, nil)

	var v *domain.ValidationError
	require.True(t, errors.As(err, &v))
	assert.Equal(t, map[string]string{"tickets": "at least one ticket is required"}, v.Fields)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_SeatTaken(t *testing.T) {
	orders := &MockOrderRepository{}
	producer := &MockProducer{}
	service := NewOrderService(orders, WithProducer(producer, "order-events"))
	ctx := context.Background()

	orders.On("Create", ctx, mock.Anything).Return(domain.ErrConflict).Once()

	_, err := service.CreateOrder(ctx, alice, []domain.Ticket{{Row: 1, Seat: 1, FlightID: 1}})

	assert.ErrorIs(t, err, domain.ErrConflict)
	producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_PublishFailureIsIgnored(t *testing.T) {
	orders := &MockOrderRepository{}
	producer := &MockProducer{}
	service := NewOrderService(orders,
		WithProducer(producer, "order-events"),
		WithNotificationsTopic("notifications"),
	)
	ctx := context.Background()

	orders.On("Create", ctx, mock.Anything).Return(nil).Once()
	producer.On("Publish", ctx, "order-events", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	order, err := service.CreateOrder(ctx, alice, []domain.Ticket{{Row: 1, Seat: 1, FlightID: 1}})

	require.NoError(t, err)
	assert.NotNil(t, order)
	producer.AssertNumberOfCalls(t, "Publish", 1)
}

func TestOrderService_Unauthenticated(t *testing.T) {
	service := NewOrderService(&MockOrderRepository{})
	ctx := context.Background()
	anonymous := domain.Identity{}

	_, _, err := service.ListOrders(ctx, anonymous, domain.OrderFilter{}, domain.Page{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = service.GetOrder(ctx, anonymous, 1)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = service.CreateOrder(ctx, anonymous, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = service.UpdateOrder(ctx, anonymous, 1, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.ErrorIs(t, service.DeleteOrder(ctx, anonymous, 1), domain.ErrUnauthenticated)
}

func TestOrderService_ListOrders_Scope(t *testing.T) {
	page := domain.Page{Limit: 20}
	testCases := []struct {
		name       string
		strict     bool
		caller     domain.Identity
		wantUserID string
	}{
		{name: "strict user sees own", strict: true, caller: alice, wantUserID: "alice"},
		{name: "strict staff sees all", strict: true, caller: staff, wantUserID: ""},
		{name: "legacy user sees all", strict: false, caller: alice, wantUserID: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			orders := &MockOrderRepository{}
			service := NewOrderService(orders, WithOwnerOnlyReads(tc.strict))
			ctx := context.Background()

			// A user id supplied by the caller is never trusted.
			filter := domain.OrderFilter{TicketIDs: []int64{1}, UserID: "mallory"}
			want := domain.OrderFilter{TicketIDs: []int64{1}, UserID: tc.wantUserID}
			orders.On("List", ctx, want, page).Return([]domain.Order{{ID: 1}}, 1, nil).Once()

			result, total, err := service.ListOrders(ctx, tc.caller, filter, page)

			require.NoError(t, err)
			assert.Len(t, result, 1)
			assert.Equal(t, 1, total)
			orders.AssertExpectations(t)
		})
	}
}

func TestOrderService_GetOrder_Visibility(t *testing.T) {
	ctx := context.Background()
	owned := &domain.Order{ID: 5, UserID: "alice"}

	strictRepo := &MockOrderRepository{}
	strictRepo.On("GetByID", ctx, int64(5)).Return(owned, nil)
	strict := NewOrderService(strictRepo)

	order, err := strict.GetOrder(ctx, alice, 5)
	require.NoError(t, err)
	assert.Equal(t, owned, order)

	_, err = strict.GetOrder(ctx, bob, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = strict.GetOrder(ctx, staff, 5)
	assert.NoError(t, err)

	legacyRepo := &MockOrderRepository{}
	legacyRepo.On("GetByID", ctx, int64(5)).Return(owned, nil)
	legacy := NewOrderService(legacyRepo, WithOwnerOnlyReads(false))

	_, err = legacy.GetOrder(ctx, bob, 5)
	assert.NoError(t, err)
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	orders := &MockOrderRepository{}
	service := NewOrderService(orders)
	ctx := context.Background()

	orders.On("GetByID", ctx, int64(404)).Return(nil, domain.ErrNotFound).Once()

	_, err := service.GetOrder(ctx, alice, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderService_UpdateOrder_ReplacesTickets(t *testing.T) {
	orders := &MockOrderRepository{}
	producer := &MockProducer{}
	service := NewOrderService(orders, WithProducer(producer, "order-events"))
	ctx := context.Background()

	current := &domain.Order{ID: 3, UserID: "alice", Tickets: []domain.Ticket{{ID: 1, Row: 1, Seat: 1, FlightID: 1}}}
	replacement := []domain.Ticket{{Row: 2, Seat: 3, FlightID: 1}}
	orders.On("GetByID", ctx, int64(3)).Return(current, nil).Once()
	orders.On("ReplaceTickets", ctx, mock.MatchedBy(func(o *domain.Order) bool {
		return o.ID == 3 && len(o.Tickets) == 1 && o.Tickets[0].Row == 2 && o.Tickets[0].Seat == 3
	})).Return(nil).Once()
	producer.On("Publish", ctx, "order-events", "3", mock.MatchedBy(func(e kafka.OrderEvent) bool {
		return e.Type == kafka.OrderUpdated
	})).Return(nil).Once()

	order, err := service.UpdateOrder(ctx, alice, 3, replacement)

	require.NoError(t, err)
	assert.Equal(t, replacement, order.Tickets)
	orders.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestOrderService_UpdateOrder_OtherUsersOrder(t *testing.T) {
	orders := &MockOrderRepository{}
	service := NewOrderService(orders, WithOwnerOnlyReads(false))
	ctx := context.Background()

	orders.On("GetByID", ctx, int64(3)).Return(&domain.Order{ID: 3, UserID: "alice"}, nil).Once()

	_, err := service.UpdateOrder(ctx, bob, 3, []domain.Ticket{{Row: 1, Seat: 1, FlightID: 1}})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	orders.AssertNotCalled(t, "ReplaceTickets", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateOrder_RequiresTickets(t *testing.T) {
	orders := &MockOrderRepository{}
	service := NewOrderService(orders)
	ctx := context.Background()

	orders.On("GetByID", ctx, int64(3)).Return(&domain.Order{ID: 3, UserID: "alice"}, nil).Once()

	_, err := service.UpdateOrder(ctx, alice, 3, []domain.Ticket{})

	assert.True(t, domain.IsValidation(err))
	orders.AssertNotCalled(t, "ReplaceTickets", mock.Anything, mock.Anything)
}

func TestOrderService_DeleteOrder(t *testing.T) {
	orders := &MockOrderRepository{}
	producer := &MockProducer{}
	service := NewOrderService(orders, WithProducer(producer, "order-events"))
	ctx := context.Background()

	current := &domain.Order{ID: 8, UserID: "alice", Tickets: []domain.Ticket{{Row: 1, Seat: 2, FlightID: 1}}}
	orders.On("GetByID", ctx, int64(8)).Return(current, nil)
	orders.On("Delete", ctx, int64(8)).Return(nil).Once()
	producer.On("Publish", ctx, "order-events", "8", mock.MatchedBy(func(e kafka.OrderEvent) bool {
		return e.Type == kafka.OrderDeleted && len(e.Tickets) == 1
	})).Return(nil).Once()

	assert.ErrorIs(t, service.DeleteOrder(ctx, bob, 8), domain.ErrNotFound)
	require.NoError(t, service.DeleteOrder(ctx, alice, 8))

	orders.AssertNumberOfCalls(t, "Delete", 1)
	producer.AssertExpectations(t)
}

func TestOrderService_DeleteOrder_ByStaff(t *testing.T) {
	orders := &MockOrderRepository{}
	service := NewOrderService(orders)
	ctx := context.Background()

	orders.On("GetByID", ctx, int64(8)).Return(&domain.Order{ID: 8, UserID: "alice"}, nil).Once()
	orders.On("Delete", ctx, int64(8)).Return(nil).Once()

	assert.NoError(t, service.DeleteOrder(ctx, staff, 8))
	orders.AssertExpectations(t)
}
