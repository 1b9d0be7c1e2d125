package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockUseCase[T any, F any] struct {
	mock.Mock
}

func (m *MockUseCase[T, F]) List(ctx context.Context, filter F, page domain.Page) ([]T, int, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]T), args.Int(1), args.Error(2)
}

func (m *MockUseCase[T, F]) Get(ctx context.Context, id int64) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockUseCase[T, F]) Create(ctx context.Context, item T) (*T, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockUseCase[T, F]) Update(ctx context.Context, id int64, patch func(*T)) (*T, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockUseCase[T, F]) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOrderUseCase struct {
	mock.Mock
}

func (m *MockOrderUseCase) ListOrders(ctx context.Context, caller domain.Identity, filter domain.OrderFilter, page domain.Page) ([]domain.Order, int, error) {
	args := m.Called(ctx, caller, filter, page)
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

func (m *MockOrderUseCase) GetOrder(ctx context.Context, caller domain.Identity, id int64) (*domain.Order, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderUseCase) CreateOrder(ctx context.Context, caller domain.Identity, tickets []domain.Ticket) (*domain.Order, error) {
	args := m.Called(ctx, caller, tickets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderUseCase) UpdateOrder(ctx context.Context, caller domain.Identity, id int64, tickets []domain.Ticket) (*domain.Order, error) {
	args := m.Called(ctx, caller, id, tickets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderUseCase) DeleteOrder(ctx context.Context, caller domain.Identity, id int64) error {
	args := m.Called(ctx, caller, id)
	return args.Error(0)
}

type MockTicketUseCase struct {
	mock.Mock
}

func (m *MockTicketUseCase) ListTickets(ctx context.Context, filter domain.TicketFilter, page domain.Page) ([]domain.Ticket, int, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]domain.Ticket), args.Int(1), args.Error(2)
}

func (m *MockTicketUseCase) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Allow(ctx context.Context, key string) (ratelimit.Decision, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(ratelimit.Decision), args.Error(1)
}

// tokenVerifier accepts the fixed tokens below.
type tokenVerifier map[string]domain.Identity

func (v tokenVerifier) Verify(raw string) (domain.Identity, error) {
	identity, ok := v[raw]
	if !ok {
		return domain.Identity{}, auth.ErrInvalidToken
	}
	return identity, nil
}

const (
	aliceToken = "alice-token"
	staffToken = "staff-token"
)

var (
	alice = domain.Identity{Subject: "alice"}
	staff = domain.Identity{Subject: "admin", IsStaff: true}
)

func testOptions() Options {
	return Options{
		Verifier:   tokenVerifier{aliceToken: alice, staffToken: staff},
		Pagination: Pagination{DefaultSize: 20, MaxSize: 100},
	}
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		var data []byte
		if raw, ok := body.(string); ok {
			data = []byte(raw)
		} else {
			var err error
			data, err = json.Marshal(body)
			require.NoError(t, err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}
