package email

import (
	"context"
	"testing"

	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	event := kafka.OrderEvent{
		Type:    kafka.OrderCreated,
		OrderID: 4,
		UserID:  "alice",
		Tickets: []kafka.TicketEvent{{FlightID: 1, Row: 7, Seat: 8}},
	}

	assert.Equal(t, "notify alice: order 4 confirmed; flight 1 row 7 seat 8", Render(event))
}

func TestRender_Deleted(t *testing.T) {
	event := kafka.OrderEvent{Type: kafka.OrderDeleted, OrderID: 4, UserID: "alice"}
	assert.Equal(t, "notify alice: order 4 cancelled", Render(event))
}

func TestSender_Send(t *testing.T) {
	assert.NoError(t, NewSender().Send(context.Background(), kafka.OrderEvent{Type: kafka.OrderUpdated, OrderID: 1}))
}
