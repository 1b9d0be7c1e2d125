package email

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Domenick1991/airport/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

// Send notifies the order owner about event. Delivery is a log line; the
// identity provider owns contact details.
func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	log.Print(Render(event))
	return nil
}

func Render(event kafka.OrderEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "notify %s: order %d %s", event.UserID, event.OrderID, subject(event.Type))
	for _, t := range event.Tickets {
		fmt.Fprintf(&b, "; flight %d row %d seat %d", t.FlightID, t.Row, t.Seat)
	}
	return b.String()
}

func subject(eventType string) string {
	switch eventType {
	case kafka.OrderCreated:
		return "confirmed"
	case kafka.OrderUpdated:
		return "changed"
	case kafka.OrderDeleted:
		return "cancelled"
	default:
		return eventType
	}
}
