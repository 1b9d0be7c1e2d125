package booking

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
)

// TicketUseCase is read-only; tickets change only through their order.
type TicketUseCase interface {
	ListTickets(ctx context.Context, filter domain.TicketFilter, page domain.Page) ([]domain.Ticket, int, error)
	GetTicket(ctx context.Context, id int64) (*domain.Ticket, error)
}

type TicketService struct {
	tickets repository.TicketRepository
}

func NewTicketService(tickets repository.TicketRepository) *TicketService {
	return &TicketService{tickets: tickets}
}

func (s *TicketService) ListTickets(ctx context.Context, filter domain.TicketFilter, page domain.Page) ([]domain.Ticket, int, error) {
	return s.tickets.List(ctx, filter, page)
}

func (s *TicketService) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, id)
}

var _ TicketUseCase = (*TicketService)(nil)
