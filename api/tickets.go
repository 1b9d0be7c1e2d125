package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/gin-gonic/gin"
)

// TicketHandler is read-only; tickets are written through orders.
type TicketHandler struct {
	service booking.TicketUseCase
	pages   Pagination
}

type ticketListView struct {
	ID     int64 `json:"id"`
	Row    int   `json:"row"`
	Seat   int   `json:"seat"`
	Flight int64 `json:"flight"`
	Order  int64 `json:"order"`
}

type ticketDetailView struct {
	ID     int64             `json:"id"`
	Row    int               `json:"row"`
	Seat   int               `json:"seat"`
	Flight flightSummaryView `json:"flight"`
	Order  orderSummaryView  `json:"order"`
}

var ticketViews = projection[domain.Ticket]{
	actionList: func(t *domain.Ticket) any {
		return ticketListView{ID: t.ID, Row: t.Row, Seat: t.Seat, Flight: t.FlightID, Order: t.OrderID}
	},
	actionRetrieve: func(t *domain.Ticket) any {
		order := orderSummaryView{ID: t.OrderID}
		if t.Order != nil {
			order.CreatedAt = t.Order.CreatedAt
			order.User = t.Order.UserID
		}
		return ticketDetailView{ID: t.ID, Row: t.Row, Seat: t.Seat, Flight: flightSummary(t), Order: order}
	},
}

func NewTicketHandler(service booking.TicketUseCase, pages Pagination) *TicketHandler {
	return &TicketHandler{service: service, pages: pages}
}

func (h *TicketHandler) Register(router *gin.RouterGroup) {
	handle(router, http.MethodGet, "", h.list)
	handle(router, http.MethodGet, "/:id", h.get)
}

func (h *TicketHandler) list(c *gin.Context) {
	ids, err := idList(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}
	page, err := h.pages.parse(c)
	if err != nil {
		writeError(c, err)
		return
	}

	filter := domain.TicketFilter{IDs: ids, Route: c.Query("route")}
	tickets, total, err := h.service.ListTickets(c.Request.Context(), filter, page.window())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page.envelope(c, total, render(ticketViews, actionList, tickets)))
}

func (h *TicketHandler) get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	ticket, err := h.service.GetTicket(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticketViews.render(actionRetrieve, ticket))
}
