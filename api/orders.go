package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service booking.OrderUseCase
	pages   Pagination
}

type ticketRequest struct {
	Row    int   `json:"row" binding:"required,min=1"`
	Seat   int   `json:"seat" binding:"required,min=1"`
	Flight int64 `json:"flight" binding:"required,gt=0"`
}

// orderRequest ignores any user field; the owner is always the caller.
type orderRequest struct {
	Tickets []ticketRequest `json:"tickets" binding:"required,min=1,dive"`
}

func (r *orderRequest) tickets() []domain.Ticket {
	tickets := make([]domain.Ticket, len(r.Tickets))
	for i, t := range r.Tickets {
		tickets[i] = domain.Ticket{Row: t.Row, Seat: t.Seat, FlightID: t.Flight}
	}
	return tickets
}

type orderTicketView struct {
	ID     int64             `json:"id"`
	Row    int               `json:"row"`
	Seat   int               `json:"seat"`
	Flight flightSummaryView `json:"flight"`
}

type orderView struct {
	ID        int64             `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	User      string            `json:"user"`
	Tickets   []orderTicketView `json:"tickets"`
}

type orderTicketWriteView struct {
	ID     int64 `json:"id"`
	Row    int   `json:"row"`
	Seat   int   `json:"seat"`
	Flight int64 `json:"flight"`
}

type orderWriteView struct {
	ID        int64                  `json:"id"`
	CreatedAt time.Time              `json:"created_at"`
	User      string                 `json:"user"`
	Tickets   []orderTicketWriteView `json:"tickets"`
}

func flightSummary(t *domain.Ticket) flightSummaryView {
	view := flightSummaryView{ID: t.FlightID}
	if f := t.Flight; f != nil {
		view.Source = f.Source
		view.Destination = f.Destination
		view.AirplaneName = f.AirplaneName
		view.DepartureTime = f.DepartureTime
		view.ArrivalTime = f.ArrivalTime
	}
	return view
}

func orderDetail(o *domain.Order) any {
	tickets := make([]orderTicketView, len(o.Tickets))
	for i := range o.Tickets {
		t := &o.Tickets[i]
		tickets[i] = orderTicketView{ID: t.ID, Row: t.Row, Seat: t.Seat, Flight: flightSummary(t)}
	}
	return orderView{ID: o.ID, CreatedAt: o.CreatedAt, User: o.UserID, Tickets: tickets}
}

var orderViews = projection[domain.Order]{
	actionRetrieve: orderDetail,
	actionWrite: func(o *domain.Order) any {
		tickets := make([]orderTicketWriteView, len(o.Tickets))
		for i, t := range o.Tickets {
			tickets[i] = orderTicketWriteView{ID: t.ID, Row: t.Row, Seat: t.Seat, Flight: t.FlightID}
		}
		return orderWriteView{ID: o.ID, CreatedAt: o.CreatedAt, User: o.UserID, Tickets: tickets}
	},
}

func NewOrderHandler(service booking.OrderUseCase, pages Pagination) *OrderHandler {
	return &OrderHandler{service: service, pages: pages}
}

func (h *OrderHandler) Register(router *gin.RouterGroup) {
	handle(router, http.MethodGet, "", h.list)
	handle(router, http.MethodPost, "", h.create)
	handle(router, http.MethodGet, "/:id", h.get)
	handle(router, http.MethodPut, "/:id", h.update)
	handle(router, http.MethodPatch, "/:id", h.update)
	handle(router, http.MethodDelete, "/:id", h.delete)
}

func (h *OrderHandler) list(c *gin.Context) {
	ticketIDs, err := idList(c, "ticket_id")
	if err != nil {
		writeError(c, err)
		return
	}
	page, err := h.pages.parse(c)
	if err != nil {
		writeError(c, err)
		return
	}

	orders, total, err := h.service.ListOrders(c.Request.Context(), caller(c), domain.OrderFilter{TicketIDs: ticketIDs}, page.window())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page.envelope(c, total, render(orderViews, actionList, orders)))
}

func (h *OrderHandler) get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	order, err := h.service.GetOrder(c.Request.Context(), caller(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderViews.render(actionRetrieve, order))
}

func (h *OrderHandler) create(c *gin.Context) {
	var req orderRequest
	if !bindJSON(c, &req, false) {
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), caller(c), req.tickets())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderViews.render(actionWrite, order))
}

// update replaces the ticket set for both PUT and PATCH.
func (h *OrderHandler) update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	var req orderRequest
	if !bindJSON(c, &req, false) {
		return
	}

	order, err := h.service.UpdateOrder(c.Request.Context(), caller(c), id, req.tickets())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderViews.render(actionWrite, order))
}

func (h *OrderHandler) delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.DeleteOrder(c.Request.Context(), caller(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
