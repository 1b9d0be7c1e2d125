package api

import (
	"net/http"

	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

// request is a decoded write payload for T. Fields are pointers so that an
// omitted field can be told apart from a zero value; binding tags mark the
// fields a full write needs.
type request[T, R any] interface {
	*R
	// apply copies the fields present in the payload onto item.
	apply(item *T)
}

// CRUDHandler serves list, retrieve, create, update and delete of one
// catalog resource.
type CRUDHandler[T catalog.Entity, F any, R any, PR request[T, R]] struct {
	service catalog.UseCase[T, F]
	filter  func(*gin.Context) (F, error)
	views   projection[T]
	pages   Pagination
}

func NewCRUDHandler[T catalog.Entity, F any, R any, PR request[T, R]](
	service catalog.UseCase[T, F],
	filter func(*gin.Context) (F, error),
	views projection[T],
	pages Pagination,
) *CRUDHandler[T, F, R, PR] {
	return &CRUDHandler[T, F, R, PR]{service: service, filter: filter, views: views, pages: pages}
}

func (h *CRUDHandler[T, F, R, PR]) Register(router *gin.RouterGroup) {
	handle(router, http.MethodGet, "", h.list)
	handle(router, http.MethodPost, "", h.create)
	handle(router, http.MethodGet, "/:id", h.get)
	handle(router, http.MethodPut, "/:id", h.replace)
	handle(router, http.MethodPatch, "/:id", h.patch)
	handle(router, http.MethodDelete, "/:id", h.delete)
}

// handle registers path with and without a trailing slash.
func handle(router *gin.RouterGroup, method, path string, handler gin.HandlerFunc) {
	router.Handle(method, path, handler)
	router.Handle(method, path+"/", handler)
}

func (h *CRUDHandler[T, F, R, PR]) list(c *gin.Context) {
	filter, err := h.filter(c)
	if err != nil {
		writeError(c, err)
		return
	}
	page, err := h.pages.parse(c)
	if err != nil {
		writeError(c, err)
		return
	}

	items, total, err := h.service.List(c.Request.Context(), filter, page.window())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page.envelope(c, total, render(h.views, actionList, items)))
}

func (h *CRUDHandler[T, F, R, PR]) get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.views.render(actionRetrieve, item))
}

func (h *CRUDHandler[T, F, R, PR]) create(c *gin.Context) {
	var req R
	if !bindJSON(c, &req, false) {
		return
	}

	var item T
	PR(&req).apply(&item)
	created, err := h.service.Create(c.Request.Context(), item)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.views.render(actionWrite, created))
}

func (h *CRUDHandler[T, F, R, PR]) replace(c *gin.Context) {
	h.update(c, false)
}

func (h *CRUDHandler[T, F, R, PR]) patch(c *gin.Context) {
	h.update(c, true)
}

func (h *CRUDHandler[T, F, R, PR]) update(c *gin.Context, partial bool) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	var req R
	if !bindJSON(c, &req, partial) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, PR(&req).apply)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.views.render(actionWrite, updated))
}

func (h *CRUDHandler[T, F, R, PR]) delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
