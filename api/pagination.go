package api

import (
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/gin-gonic/gin"
)

// Pagination holds the page size bounds of list endpoints.
type Pagination struct {
	DefaultSize int
	MaxSize     int
}

type pageRequest struct {
	number int
	size   int
}

type pageResponse struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []any   `json:"results"`
}

// parse reads page and page_size. Sizes above the maximum are clamped, as
// are page numbers whose offset would overflow.
func (p Pagination) parse(c *gin.Context) (pageRequest, error) {
	req := pageRequest{number: 1, size: p.DefaultSize}
	if req.size < 1 {
		req.size = 20
	}
	v := &domain.ValidationError{}
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			v.Add("page", "must be a positive integer")
		}
		req.number = n
	}
	if raw := c.Query("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			v.Add("page_size", "must be a positive integer")
		}
		req.size = n
	}
	if err := v.Err(); err != nil {
		return pageRequest{}, err
	}
	if p.MaxSize > 0 && req.size > p.MaxSize {
		req.size = p.MaxSize
	}
	// Keeps number*size, and so the offset, within int.
	if last := math.MaxInt / req.size; req.number > last {
		req.number = last
	}
	return req, nil
}

func (r pageRequest) window() domain.Page {
	return domain.Page{Limit: r.size, Offset: (r.number - 1) * r.size}
}

func (r pageRequest) envelope(c *gin.Context, total int, results []any) pageResponse {
	resp := pageResponse{Count: total, Results: results}
	if r.number*r.size < total {
		resp.Next = pageLink(c.Request, r.number+1)
	}
	if r.number > 1 {
		resp.Previous = pageLink(c.Request, r.number-1)
	}
	return resp
}

// pageLink rebuilds the absolute request URL pointing at another page.
func pageLink(req *http.Request, number int) *string {
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	if forwarded := req.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}

	query := req.URL.Query()
	if number == 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(number))
	}
	u := url.URL{Scheme: scheme, Host: req.Host, Path: req.URL.Path, RawQuery: query.Encode()}
	link := u.String()
	return &link
}

// render projects every item of a list page.
func render[T any](views projection[T], a action, items []T) []any {
	results := make([]any, len(items))
	for i := range items {
		results[i] = views.render(a, &items[i])
	}
	return results
}
