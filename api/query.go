package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/gin-gonic/gin"
)

// pathID reads the :id parameter. Anything that is not a positive integer
// cannot name a row, so it is reported as not found.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

// idList parses a comma-separated list of integers from query parameter
// name, e.g. "?id=1,2,3". An absent parameter yields nil.
func idList(c *gin.Context, name string) ([]int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, domain.NewValidationError(name, fmt.Sprintf("%q is not an integer", part))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func nameFilter(c *gin.Context) (domain.NameFilter, error) {
	return domain.NameFilter{Name: c.Query("name")}, nil
}
