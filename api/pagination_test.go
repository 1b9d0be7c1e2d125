package api

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageContext(target string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestPagination_HugePageDoesNotOverflow(t *testing.T) {
	c := pageContext("/api/countries/?page=9223372036854775807&page_size=20")

	page, err := Pagination{DefaultSize: 20, MaxSize: 100}.parse(c)
	require.NoError(t, err)

	window := page.window()
	assert.Equal(t, 20, window.Limit)
	assert.Equal(t, (math.MaxInt/20-1)*20, window.Offset)
	assert.Positive(t, window.Offset)

	resp := page.envelope(c, 3, []any{})
	assert.Nil(t, resp.Next)
	require.NotNil(t, resp.Previous)
	assert.NotContains(t, *resp.Previous, "page=-")
}

func TestPagination_Window(t *testing.T) {
	c := pageContext("/api/flights/?page=3")

	page, err := Pagination{DefaultSize: 10, MaxSize: 100}.parse(c)
	require.NoError(t, err)
	assert.Equal(t, 10, page.window().Limit)
	assert.Equal(t, 20, page.window().Offset)

	resp := page.envelope(c, 31, nil)
	require.NotNil(t, resp.Next)
	assert.Equal(t, "http://example.com/api/flights/?page=4", *resp.Next)
	require.NotNil(t, resp.Previous)
	assert.Equal(t, "http://example.com/api/flights/?page=2", *resp.Previous)
}

func TestPagination_PageTooLargeForInt(t *testing.T) {
	_, err := Pagination{DefaultSize: 10}.parse(pageContext("/api/flights/?page=99999999999999999999"))
	assert.Error(t, err)
}
