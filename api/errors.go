package api

import (
	"errors"
	"log"
	"net/http"
	"reflect"
	"strings"

	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// writeError maps domain errors to HTTP responses. Unknown errors are logged
// and answered with a generic 500.
func writeError(c *gin.Context, err error) {
	var v *domain.ValidationError
	switch {
	case errors.As(err, &v):
		c.JSON(http.StatusBadRequest, errorResponse{Error: "validation failed", Details: v.Fields})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, auth.ErrInvalidToken):
		c.Header("WWW-Authenticate", `Bearer realm="api"`)
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "authentication credentials were not provided or are invalid"})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonName)
		domain.RegisterValidations(v)
	}
}

// jsonName reports request fields by their JSON key.
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// bindJSON decodes and validates the request body into req, answering 400 on
// failure. A partial bind accepts absent fields and checks only the present
// ones.
func bindJSON(c *gin.Context, req any, partial bool) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		writeError(c, domain.NewValidationError("body", err.Error()))
		return false
	}
	if partial {
		errs = present(errs)
		if len(errs) == 0 {
			return true
		}
	}
	writeError(c, domain.FieldErrors(errs))
	return false
}

func present(errs validator.ValidationErrors) validator.ValidationErrors {
	kept := errs[:0]
	for _, fe := range errs {
		if fe.Tag() != "required" {
			kept = append(kept, fe)
		}
	}
	return kept
}
