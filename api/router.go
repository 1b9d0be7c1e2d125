package api

import (
	"context"
	_ "embed"
	"net/http"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.json
var openAPISpec []byte

type Services struct {
	Countries     catalog.UseCase[domain.Country, domain.NameFilter]
	Cities        catalog.UseCase[domain.City, domain.CityFilter]
	Airports      catalog.UseCase[domain.Airport, domain.AirportFilter]
	Routes        catalog.UseCase[domain.Route, domain.RouteFilter]
	Crews         catalog.UseCase[domain.Crew, domain.NameFilter]
	AirplaneTypes catalog.UseCase[domain.AirplaneType, domain.NameFilter]
	Airplanes     catalog.UseCase[domain.Airplane, domain.NameFilter]
	Flights       catalog.UseCase[domain.Flight, domain.FlightFilter]
	Orders        booking.OrderUseCase
	Tickets       booking.TicketUseCase
}

type Options struct {
	Verifier   TokenVerifier
	Pagination Pagination
	// Limiter is optional; nil disables rate limiting.
	Limiter RateLimiter
	// Health is optional and backs GET /healthz.
	Health  func(ctx context.Context) error
	Swagger bool
}

func NewRouter(services Services, opts Options) *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(gin.Logger(), gin.Recovery(), requestID())

	router.GET("/healthz", health(opts.Health))
	if opts.Swagger {
		router.GET("/openapi.json", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json", openAPISpec)
		})
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/openapi.json"))))
	}

	api := router.Group("/api", authenticate(opts.Verifier))
	if opts.Limiter != nil {
		api.Use(rateLimit(opts.Limiter))
	}

	pages := opts.Pagination
	NewCountryHandler(services.Countries, pages).Register(api.Group("/countries"))
	NewCityHandler(services.Cities, pages).Register(api.Group("/cities"))
	NewAirportHandler(services.Airports, pages).Register(api.Group("/airports"))
	NewRouteHandler(services.Routes, pages).Register(api.Group("/routes"))
	NewCrewHandler(services.Crews, pages).Register(api.Group("/crews"))
	NewAirplaneTypeHandler(services.AirplaneTypes, pages).Register(api.Group("/airplane_types"))
	NewAirplaneHandler(services.Airplanes, pages).Register(api.Group("/airplanes"))
	NewFlightHandler(services.Flights, pages).Register(api.Group("/flights"))
	NewOrderHandler(services.Orders, pages).Register(api.Group("/orders"))
	NewTicketHandler(services.Tickets, pages).Register(api.Group("/tickets"))

	return router
}

func health(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
