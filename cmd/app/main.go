package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airport/api"
	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/bootstrap"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/kafka"
	"github.com/Domenick1991/airport/internal/ratelimit"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/Domenick1991/airport/internal/service/booking"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := repository.Migrate(ctx, pool); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	services := api.Services{
		Countries:     catalog.NewService[domain.Country, domain.NameFilter](repository.NewCountryRepository(pool)),
		Cities:        catalog.NewService[domain.City, domain.CityFilter](repository.NewCityRepository(pool)),
		Airports:      catalog.NewService[domain.Airport, domain.AirportFilter](repository.NewAirportRepository(pool)),
		Routes:        catalog.NewService[domain.Route, domain.RouteFilter](repository.NewRouteRepository(pool)),
		Crews:         catalog.NewService[domain.Crew, domain.NameFilter](repository.NewCrewRepository(pool)),
		AirplaneTypes: catalog.NewService[domain.AirplaneType, domain.NameFilter](repository.NewAirplaneTypeRepository(pool)),
		Airplanes:     catalog.NewService[domain.Airplane, domain.NameFilter](repository.NewAirplaneRepository(pool)),
		Flights:       catalog.NewService[domain.Flight, domain.FlightFilter](repository.NewFlightRepository(pool)),
		Tickets:       booking.NewTicketService(repository.NewTicketRepository(pool)),
	}

	orderOpts := []booking.OrderServiceOption{booking.WithOwnerOnlyReads(cfg.OwnerOnlyOrderReads())}
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()

		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := producer.CheckConnection(checkCtx); err != nil {
			log.Printf("WARNING: kafka unavailable, order events may be lost: %v", err)
		}
		cancel()

		orderOpts = append(orderOpts,
			booking.WithProducer(producer, cfg.Kafka.OrderEventsTopic),
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}
	services.Orders = booking.NewOrderService(repository.NewOrderRepository(pool), orderOpts...)

	opts := api.Options{
		Verifier: auth.NewVerifier(cfg.Auth),
		Pagination: api.Pagination{
			DefaultSize: cfg.Pagination.DefaultPageSize,
			MaxSize:     cfg.Pagination.MaxPageSize,
		},
		Swagger: cfg.HTTP.SwaggerEnabled,
	}
	checks := []func(context.Context) error{pool.Ping}
	if cfg.RateLimit.Enabled {
		limiter := ratelimit.NewRedisLimiter(cfg.Redis, cfg.RateLimit)
		defer limiter.Close()
		opts.Limiter = limiter
		checks = append(checks, limiter.Ping)
	}
	opts.Health = healthCheck(checks...)

	if err := bootstrap.Run(ctx, cfg.HTTP, api.NewRouter(services, opts)); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// healthCheck fails on the first dependency that does not answer.
func healthCheck(checks ...func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}
