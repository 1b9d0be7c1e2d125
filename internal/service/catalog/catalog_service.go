// Package catalog serves the administrative resources that bookings refer
// to: countries, cities, airports, routes, crews, airplane types, airplanes
// and flights.
package catalog

import (
	"context"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
)

// Entity is a row that can check its own field-level invariants.
type Entity interface {
	Validate() error
}

type UseCase[T Entity, F any] interface {
	List(ctx context.Context, filter F, page domain.Page) ([]T, int, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, item T) (*T, error)
	// Update loads the row, applies patch to it, validates and stores the result.
	Update(ctx context.Context, id int64, patch func(*T)) (*T, error)
	Delete(ctx context.Context, id int64) error
}

type Service[T Entity, F any] struct {
	repo repository.CRUD[T, F]
}

func NewService[T Entity, F any](repo repository.CRUD[T, F]) *Service[T, F] {
	return &Service[T, F]{repo: repo}
}

func (s *Service[T, F]) List(ctx context.Context, filter F, page domain.Page) ([]T, int, error) {
	return s.repo.List(ctx, filter, page)
}

func (s *Service[T, F]) Get(ctx context.Context, id int64) (*T, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service[T, F]) Create(ctx context.Context, item T) (*T, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service[T, F]) Update(ctx context.Context, id int64, patch func(*T)) (*T, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch(current)
	if err := (*current).Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *Service[T, F]) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

type (
	CountryService      = Service[domain.Country, domain.NameFilter]
	CityService         = Service[domain.City, domain.CityFilter]
	AirportService      = Service[domain.Airport, domain.AirportFilter]
	RouteService        = Service[domain.Route, domain.RouteFilter]
	CrewService         = Service[domain.Crew, domain.NameFilter]
	AirplaneTypeService = Service[domain.AirplaneType, domain.NameFilter]
	AirplaneService     = Service[domain.Airplane, domain.NameFilter]
	FlightService       = Service[domain.Flight, domain.FlightFilter]
)

var _ UseCase[domain.Flight, domain.FlightFilter] = (*FlightService)(nil)
