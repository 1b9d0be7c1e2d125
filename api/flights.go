package api

import (
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type FlightHandler = CRUDHandler[domain.Flight, domain.FlightFilter, flightRequest, *flightRequest]

func NewFlightHandler(service catalog.UseCase[domain.Flight, domain.FlightFilter], pages Pagination) *FlightHandler {
	return NewCRUDHandler[domain.Flight, domain.FlightFilter, flightRequest](service, flightFilter, flightViews, pages)
}

// crews may be omitted; the flight then keeps its current crew.
type flightRequest struct {
	Route         *int64     `json:"route" binding:"required,gt=0"`
	Airplane      *int64     `json:"airplane" binding:"required,gt=0"`
	DepartureTime *time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   *time.Time `json:"arrival_time" binding:"required"`
	Crews         *[]int64   `json:"crews" binding:"omitempty,unique,dive,gt=0"`
}

func (r *flightRequest) apply(f *domain.Flight) {
	if r.Route != nil {
		f.RouteID = *r.Route
	}
	if r.Airplane != nil {
		f.AirplaneID = *r.Airplane
	}
	if r.DepartureTime != nil {
		f.DepartureTime = *r.DepartureTime
	}
	if r.ArrivalTime != nil {
		f.ArrivalTime = *r.ArrivalTime
	}
	if r.Crews != nil {
		f.CrewIDs = append([]int64{}, *r.Crews...)
	}
}

func flightFilter(c *gin.Context) (domain.FlightFilter, error) {
	ids, err := idList(c, "id")
	if err != nil {
		return domain.FlightFilter{}, err
	}
	return domain.FlightFilter{
		IDs:       ids,
		From:      c.Query("from"),
		To:        c.Query("to"),
		PlaneName: c.Query("plane_name"),
	}, nil
}

type flightListView struct {
	ID               int64     `json:"id"`
	RouteSource      string    `json:"route_source"`
	RouteDestination string    `json:"route_destination"`
	AirplaneName     string    `json:"airplane_name"`
	AirplaneCapacity int       `json:"airplane_capacity"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	Crews            []string  `json:"crews"`
	TicketsAvailable int       `json:"tickets_available"`
}

type seatView struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type flightDetailView struct {
	ID               int64              `json:"id"`
	Route            routeDetailView    `json:"route"`
	Airplane         airplaneDetailView `json:"airplane"`
	DepartureTime    time.Time          `json:"departure_time"`
	ArrivalTime      time.Time          `json:"arrival_time"`
	Crews            []crewView         `json:"crews"`
	TicketsAvailable int                `json:"tickets_available"`
	TakenPlaces      []seatView         `json:"taken_places"`
}

type flightWriteView struct {
	ID            int64     `json:"id"`
	Route         int64     `json:"route"`
	Airplane      int64     `json:"airplane"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Crews         []int64   `json:"crews"`
}

func flightRoute(f *domain.Flight) routeDetailView {
	if f.Route == nil {
		return routeDetailView{ID: f.RouteID}
	}
	return routeDetail(f.Route)
}

func flightAirplane(f *domain.Flight) airplaneDetailView {
	if f.Airplane == nil {
		return airplaneDetailView{ID: f.AirplaneID}
	}
	return airplaneDetail(f.Airplane)
}

var flightViews = projection[domain.Flight]{
	actionList: func(f *domain.Flight) any {
		route, airplane := flightRoute(f), flightAirplane(f)
		crews := make([]string, len(f.Crews))
		for i, c := range f.Crews {
			crews[i] = c.FullName()
		}
		return flightListView{
			ID:               f.ID,
			RouteSource:      route.Source.Name,
			RouteDestination: route.Destination.Name,
			AirplaneName:     airplane.Name,
			AirplaneCapacity: airplane.Capacity,
			DepartureTime:    f.DepartureTime,
			ArrivalTime:      f.ArrivalTime,
			Crews:            crews,
			TicketsAvailable: f.TicketsAvailable,
		}
	},
	actionRetrieve: func(f *domain.Flight) any {
		crews := make([]crewView, len(f.Crews))
		for i := range f.Crews {
			crews[i] = crewDetail(&f.Crews[i])
		}
		taken := make([]seatView, len(f.TakenPlaces))
		for i, s := range f.TakenPlaces {
			taken[i] = seatView{Row: s.Row, Seat: s.Seat}
		}
		return flightDetailView{
			ID:               f.ID,
			Route:            flightRoute(f),
			Airplane:         flightAirplane(f),
			DepartureTime:    f.DepartureTime,
			ArrivalTime:      f.ArrivalTime,
			Crews:            crews,
			TicketsAvailable: f.TicketsAvailable,
			TakenPlaces:      taken,
		}
	},
	actionWrite: func(f *domain.Flight) any {
		crews := f.CrewIDs
		if crews == nil {
			crews = []int64{}
		}
		return flightWriteView{
			ID:            f.ID,
			Route:         f.RouteID,
			Airplane:      f.AirplaneID,
			DepartureTime: f.DepartureTime,
			ArrivalTime:   f.ArrivalTime,
			Crews:         crews,
		}
	},
}
