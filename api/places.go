package api

import (
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type (
	CountryHandler = CRUDHandler[domain.Country, domain.NameFilter, countryRequest, *countryRequest]
	CityHandler    = CRUDHandler[domain.City, domain.CityFilter, cityRequest, *cityRequest]
	AirportHandler = CRUDHandler[domain.Airport, domain.AirportFilter, airportRequest, *airportRequest]
	RouteHandler   = CRUDHandler[domain.Route, domain.RouteFilter, routeRequest, *routeRequest]
)

func NewCountryHandler(service catalog.UseCase[domain.Country, domain.NameFilter], pages Pagination) *CountryHandler {
	return NewCRUDHandler[domain.Country, domain.NameFilter, countryRequest](service, nameFilter, countryViews, pages)
}

func NewCityHandler(service catalog.UseCase[domain.City, domain.CityFilter], pages Pagination) *CityHandler {
	return NewCRUDHandler[domain.City, domain.CityFilter, cityRequest](service, cityFilter, cityViews, pages)
}

func NewAirportHandler(service catalog.UseCase[domain.Airport, domain.AirportFilter], pages Pagination) *AirportHandler {
	return NewCRUDHandler[domain.Airport, domain.AirportFilter, airportRequest](service, airportFilter, airportViews, pages)
}

func NewRouteHandler(service catalog.UseCase[domain.Route, domain.RouteFilter], pages Pagination) *RouteHandler {
	return NewCRUDHandler[domain.Route, domain.RouteFilter, routeRequest](service, routeFilter, routeViews, pages)
}

// Countries

type countryRequest struct {
	Name *string `json:"name" binding:"required,notblank,max=255"`
}

func (r *countryRequest) apply(c *domain.Country) {
	if r.Name != nil {
		c.Name = *r.Name
	}
}

var countryViews = projection[domain.Country]{
	actionRetrieve: func(c *domain.Country) any { return countryView{ID: c.ID, Name: c.Name} },
}

// Cities

type cityRequest struct {
	Name    *string `json:"name" binding:"required,notblank,max=255"`
	Country *int64  `json:"country" binding:"required,gt=0"`
}

func (r *cityRequest) apply(c *domain.City) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Country != nil {
		c.CountryID = *r.Country
	}
}

func cityFilter(c *gin.Context) (domain.CityFilter, error) {
	return domain.CityFilter{Name: c.Query("name"), Country: c.Query("country")}, nil
}

type cityListView struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type cityWriteView struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country int64  `json:"country"`
}

func cityDetail(c *domain.City) cityDetailView {
	view := cityDetailView{ID: c.ID, Name: c.Name, Country: countryView{ID: c.CountryID}}
	if c.Country != nil {
		view.Country.Name = c.Country.Name
	}
	return view
}

func cityName(c *domain.City) string {
	if c == nil {
		return ""
	}
	return c.Name
}

var cityViews = projection[domain.City]{
	actionList: func(c *domain.City) any {
		view := cityListView{ID: c.ID, Name: c.Name}
		if c.Country != nil {
			view.Country = c.Country.Name
		}
		return view
	},
	actionRetrieve: func(c *domain.City) any { return cityDetail(c) },
	actionWrite: func(c *domain.City) any {
		return cityWriteView{ID: c.ID, Name: c.Name, Country: c.CountryID}
	},
}

// Airports

type airportRequest struct {
	Name           *string `json:"name" binding:"required,notblank,max=255"`
	ClosestBigCity *int64  `json:"closest_big_city" binding:"required,gt=0"`
}

func (r *airportRequest) apply(a *domain.Airport) {
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.ClosestBigCity != nil {
		a.ClosestBigCityID = *r.ClosestBigCity
	}
}

func airportFilter(c *gin.Context) (domain.AirportFilter, error) {
	return domain.AirportFilter{Name: c.Query("name"), ClosestCity: c.Query("closest_city")}, nil
}

type airportDetailView struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	ClosestBigCity cityDetailView `json:"closest_big_city"`
}

type airportWriteView struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ClosestBigCity int64  `json:"closest_big_city"`
}

func airportSummary(a *domain.Airport) airportSummaryView {
	if a == nil {
		return airportSummaryView{}
	}
	return airportSummaryView{ID: a.ID, Name: a.Name, ClosestBigCity: cityName(a.ClosestBigCity)}
}

var airportViews = projection[domain.Airport]{
	actionList: func(a *domain.Airport) any { return airportSummary(a) },
	actionRetrieve: func(a *domain.Airport) any {
		view := airportDetailView{ID: a.ID, Name: a.Name, ClosestBigCity: cityDetailView{ID: a.ClosestBigCityID}}
		if a.ClosestBigCity != nil {
			view.ClosestBigCity = cityDetail(a.ClosestBigCity)
		}
		return view
	},
	actionWrite: func(a *domain.Airport) any {
		return airportWriteView{ID: a.ID, Name: a.Name, ClosestBigCity: a.ClosestBigCityID}
	},
}

// Routes

type routeRequest struct {
	Source      *int64   `json:"source" binding:"required,gt=0"`
	Destination *int64   `json:"destination" binding:"required,gt=0"`
	Distance    *float64 `json:"distance" binding:"required,gt=0"`
}

func (r *routeRequest) apply(route *domain.Route) {
	if r.Source != nil {
		route.SourceID = *r.Source
	}
	if r.Destination != nil {
		route.DestinationID = *r.Destination
	}
	if r.Distance != nil {
		route.Distance = *r.Distance
	}
}

func routeFilter(c *gin.Context) (domain.RouteFilter, error) {
	return domain.RouteFilter{From: c.Query("from"), To: c.Query("to")}, nil
}

type routeListView struct {
	ID          int64   `json:"id"`
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	Distance    float64 `json:"distance"`
}

type routeWriteView struct {
	ID          int64   `json:"id"`
	Source      int64   `json:"source"`
	Destination int64   `json:"destination"`
	Distance    float64 `json:"distance"`
}

func routeDetail(r *domain.Route) routeDetailView {
	view := routeDetailView{
		ID:          r.ID,
		Source:      airportSummary(r.Source),
		Destination: airportSummary(r.Destination),
		Distance:    r.Distance,
	}
	view.Source.ID = r.SourceID
	view.Destination.ID = r.DestinationID
	return view
}

var routeViews = projection[domain.Route]{
	actionList: func(r *domain.Route) any {
		view := routeDetail(r)
		return routeListView{ID: r.ID, Source: view.Source.Name, Destination: view.Destination.Name, Distance: r.Distance}
	},
	actionRetrieve: func(r *domain.Route) any { return routeDetail(r) },
	actionWrite: func(r *domain.Route) any {
		return routeWriteView{ID: r.ID, Source: r.SourceID, Destination: r.DestinationID, Distance: r.Distance}
	},
}
