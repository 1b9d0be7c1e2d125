package api

import (
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/service/catalog"
)

type (
	CrewHandler         = CRUDHandler[domain.Crew, domain.NameFilter, crewRequest, *crewRequest]
	AirplaneTypeHandler = CRUDHandler[domain.AirplaneType, domain.NameFilter, airplaneTypeRequest, *airplaneTypeRequest]
	AirplaneHandler     = CRUDHandler[domain.Airplane, domain.NameFilter, airplaneRequest, *airplaneRequest]
)

func NewCrewHandler(service catalog.UseCase[domain.Crew, domain.NameFilter], pages Pagination) *CrewHandler {
	return NewCRUDHandler[domain.Crew, domain.NameFilter, crewRequest](service, nameFilter, crewViews, pages)
}

func NewAirplaneTypeHandler(service catalog.UseCase[domain.AirplaneType, domain.NameFilter], pages Pagination) *AirplaneTypeHandler {
	return NewCRUDHandler[domain.AirplaneType, domain.NameFilter, airplaneTypeRequest](service, nameFilter, airplaneTypeViews, pages)
}

func NewAirplaneHandler(service catalog.UseCase[domain.Airplane, domain.NameFilter], pages Pagination) *AirplaneHandler {
	return NewCRUDHandler[domain.Airplane, domain.NameFilter, airplaneRequest](service, nameFilter, airplaneViews, pages)
}

// Crews

// flying_hours defaults to zero and is never required.
type crewRequest struct {
	FirstName   *string  `json:"first_name" binding:"required,notblank,max=255"`
	LastName    *string  `json:"last_name" binding:"required,notblank,max=255"`
	FlyingHours *float64 `json:"flying_hours" binding:"omitempty,gte=0"`
}

func (r *crewRequest) apply(c *domain.Crew) {
	if r.FirstName != nil {
		c.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		c.LastName = *r.LastName
	}
	if r.FlyingHours != nil {
		c.FlyingHours = *r.FlyingHours
	}
}

type crewWriteView struct {
	ID          int64   `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	FlyingHours float64 `json:"flying_hours"`
}

func crewDetail(c *domain.Crew) crewView {
	return crewView{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, FullName: c.FullName(), FlyingHours: c.FlyingHours}
}

var crewViews = projection[domain.Crew]{
	actionRetrieve: func(c *domain.Crew) any { return crewDetail(c) },
	actionWrite: func(c *domain.Crew) any {
		return crewWriteView{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, FlyingHours: c.FlyingHours}
	},
}

// Airplane types

type airplaneTypeRequest struct {
	Name *string `json:"name" binding:"required,notblank,max=255"`
}

func (r *airplaneTypeRequest) apply(t *domain.AirplaneType) {
	if r.Name != nil {
		t.Name = *r.Name
	}
}

var airplaneTypeViews = projection[domain.AirplaneType]{
	actionRetrieve: func(t *domain.AirplaneType) any { return airplaneTypeView{ID: t.ID, Name: t.Name} },
}

// Airplanes

type airplaneRequest struct {
	Name         *string `json:"name" binding:"required,notblank,max=255"`
	Rows         *int    `json:"rows" binding:"required,min=1"`
	SeatsInRow   *int    `json:"seats_in_row" binding:"required,min=1"`
	AirplaneType *int64  `json:"airplane_type" binding:"required,gt=0"`
}

func (r *airplaneRequest) apply(a *domain.Airplane) {
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.Rows != nil {
		a.Rows = *r.Rows
	}
	if r.SeatsInRow != nil {
		a.SeatsInRow = *r.SeatsInRow
	}
	if r.AirplaneType != nil {
		a.AirplaneTypeID = *r.AirplaneType
	}
}

type airplaneListView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Rows         int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	Capacity     int    `json:"capacity"`
	AirplaneType string `json:"airplane_type"`
}

type airplaneWriteView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Rows         int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	AirplaneType int64  `json:"airplane_type"`
}

func airplaneDetail(a *domain.Airplane) airplaneDetailView {
	view := airplaneDetailView{
		ID:           a.ID,
		Name:         a.Name,
		Rows:         a.Rows,
		SeatsInRow:   a.SeatsInRow,
		Capacity:     a.Capacity(),
		AirplaneType: airplaneTypeView{ID: a.AirplaneTypeID},
	}
	if a.AirplaneType != nil {
		view.AirplaneType.Name = a.AirplaneType.Name
	}
	return view
}

var airplaneViews = projection[domain.Airplane]{
	actionList: func(a *domain.Airplane) any {
		detail := airplaneDetail(a)
		return airplaneListView{
			ID:           a.ID,
			Name:         a.Name,
			Rows:         a.Rows,
			SeatsInRow:   a.SeatsInRow,
			Capacity:     detail.Capacity,
			AirplaneType: detail.AirplaneType.Name,
		}
	},
	actionRetrieve: func(a *domain.Airplane) any { return airplaneDetail(a) },
	actionWrite: func(a *domain.Airplane) any {
		return airplaneWriteView{ID: a.ID, Name: a.Name, Rows: a.Rows, SeatsInRow: a.SeatsInRow, AirplaneType: a.AirplaneTypeID}
	},
}
