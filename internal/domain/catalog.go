package domain

import "strings"

type Country struct {
	ID   int64
	Name string `validate:"notblank,max=255"`
}

func (c Country) Validate() error {
	return check(c)
}

type City struct {
	ID        int64
	Name      string `validate:"notblank,max=255"`
	CountryID int64  `validate:"required,gt=0"`

	Country *Country `validate:"-"`
}

func (c City) Validate() error {
	return check(c)
}

type Airport struct {
	ID               int64
	Name             string `validate:"notblank,max=255"`
	ClosestBigCityID int64  `validate:"required,gt=0"`

	ClosestBigCity *City `validate:"-"`
}

func (a Airport) Validate() error {
	return check(a)
}

// Route is a directed pairing of two airports.
type Route struct {
	ID            int64
	SourceID      int64   `validate:"required,gt=0"`
	DestinationID int64   `validate:"required,gt=0,nefield=SourceID"`
	Distance      float64 `validate:"gt=0"`

	Source      *Airport `validate:"-"`
	Destination *Airport `validate:"-"`
}

func (r Route) Validate() error {
	return check(r)
}

type Crew struct {
	ID          int64
	FirstName   string  `validate:"notblank,max=255"`
	LastName    string  `validate:"notblank,max=255"`
	FlyingHours float64 `validate:"gte=0"`
}

func (c Crew) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c Crew) Validate() error {
	return check(c)
}

type AirplaneType struct {
	ID   int64
	Name string `validate:"notblank,max=255"`
}

func (t AirplaneType) Validate() error {
	return check(t)
}

type Airplane struct {
	ID             int64
	Name           string `validate:"notblank,max=255"`
	Rows           int    `validate:"min=1"`
	SeatsInRow     int    `validate:"min=1"`
	AirplaneTypeID int64  `validate:"required,gt=0"`

	AirplaneType *AirplaneType `validate:"-"`
}

func (a Airplane) Capacity() int {
	return a.Rows * a.SeatsInRow
}

func (a Airplane) Validate() error {
	return check(a)
}
