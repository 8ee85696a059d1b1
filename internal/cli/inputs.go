package cli

import (
	"context"

	"github.com/sanosuguru/go-cruise-reservation/internal/application"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/captain"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/cruise"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/customer"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/repair"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/ship"
)

// 以下の入力はフラグ・初期データファイル・対話メニューで共通に使う
// 日時は文字列で受け取り、登録時に DateLayout / DateTimeLayout で解析する

type shipInput struct {
	ID    int64  `yaml:"id"`
	Make  string `yaml:"make"`
	Model string `yaml:"model"`
	Age   int    `yaml:"age"`
	Seats int    `yaml:"seats"`
}

func (in shipInput) add(ctx context.Context, fleet *application.FleetService) (CreatedView, error) {
	if err := fleet.AddShip(ctx, ship.NewShip(in.ID, in.Make, in.Model, in.Age, in.Seats)); err != nil {
		return CreatedView{}, err
	}
	return CreatedView{Entity: "ship", ID: in.ID}, nil
}

type captainInput struct {
	ID          int64  `yaml:"id"`
	FullName    string `yaml:"full_name"`
	Nationality string `yaml:"nationality"`
}

func (in captainInput) add(ctx context.Context, fleet *application.FleetService) (CreatedView, error) {
	if err := fleet.AddCaptain(ctx, captain.NewCaptain(in.ID, in.FullName, in.Nationality)); err != nil {
		return CreatedView{}, err
	}
	return CreatedView{Entity: "captain", ID: in.ID}, nil
}

type sailingInput struct {
	Departure string `yaml:"departure"`
	Arrival   string `yaml:"arrival"`
}

func (in sailingInput) schedule(cruiseNumber int64) (*cruise.Schedule, error) {
	dep, err := parseTime(DateTimeLayout, in.Departure, application.ErrInvalidDate)
	if err != nil {
		return nil, err
	}
	arr, err := parseTime(DateTimeLayout, in.Arrival, application.ErrInvalidDate)
	if err != nil {
		return nil, err
	}
	return &cruise.Schedule{CruiseNumber: cruiseNumber, DepartureTime: dep, ArrivalTime: arr}, nil
}

func addSailing(ctx context.Context, fleet *application.FleetService, cruiseNumber int64, in sailingInput) (CreatedView, error) {
	sc, err := in.schedule(cruiseNumber)
	if err != nil {
		return CreatedView{}, err
	}
	if err := fleet.AddSailing(ctx, sc); err != nil {
		return CreatedView{}, err
	}
	return CreatedView{Entity: "sailing", ID: cruiseNumber}, nil
}

type cruiseInput struct {
	Number        int64          `yaml:"number"`
	Cost          int            `yaml:"cost"`
	NumStops      int            `yaml:"num_stops"`
	Departure     string         `yaml:"departure"`
	Arrival       string         `yaml:"arrival"`
	DeparturePort string         `yaml:"departure_port"`
	ArrivalPort   string         `yaml:"arrival_port"`
	ShipID        int64          `yaml:"ship_id"`
	CaptainID     int64          `yaml:"captain_id"`
	Sailings      []sailingInput `yaml:"sailings"`
}

// add はクルーズと最初の運航を登録する。Sailings は含まない
func (in cruiseInput) add(ctx context.Context, fleet *application.FleetService) (CreatedView, error) {
	first, err := sailingInput{Departure: in.Departure, Arrival: in.Arrival}.schedule(in.Number)
	if err != nil {
		return CreatedView{}, err
	}
	c := cruise.NewCruise(in.Number, in.Cost, 0, in.NumStops,
		first.DepartureTime, first.ArrivalTime, in.DeparturePort, in.ArrivalPort)
	if err := fleet.AddCruise(ctx, application.AddCruiseInput{
		Cruise:    c,
		ShipID:    in.ShipID,
		CaptainID: in.CaptainID,
	}); err != nil {
		return CreatedView{}, err
	}
	return CreatedView{Entity: "cruise", ID: in.Number}, nil
}

type customerInput struct {
	FirstName   string `yaml:"first_name"`
	LastName    string `yaml:"last_name"`
	Gender      string `yaml:"gender"`
	DateOfBirth string `yaml:"date_of_birth"`
	Address     string `yaml:"address"`
	Phone       string `yaml:"phone"`
	ZipCode     string `yaml:"zip_code"`
}

func (in customerInput) add(ctx context.Context, fleet *application.FleetService) (CreatedView, error) {
	dob, err := parseTime(DateLayout, in.DateOfBirth, application.ErrInvalidDate)
	if err != nil {
		return CreatedView{}, err
	}
	c := customer.NewCustomer(in.FirstName, in.LastName, customer.Gender(in.Gender), dob, in.Address, in.Phone, in.ZipCode)
	id, err := fleet.AddCustomer(ctx, c)
	if err != nil {
		return CreatedView{}, err
	}
	return CreatedView{Entity: "customer", ID: id}, nil
}

type repairInput struct {
	ID        int64  `yaml:"id"`
	Date      string `yaml:"date"`
	Code      string `yaml:"code"`
	ShipID    int64  `yaml:"ship_id"`
	CaptainID int64  `yaml:"captain_id"`
}

func (in repairInput) add(ctx context.Context, fleet *application.FleetService) (CreatedView, error) {
	date, err := parseTime(DateLayout, in.Date, application.ErrInvalidDate)
	if err != nil {
		return CreatedView{}, err
	}
	r := &repair.Repair{ID: in.ID, Date: date, Code: in.Code, ShipID: in.ShipID, CaptainID: in.CaptainID}
	if err := fleet.AddRepair(ctx, r); err != nil {
		return CreatedView{}, err
	}
	return CreatedView{Entity: "repair", ID: in.ID}, nil
}
