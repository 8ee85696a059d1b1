package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-cruise-reservation/internal/api"
	"github.com/sanosuguru/go-cruise-reservation/internal/application"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/captain"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/cruise"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/customer"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/repair"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/ship"
)

type FleetHandler struct {
	service FleetServiceInterface
}

func NewFleetHandler(s FleetServiceInterface) *FleetHandler {
	return &FleetHandler{service: s}
}

type CreateShipRequest struct {
	ID    *int64 `json:"id" validate:"required,min=0" example:"1"`
	Make  string `json:"make" validate:"required,max=32" example:"Meyer Werft"`
	Model string `json:"model" validate:"required,max=64" example:"Oasis"`
	Age   int    `json:"age" validate:"min=0" example:"4"`
	Seats int    `json:"seats" validate:"required,min=1,max=500" example:"300"`
}

// CreateShip godoc
// @Summary 船舶を登録
// @Tags ships
// @Accept json
// @Produce json
// @Param request body CreateShipRequest true "船舶情報"
// @Success 201 {object} CreateShipRequest
// @Failure 400 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse
// @Router /ships [post]
func (h *FleetHandler) CreateShip(c echo.Context) error {
	var req CreateShipRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.AddShip(c.Request().Context(), ship.NewShip(*req.ID, req.Make, req.Model, req.Age, req.Seats)); err != nil {
		return api.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, req)
}

type CreateCaptainRequest struct {
	ID          *int64 `json:"id" validate:"required,min=0" example:"1"`
	FullName    string `json:"full_name" validate:"required,max=128" example:"Edward Smith"`
	Nationality string `json:"nationality" validate:"required,max=24" example:"British"`
}

// CreateCaptain godoc
// @Summary 船長を登録
// @Tags captains
// @Accept json
// @Produce json
// @Param request body CreateCaptainRequest true "船長情報"
// @Success 201 {object} CreateCaptainRequest
// @Failure 400 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse
// @Router /captains [post]
func (h *FleetHandler) CreateCaptain(c echo.Context) error {
	var req CreateCaptainRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.AddCaptain(c.Request().Context(), captain.NewCaptain(*req.ID, req.FullName, req.Nationality)); err != nil {
		return api.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, req)
}

type CreateCruiseRequest struct {
	Number        *int64    `json:"number" validate:"required,min=0" example:"3"`
	Cost          int       `json:"cost" validate:"required,min=1" example:"1200"`
	NumSold       int       `json:"num_sold" validate:"min=0" example:"0"`
	NumStops      int       `json:"num_stops" validate:"min=0" example:"2"`
	DepartureAt   time.Time `json:"departure_at" validate:"required"`
	ArrivalAt     time.Time `json:"arrival_at" validate:"required"`
	DeparturePort string    `json:"departure_port" validate:"required,port" example:"MIAMI"`
	ArrivalPort   string    `json:"arrival_port" validate:"required,port" example:"NASSA"`
	ShipID        *int64    `json:"ship_id" validate:"required,min=0" example:"1"`
	CaptainID     *int64    `json:"captain_id" validate:"required,min=0" example:"1"`
}

// CreateCruise godoc
// @Summary クルーズを登録
// @Description 船舶と船長の割り当て、最初の運航スケジュールも同時に登録します
// @Tags cruises
// @Accept json
// @Produce json
// @Param request body CreateCruiseRequest true "クルーズ情報"
// @Success 201 {object} CreateCruiseRequest
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse "船舶または船長がない"
// @Failure 409 {object} api.ErrorResponse
// @Router /cruises [post]
func (h *FleetHandler) CreateCruise(c echo.Context) error {
	var req CreateCruiseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in := application.AddCruiseInput{
		Cruise: cruise.NewCruise(*req.Number, req.Cost, req.NumSold, req.NumStops,
			req.DepartureAt, req.ArrivalAt, req.DeparturePort, req.ArrivalPort),
		ShipID:    *req.ShipID,
		CaptainID: *req.CaptainID,
	}
	if err := h.service.AddCruise(c.Request().Context(), in); err != nil {
		return api.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, req)
}

type CreateSailingRequest struct {
	DepartureTime time.Time `json:"departure_time" validate:"required"`
	ArrivalTime   time.Time `json:"arrival_time" validate:"required"`
}

type SailingResponse struct {
	ID            int64     `json:"id" example:"12"`
	CruiseNumber  int64     `json:"cruise_number" example:"3"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}

// CreateSailing godoc
// @Summary 運航日を追加
// @Tags cruises
// @Accept json
// @Produce json
// @Param cnum path int true "クルーズ番号"
// @Param request body CreateSailingRequest true "運航日時"
// @Success 201 {object} SailingResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /cruises/{cnum}/sailings [post]
func (h *FleetHandler) CreateSailing(c echo.Context) error {
	cruiseID, err := cruiseParam(c)
	if err != nil {
		return err
	}
	var req CreateSailingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	s := &cruise.Schedule{CruiseNumber: cruiseID, DepartureTime: req.DepartureTime, ArrivalTime: req.ArrivalTime}
	if err := h.service.AddSailing(c.Request().Context(), s); err != nil {
		return api.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, SailingResponse{
		ID: s.ID, CruiseNumber: s.CruiseNumber, DepartureTime: s.DepartureTime, ArrivalTime: s.ArrivalTime,
	})
}

type CreateCustomerRequest struct {
	FirstName   string `json:"first_name" validate:"required,max=24" example:"Hanako"`
	LastName    string `json:"last_name" validate:"required,max=24" example:"Yamada"`
	Gender      string `json:"gender" validate:"required,oneof=F M" example:"F"`
	DateOfBirth string `json:"date_of_birth" validate:"required" example:"1990-04-01"`
	Address     string `json:"address" validate:"required,max=256" example:"1-2-3 Shibuya"`
	Phone       string `json:"phone" validate:"required,len=10,numeric" example:"0312345678"`
	ZipCode     string `json:"zip_code" validate:"required,max=10,numeric" example:"1500001"`
}

type CustomerResponse struct {
	ID int64 `json:"id" example:"42"`
}

// CreateCustomer godoc
// @Summary 顧客を登録
// @Description 顧客IDは採番されます
// @Tags customers
// @Accept json
// @Produce json
// @Param request body CreateCustomerRequest true "顧客情報"
// @Success 201 {object} CustomerResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /customers [post]
func (h *FleetHandler) CreateCustomer(c echo.Context) error {
	var req CreateCustomerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	dob, err := time.ParseInLocation(DateLayout, req.DateOfBirth, time.UTC)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "生年月日は YYYY-MM-DD 形式で指定してください")
	}
	cust := customer.NewCustomer(req.FirstName, req.LastName, customer.Gender(req.Gender), dob,
		req.Address, req.Phone, req.ZipCode)
	id, err := h.service.AddCustomer(c.Request().Context(), cust)
	if err != nil {
		return api.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, CustomerResponse{ID: id})
}

type CreateRepairRequest struct {
	ID        *int64 `json:"id" validate:"required,min=0" example:"1"`
	Date      string `json:"date" validate:"required" example:"2026-03-03"`
	Code      string `json:"code" validate:"required,max=64" example:"ENG-01"`
	CaptainID *int64 `json:"captain_id" validate:"required,min=0" example:"1"`
	ShipID    *int64 `json:"ship_id" validate:"required,min=0" example:"1"`
}

// CreateRepair godoc
// @Summary 修理記録を登録
// @Tags repairs
// @Accept json
// @Produce json
// @Param request body CreateRepairRequest true "修理記録"
// @Success 201 {object} CreateRepairRequest
// @Failure 400 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse
// @Router /repairs [post]
func (h *FleetHandler) CreateRepair(c echo.Context) error {
	var req CreateRepairRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	date, err := time.ParseInLocation(DateLayout, req.Date, time.UTC)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "修理日は YYYY-MM-DD 形式で指定してください")
	}
	r := &repair.Repair{ID: *req.ID, Date: date, Code: req.Code, CaptainID: *req.CaptainID, ShipID: *req.ShipID}
	if err := h.service.AddRepair(c.Request().Context(), r); err != nil {
		return api.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, req)
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	return c.Validate(req)
}
