package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-cruise-reservation/internal/api"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/reservation"
)

// DateLayout は日付パラメータの形式
const DateLayout = "2006-01-02"

type QueryHandler struct {
	service QueryServiceInterface
}

func NewQueryHandler(s QueryServiceInterface) *QueryHandler {
	return &QueryHandler{service: s}
}

type SeatsResponse struct {
	CruiseID       int64  `json:"cruise_id" example:"3"`
	Date           string `json:"date" example:"2026-07-01"`
	AvailableSeats int    `json:"available_seats" example:"42"`
}

// AvailableSeats godoc
// @Summary 指定日の空席数
// @Tags cruises
// @Produce json
// @Param cnum path int true "クルーズ番号"
// @Param date query string true "出航日 (YYYY-MM-DD)"
// @Success 200 {object} SeatsResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse "クルーズまたは運航がない"
// @Router /cruises/{cnum}/seats [get]
func (h *QueryHandler) AvailableSeats(c echo.Context) error {
	cruiseID, err := cruiseParam(c)
	if err != nil {
		return err
	}
	date, err := time.ParseInLocation(DateLayout, c.QueryParam("date"), time.UTC)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "日付は YYYY-MM-DD 形式で指定してください")
	}

	n, err := h.service.AvailableSeatsOn(c.Request().Context(), cruiseID, date)
	if err != nil {
		return api.HTTPError(err)
	}
	return c.JSON(http.StatusOK, SeatsResponse{CruiseID: cruiseID, Date: date.Format(DateLayout), AvailableSeats: n})
}

type PassengersResponse struct {
	CruiseID   int64  `json:"cruise_id" example:"3"`
	Status     string `json:"status" example:"W"`
	Passengers int    `json:"passengers" example:"5"`
}

// Passengers godoc
// @Summary 状態別の乗客数
// @Tags cruises
// @Produce json
// @Param cnum path int true "クルーズ番号"
// @Param status query string true "予約状態 (R, W, C)"
// @Success 200 {object} PassengersResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /cruises/{cnum}/passengers [get]
func (h *QueryHandler) Passengers(c echo.Context) error {
	cruiseID, err := cruiseParam(c)
	if err != nil {
		return err
	}
	status, err := reservation.ParseStatus(c.QueryParam("status"))
	if err != nil {
		return api.HTTPError(err)
	}

	n, err := h.service.CountPassengers(c.Request().Context(), cruiseID, status)
	if err != nil {
		return api.HTTPError(err)
	}
	return c.JSON(http.StatusOK, PassengersResponse{CruiseID: cruiseID, Status: string(status), Passengers: n})
}

type CruiseListingResponse struct {
	CruiseNumber  int64     `json:"cruise_number" example:"3"`
	DepartureTime time.Time `json:"departure_time"`
	Cost          int       `json:"cost" example:"1200"`
}

type CruiseListResponse struct {
	Cruises []CruiseListingResponse `json:"cruises"`
	Count   int                     `json:"count" example:"1"`
}

// ListUnderCost godoc
// @Summary 料金上限未満のクルーズ一覧
// @Tags cruises
// @Produce json
// @Param max_cost query int true "料金の上限（この値未満）"
// @Success 200 {object} CruiseListResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /cruises [get]
func (h *QueryHandler) ListUnderCost(c echo.Context) error {
	maxCost, err := strconv.Atoi(c.QueryParam("max_cost"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "max_cost は整数で指定してください")
	}

	list, err := h.service.CruisesUnderCost(c.Request().Context(), maxCost)
	if err != nil {
		return api.HTTPError(err)
	}
	resp := CruiseListResponse{Cruises: make([]CruiseListingResponse, len(list)), Count: len(list)}
	for i, l := range list {
		resp.Cruises[i] = CruiseListingResponse{CruiseNumber: l.CruiseNumber, DepartureTime: l.DepartureTime, Cost: l.Cost}
	}
	return c.JSON(http.StatusOK, resp)
}

type RepairCountResponse struct {
	ShipID  int64 `json:"ship_id" example:"1"`
	Repairs int   `json:"repairs" example:"4"`
}

// RepairsPerShip godoc
// @Summary 船舶ごとの修理件数（多い順）
// @Tags ships
// @Produce json
// @Success 200 {array} RepairCountResponse
// @Router /ships/repairs [get]
func (h *QueryHandler) RepairsPerShip(c echo.Context) error {
	counts, err := h.service.RepairsPerShip(c.Request().Context())
	if err != nil {
		return api.HTTPError(err)
	}
	resp := make([]RepairCountResponse, len(counts))
	for i, rc := range counts {
		resp[i] = RepairCountResponse{ShipID: rc.ShipID, Repairs: rc.Repairs}
	}
	return c.JSON(http.StatusOK, resp)
}
