package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-cruise-reservation/internal/api"
	"github.com/sanosuguru/go-cruise-reservation/internal/application"
)

type BookingHandler struct {
	service BookingServiceInterface
}

func NewBookingHandler(s BookingServiceInterface) *BookingHandler {
	return &BookingHandler{service: s}
}

type BookRequest struct {
	CustomerID *int64 `json:"customer_id" validate:"required,min=0" example:"12"`
	CruiseID   *int64 `json:"cruise_id" validate:"required,min=0" example:"3"`
}

type BookingResponse struct {
	ReservationID int64  `json:"reservation_id" example:"101"`
	CustomerID    int64  `json:"customer_id" example:"12"`
	CruiseID      int64  `json:"cruise_id" example:"3"`
	Status        string `json:"status" example:"R"`
	StatusLabel   string `json:"status_label" example:"確定"`
	Outcome       string `json:"outcome" example:"confirmed"`
}

func toBookingResponse(r *application.BookingResult) BookingResponse {
	return BookingResponse{
		ReservationID: r.ReservationID,
		CustomerID:    r.CustomerID,
		CruiseID:      r.CruiseID,
		Status:        string(r.Status),
		StatusLabel:   r.Status.Label(),
		Outcome:       string(r.Outcome),
	}
}

// Book godoc
// @Summary クルーズを予約
// @Description 空席があれば確定、なければキャンセル待ちにします。キャンセル待ちの再リクエストは空席があれば繰り上げます
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body BookRequest true "予約情報"
// @Success 201 {object} BookingResponse "新規予約"
// @Success 200 {object} BookingResponse "既存予約"
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "競合が解消しない"
// @Failure 503 {object} api.ErrorResponse
// @Router /bookings [post]
func (h *BookingHandler) Book(c echo.Context) error {
	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.service.Book(c.Request().Context(), *req.CustomerID, *req.CruiseID)
	if err != nil {
		return api.HTTPError(err)
	}

	code := http.StatusOK
	if res.Outcome == application.OutcomeConfirmed || res.Outcome == application.OutcomeWaitlisted {
		code = http.StatusCreated
	}
	return c.JSON(code, toBookingResponse(res))
}

type PromoteResponse struct {
	CruiseID int64 `json:"cruise_id" example:"3"`
	Promoted int   `json:"promoted" example:"2"`
}

// Promote godoc
// @Summary キャンセル待ちを繰り上げ
// @Description 空席の数だけ予約番号の古い順にキャンセル待ちを確定にします
// @Tags bookings
// @Produce json
// @Param cnum path int true "クルーズ番号"
// @Success 200 {object} PromoteResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /cruises/{cnum}/promotions [post]
func (h *BookingHandler) Promote(c echo.Context) error {
	cruiseID, err := cruiseParam(c)
	if err != nil {
		return err
	}
	n, err := h.service.PromoteCruise(c.Request().Context(), cruiseID)
	if err != nil {
		return api.HTTPError(err)
	}
	return c.JSON(http.StatusOK, PromoteResponse{CruiseID: cruiseID, Promoted: n})
}

func cruiseParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("cnum"), 10, 64)
	if err != nil || id < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "クルーズ番号は0以上の整数である必要があります")
	}
	return id, nil
}
