package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-cruise-reservation/internal/application"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/captain"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/cruise"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/customer"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/repair"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/reservation"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/ship"
	"github.com/sanosuguru/go-cruise-reservation/internal/domain/transaction"
	"github.com/sanosuguru/go-cruise-reservation/internal/pkg/logger"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

var (
	notFoundErrors = []error{
		cruise.ErrCruiseNotFound,
		cruise.ErrSailingNotFound,
		customer.ErrCustomerNotFound,
		reservation.ErrReservationNotFound,
		ship.ErrShipNotFound,
		captain.ErrCaptainNotFound,
	}

	conflictErrors = []error{
		application.ErrBookingFailed,
		transaction.ErrConflict,
		ship.ErrShipAlreadyExists,
		captain.ErrCaptainAlreadyExists,
		cruise.ErrCruiseAlreadyExists,
		cruise.ErrAlreadyAssigned,
		repair.ErrAlreadyExists,
	}

	validationErrors = []error{
		application.ErrInvalidCostThreshold,
		application.ErrInvalidDate,
		reservation.ErrInvalidCustomerID,
		reservation.ErrInvalidCruiseID,
		reservation.ErrInvalidStatus,
		ship.ErrInvalidID,
		ship.ErrMakeRequired,
		ship.ErrMakeTooLong,
		ship.ErrModelRequired,
		ship.ErrModelTooLong,
		ship.ErrInvalidAge,
		ship.ErrInvalidSeats,
		captain.ErrInvalidID,
		captain.ErrFullNameRequired,
		captain.ErrFullNameTooLong,
		captain.ErrFullNameHasDigits,
		captain.ErrNationalityRequired,
		captain.ErrNationalityTooLong,
		captain.ErrNationalityHasDigits,
		cruise.ErrInvalidNumber,
		cruise.ErrInvalidCost,
		cruise.ErrInvalidNumSold,
		cruise.ErrInvalidNumStops,
		cruise.ErrInvalidSchedule,
		cruise.ErrPortCodeRequired,
		cruise.ErrInvalidPortCode,
		customer.ErrNameRequired,
		customer.ErrNameTooLong,
		customer.ErrNameHasDigits,
		customer.ErrInvalidGender,
		customer.ErrDateOfBirthRequired,
		customer.ErrAddressRequired,
		customer.ErrAddressTooLong,
		customer.ErrInvalidPhone,
		customer.ErrInvalidZipCode,
		repair.ErrInvalidID,
		repair.ErrDateRequired,
		repair.ErrCodeRequired,
		repair.ErrCodeTooLong,
		repair.ErrUnknownShip,
		repair.ErrUnknownCaptain,
	}
)

// StatusOf はドメインエラーに対応するHTTPステータスを返す
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case isAny(err, conflictErrors):
		return http.StatusConflict
	case isAny(err, notFoundErrors):
		return http.StatusNotFound
	case errors.Is(err, transaction.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case isAny(err, validationErrors):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HTTPError はドメインエラーを echo.HTTPError に変換する
// 5xx の場合は内部の詳細を返さない
func HTTPError(err error) *echo.HTTPError {
	code := StatusOf(err)
	switch code {
	case http.StatusInternalServerError:
		return echo.NewHTTPError(code, "内部サーバーエラー").SetInternal(err)
	case http.StatusServiceUnavailable:
		return echo.NewHTTPError(code, transaction.ErrStoreUnavailable.Error()).SetInternal(err)
	default:
		return echo.NewHTTPError(code, err.Error())
	}
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// CustomHTTPErrorHandler はカスタムエラーハンドラー
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	he, ok := err.(*echo.HTTPError)
	if !ok {
		he = HTTPError(err)
	}

	code := he.Code
	message, ok := he.Message.(string)
	if !ok {
		message = http.StatusText(code)
	}

	// エラーログを出力（5xx エラーの場合）
	if code >= 500 {
		logger.Error("サーバーエラー",
			zap.Int("status", code),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	if err := c.JSON(code, ErrorResponse{
		Error: message,
		Code:  code,
	}); err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}
