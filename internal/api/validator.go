package api

import (
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var portCodePattern = regexp.MustCompile(`^[A-Z]{5}$`)

// CustomValidator はEcho用のカスタムバリデーター
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator は新しいバリデーターを作成する
// port タグは5文字の英大文字の港コードを検証する
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("port", func(fl validator.FieldLevel) bool {
		return portCodePattern.MatchString(fl.Field().String())
	})
	return &CustomValidator{validator: v}
}

// Validate はリクエストのバリデーションを実行する
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
