package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sanosuguru/go-cruise-reservation/internal/domain/reservation"
)

// 日付・日時の入力書式
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"
)

// parseID は0以上の識別子を解析する。不正な値は invalid でラップする
func parseID(s string, invalid error) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: %q", invalid, s)
	}
	return id, nil
}

func parseCustomerID(s string) (int64, error) {
	return parseID(s, reservation.ErrInvalidCustomerID)
}

func parseCruiseID(s string) (int64, error) {
	return parseID(s, reservation.ErrInvalidCruiseID)
}

// parseTime は layout の書式で UTC の日時として解析する
// 空文字列はゼロ値を返し、必須チェックはドメイン側の検証に任せる
func parseTime(layout, value string, invalid error) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(layout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q は %s の形式で指定してください", invalid, value, layout)
	}
	return t, nil
}
