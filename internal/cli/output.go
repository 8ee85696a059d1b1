package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sanosuguru/go-cruise-reservation/internal/api"
)

// 終了コード
const (
	ExitSuccess      = 0 // 正常終了
	ExitFailure      = 1 // 入力エラー・対象なし・予約失敗など
	ExitCommandError = 2 // データストアに接続できないなど、コマンド自体を実行できない
)

// エラー出力に付けるコード
const (
	ErrCodeValidation = "E_VALIDATION"
	ErrCodeNotFound   = "E_NOT_FOUND"
	ErrCodeConflict   = "E_CONFLICT"
	ErrCodeStore      = "E_STORE"
	ErrCodeInternal   = "E_INTERNAL"
)

// ExitError は終了コード付きのエラー
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode はエラーから終了コードを取り出す。ExitError でなければ ExitFailure
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter は結果を JSON またはテキストで出力する
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // 詳細ログの出力先（未設定なら Writer）
	Verbose   bool
}

// CLIResponse は JSON 出力の共通フォーマット
type CLIResponse struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success は結果を出力する。テキスト形式では値の String() をそのまま出す
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error はエラーを出力する
func (f *OutputFormatter) Error(code, message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message},
		})
	}
	_, err := fmt.Fprintf(f.Writer, "エラー [%s]: %s\n", code, message)
	return err
}

// VerboseLog は --verbose 指定時のみ詳細を出力する
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// Fail はエラーを出力し、終了コード付きのエラーに変換して返す
func (f *OutputFormatter) Fail(err error) error {
	code, exit := classify(err)
	_ = f.Error(code, err.Error())

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return WrapExitError(exit, "コマンドが失敗しました", err)
}

// classify はドメインエラーを出力コードと終了コードに振り分ける
func classify(err error) (string, int) {
	exit := ExitFailure
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		exit = exitErr.Code
	}

	switch api.StatusOf(err) {
	case http.StatusBadRequest:
		return ErrCodeValidation, exit
	case http.StatusNotFound:
		return ErrCodeNotFound, exit
	case http.StatusConflict:
		return ErrCodeConflict, exit
	case http.StatusServiceUnavailable:
		return ErrCodeStore, ExitCommandError
	default:
		return ErrCodeInternal, exit
	}
}
