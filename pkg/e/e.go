package e

import "fmt"

var (
	// Внутренние ошибки хранилища
	ErrProductNotFound = fmt.Errorf("product not found")
	ErrStoreClosed     = fmt.Errorf("store is closed")

	// 400 Bad Request
	ErrStatusBadRequest   = fmt.Errorf("bad request")
	ErrInvalidProductID   = fmt.Errorf("invalid product id")
	ErrInvalidRequestBody = fmt.Errorf("invalid request body")
	ErrInvalidQueryParam  = fmt.Errorf("invalid query parameter")
	ErrInvalidPercentage  = fmt.Errorf("percentage must be a finite number")
	ErrPriceNotFinite     = fmt.Errorf("price must be a finite number")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrUnknownStoreDriver   = fmt.Errorf("unknown store driver")
)

type wrapError struct {
	msg string
	err error
}

func (w *wrapError) Error() string { return w.msg + ": " + w.err.Error() }

func (w *wrapError) Unwrap() error { return w.err }

// Wrap оборачивает ошибку, добавляя к ней место возникновения
func Wrap(msg string, err error) error {
	return &wrapError{msg: msg, err: err}
}

// Cause снимает внешние слои Wrap. Ошибки, обёрнутые иначе (например, через %w), остаются как есть.
func Cause(err error) error {
	for {
		w, ok := err.(*wrapError)
		if !ok {
			return err
		}
		err = w.err
	}
}
