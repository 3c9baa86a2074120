package e

import (
	"errors"
	"fmt"
)

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Конфигурация
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrMissingFields        = fmt.Errorf("missing required fields")
	ErrInvalidQuantity      = fmt.Errorf("invalid quantity")
	ErrInvalidPrice         = fmt.Errorf("invalid price")
	ErrEmptyCart            = fmt.Errorf("cart is empty")
	ErrInvalidAddress       = fmt.Errorf("invalid address")
	ErrShippingNotSelected  = fmt.Errorf("shipping method not selected")
	ErrPaymentNotSelected   = fmt.Errorf("payment method not selected")
	ErrUnknownShipping      = fmt.Errorf("unknown shipping method")
	ErrUnknownPayment       = fmt.Errorf("unknown payment method")
	ErrInvalidStep          = fmt.Errorf("invalid checkout step")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrNoFiles              = fmt.Errorf("no files provided")
	ErrTooManyFiles         = fmt.Errorf("too many files")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrInvalidJobKind       = fmt.Errorf("invalid job kind")

	// 401 / 403
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrForbidden          = fmt.Errorf("forbidden")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// 404
	ErrNotFound    = fmt.Errorf("not found")
	ErrJobNotFound = fmt.Errorf("job not found")

	// 429
	ErrTooManyRequests = fmt.Errorf("too many requests")

	// 5xx
	ErrInternalServerError = fmt.Errorf("internal server error")
	ErrBackendStatus       = fmt.Errorf("backend returned error status")
	ErrBackendUnavailable  = fmt.Errorf("backend unavailable")
)

// BackendError — ответ бэкенда с кодом не из диапазона 2xx.
type BackendError struct {
	StatusCode int
	Message    string
}

func (b *BackendError) Error() string {
	if b.Message == "" {
		return fmt.Sprintf("backend status %d", b.StatusCode)
	}
	return fmt.Sprintf("backend status %d: %s", b.StatusCode, b.Message)
}

func (b *BackendError) Is(target error) bool {
	return target == ErrBackendStatus
}

// BackendStatus возвращает HTTP-код бэкенда, если err содержит BackendError.
func BackendStatus(err error) (int, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be.StatusCode, true
	}
	return 0, false
}

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
