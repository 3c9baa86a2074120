package http

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/jimlawless/whereami"
	"github.com/profibuy/storefront/internal/usecase"
	"github.com/profibuy/storefront/pkg/e"
)

const maxJSONBody = 1 << 20

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// ToHTTPResponse сопоставляет ошибку с HTTP-кодом. Коды бэкенда пробрасываются как есть.
func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrExpectedMultipart):
		return http.StatusBadRequest, e.ErrExpectedMultipart.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrInvalidQuantity):
		return http.StatusBadRequest, e.ErrInvalidQuantity.Error()
	case errors.Is(err, e.ErrEmptyCart):
		return http.StatusBadRequest, e.ErrEmptyCart.Error()
	case errors.Is(err, e.ErrInvalidAddress):
		return http.StatusBadRequest, e.ErrInvalidAddress.Error()
	case errors.Is(err, e.ErrShippingNotSelected):
		return http.StatusBadRequest, e.ErrShippingNotSelected.Error()
	case errors.Is(err, e.ErrPaymentNotSelected):
		return http.StatusBadRequest, e.ErrPaymentNotSelected.Error()
	case errors.Is(err, e.ErrUnknownShipping):
		return http.StatusBadRequest, e.ErrUnknownShipping.Error()
	case errors.Is(err, e.ErrUnknownPayment):
		return http.StatusBadRequest, e.ErrUnknownPayment.Error()
	case errors.Is(err, e.ErrInvalidStep):
		return http.StatusBadRequest, e.ErrInvalidStep.Error()
	case errors.Is(err, e.ErrNoFiles):
		return http.StatusBadRequest, e.ErrNoFiles.Error()
	case errors.Is(err, e.ErrTooManyFiles):
		return http.StatusBadRequest, e.ErrTooManyFiles.Error()
	case errors.Is(err, e.ErrInvalidJobKind):
		return http.StatusBadRequest, e.ErrInvalidJobKind.Error()
	case errors.Is(err, e.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, e.ErrFileTooLarge.Error()
	case errors.Is(err, e.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, e.ErrUnsupportedMediaType.Error()
	case errors.Is(err, e.ErrInvalidCredentials):
		return http.StatusUnauthorized, e.ErrInvalidCredentials.Error()
	case errors.Is(err, e.ErrUnauthorized):
		return http.StatusUnauthorized, e.ErrUnauthorized.Error()
	case errors.Is(err, e.ErrForbidden):
		return http.StatusForbidden, e.ErrForbidden.Error()
	case errors.Is(err, e.ErrJobNotFound):
		return http.StatusNotFound, e.ErrJobNotFound.Error()
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound, e.ErrNotFound.Error()
	case errors.Is(err, e.ErrTooManyRequests):
		return http.StatusTooManyRequests, e.ErrTooManyRequests.Error()
	case errors.Is(err, e.ErrBackendUnavailable):
		return http.StatusBadGateway, e.ErrBackendUnavailable.Error()
	}

	var be *e.BackendError
	if errors.As(err, &be) {
		msg := be.Message
		if msg == "" {
			msg = http.StatusText(be.StatusCode)
		}
		return be.StatusCode, msg
	}

	return http.StatusInternalServerError, e.ErrInternalServerError.Error()
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	WriteSuccess(w, code, NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeOK(w http.ResponseWriter) {
	WriteSuccess(w, http.StatusOK, SuccessResponse{Success: true})
}

// decodeJSON читает тело запроса не больше maxJSONBody. Пустое тело — ошибка.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return e.Wrap(err.Error(), e.ErrStatusBadRequest)
	}
	return nil
}

// readRawJSON нужен для настроек произвольной формы: тело передаётся бэкенду без разбора.
func readRawJSON(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, e.Wrap(err.Error(), e.ErrStatusBadRequest)
	}
	if !json.Valid(data) {
		return nil, e.Wrap("invalid json", e.ErrStatusBadRequest)
	}
	return data, nil
}

func ensureMultipartForm(r *http.Request, maxMemory int64) error {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return e.Wrap(whereami.WhereAmI(), e.ErrExpectedMultipart)
	}
	return r.ParseMultipartForm(maxMemory)
}

func parseMediaFiles(files []*multipart.FileHeader) ([]usecase.UploadedFile, error) {
	if len(files) == 0 {
		return nil, e.ErrNoFiles
	}
	if len(files) > usecase.MaxMediaFiles {
		return nil, e.ErrTooManyFiles
	}

	out := make([]usecase.UploadedFile, 0, len(files))
	for _, fh := range files {
		data, err := readFile(fh, usecase.MaxMediaFileSize)
		if err != nil {
			return nil, err
		}
		out = append(out, usecase.UploadedFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        int64(len(data)),
			Data:        data,
		})
	}
	return out, nil
}

func readFile(fh *multipart.FileHeader, maxSize int64) ([]byte, error) {
	if fh.Size > maxSize {
		return nil, e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, e.ErrInternalServerError
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, e.ErrInternalServerError
	}
	if int64(len(data)) > maxSize {
		return nil, e.Wrap(fh.Filename, e.ErrFileTooLarge)
	}

	return data, nil
}
