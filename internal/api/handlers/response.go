package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

const (
	msgInternalError      = "внутренняя ошибка сервера"
	msgUnauthorized       = "требуется авторизация"
	msgInvalidInput       = "некорректные данные запроса"
	msgOperationInProcess = "операция уже выполняется"
	msgUpstreamFailed     = "сервис бронирований недоступен, попробуйте позже"
)

// maxBodySize ограничение на размер тела запроса
const maxBodySize = 1 << 20

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Retryable bool   `json:"retryable"`
	Details   string `json:"details,omitempty"`
}

// Коды ошибок в теле ответа
var errorCodes = map[error]string{
	domain.ErrSlotUnavailable:     "SLOT_UNAVAILABLE",
	domain.ErrProviderUnavailable: "STYLIST_UNAVAILABLE",
	domain.ErrServiceNotFound:     "SERVICE_NOT_FOUND",
	domain.ErrNotFound:            "NOT_FOUND",
	domain.ErrCannotCancel:        "CANNOT_CANCEL",
	domain.ErrEscrowNotFound:      "ESCROW_NOT_FOUND",
	domain.ErrEscrowMismatch:      "ESCROW_MISMATCH",
	domain.ErrInvalidTransition:   "INVALID_TRANSITION",
	domain.ErrInvalidStatus:       "INVALID_STATUS",
	domain.ErrInvalidBooking:      "INVALID_BOOKING",
	domain.ErrInvalidInput:        "INVALID_INPUT",
	domain.ErrUnauthenticated:     "UNAUTHENTICATED",
	domain.ErrOperationInProgress: "OPERATION_IN_PROGRESS",
	domain.ErrRequestFailed:       "REQUEST_FAILED",
}

// RespondJSON пишет data в формате JSON с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondNoContent отвечает 204 без тела
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError пишет ошибку с кодом категории
func RespondError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Code = errorCodes[domain.KindOf(err)]
		resp.Retryable = domain.IsRetryable(err)
	}
	RespondJSON(w, status, resp)
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message, domain.ErrInvalidInput)
}

// RespondUnauthorized 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message, domain.ErrUnauthenticated)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message, domain.ErrNotFound)
}

// RespondConflict 409, код и признак повтора берутся из err
func RespondConflict(w http.ResponseWriter, message string, err error) {
	RespondError(w, http.StatusConflict, message, err)
}

// RespondInternalError 500
func RespondInternalError(w http.ResponseWriter) {
	RespondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgInternalError})
}

// RespondDomainError отвечает на общие категории ошибок, которые не обработал сам обработчик
func RespondDomainError(w http.ResponseWriter, err error) {
	switch domain.KindOf(err) {
	case domain.ErrUnauthenticated:
		RespondUnauthorized(w, msgUnauthorized)
	case domain.ErrInvalidInput, domain.ErrInvalidStatus:
		RespondError(w, http.StatusBadRequest, msgInvalidInput, err)
	case domain.ErrOperationInProgress:
		RespondConflict(w, msgOperationInProcess, err)
	case domain.ErrRequestFailed:
		// Исходное сообщение сервиса передается клиенту как есть
		RespondJSON(w, http.StatusBadGateway, ErrorResponse{
			Error:     msgUpstreamFailed,
			Code:      errorCodes[domain.ErrRequestFailed],
			Retryable: domain.IsRetryable(err),
			Details:   err.Error(),
		})
	default:
		RespondInternalError(w)
	}
}

// DecodeJSON декодирует тело запроса в v. Пустое тело не считается ошибкой.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
