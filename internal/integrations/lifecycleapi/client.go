package lifecycleapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-BookingLifecycle/internal/domain"
)

// headerRequestID связывает запрос клиента с логами сервиса бронирований
const headerRequestID = "X-Request-ID"

// Имена операций для логов и метрик
const (
	opCreate         = "create"
	opList           = "list"
	opGet            = "get"
	opCancel         = "cancel"
	opUpdateStatus   = "update_status"
	opConfirmPayment = "confirm_payment"
	opStats          = "stats"
	opAvailability   = "availability"
)

const maxErrorBodyBytes = 4096

// Client клиент удаленного сервиса бронирований.
// Ни один вызов не повторяется автоматически: create, cancel и confirm-payment не идемпотентны.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    Metrics
	log        Logger
}

// Option настраивает клиент
type Option func(*Client)

// WithRateLimit ограничивает частоту исходящих запросов
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithMetrics включает метрики вызовов
func WithMetrics(m Metrics) Option {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithHTTPClient подменяет HTTP клиент (используется в тестах)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient создает новый экземпляр клиента сервиса бронирований
func NewClient(baseURL string, timeout time.Duration, log Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: nopMetrics{},
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Create создает бронирование, возвращает запись в статусе PENDING_PAYMENT
func (c *Client) Create(ctx context.Context, actor domain.Actor, req domain.CreateBookingRequest) (*domain.Booking, error) {
	var dto BookingDTO
	if err := c.do(ctx, actor, opCreate, http.MethodPost, "/bookings", nil, newCreateBookingRequest(req), &dto, http.StatusCreated, http.StatusOK); err != nil {
		return nil, err
	}
	return dto.ToDomain()
}

// List получает страницу бронирований текущего пользователя
func (c *Client) List(ctx context.Context, actor domain.Actor, filter domain.ListFilter, page, limit int) (*domain.BookingPage, error) {
	query := url.Values{}
	if filter.Status != nil {
		query.Set("status", string(*filter.Status))
	}
	if filter.Role != domain.RoleAny {
		query.Set("role", string(filter.Role))
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var resp ListBookingsResponse
	if err := c.do(ctx, actor, opList, http.MethodGet, "/bookings", query, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}

	bookings := make([]*domain.Booking, 0, len(resp.Bookings))
	for i := range resp.Bookings {
		b, err := resp.Bookings[i].ToDomain()
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}

	return &domain.BookingPage{
		Bookings: bookings,
		Total:    resp.Total,
		Page:     resp.Page,
		Limit:    resp.Limit,
		HasMore:  resp.HasMore,
	}, nil
}

// Get получает бронирование по ID
func (c *Client) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error) {
	var dto BookingDTO
	if err := c.do(ctx, actor, opGet, http.MethodGet, "/bookings/"+url.PathEscape(id), nil, nil, &dto, http.StatusOK); err != nil {
		return nil, err
	}
	return dto.ToDomain()
}

// Cancel отменяет бронирование
func (c *Client) Cancel(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Booking, error) {
	var dto BookingDTO
	path := "/bookings/" + url.PathEscape(id) + "/cancel"
	if err := c.do(ctx, actor, opCancel, http.MethodPost, path, nil, CancelBookingRequest{Reason: reason}, &dto, http.StatusOK); err != nil {
		return nil, err
	}
	return dto.ToDomain()
}

// UpdateStatus переводит бронирование в новый статус
func (c *Client) UpdateStatus(ctx context.Context, actor domain.Actor, id string, status domain.Status, settlementRef *string) (*domain.Booking, error) {
	var dto BookingDTO
	path := "/bookings/" + url.PathEscape(id) + "/status"
	body := UpdateStatusRequest{Status: string(status), EscrowTxHash: settlementRef}
	if err := c.do(ctx, actor, opUpdateStatus, http.MethodPatch, path, nil, body, &dto, http.StatusOK); err != nil {
		return nil, err
	}
	return dto.ToDomain()
}

// ConfirmPayment прикрепляет ссылку на расчет к бронированию
func (c *Client) ConfirmPayment(ctx context.Context, actor domain.Actor, id, settlementRef string, opts domain.ConfirmPaymentOptions) (*domain.PaymentConfirmation, error) {
	var resp ConfirmPaymentResponse
	path := "/bookings/" + url.PathEscape(id) + "/confirm-payment"
	body := ConfirmPaymentRequest{
		EscrowTxHash:            settlementRef,
		SkipOnChainVerification: opts.SkipOnChainVerification,
	}
	if err := c.do(ctx, actor, opConfirmPayment, http.MethodPost, path, nil, body, &resp, http.StatusOK); err != nil {
		return nil, err
	}

	booking, err := resp.Booking.ToDomain()
	if err != nil {
		return nil, err
	}

	result := &domain.PaymentConfirmation{
		Booking: booking,
		Message: resp.Message,
	}
	if resp.Escrow != nil {
		result.Escrow = &domain.EscrowRecord{
			Reference:   resp.Escrow.TxHash,
			AmountMinor: resp.Escrow.Amount.Minor(),
			Status:      resp.Escrow.Status,
		}
	}
	return result, nil
}

// Stats получает агрегированную статистику пользователя
func (c *Client) Stats(ctx context.Context, actor domain.Actor) (*domain.BookingStats, error) {
	var resp StatsResponse
	if err := c.do(ctx, actor, opStats, http.MethodGet, "/bookings/stats", nil, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

// Availability получает слоты мастера на дату
func (c *Client) Availability(ctx context.Context, actor domain.Actor, stylistID string, date time.Time) ([]domain.AvailabilitySlot, error) {
	query := url.Values{}
	query.Set("date", date.Format(domain.DateFormat))

	var resp AvailabilityResponse
	path := "/stylists/" + url.PathEscape(stylistID) + "/availability"
	if err := c.do(ctx, actor, opAvailability, http.MethodGet, path, query, nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return resp.ToDomain()
}

// do выполняет запрос, проверяет статус и декодирует ответ в out
func (c *Client) do(
	ctx context.Context,
	actor domain.Actor,
	op, method, path string,
	query url.Values,
	body, out interface{},
	expected ...int,
) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.ObserveGateway(op, started, err)
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %s: rate limiter: %v", domain.ErrRequestFailed, op, err)
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: %s: failed to encode request: %v", ErrInternal, op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: %s: failed to create request: %v", ErrInternal, op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if actor.Token != "" {
		req.Header.Set("Authorization", "Bearer "+actor.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("lifecycleapi %s %s: request failed: request_id=%s, error=%v", method, path, requestID, err)
		return fmt.Errorf("%w: %s: failed to execute request: %v", domain.ErrRequestFailed, op, err)
	}
	defer resp.Body.Close()

	if !isExpected(resp.StatusCode, expected) {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		remoteErr := decodeError(op, resp.StatusCode, raw)
		c.log.Warn("lifecycleapi %s %s: status=%d, request_id=%s: %v", method, path, resp.StatusCode, requestID, remoteErr)
		return remoteErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: failed to decode response: %v", ErrInvalidResponse, op, err)
	}

	return nil
}

// decodeError переводит ответ с ошибкой в RemoteError
func decodeError(op string, status int, raw []byte) *RemoteError {
	remote := &RemoteError{Status: status}

	var body ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && (body.Error.Code != "" || body.Error.Message != "") {
		remote.Code = body.Error.Code
		remote.Message = body.Error.Message
	} else {
		remote.Message = strings.TrimSpace(string(raw))
	}
	if remote.Message == "" {
		remote.Message = http.StatusText(status)
	}

	if kind, ok := kindByCode[remote.Code]; ok {
		remote.Kind = kind
	} else {
		remote.Kind = kindByStatus(op, status)
	}

	return remote
}

func isExpected(status int, expected []int) bool {
	for _, s := range expected {
		if status == s {
			return true
		}
	}
	return false
}
