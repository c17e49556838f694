package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Gunvolt24/ticketflow/internal/domain"
	"github.com/Gunvolt24/ticketflow/internal/ports/mocks"
	rest "github.com/Gunvolt24/ticketflow/internal/transport/http"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

// errCounter считает только ошибки.
type errCounter struct {
	noopLogger
	errs atomic.Int32
}

func (l *errCounter) Errorf(context.Context, string, ...any) { l.errs.Add(1) }

// срок карты всегда в будущем относительно текущей даты
var validBody = fmt.Sprintf(`{
	"concertId": 42, "email": "fan@example.com", "name": "Jane Doe", "phone": "(555) 555-5555",
	"quantity": 2, "cardNumber": "4111 1111 1111 1111", "expiration": %q, "securityCode": "123",
	"address": "1 Main St", "city": "Toronto", "province": "ON", "postalCode": "M5V 2T6", "country": "Canada"
}`, time.Now().AddDate(2, 0, 0).Format("01/06"))

type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func newTestRouter(t *testing.T, svc *mocks.MockPurchaseSubmitter, timeout time.Duration) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return rest.NewRouter(rest.NewHandler(svc, noopLogger{}, timeout), "")
}

func postTickets(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/tickets", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var got errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v, body=%s", err, w.Body.String())
	}
	return got
}

func TestSubmitPurchase_Accepted(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockPurchaseSubmitter(ctrl)

	svc.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *domain.PurchaseRequest) (*domain.Receipt, error) {
			if req.ConcertID != 42 || req.Quantity != 2 || req.Email != "fan@example.com" {
				t.Fatalf("request not bound: %+v", req)
			}
			return &domain.Receipt{
				OrderReference:          "TKT-20260315-42-0a1b2c3d",
				TicketCount:             2,
				EstimatedProcessingTime: domain.EstimatedProcessingTime,
			}, nil
		})

	w := postTickets(newTestRouter(t, svc, 0), validBody)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got["message"] != rest.MsgPurchaseAccepted {
		t.Fatalf("message: %v", got["message"])
	}
	if got["orderReference"] != "TKT-20260315-42-0a1b2c3d" {
		t.Fatalf("orderReference: %v", got["orderReference"])
	}
	if got["ticketCount"] != float64(2) {
		t.Fatalf("ticketCount: %v", got["ticketCount"])
	}
	if got["estimatedProcessingTime"] != "5 minutes" {
		t.Fatalf("estimatedProcessingTime: %v", got["estimatedProcessingTime"])
	}
}

// Отчёт валидации отдаётся целиком.
func TestSubmitPurchase_ValidationFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockPurchaseSubmitter(ctrl)

	report := domain.ValidationReport{
		domain.FieldPhone:      {"Please enter a valid phone number format like (555) 555-5555 or 555-555-5555"},
		domain.FieldPostalCode: {"Invalid Canadian postal code format. Must be in format A1A 1A1."},
	}
	svc.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil, &domain.ValidationError{Report: report})

	w := postTickets(newTestRouter(t, svc, 0), validBody)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d, body=%s", w.Code, w.Body.String())
	}

	got := decodeErrorBody(t, w)
	if got.Message != rest.MsgInvalidPurchase {
		t.Fatalf("message: %q", got.Message)
	}
	if len(got.Errors) != 2 || len(got.Errors[domain.FieldPhone]) != 1 || len(got.Errors[domain.FieldPostalCode]) != 1 {
		t.Fatalf("errors: %v", got.Errors)
	}
}

func TestSubmitPurchase_EnqueueFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockPurchaseSubmitter(ctrl)

	svc.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil, domain.ErrEnqueueFailed)

	w := postTickets(newTestRouter(t, svc, 0), validBody)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d, body=%s", w.Code, w.Body.String())
	}
	got := decodeErrorBody(t, w)
	if got.Message != rest.MsgSubmitFailed || len(got.Errors) != 0 {
		t.Fatalf("unexpected body: %+v", got)
	}
}

// Отказ брокера логирует producer; хендлер повторно ошибку не пишет, а неожиданные ошибки пишет.
func TestSubmitPurchase_ErrorLogging(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantErrs int32
	}{
		{"enqueue failed", domain.ErrEnqueueFailed, 0},
		{"unexpected", errors.New("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockPurchaseSubmitter(ctrl)
			svc.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			gin.SetMode(gin.TestMode)
			log := &errCounter{}
			r := rest.NewRouter(rest.NewHandler(svc, log, 0), "")

			if w := postTickets(r, validBody); w.Code != http.StatusInternalServerError {
				t.Fatalf("want 500, got %d", w.Code)
			}
			if got := log.errs.Load(); got != tt.wantErrs {
				t.Fatalf("error logs: want %d, got %d", tt.wantErrs, got)
			}
		})
	}
}

// Структурные ошибки тела не доходят до сервиса.
func TestSubmitPurchase_BadBody(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"empty", "", "body"},
		{"malformed", `{"concertId": 42,`, "body"},
		{"not json", `hello`, "body"},
		{"wrong type", `{"concertId": "forty-two"}`, domain.FieldConcertID},
		{"wrong type string field", `{"email": 5}`, domain.FieldEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockPurchaseSubmitter(ctrl)

			w := postTickets(newTestRouter(t, svc, 0), tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("want 400, got %d, body=%s", w.Code, w.Body.String())
			}
			got := decodeErrorBody(t, w)
			if got.Message != rest.MsgInvalidPurchase {
				t.Fatalf("message: %q", got.Message)
			}
			if len(got.Errors[tt.wantField]) != 1 {
				t.Fatalf("want error for %q, got %v", tt.wantField, got.Errors)
			}
		})
	}
}

// Сервис получает контекст с дедлайном обработчика.
func TestSubmitPurchase_AppliesTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockPurchaseSubmitter(ctrl)

	svc.EXPECT().Submit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ *domain.PurchaseRequest) (*domain.Receipt, error) {
			if _, ok := ctx.Deadline(); !ok {
				t.Fatal("context without deadline")
			}
			<-ctx.Done()
			return nil, ctx.Err()
		})

	w := postTickets(newTestRouter(t, svc, 10*time.Millisecond), validBody)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestHealth_200(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newTestRouter(t, mocks.NewMockPurchaseSubmitter(ctrl), 0)

	req := httptest.NewRequest(http.MethodGet, "/tickets/health", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	var got struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Status != "healthy" {
		t.Fatalf("status: %q", got.Status)
	}
	ts, err := time.Parse(time.RFC3339, got.Timestamp)
	if err != nil {
		t.Fatalf("timestamp %q: %v", got.Timestamp, err)
	}
	if _, off := ts.Zone(); off != 0 {
		t.Fatalf("timestamp must be UTC: %q", got.Timestamp)
	}
}

func TestRequestID_Echoed(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newTestRouter(t, mocks.NewMockPurchaseSubmitter(ctrl), 0)

	req := httptest.NewRequest(http.MethodGet, "/tickets/health", http.NoBody)
	req.Header.Set("X-Request-ID", "rid-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "rid-123" {
		t.Fatalf("want X-Request-ID rid-123, got %q", got)
	}
}

func TestGzip_Compressed(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newTestRouter(t, mocks.NewMockPurchaseSubmitter(ctrl), 0)

	req := httptest.NewRequest(http.MethodGet, "/tickets/health", http.NoBody)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("want gzip encoding, got %q", got)
	}
}

func TestNoRoute_404(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newTestRouter(t, mocks.NewMockPurchaseSubmitter(ctrl), 0)

	req := httptest.NewRequest(http.MethodGet, "/no-such-route", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestMethodNotAllowed_405(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newTestRouter(t, mocks.NewMockPurchaseSubmitter(ctrl), 0)

	req := httptest.NewRequest(http.MethodGet, "/tickets", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("want 405, got %d, body=%s", w.Code, w.Body.String())
	}
	if allow := w.Header().Get("Allow"); allow != "POST" {
		t.Fatalf("want Allow: POST, got %q", allow)
	}
}

func TestPing_200(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newTestRouter(t, mocks.NewMockPurchaseSubmitter(ctrl), 0)

	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("want 200 pong, got %d %q", w.Code, w.Body.String())
	}
}

func TestMetrics_200(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := newTestRouter(t, mocks.NewMockPurchaseSubmitter(ctrl), 0)

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	// Содержимое может меняться — достаточно проверить, что не пусто.
	if w.Body.Len() == 0 {
		t.Fatal("metrics body is empty")
	}
}

// В режиме worker приём заявок недоступен.
func TestOpsRouter_NoSubmission(t *testing.T) {
	ctrl := gomock.NewController(t)
	gin.SetMode(gin.TestMode)
	r := rest.NewOpsRouter(rest.NewHandler(mocks.NewMockPurchaseSubmitter(ctrl), noopLogger{}, 0))

	w := postTickets(r, validBody)
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/tickets/health", http.NoBody)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
}
