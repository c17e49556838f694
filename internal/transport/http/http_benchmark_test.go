//go:build !integration

package rest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/ticketflow/internal/domain"
)

const benchBody = `{"concertId":42,"email":"fan@example.com","name":"Jane Doe","phone":"555-555-5555",` +
	`"quantity":2,"cardNumber":"4111111111111111","expiration":"12/39","securityCode":"123",` +
	`"address":"1 Main St","city":"Toronto","province":"ON","postalCode":"M5V 2T6","country":"Canada"}`

// --- Бенчмарки ---

// POST /tickets — сравниваем LEAN vs FULL пайплайн
func BenchmarkHTTP_SubmitPurchase(b *testing.B) {
	h := NewHandler(svcAccept{}, nopLogger{}, 2*time.Second)

	lean := makeLeanRouter(h)
	full := makeFullRouter(h)

	b.Run("lean/no-mw", func(b *testing.B) {
		benchServePOST(b, lean, "/tickets", benchBody, http.StatusOK)
	})
	b.Run("full/prod-mw", func(b *testing.B) {
		benchServePOST(b, full, "/tickets", benchBody, http.StatusOK)
	})
}

// Отказ на разборе тела: сервис не вызывается
func BenchmarkHTTP_SubmitPurchase_BadBody(b *testing.B) {
	h := NewHandler(svcAccept{}, nopLogger{}, 2*time.Second)
	benchServePOST(b, makeLeanRouter(h), "/tickets", `{"concertId":`, http.StatusBadRequest)
}

// Ошибочный путь (404): "цена" роутера и 404-хендлера
func BenchmarkHTTP_404(b *testing.B) {
	h := NewHandler(svcAccept{}, nopLogger{}, 2*time.Second)
	r := makeFullRouter(h)

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req, _ := http.NewRequest(http.MethodGet, "/nope", http.NoBody)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			_, _ = io.Copy(io.Discard, w.Body)
			if w.Code != http.StatusNotFound {
				b.Fatalf("status=%d", w.Code)
			}
		}
	})
}

// --- nopLogger — логгер, который не делает ничего. ---

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// --- Стабы ---

type svcAccept struct{}

func (svcAccept) Submit(_ context.Context, req *domain.PurchaseRequest) (*domain.Receipt, error) {
	return &domain.Receipt{
		OrderReference:          "TKT-20260315-42-0a1b2c3d",
		TicketCount:             req.Quantity,
		EstimatedProcessingTime: domain.EstimatedProcessingTime,
	}, nil
}

// --- функции-помощники ---

func makeLeanRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New() // без Recovery/otel/logger/gzip
	r.POST("/tickets", h.submitPurchase)
	return r
}

func makeFullRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	// prod пайплайн из NewRouter
	return NewRouter(h, "")
}

func benchServePOST(b *testing.B, r *gin.Engine, path, body string, wantStatus int) {
	b.Helper()
	b.ReportAllocs()
	b.ResetTimer()

	// Параллельный режим ближе к реальности без TCP
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			_, _ = io.Copy(io.Discard, w.Body)
			if w.Code != wantStatus {
				b.Fatalf("status=%d", w.Code)
			}
		}
	})
}
