package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Gunvolt24/ticketflow/internal/domain"
	"github.com/Gunvolt24/ticketflow/internal/ports"
	"github.com/Gunvolt24/ticketflow/pkg/httpx"
	"github.com/gin-gonic/gin"
)

// Handler — HTTP-обработчики приёма заявок.
type Handler struct {
	service    ports.PurchaseSubmitter
	log        ports.Logger
	reqTimeout time.Duration
	now        func() time.Time
}

// NewHandler — конструктор; reqTimeout <= 0 отключает таймаут вызова сервиса.
func NewHandler(service ports.PurchaseSubmitter, log ports.Logger, reqTimeout time.Duration) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		reqTimeout: reqTimeout,
		now:        time.Now,
	}
}

// submitPurchase — POST /tickets.
func (h *Handler) submitPurchase(c *gin.Context) {
	var req domain.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		field, msg := describeBindError(err)
		h.log.Infof(c.Request.Context(), "purchase body rejected: %v", err)
		c.JSON(http.StatusBadRequest, errorResponse{
			Message: MsgInvalidPurchase,
			Errors:  map[string][]string{field: {msg}},
		})
		return
	}

	ctx, cancel := h.withTimeout(c.Request.Context())
	defer cancel()

	receipt, err := h.service.Submit(ctx, &req)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, errorResponse{
				Message: MsgInvalidPurchase,
				Errors:  vErr.Report,
			})
			return
		}
		// отказ брокера уже залогирован producer'ом
		if !errors.Is(err, domain.ErrEnqueueFailed) {
			h.log.Errorf(ctx, "submit purchase failed: %v", err)
		}
		c.JSON(http.StatusInternalServerError, errorResponse{Message: MsgSubmitFailed})
		return
	}

	c.Set(httpx.KeyOrderReference, receipt.OrderReference)
	c.JSON(http.StatusOK, newReceiptResponse(receipt))
}

// health — GET /tickets/health.
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.reqTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.reqTimeout)
}

// describeBindError сводит ошибку разбора тела к паре (поле, сообщение).
func describeBindError(err error) (field, msg string) {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.Is(err, io.EOF):
		return bodyField, "Request body is required"
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return typeErr.Field, "Invalid value type: expected " + typeErr.Type.String()
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return bodyField, "Malformed JSON"
	default:
		return bodyField, "Invalid request body"
	}
}
