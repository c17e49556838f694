package rest

import "github.com/Gunvolt24/ticketflow/internal/domain"

// Тексты ответов POST /tickets.
const (
	MsgInvalidPurchase  = "Invalid ticket purchase data"
	MsgSubmitFailed     = "Failed to process ticket purchase"
	MsgPurchaseAccepted = "Your ticket purchase has been successfully processed! Thank you for your order."
)

// Ключ ошибки разбора, не относящейся к конкретному полю.
const bodyField = "body"

// errorResponse — тело ответа 400/500.
type errorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// receiptResponse — тело ответа 200 на принятую заявку.
type receiptResponse struct {
	Message                 string `json:"message"`
	TicketCount             int    `json:"ticketCount"`
	OrderReference          string `json:"orderReference"`
	EstimatedProcessingTime string `json:"estimatedProcessingTime"`
}

func newReceiptResponse(r *domain.Receipt) receiptResponse {
	return receiptResponse{
		Message:                 MsgPurchaseAccepted,
		TicketCount:             r.TicketCount,
		OrderReference:          r.OrderReference,
		EstimatedProcessingTime: r.EstimatedProcessingTime,
	}
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
