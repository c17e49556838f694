package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Gunvolt24/ticketflow/internal/domain"
	"github.com/Gunvolt24/ticketflow/internal/ports"
)

// ValidatePurchaseFromJSON — разбор и валидация заявки из JSON.
// Нарушения правил возвращаются как *domain.ValidationError.
func ValidatePurchaseFromJSON(ctx context.Context, validator ports.PurchaseValidator, raw []byte) (*domain.PurchaseRequest, error) {
	var req domain.PurchaseRequest
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("invalid json: trailing data")
	}
	if report := validator.Validate(ctx, &req); !report.Empty() {
		return nil, &domain.ValidationError{Report: report}
	}
	return &req, nil
}

// DescribeError — однострочное описание ошибки для отчёта о невалидных записях.
// Для ошибок валидации перечисляет поля с сообщениями.
func DescribeError(err error) string {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	parts := make([]string, 0, len(ve.Report))
	for _, field := range ve.Report.Fields() {
		parts = append(parts, field+": "+strings.Join(ve.Report[field], "; "))
	}
	return strings.Join(parts, " | ")
}
