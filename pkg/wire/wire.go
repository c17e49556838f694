// Пакет wire — формат сообщения очереди: base64 (StdEncoding) от JSON заявки.
package wire

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Gunvolt24/ticketflow/internal/domain"
	"github.com/Gunvolt24/ticketflow/pkg/orderref"
	jsoniter "github.com/json-iterator/go"
)

// ErrDecode — сообщение невозможно разобрать; повторная доставка его не исправит.
var ErrDecode = errors.New("wire: malformed purchase message")

// Ключи сверяются с учётом регистра, неизвестные поля отвергаются.
var codec = jsoniter.Config{
	CaseSensitive:          true,
	DisallowUnknownFields:  true,
	EscapeHTML:             false,
	SortMapKeys:            false,
	ValidateJsonRawMessage: true,
}.Froze()

// Encode сериализует сообщение в JSON и кодирует в base64.
func Encode(msg *domain.PurchaseMessage) ([]byte, error) {
	if msg == nil {
		return nil, errors.New("wire: nil message")
	}
	raw, err := codec.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("wire: marshal: %w", err)
	}
	out := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(out, raw)
	return out, nil
}

// Decode — обратное к Encode. Любая ошибка оборачивает ErrDecode.
// Сообщение без любого из обязательных полей считается повреждённым.
func Decode(payload []byte) (*domain.PurchaseMessage, error) {
	text := strings.TrimSpace(string(payload))
	if text == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrDecode)
	}

	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrDecode, err)
	}

	var msg domain.PurchaseMessage
	iter := codec.BorrowIterator(raw)
	defer codec.ReturnIterator(iter)

	iter.ReadVal(&msg)
	if iter.Error != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrDecode, iter.Error)
	}
	// после объекта допустимы только пробелы: следующий токен должен упереться в конец буфера
	iter.WhatIsNext()
	if !errors.Is(iter.Error, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after message", ErrDecode)
	}

	if missing := msg.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing fields: %s", ErrDecode, strings.Join(missing, ", "))
	}
	if msg.OrderReference != "" && !orderref.Valid(msg.OrderReference) {
		return nil, fmt.Errorf("%w: malformed order reference %q", ErrDecode, msg.OrderReference)
	}
	return &msg, nil
}
