package validate

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Gunvolt24/ticketflow/internal/domain"
	"github.com/Gunvolt24/ticketflow/internal/ports"
)

// JSONLResult — статистика валидации потока JSONL.
type JSONLResult struct {
	ValidLinesCount   int
	InvalidLinesCount int
}

// String — сводка вида "X valid / Y invalid".
func (r JSONLResult) String() string {
	return fmt.Sprintf("%d valid / %d invalid", r.ValidLinesCount, r.InvalidLinesCount)
}

// Encoder превращает валидную заявку в строку вывода (без перевода строки).
type Encoder func(req *domain.PurchaseRequest) ([]byte, error)

// CanonicalJSON — компактный JSON заявки; кодировщик по умолчанию.
func CanonicalJSON(req *domain.PurchaseRequest) ([]byte, error) {
	return json.Marshal(req)
}

type outputOptions struct {
	encode  Encoder
	rejects io.Writer
}

// OutputOption — настройка вывода ValidateFile/ValidateJSONLStream.
type OutputOption func(*outputOptions)

// WithEncoder задаёт формат вывода валидных записей.
func WithEncoder(enc Encoder) OutputOption {
	return func(o *outputOptions) {
		if enc != nil {
			o.encode = enc
		}
	}
}

// WithRejects — куда писать описания невалидных записей (по строке на запись).
func WithRejects(w io.Writer) OutputOption {
	return func(o *outputOptions) { o.rejects = w }
}

func buildOutputOptions(opts []OutputOption) outputOptions {
	o := outputOptions{encode: CanonicalJSON, rejects: io.Discard}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rejects == nil {
		o.rejects = io.Discard
	}
	return o
}

// ValidateJSONLStream — читает JSONL из reader’а, валидирует каждую строку, валидные пишет в writer.
// Пустые строки пропускаются, невалидные считаются и описываются в WithRejects.
func ValidateJSONLStream(ctx context.Context, validator ports.PurchaseValidator, ir io.Reader, ow io.Writer, opts ...OutputOption) (JSONLResult, error) {
	var res JSONLResult
	o := buildOutputOptions(opts)

	scanner := bufio.NewScanner(ir)
	// запас на большие строки
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		lineBytes := scanner.Bytes()
		if len(strings.TrimSpace(string(lineBytes))) == 0 {
			continue
		}

		req, err := ValidatePurchaseFromJSON(ctx, validator, lineBytes)
		if err != nil {
			res.InvalidLinesCount++
			fmt.Fprintf(o.rejects, "line %d: %s\n", lineNo, DescribeError(err))
			continue
		}

		if err := writeRecord(ow, o.encode, req); err != nil {
			return res, err
		}
		res.ValidLinesCount++
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}

func writeRecord(ow io.Writer, enc Encoder, req *domain.PurchaseRequest) error {
	line, err := enc(req)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if _, err := ow.Write(line); err != nil {
		return fmt.Errorf("write valid line: %w", err)
	}
	if _, err := ow.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}
	return nil
}
