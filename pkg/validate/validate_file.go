package validate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/ticketflow/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// ValidateFile — валидирует файл как JSON или JSONL и пишет валидный вывод в writer.
// Для одиночного JSON невалидная запись возвращается ещё и ошибкой.
func ValidateFile(ctx context.Context, validator ports.PurchaseValidator, filePath string, format InputFormat, ow io.Writer, opts ...OutputOption) (JSONLResult, error) {
	var res JSONLResult

	// auto по расширению
	if format == FormatAuto {
		switch strings.ToLower(filepath.Ext(filePath)) {
		case ".jsonl":
			format = FormatJSONL
		default:
			// по умолчанию считаем JSON
			format = FormatJSON
		}
	}
	if format != FormatJSON && format != FormatJSONL {
		return res, fmt.Errorf("unsupported format: %s", format)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return res, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	if format == FormatJSONL {
		return ValidateJSONLStream(ctx, validator, file, ow, opts...)
	}

	o := buildOutputOptions(opts)
	raw, err := io.ReadAll(file)
	if err != nil {
		return res, fmt.Errorf("read file: %w", err)
	}
	req, err := ValidatePurchaseFromJSON(ctx, validator, raw)
	if err != nil {
		fmt.Fprintf(o.rejects, "line 1: %s\n", DescribeError(err))
		res.InvalidLinesCount = 1
		return res, err
	}
	if err := writeRecord(ow, o.encode, req); err != nil {
		return res, err
	}
	res.ValidLinesCount = 1
	return res, nil
}
