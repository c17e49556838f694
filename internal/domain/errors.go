package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPurchase — базовая ошибка валидации заявки.
	ErrInvalidPurchase = errors.New("purchase validation failed")
	// ErrEnqueueFailed — заявка валидна, но не передана в очередь.
	ErrEnqueueFailed = errors.New("purchase enqueue failed")
	// ErrUnstorable — хранилище отвергло значения покупки; повтор того же сообщения не поможет.
	ErrUnstorable = errors.New("purchase rejected by storage")
)

// ValidationError несёт полный отчёт валидации; errors.Is(err, ErrInvalidPurchase) == true.
type ValidationError struct {
	Report ValidationReport
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidPurchase, strings.Join(e.Report.Fields(), ", "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidPurchase }
