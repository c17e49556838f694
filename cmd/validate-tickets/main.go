package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Gunvolt24/ticketflow/internal/domain"
	"github.com/Gunvolt24/ticketflow/pkg/orderref"
	"github.com/Gunvolt24/ticketflow/pkg/validate"
	"github.com/Gunvolt24/ticketflow/pkg/wire"
	"github.com/spf13/pflag"
)

// CLI-приложение для офлайн-проверки заявок на билеты.
func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		inputPath string
		formatStr string
		encode    bool
	)

	flagSet := pflag.NewFlagSet("validate-tickets", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&inputPath, "in", "", "path to input (.json or .jsonl). If empty, reads from stdin.")
	flagSet.StringVar(&formatStr, "format", "auto", "input format: auto|json|jsonl")
	flagSet.BoolVar(&encode, "encode", false, "print queue payloads (base64 JSON with order reference) instead of canonical JSON")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	ctx := context.Background()
	purchaseValidator := validate.NewPurchaseValidator()
	format := validate.InputFormat(formatStr)

	opts := []validate.OutputOption{validate.WithRejects(stderr)}
	if encode {
		opts = append(opts, validate.WithEncoder(queuePayload(orderref.NewGenerator())))
	}

	// stdin вариант: считаем, что jsonl
	if inputPath == "" {
		inputPath = "/dev/stdin"
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
	}

	summary, err := validate.ValidateFile(ctx, purchaseValidator, inputPath, format, stdout, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "validation: %v (%s)\n", err, summary)
		return 1
	}
	if summary.InvalidLinesCount > 0 {
		fmt.Fprintf(stderr, "validation failed (%s)\n", summary)
		return 1
	}
	fmt.Fprintf(stderr, "validation ok (%s)\n", summary)
	return 0
}

// queuePayload — вывод в формате сообщения очереди с новым номером заказа.
func queuePayload(gen *orderref.Generator) validate.Encoder {
	return func(req *domain.PurchaseRequest) ([]byte, error) {
		return wire.Encode(&domain.PurchaseMessage{
			PurchaseRequest: *req,
			OrderReference:  gen.New(req.ConcertID),
		})
	}
}
