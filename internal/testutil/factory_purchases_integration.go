//go:build integration

package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math/big"
	"time"

	"github.com/Gunvolt24/ticketflow/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// Мини-генератор валидной заявки; concertId случайный, чтобы тесты не пересекались.
func MakePurchase(opts ...func(*domain.PurchaseRequest)) domain.PurchaseRequest {
	id, _ := rand.Int(rand.Reader, big.NewInt(1_000_000))

	p := domain.PurchaseRequest{
		ConcertID:    int(id.Int64()) + 1,
		Email:        "fan-" + UniqSuffix() + "@example.com",
		Name:         "Jane Doe",
		Phone:        "(555) 555-5555",
		Quantity:     2,
		CardNumber:   "4111 1111 1111 1111",
		Expiration:   time.Now().AddDate(2, 0, 0).Format("01/06"),
		SecurityCode: "123",
		Address:      "1 Main St",
		City:         "Toronto",
		Province:     "ON",
		PostalCode:   "M5V 2T6",
		Country:      "Canada",
	}

	for _, fn := range opts {
		fn(&p)
	}
	return p
}

func WithConcert(id int) func(*domain.PurchaseRequest) {
	return func(p *domain.PurchaseRequest) { p.ConcertID = id }
}

func WithQuantity(n int) func(*domain.PurchaseRequest) {
	return func(p *domain.PurchaseRequest) { p.Quantity = n }
}

// PurchaseStatus — process_status строки по order_reference; found=false, если строки нет.
func PurchaseStatus(ctx context.Context, pool *pgxpool.Pool, ref string) (status string, found bool, err error) {
	err = pool.QueryRow(ctx,
		`SELECT process_status FROM ticket_purchases WHERE order_reference = $1`, ref,
	).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return status, true, nil
}

// CountPurchases — число строк по концерту.
func CountPurchases(ctx context.Context, pool *pgxpool.Pool, concertID int) (int, error) {
	var n int
	err := pool.QueryRow(ctx,
		`SELECT count(*) FROM ticket_purchases WHERE concert_id = $1`, concertID,
	).Scan(&n)
	return n, err
}
