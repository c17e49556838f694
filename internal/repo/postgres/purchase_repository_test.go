package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Gunvolt24/ticketflow/internal/domain"
	"github.com/Gunvolt24/ticketflow/internal/repo/postgres"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
)

func newMockRepo(t *testing.T) (*postgres.PurchaseRepository, pgxmockv3.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmockv3.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return postgres.NewPurchaseRepository(mock), mock
}

func completedPurchase() *domain.PersistedPurchase {
	return domain.NewCompletedPurchase(domain.PurchaseRequest{
		ConcertID: 42, Email: "fan@example.com", Name: "Jane Doe", Phone: "555-555-5555",
		Quantity: 2, CardNumber: "4111111111111111", Expiration: "12/39", SecurityCode: "123",
		Address: "1 Main St", City: "Toronto", Province: "ON", PostalCode: "M5V 2T6", Country: "Canada",
	}, "TKT-20260315-42-1a2b3c4d")
}

func expectInsert(mock pgxmockv3.PgxPoolIface, p *domain.PersistedPurchase) *pgxmockv3.ExpectedExec {
	return mock.ExpectExec("INSERT INTO ticket_purchases").
		WithArgs(
			p.ConcertID, p.Email, p.Name, p.Phone, p.Quantity,
			p.CardNumber, p.Expiration, p.SecurityCode,
			p.Address, p.City, p.Province, p.PostalCode, p.Country,
			p.OrderReference, "Completed",
		)
}

func TestInsert_NewRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	p := completedPurchase()

	expectInsert(mock, p).WillReturnResult(pgxmockv3.NewResult("INSERT", 1))

	inserted, err := repo.Insert(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inserted {
		t.Fatalf("want inserted=true")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// ON CONFLICT DO NOTHING: ноль затронутых строк — дубликат, не ошибка.
func TestInsert_Duplicate(t *testing.T) {
	repo, mock := newMockRepo(t)
	p := completedPurchase()

	expectInsert(mock, p).WillReturnResult(pgxmockv3.NewResult("INSERT", 0))

	inserted, err := repo.Insert(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted {
		t.Fatalf("want inserted=false for duplicate reference")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsert_ExecError(t *testing.T) {
	repo, mock := newMockRepo(t)
	p := completedPurchase()

	dbErr := errors.New("connection reset")
	expectInsert(mock, p).WillReturnError(dbErr)

	if _, err := repo.Insert(context.Background(), p); !errors.Is(err, dbErr) {
		t.Fatalf("want wrapped db error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsert_EmptyPurchase(t *testing.T) {
	repo, mock := newMockRepo(t)

	if _, err := repo.Insert(context.Background(), nil); err == nil {
		t.Fatalf("nil purchase must fail")
	}
	if _, err := repo.Insert(context.Background(), &domain.PersistedPurchase{}); err == nil {
		t.Fatalf("purchase without reference must fail")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no queries expected: %v", err)
	}
}

// SQLSTATE класса 22 (значение не помещается в колонку) — ErrUnstorable; прочие ошибки — нет.
func TestInsert_DataExceptionIsUnstorable(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		wantU bool
	}{
		{"int4 overflow", &pgconn.PgError{Code: "22003", Message: "integer out of range"}, true},
		{"nul in text", &pgconn.PgError{Code: "22021", Message: "invalid byte sequence for encoding \"UTF8\": 0x00"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01", Message: "deadlock detected"}, false},
		{"network", errors.New("connection reset"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			p := completedPurchase()
			expectInsert(mock, p).WillReturnError(tt.err)

			_, err := repo.Insert(context.Background(), p)
			if !errors.Is(err, tt.err) {
				t.Fatalf("want wrapped %v, got %v", tt.err, err)
			}
			if got := errors.Is(err, domain.ErrUnstorable); got != tt.wantU {
				t.Fatalf("ErrUnstorable=%v, want %v (err=%v)", got, tt.wantU, err)
			}
		})
	}
}
