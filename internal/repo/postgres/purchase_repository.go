package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gunvolt24/ticketflow/internal/domain"
	"github.com/Gunvolt24/ticketflow/internal/ports"
	"github.com/jackc/pgx/v5/pgconn"
)

// Проверка, что PurchaseRepository удовлетворяет интерфейсу PurchaseRepository.
var _ ports.PurchaseRepository = (*PurchaseRepository)(nil)

// Execer — узкий контракт над пулом: *pgxpool.Pool и pgxmock его реализуют.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PurchaseRepository — запись обработанных покупок в Postgres.
type PurchaseRepository struct {
	db Execer
}

// NewPurchaseRepository — конструктор PurchaseRepository.
func NewPurchaseRepository(db Execer) *PurchaseRepository { return &PurchaseRepository{db: db} }

// Повторная доставка того же номера заказа не создаёт вторую строку.
const insertPurchaseSQL = `
	INSERT INTO ticket_purchases (
		concert_id, email, name, phone, quantity,
		credit_card, expiration, security_code,
		address, city, province, postal_code, country,
		order_reference, process_status
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	ON CONFLICT (order_reference) DO NOTHING`

// Insert — одна вставка; inserted=false, если номер заказа уже сохранён.
func (r *PurchaseRepository) Insert(ctx context.Context, p *domain.PersistedPurchase) (bool, error) {
	if p == nil || p.OrderReference == "" {
		return false, errors.New("purchase is empty or order_reference is required")
	}

	tag, err := r.db.Exec(ctx, insertPurchaseSQL,
		p.ConcertID, p.Email, p.Name, p.Phone, p.Quantity,
		p.CardNumber, p.Expiration, p.SecurityCode,
		p.Address, p.City, p.Province, p.PostalCode, p.Country,
		p.OrderReference, string(p.ProcessStatus),
	)
	if err != nil {
		if isDataException(err) {
			return false, fmt.Errorf("insert ticket purchase: %w: %w", domain.ErrUnstorable, err)
		}
		return false, fmt.Errorf("insert ticket purchase: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// isDataException — SQLSTATE класса 22 (переполнение числа, NUL в тексте и т.п.):
// значения строки недопустимы для схемы, повтор вставки даст ту же ошибку.
func isDataException(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "22")
}
