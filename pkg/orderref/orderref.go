// Пакет orderref — генерация номеров заказа вида TKT-<yyyyMMdd UTC>-<concertId>-<8 hex>.
package orderref

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Pattern — формат номера заказа.
var Pattern = regexp.MustCompile(`^TKT-\d{8}-\d+-[0-9a-f]{8}$`)

// Valid — соответствует ли строка формату номера заказа.
func Valid(ref string) bool { return Pattern.MatchString(ref) }

// Generator — генератор номеров; уникальность обеспечивается случайным суффиксом (UUIDv4).
type Generator struct {
	now    func() time.Time
	suffix func() string
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now, suffix: randomSuffix}
}

// NewGeneratorWithClock — генератор с подменённым временем (тесты, CLI).
func NewGeneratorWithClock(now func() time.Time) *Generator {
	g := NewGenerator()
	if now != nil {
		g.now = now
	}
	return g
}

// New — новый номер заказа для концерта.
func (g *Generator) New(concertID int) string {
	return fmt.Sprintf("TKT-%s-%d-%s", g.now().UTC().Format("20060102"), concertID, g.suffix())
}

// randomSuffix — первые 8 hex-символов случайного UUID.
func randomSuffix() string {
	return uuid.NewString()[:8]
}
