package validate

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Gunvolt24/ticketflow/internal/domain"
	"github.com/Gunvolt24/ticketflow/internal/ports"
)

// Проверка, что PurchaseValidator удовлетворяет интерфейсу PurchaseValidator.
var _ ports.PurchaseValidator = (*PurchaseValidator)(nil)

// check — одна проверка поля; ok=false означает нарушение с сообщением msg.
type check func(p *domain.PurchaseRequest, now time.Time) (msg string, ok bool)

// rule — набор проверок одного поля.
// Если label задан, поле строковое и обязательное: пустое значение даёт "<label> is required",
// и остальные проверки поля не выполняются.
type rule struct {
	field  string
	label  string
	value  func(p *domain.PurchaseRequest) string
	checks []check
}

// crossRule — проверка, применимость которой зависит от других полей и уже найденных нарушений.
type crossRule struct {
	field   string
	applies func(p *domain.PurchaseRequest, report domain.ValidationReport) bool
	check   check
}

// PurchaseValidator — единая точка проверки заявки: таблица правил, один проход без short-circuit.
type PurchaseValidator struct {
	rules      []rule
	crossRules []crossRule
	now        func() time.Time
}

// Option — настройка валидатора.
type Option func(*PurchaseValidator)

// WithClock подменяет источник текущего времени (для проверки срока карты).
func WithClock(now func() time.Time) Option {
	return func(v *PurchaseValidator) {
		if now != nil {
			v.now = now
		}
	}
}

// NewPurchaseValidator — конструктор PurchaseValidator.
func NewPurchaseValidator(opts ...Option) *PurchaseValidator {
	v := &PurchaseValidator{
		rules:      purchaseRules(),
		crossRules: purchaseCrossRules(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate — проверяет все поля и возвращает полный отчёт; пустой отчёт — заявка валидна.
func (v *PurchaseValidator) Validate(_ context.Context, req *domain.PurchaseRequest) domain.ValidationReport {
	if req == nil {
		req = &domain.PurchaseRequest{}
	}
	now := v.now()
	report := domain.ValidationReport{}

	for _, r := range v.rules {
		if r.label != "" {
			s := r.value(req)
			if strings.TrimSpace(s) == "" {
				report.Add(r.field, fmt.Sprintf("%s is required", r.label))
				continue
			}
			// Postgres TEXT не хранит NUL
			if strings.ContainsRune(s, 0) {
				report.Add(r.field, fmt.Sprintf("%s contains invalid characters", r.label))
				continue
			}
		}
		for _, c := range r.checks {
			if msg, ok := c(req, now); !ok {
				report.Add(r.field, msg)
			}
		}
	}

	for _, cr := range v.crossRules {
		if !cr.applies(req, report) {
			continue
		}
		if msg, ok := cr.check(req, now); !ok {
			report.Add(cr.field, msg)
		}
	}

	return report
}

// ------правила------

func purchaseRules() []rule {
	return []rule{
		{
			field:  domain.FieldConcertID,
			checks: []check{
				predicate(func(p *domain.PurchaseRequest) bool { return p.ConcertID > 0 }, MsgConcertID),
				// concert_id в хранилище — int4
				predicate(func(p *domain.PurchaseRequest) bool { return p.ConcertID <= math.MaxInt32 }, MsgConcertIDRange),
			},
		},
		{
			field:  domain.FieldEmail,
			label:  "Email",
			value:  func(p *domain.PurchaseRequest) string { return p.Email },
			checks: []check{predicate(func(p *domain.PurchaseRequest) bool { return IsEmail(p.Email) }, MsgEmail)},
		},
		{
			field: domain.FieldName,
			label: "Name",
			value: func(p *domain.PurchaseRequest) string { return p.Name },
			checks: []check{predicate(func(p *domain.PurchaseRequest) bool {
				n := utf8.RuneCountInString(strings.TrimSpace(p.Name))
				return n >= 2 && n <= 100
			}, MsgName)},
		},
		{
			field:  domain.FieldPhone,
			label:  "Phone",
			value:  func(p *domain.PurchaseRequest) string { return p.Phone },
			checks: []check{predicate(func(p *domain.PurchaseRequest) bool { return IsPhone(p.Phone) }, MsgPhone)},
		},
		{
			field: domain.FieldQuantity,
			checks: []check{predicate(func(p *domain.PurchaseRequest) bool {
				return p.Quantity >= 1 && p.Quantity <= 10
			}, MsgQuantity)},
		},
		{
			field:  domain.FieldCardNumber,
			label:  "Credit card number",
			value:  func(p *domain.PurchaseRequest) string { return p.CardNumber },
			checks: []check{predicate(func(p *domain.PurchaseRequest) bool { return IsCardNumber(p.CardNumber) }, MsgCardNumber)},
		},
		{
			field: domain.FieldExpiration,
			label: "Expiration date",
			value: func(p *domain.PurchaseRequest) string { return p.Expiration },
			// формат и срок свёрнуты в одно нарушение
			checks: []check{func(p *domain.PurchaseRequest, now time.Time) (string, bool) {
				msg := CheckExpiration(p.Expiration, now)
				return msg, msg == ""
			}},
		},
		{
			field:  domain.FieldSecurityCode,
			label:  "Security code",
			value:  func(p *domain.PurchaseRequest) string { return p.SecurityCode },
			checks: []check{predicate(func(p *domain.PurchaseRequest) bool { return IsSecurityCode(p.SecurityCode) }, MsgSecurityCode)},
		},
		{field: domain.FieldAddress, label: "Address", value: func(p *domain.PurchaseRequest) string { return p.Address }},
		{field: domain.FieldCity, label: "City", value: func(p *domain.PurchaseRequest) string { return p.City }},
		{field: domain.FieldProvince, label: "Province", value: func(p *domain.PurchaseRequest) string { return p.Province }},
		{field: domain.FieldPostalCode, label: "Postal code", value: func(p *domain.PurchaseRequest) string { return p.PostalCode }},
		{field: domain.FieldCountry, label: "Country", value: func(p *domain.PurchaseRequest) string { return p.Country }},
	}
}

func purchaseCrossRules() []crossRule {
	return []crossRule{
		{
			// канадский формат индекса — только для Канады и только если индекс прошёл собственные проверки
			field: domain.FieldPostalCode,
			applies: func(p *domain.PurchaseRequest, report domain.ValidationReport) bool {
				return !report.Has(domain.FieldPostalCode) && strings.EqualFold(strings.TrimSpace(p.Country), "Canada")
			},
			check: predicate(func(p *domain.PurchaseRequest) bool { return IsCanadianPostalCode(p.PostalCode) }, MsgCanadianPostalCode),
		},
	}
}

func predicate(ok func(p *domain.PurchaseRequest) bool, msg string) check {
	return func(p *domain.PurchaseRequest, _ time.Time) (string, bool) {
		if ok(p) {
			return "", true
		}
		return msg, false
	}
}
