package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Сообщения валидаторов полей.
const (
	MsgConcertID          = "Concert ID must be a positive number"
	MsgConcertIDRange     = "Concert ID is out of range"
	MsgEmail              = "Please enter a valid email address"
	MsgName               = "Name must be between 2 and 100 characters"
	MsgPhone              = "Please enter a valid phone number format like (555) 555-5555 or 555-555-5555"
	MsgQuantity           = "Quantity must be between 1 and 10 tickets"
	MsgCardNumber         = "Please enter a valid credit card number"
	MsgExpirationFormat   = "Expiration date must be in MM/YY format."
	MsgExpirationExpired  = "The credit card has expired."
	MsgSecurityCode       = "Security code must be 3 or 4 digits."
	MsgCanadianPostalCode = "Invalid Canadian postal code format. Must be in format A1A 1A1."
)

var (
	rePhone        = regexp.MustCompile(`^\(?([0-9]{3})\)?[-. ]?([0-9]{3})[-. ]?([0-9]{4})$`)
	rePostalCA     = regexp.MustCompile(`^[A-Za-z]\d[A-Za-z][ -]?\d[A-Za-z]\d$`)
	reExpiration   = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	reSecurityCode = regexp.MustCompile(`^[0-9]{3,4}$`)

	// validator потокобезопасен; кэширует разобранные теги.
	emailValidator = validator.New()
)

// IsPhone — североамериканский номер: (555) 555-5555, 555-555-5555, 5555555555 и т.п.
func IsPhone(value string) bool {
	return rePhone.MatchString(strings.TrimSpace(value))
}

// IsCanadianPostalCode — A1A 1A1, A1A1A1, A1A-1A1 (регистр не важен).
func IsCanadianPostalCode(value string) bool {
	return rePostalCA.MatchString(strings.TrimSpace(value))
}

func IsSecurityCode(value string) bool {
	return reSecurityCode.MatchString(strings.TrimSpace(value))
}

func IsEmail(value string) bool {
	return emailValidator.Var(strings.TrimSpace(value), "required,email") == nil
}

// IsCardNumber — контрольная сумма Луна; пробелы и дефисы игнорируются, бренд не проверяется.
func IsCardNumber(value string) bool {
	digits := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(value))
	if len(digits) < 12 || len(digits) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// CheckExpiration проверяет формат MM/YY и что карта не истекла на дату now.
// Карта действительна до последнего дня месяца включительно (год = 2000+YY).
// Возвращает пустую строку, если значение корректно, иначе сообщение.
func CheckExpiration(value string, now time.Time) string {
	m := reExpiration.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return MsgExpirationFormat
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])

	// нулевой день следующего месяца = последний день текущего
	lastDay := time.Date(2000+year, time.Month(month)+1, 0, 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if lastDay.Before(today) {
		return MsgExpirationExpired
	}
	return ""
}
