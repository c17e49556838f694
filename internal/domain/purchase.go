package domain

import "strings"

// Имена полей заявки (ключи JSON и отчёта валидации).
const (
	FieldConcertID    = "concertId"
	FieldEmail        = "email"
	FieldName         = "name"
	FieldPhone        = "phone"
	FieldQuantity     = "quantity"
	FieldCardNumber   = "cardNumber"
	FieldExpiration   = "expiration"
	FieldSecurityCode = "securityCode"
	FieldAddress      = "address"
	FieldCity         = "city"
	FieldProvince     = "province"
	FieldPostalCode   = "postalCode"
	FieldCountry      = "country"
)

// EstimatedProcessingTime — подсказка клиенту о времени асинхронной обработки.
const EstimatedProcessingTime = "5 minutes"

// PurchaseRequest — заявка на покупку билетов (недоверенные данные клиента).
type PurchaseRequest struct {
	ConcertID    int    `json:"concertId"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Quantity     int    `json:"quantity"`
	CardNumber   string `json:"cardNumber"`
	Expiration   string `json:"expiration"`
	SecurityCode string `json:"securityCode"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Province     string `json:"province"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
}

// MissingFields возвращает незаполненные поля в порядке объявления.
// Числовое поле считается отсутствующим при нулевом значении, строковое — при пустом после trim.
func (p *PurchaseRequest) MissingFields() []string {
	if p == nil {
		p = &PurchaseRequest{}
	}

	fields := []struct {
		name    string
		present bool
	}{
		{FieldConcertID, p.ConcertID != 0},
		{FieldEmail, notBlank(p.Email)},
		{FieldName, notBlank(p.Name)},
		{FieldPhone, notBlank(p.Phone)},
		{FieldQuantity, p.Quantity != 0},
		{FieldCardNumber, notBlank(p.CardNumber)},
		{FieldExpiration, notBlank(p.Expiration)},
		{FieldSecurityCode, notBlank(p.SecurityCode)},
		{FieldAddress, notBlank(p.Address)},
		{FieldCity, notBlank(p.City)},
		{FieldProvince, notBlank(p.Province)},
		{FieldPostalCode, notBlank(p.PostalCode)},
		{FieldCountry, notBlank(p.Country)},
	}

	var missing []string
	for _, f := range fields {
		if !f.present {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func notBlank(s string) bool { return strings.TrimSpace(s) != "" }

// PurchaseMessage — полезная нагрузка сообщения в очереди.
// OrderReference генерируется при приёме заявки и переносится до записи в БД.
type PurchaseMessage struct {
	PurchaseRequest
	OrderReference string `json:"orderReference,omitempty"`
}

// ProcessStatus — статус обработки сохранённой покупки.
type ProcessStatus string

const ProcessStatusCompleted ProcessStatus = "Completed"

// PersistedPurchase — строка таблицы покупок.
type PersistedPurchase struct {
	PurchaseRequest
	OrderReference string
	ProcessStatus  ProcessStatus
}

// NewCompletedPurchase — запись об успешно обработанном сообщении.
func NewCompletedPurchase(req PurchaseRequest, orderReference string) *PersistedPurchase {
	return &PersistedPurchase{
		PurchaseRequest: req,
		OrderReference:  orderReference,
		ProcessStatus:   ProcessStatusCompleted,
	}
}

// Receipt — результат принятой заявки.
type Receipt struct {
	OrderReference          string
	TicketCount             int
	EstimatedProcessingTime string
}
