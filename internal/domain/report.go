package domain

import "sort"

// ValidationReport — нарушения по полям: имя поля -> сообщения в порядке проверки.
// Пустой отчёт означает валидную заявку.
type ValidationReport map[string][]string

// Add добавляет сообщение к полю.
func (r ValidationReport) Add(field, message string) {
	r[field] = append(r[field], message)
}

// Has — есть ли нарушения по полю.
func (r ValidationReport) Has(field string) bool {
	return len(r[field]) > 0
}

func (r ValidationReport) Empty() bool { return len(r) == 0 }

// Fields — отсортированный список полей с нарушениями.
func (r ValidationReport) Fields() []string {
	fields := make([]string, 0, len(r))
	for f := range r {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
