package usecases

import (
	"strings"

	"botdash/internal/entities"
)

// StatusAll is the selector that disables status filtering.
const StatusAll = "all"

// Query is a list view's search box plus status dropdown.
type Query struct {
	Text   string
	Status string
}

// NewQuery treats an empty status selector as StatusAll.
func NewQuery(text, status string) Query {
	if status == "" {
		status = StatusAll
	}
	return Query{Text: text, Status: status}
}

// Matches reports whether a record with the given searchable fields and status
// passes the query.
func (q Query) Matches(fields []string, status string) bool {
	if q.Status != StatusAll && status != q.Status {
		return false
	}
	if q.Text == "" {
		return true
	}
	needle := strings.ToLower(q.Text)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// FilterRecords keeps the records matching q, preserving order. The input
// slice is left untouched.
func FilterRecords[T any](records []T, q Query, fields func(T) []string, status func(T) string) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if q.Matches(fields(r), status(r)) {
			out = append(out, r)
		}
	}
	return out
}

func conversationFields(c entities.Conversation) []string {
	return []string{c.CustomerName, c.CustomerPhone}
}

func conversationStatus(c entities.Conversation) string { return string(c.Status) }

func orderFields(o entities.Order) []string {
	return []string{o.CustomerName, o.CustomerPhone, o.ID}
}

func orderStatus(o entities.Order) string { return string(o.PaymentStatus) }

func viewingFields(v entities.Viewing) []string {
	return []string{v.GuestName, v.GuestPhone, v.PropertyName, v.ID}
}

func viewingStatus(v entities.Viewing) string { return string(v.Status) }

// FilterConversations searches customer name and phone.
func FilterConversations(cs []entities.Conversation, q Query) []entities.Conversation {
	return FilterRecords(cs, q, conversationFields, conversationStatus)
}

// FilterOrders searches customer name, phone and order id.
func FilterOrders(os []entities.Order, q Query) []entities.Order {
	return FilterRecords(os, q, orderFields, orderStatus)
}

// FilterViewings searches guest name, phone, property name and viewing id.
func FilterViewings(vs []entities.Viewing, q Query) []entities.Viewing {
	return FilterRecords(vs, q, viewingFields, viewingStatus)
}
