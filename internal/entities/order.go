package entities

import (
	"fmt"
	"time"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentConfirmed PaymentStatus = "confirmed"
	PaymentFailed    PaymentStatus = "failed"
)

// PaymentStatuses in display order.
var PaymentStatuses = []PaymentStatus{PaymentPending, PaymentConfirmed, PaymentFailed}

type OrderItem struct {
	Product  string `json:"product" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
	Price    int64  `json:"price" validate:"gte=0"` // unit price, whole naira
}

func (i OrderItem) Subtotal() int64 {
	return int64(i.Quantity) * i.Price
}

type Order struct {
	ID                   string        `json:"id" validate:"required"`
	TenantID             string        `json:"tenant_id" validate:"required"`
	ConversationID       string        `json:"conversation_id,omitempty"`
	CustomerName         string        `json:"customer_name" validate:"required"`
	CustomerPhone        string        `json:"customer_phone" validate:"required"`
	Items                []OrderItem   `json:"items" validate:"required,min=1,dive"`
	TotalAmount          int64         `json:"total_amount"`
	PaymentStatus        PaymentStatus `json:"payment_status" validate:"oneof=pending confirmed failed"`
	PaymentScreenshotURL string        `json:"payment_screenshot_url,omitempty" validate:"omitempty,url"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

// NewOrder builds a pending order whose total is the sum of its line items.
func NewOrder(id, tenantID, customerName, customerPhone string, items []OrderItem, createdAt time.Time) (*Order, error) {
	o := &Order{
		ID:            id,
		TenantID:      tenantID,
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		Items:         append([]OrderItem(nil), items...),
		TotalAmount:   SumItems(items),
		PaymentStatus: PaymentPending,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// SumItems returns the sum of quantity x unit price over items.
func SumItems(items []OrderItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}

// Validate checks field constraints and that the total matches the line items.
func (o Order) Validate() error {
	if err := Validate(o); err != nil {
		return fmt.Errorf("order %s: %w", o.ID, err)
	}
	if o.CreatedAt.IsZero() || o.UpdatedAt.IsZero() {
		return fmt.Errorf("order %s: %w", o.ID, ErrMissingTimestamp)
	}
	if sum := SumItems(o.Items); sum != o.TotalAmount {
		return fmt.Errorf("order %s: total %d, line items sum to %d: %w", o.ID, o.TotalAmount, sum, ErrTotalMismatch)
	}
	return nil
}

// ItemCount is the number of units across all line items.
func (o Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// Clone returns a copy that shares no slices with o.
func (o Order) Clone() Order {
	o.Items = append([]OrderItem(nil), o.Items...)
	return o
}
