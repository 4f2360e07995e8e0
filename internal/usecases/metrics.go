package usecases

import (
	"encoding/json"
	"math"
	"time"

	"botdash/internal/entities"
)

// Metric is a derived figure that may have no data behind it, e.g. an
// average over zero orders. It encodes as null in that case.
type Metric struct {
	Value float64
	OK    bool
}

func NoData() Metric { return Metric{} }

func Known(v float64) Metric { return Metric{Value: v, OK: true} }

// Rounded is the value at one decimal place, for display only.
func (m Metric) Rounded() float64 {
	return Round1(m.Value)
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.OK {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

func (m *Metric) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = NoData()
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*m = Known(v)
	return nil
}

func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Ratio is num/den, or no data when den is zero.
func Ratio(num, den float64) Metric {
	if den == 0 {
		return NoData()
	}
	return Known(num / den)
}

// Percent is num/den*100, or no data when den is zero.
func Percent(num, den float64) Metric {
	r := Ratio(num, den)
	if !r.OK {
		return r
	}
	return Known(r.Value * 100)
}

// ConfirmedRevenue sums the totals of confirmed orders.
func ConfirmedRevenue(orders []entities.Order) int64 {
	var sum int64
	for _, o := range orders {
		if o.PaymentStatus == entities.PaymentConfirmed {
			sum += o.TotalAmount
		}
	}
	return sum
}

// AverageOrderValue is confirmed revenue over the number of confirmed orders.
func AverageOrderValue(orders []entities.Order) Metric {
	var sum int64
	n := 0
	for _, o := range orders {
		if o.PaymentStatus == entities.PaymentConfirmed {
			sum += o.TotalAmount
			n++
		}
	}
	return Ratio(float64(sum), float64(n))
}

// ConversionRate is viewings per inquiry as a percentage.
func ConversionRate(viewings, inquiries int) Metric {
	return Percent(float64(viewings), float64(inquiries))
}

// Trend is the percentage change from previous to current.
func Trend(current, previous float64) Metric {
	if previous == 0 {
		return NoData()
	}
	return Known((current - previous) / previous * 100)
}

// ResponseRate is the share of conversations that got past no_response.
func ResponseRate(cs []entities.Conversation) Metric {
	responded := 0
	for _, c := range cs {
		if c.Status != entities.ConversationNoResponse {
			responded++
		}
	}
	return Percent(float64(responded), float64(len(cs)))
}

// AverageResponseTime averages the recorded first-response times in seconds.
func AverageResponseTime(cs []entities.Conversation) Metric {
	sum, n := 0, 0
	for _, c := range cs {
		if c.ResponseTimeS != nil {
			sum += *c.ResponseTimeS
			n++
		}
	}
	return Ratio(float64(sum), float64(n))
}

// CountBy tallies records per status.
func CountBy[T any, S comparable](records []T, status func(T) S) map[S]int {
	counts := make(map[S]int)
	for _, r := range records {
		counts[status(r)]++
	}
	return counts
}

// Window is a half-open time range [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// DayWindow is the calendar day containing t in loc.
func DayWindow(t time.Time, loc *time.Location) Window {
	lt := t.In(loc)
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	return Window{From: start, To: start.AddDate(0, 0, 1)}
}

// WeekWindow is the Monday-based week containing t in loc.
func WeekWindow(t time.Time, loc *time.Location) Window {
	day := DayWindow(t, loc)
	offset := (int(day.From.Weekday()) + 6) % 7
	start := day.From.AddDate(0, 0, -offset)
	return Window{From: start, To: start.AddDate(0, 0, 7)}
}

// MonthWindow is the calendar month containing t in loc.
func MonthWindow(t time.Time, loc *time.Location) Window {
	lt := t.In(loc)
	start := time.Date(lt.Year(), lt.Month(), 1, 0, 0, 0, 0, loc)
	return Window{From: start, To: start.AddDate(0, 1, 0)}
}

// Shift moves the window by days.
func (w Window) Shift(days int) Window {
	return Window{From: w.From.AddDate(0, 0, days), To: w.To.AddDate(0, 0, days)}
}

// CountIn counts records whose timestamp falls in w.
func CountIn[T any](records []T, w Window, at func(T) time.Time) int {
	n := 0
	for _, r := range records {
		if w.Contains(at(r)) {
			n++
		}
	}
	return n
}

// RevenueIn sums confirmed order totals created in w.
func RevenueIn(orders []entities.Order, w Window) int64 {
	var sum int64
	for _, o := range orders {
		if o.PaymentStatus == entities.PaymentConfirmed && w.Contains(o.CreatedAt) {
			sum += o.TotalAmount
		}
	}
	return sum
}

// IsAfterHours reports whether t falls between 22:00 and 03:59 in loc.
func IsAfterHours(t time.Time, loc *time.Location) bool {
	h := t.In(loc).Hour()
	return h >= 22 || h < 4
}
