package usecases

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"botdash/internal/entities"
)

func order(id string, total int64, status entities.PaymentStatus, created time.Time) entities.Order {
	return entities.Order{ID: id, TotalAmount: total, PaymentStatus: status, CreatedAt: created}
}

func TestRevenueAndAverageOrderValue(t *testing.T) {
	orders := []entities.Order{
		order("o1", 100, entities.PaymentConfirmed, at(9, 0)),
		order("o2", 50, entities.PaymentConfirmed, at(9, 5)),
		order("o3", 999, entities.PaymentPending, at(9, 10)),
		order("o4", 400, entities.PaymentFailed, at(9, 15)),
	}
	assert.Equal(t, int64(150), ConfirmedRevenue(orders))
	assert.Equal(t, Known(75), AverageOrderValue(orders))
}

func TestAverageOrderValueWithoutConfirmedOrders(t *testing.T) {
	orders := []entities.Order{order("o1", 100, entities.PaymentPending, at(9, 0))}
	aov := AverageOrderValue(orders)
	assert.False(t, aov.OK)
	assert.Equal(t, int64(0), ConfirmedRevenue(orders))
	assert.False(t, AverageOrderValue(nil).OK)
}

func TestConversionRate(t *testing.T) {
	assert.Equal(t, Known(70), ConversionRate(7, 10))
	assert.InDelta(t, 33.3, ConversionRate(1, 3).Rounded(), 1e-9)
	assert.False(t, ConversionRate(0, 0).OK)
	assert.Equal(t, Known(0), ConversionRate(0, 5))
}

func TestTrend(t *testing.T) {
	assert.InDelta(t, 102.3, Trend(53800, 26600).Rounded(), 1e-9)
	assert.InDelta(t, -50.0, Trend(5, 10).Rounded(), 1e-9)
	assert.False(t, Trend(5, 0).OK)
}

func TestRound1(t *testing.T) {
	for in, want := range map[float64]float64{66.666: 66.7, 33.33: 33.3, 0.05: 0.1, -2.25: -2.3, 70: 70} {
		assert.InDelta(t, want, Round1(in), 1e-9, "Round1(%v)", in)
	}
}

func TestMetricJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		AOV  Metric `json:"aov"`
		Rate Metric `json:"rate"`
	}{NoData(), Known(70)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"aov":null,"rate":70}`, string(b))

	var m Metric
	require.NoError(t, json.Unmarshal([]byte("null"), &m))
	assert.False(t, m.OK)
	require.NoError(t, json.Unmarshal([]byte("12.5"), &m))
	assert.Equal(t, Known(12.5), m)
}

func TestResponseMetrics(t *testing.T) {
	secs := func(n int) *int { return &n }
	cs := []entities.Conversation{
		{ID: "a", Status: entities.ConversationViewingBooked, ResponseTimeS: secs(30)},
		{ID: "b", Status: entities.ConversationNoResponse},
		{ID: "c", Status: entities.ConversationClosed, ResponseTimeS: secs(90)},
		{ID: "d", Status: entities.ConversationActive, ResponseTimeS: secs(60)},
	}
	assert.Equal(t, Known(75), ResponseRate(cs))
	assert.Equal(t, Known(60), AverageResponseTime(cs))
	assert.False(t, ResponseRate(nil).OK)
	assert.False(t, AverageResponseTime(cs[1:2]).OK)
}

func TestWindows(t *testing.T) {
	lagos, err := time.LoadLocation("Africa/Lagos")
	require.NoError(t, err)
	now := time.Date(2024, 1, 16, 11, 0, 0, 0, time.UTC) // Tuesday noon in Lagos

	day := DayWindow(now, lagos)
	assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, lagos), day.From)
	assert.True(t, day.Contains(time.Date(2024, 1, 15, 23, 30, 0, 0, time.UTC)), "00:30 Lagos is today")
	assert.False(t, day.Contains(time.Date(2024, 1, 15, 22, 30, 0, 0, time.UTC)))
	assert.False(t, day.Contains(day.To))

	week := WeekWindow(now, lagos)
	assert.Equal(t, time.Monday, week.From.Weekday())
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, lagos), week.From)
	assert.Equal(t, time.Date(2024, 1, 22, 0, 0, 0, 0, lagos), week.To)

	sunday := WeekWindow(time.Date(2024, 1, 21, 12, 0, 0, 0, lagos), lagos)
	assert.Equal(t, week, sunday)

	month := MonthWindow(now, lagos)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, lagos), month.To)

	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, lagos), day.Shift(-1).From)
}

func TestRevenueIn(t *testing.T) {
	w := Window{From: at(0, 0), To: at(12, 0)}
	orders := []entities.Order{
		order("o1", 100, entities.PaymentConfirmed, at(9, 0)),
		order("o2", 50, entities.PaymentConfirmed, at(12, 0)),
		order("o3", 70, entities.PaymentPending, at(10, 0)),
	}
	assert.Equal(t, int64(100), RevenueIn(orders, w))
	assert.Equal(t, 2, CountIn(orders, w, func(o entities.Order) time.Time { return o.CreatedAt }))
}

func TestIsAfterHours(t *testing.T) {
	lagos, err := time.LoadLocation("Africa/Lagos")
	require.NoError(t, err)
	for hour, want := range map[int]bool{21: false, 22: true, 23: true, 0: true, 3: true, 4: false, 12: false} {
		ts := time.Date(2024, 1, 16, hour, 15, 0, 0, lagos)
		assert.Equal(t, want, IsAfterHours(ts, lagos), "hour %d", hour)
	}
}

func TestCountBy(t *testing.T) {
	counts := CountBy(testOrders, func(o entities.Order) entities.PaymentStatus { return o.PaymentStatus })
	assert.Equal(t, map[entities.PaymentStatus]int{
		entities.PaymentConfirmed: 1,
		entities.PaymentPending:   2,
		entities.PaymentFailed:    1,
	}, counts)
}
