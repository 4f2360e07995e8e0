package usecases

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"botdash/internal/entities"
)

// ChartDays is the span of the daily charts, ending on the reference day.
const ChartDays = 7

type RevenuePoint struct {
	Date    string `json:"date"`
	Label   string `json:"label"`
	Revenue int64  `json:"revenue"`
	Orders  int    `json:"orders"`
}

type InquiryPoint struct {
	Date      string `json:"date"`
	Label     string `json:"label"`
	Inquiries int    `json:"inquiries"`
	Viewings  int    `json:"viewings"`
}

type HourBucket struct {
	Hour      string `json:"hour"`
	Inquiries int    `json:"inquiries"`
}

type Share struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Percentage Metric `json:"percentage"`
}

type ProductStat struct {
	Name    string `json:"name"`
	Sales   int    `json:"sales"`
	Revenue int64  `json:"revenue"`
}

type PropertyStat struct {
	PropertyID     string `json:"property_id"`
	PropertyName   string `json:"property_name"`
	Inquiries      int    `json:"inquiries"`
	Viewings       int    `json:"viewings"`
	ConversionRate Metric `json:"conversion_rate"`
}

// chartDays returns the ChartDays day windows ending on the day of now.
func chartDays(now time.Time, loc *time.Location) []Window {
	today := DayWindow(now, loc)
	days := make([]Window, ChartDays)
	for i := range days {
		days[i] = today.Shift(i - ChartDays + 1)
	}
	return days
}

// RevenueSeries buckets orders by creation day. Revenue counts confirmed
// orders only, Orders counts every order placed that day.
func RevenueSeries(orders []entities.Order, now time.Time, loc *time.Location) []RevenuePoint {
	days := chartDays(now, loc)
	points := make([]RevenuePoint, len(days))
	for i, d := range days {
		points[i] = RevenuePoint{
			Date:    d.From.Format(time.DateOnly),
			Label:   d.From.Format("Mon"),
			Revenue: RevenueIn(orders, d),
			Orders:  CountIn(orders, d, orderCreatedAt),
		}
	}
	return points
}

// InquirySeries buckets conversations by start day and viewings by booking day.
func InquirySeries(cs []entities.Conversation, vs []entities.Viewing, now time.Time, loc *time.Location) []InquiryPoint {
	days := chartDays(now, loc)
	points := make([]InquiryPoint, len(days))
	for i, d := range days {
		points[i] = InquiryPoint{
			Date:      d.From.Format(time.DateOnly),
			Label:     d.From.Format("Mon"),
			Inquiries: CountIn(cs, d, conversationStartedAt),
			Viewings:  CountIn(vs, d, viewingCreatedAt),
		}
	}
	return points
}

// PeakHours counts conversation starts in twelve two-hour buckets of local time.
func PeakHours(cs []entities.Conversation, loc *time.Location) []HourBucket {
	buckets := make([]HourBucket, 12)
	for i := range buckets {
		buckets[i].Hour = time.Date(2000, 1, 1, i*2, 0, 0, 0, time.UTC).Format("3PM")
	}
	for _, c := range cs {
		buckets[c.StartedAt.In(loc).Hour()/2].Inquiries++
	}
	return buckets
}

// AfterHours counts conversations started between 22:00 and 03:59.
func AfterHours(cs []entities.Conversation, loc *time.Location) int {
	n := 0
	for _, c := range cs {
		if IsAfterHours(c.StartedAt, loc) {
			n++
		}
	}
	return n
}

// SourceBreakdown shares viewings by lead source, largest first.
func SourceBreakdown(vs []entities.Viewing) []Share {
	counts := CountBy(vs, func(v entities.Viewing) entities.LeadSource { return v.Source })
	shares := make([]Share, 0, len(counts))
	for src, n := range counts {
		shares = append(shares, Share{
			Name:       string(src),
			Count:      n,
			Percentage: Percent(float64(n), float64(len(vs))),
		})
	}
	sortShares(shares)
	return shares
}

var responseBuckets = []struct {
	name  string
	below int
}{
	{"< 1 min", 60},
	{"1-5 min", 5 * 60},
	{"5-15 min", 15 * 60},
	{"> 15 min", -1},
}

// ResponseTimeDistribution buckets recorded first-response times. Conversations
// without a response time are left out of both counts and percentages.
func ResponseTimeDistribution(cs []entities.Conversation) []Share {
	counts := make([]int, len(responseBuckets))
	total := 0
	for _, c := range cs {
		if c.ResponseTimeS == nil {
			continue
		}
		total++
		for i, b := range responseBuckets {
			if b.below < 0 || *c.ResponseTimeS < b.below {
				counts[i]++
				break
			}
		}
	}
	shares := make([]Share, len(responseBuckets))
	for i, b := range responseBuckets {
		shares[i] = Share{Name: b.name, Count: counts[i], Percentage: Percent(float64(counts[i]), float64(total))}
	}
	return shares
}

// TopProducts ranks products by units sold across confirmed orders.
func TopProducts(orders []entities.Order, limit int) []ProductStat {
	byName := make(map[string]*ProductStat)
	for _, o := range orders {
		if o.PaymentStatus != entities.PaymentConfirmed {
			continue
		}
		for _, it := range o.Items {
			p, ok := byName[it.Product]
			if !ok {
				p = &ProductStat{Name: it.Product}
				byName[it.Product] = p
			}
			p.Sales += it.Quantity
			p.Revenue += it.Subtotal()
		}
	}
	stats := make([]ProductStat, 0, len(byName))
	for _, p := range byName {
		stats = append(stats, *p)
	}
	slices.SortFunc(stats, func(a, b ProductStat) int {
		return cmp.Or(cmp.Compare(b.Sales, a.Sales), cmp.Compare(b.Revenue, a.Revenue), cmp.Compare(a.Name, b.Name))
	})
	return head(stats, limit)
}

// TopProperties ranks properties by inquiries. A conversation counts as an
// inquiry for the property it names; viewings count regardless of status.
func TopProperties(cs []entities.Conversation, vs []entities.Viewing, limit int) []PropertyStat {
	byID := make(map[string]*PropertyStat)
	get := func(id, name string) *PropertyStat {
		p, ok := byID[id]
		if !ok {
			p = &PropertyStat{PropertyID: id, PropertyName: name}
			byID[id] = p
		}
		return p
	}
	for _, c := range cs {
		if c.PropertyID != "" {
			get(c.PropertyID, c.PropertyName).Inquiries++
		}
	}
	for _, v := range vs {
		get(v.PropertyID, v.PropertyName).Viewings++
	}
	stats := make([]PropertyStat, 0, len(byID))
	for _, p := range byID {
		p.ConversionRate = ConversionRate(p.Viewings, p.Inquiries)
		stats = append(stats, *p)
	}
	slices.SortFunc(stats, func(a, b PropertyStat) int {
		return cmp.Or(cmp.Compare(b.Inquiries, a.Inquiries), cmp.Compare(b.Viewings, a.Viewings), cmp.Compare(a.PropertyName, b.PropertyName))
	})
	return head(stats, limit)
}

func sortShares(shares []Share) {
	slices.SortFunc(shares, func(a, b Share) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Name, b.Name))
	})
}

func head[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}

func orderCreatedAt(o entities.Order) time.Time { return o.CreatedAt }
func conversationStartedAt(c entities.Conversation) time.Time { return c.StartedAt }
func viewingCreatedAt(v entities.Viewing) time.Time { return v.CreatedAt }

// describeWindow labels report headers, e.g. "8 Jan to 14 Jan 2024".
func describeWindow(w Window) string {
	last := w.To.Add(-time.Nanosecond)
	return fmt.Sprintf("%s to %s", w.From.Format("2 Jan"), last.Format("2 Jan 2006"))
}
