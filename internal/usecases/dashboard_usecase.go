package usecases

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"botdash/internal/entities"
	"botdash/internal/interfaces"
	"botdash/internal/repository"
)

var (
	// ErrUnsupported is returned when a view does not exist for the tenant
	// kind, e.g. orders of a property tenant.
	ErrUnsupported  = errors.New("not available for this tenant")
	ErrInvalidInput = errors.New("invalid input")
)

const topListSize = 5

type MetricCard struct {
	Key          string `json:"key"`
	Title        string `json:"title"`
	Value        Metric `json:"value"`
	Display      string `json:"display"`
	Trend        Metric `json:"trend"`
	TrendDisplay string `json:"trend_display,omitempty"`
	Caption      string `json:"caption,omitempty"`
}

type TenantView struct {
	Tenant entities.Tenant `json:"tenant"`
	Users  []entities.User `json:"users"`
}

type DashboardView struct {
	Tenant        entities.Tenant         `json:"tenant"`
	GeneratedAt   time.Time               `json:"generated_at"`
	Period        string                  `json:"period"`
	Metrics       []MetricCard            `json:"metrics"`
	Activity      []entities.ActivityItem `json:"activity"`
	RevenueChart  []RevenuePoint          `json:"revenue_chart,omitempty"`
	InquiryChart  []InquiryPoint          `json:"inquiry_chart,omitempty"`
	TopProducts   []ProductStat           `json:"top_products,omitempty"`
	TopProperties []PropertyStat          `json:"top_properties,omitempty"`
}

// ListView is a filtered list plus the per-status counts of the unfiltered set.
type ListView[T any] struct {
	Items    []T            `json:"items"`
	Total    int            `json:"total"`
	Counts   map[string]int `json:"counts"`
	Statuses []string       `json:"statuses"`
}

type ConversationDetail struct {
	Conversation entities.Conversation `json:"conversation"`
	Messages     []entities.Message    `json:"messages"`
}

type AnalyticsView struct {
	Tenant        entities.Tenant `json:"tenant"`
	Metrics       []MetricCard    `json:"metrics"`
	RevenueChart  []RevenuePoint  `json:"revenue_chart,omitempty"`
	InquiryChart  []InquiryPoint  `json:"inquiry_chart,omitempty"`
	PeakHours     []HourBucket    `json:"peak_hours"`
	Sources       []Share         `json:"sources,omitempty"`
	ResponseTimes []Share         `json:"response_times"`
	TopProducts   []ProductStat   `json:"top_products,omitempty"`
	TopProperties []PropertyStat  `json:"top_properties,omitempty"`
}

type DashboardUsecase struct {
	store     interfaces.TenantStore
	clock     func() time.Time
	feedLimit int
}

// NewDashboardUsecase wires the store. clock supplies the reference time for
// "today" and "this week" figures; feedLimit <= 0 uses DefaultFeedLimit.
func NewDashboardUsecase(store interfaces.TenantStore, clock func() time.Time, feedLimit int) *DashboardUsecase {
	if clock == nil {
		clock = time.Now
	}
	if feedLimit <= 0 {
		feedLimit = DefaultFeedLimit
	}
	return &DashboardUsecase{store: store, clock: clock, feedLimit: feedLimit}
}

// Tenants

func (u *DashboardUsecase) Tenants() []entities.Tenant {
	return u.store.Tenants()
}

func (u *DashboardUsecase) Tenant(slug string) (*TenantView, error) {
	t, err := u.store.TenantBySlug(slug)
	if err != nil {
		return nil, err
	}
	users, err := u.store.Users(t.ID)
	if err != nil {
		return nil, err
	}
	return &TenantView{Tenant: t, Users: users}, nil
}

// Dashboard

func (u *DashboardUsecase) Dashboard(slug string) (*DashboardView, error) {
	t, err := u.store.TenantBySlug(slug)
	if err != nil {
		return nil, err
	}
	now := u.clock()
	loc := t.Loc()
	convs, err := u.store.Conversations(t.ID)
	if err != nil {
		return nil, err
	}

	view := &DashboardView{
		Tenant:      t,
		GeneratedAt: now,
		Period:      describeWindow(WeekWindow(now, loc)),
	}
	convFeed := TagActivity(entities.ActivityConversation, convs, func(c entities.Conversation) entities.ActivityItem {
		return conversationActivity(c, t, now)
	})

	switch t.Kind {
	case entities.TenantGrocery:
		orders, err := u.store.Orders(t.ID)
		if err != nil {
			return nil, err
		}
		view.Metrics = groceryCards(convs, orders, now, loc)
		view.RevenueChart = RevenueSeries(orders, now, loc)
		view.TopProducts = TopProducts(orders, topListSize)
		orderFeed := TagActivity(entities.ActivityOrder, orders, func(o entities.Order) entities.ActivityItem {
			return orderActivity(o, t, now)
		})
		view.Activity, err = MergeActivity(u.feedLimit, convFeed, orderFeed)
		if err != nil {
			return nil, err
		}
	case entities.TenantProperty:
		viewings, err := u.store.Viewings(t.ID)
		if err != nil {
			return nil, err
		}
		view.Metrics = propertyCards(convs, viewings, now, loc)
		view.InquiryChart = InquirySeries(convs, viewings, now, loc)
		view.TopProperties = TopProperties(convs, viewings, topListSize)
		viewingFeed := TagActivity(entities.ActivityViewing, viewings, func(v entities.Viewing) entities.ActivityItem {
			return viewingActivity(v, t, now)
		})
		view.Activity, err = MergeActivity(u.feedLimit, convFeed, viewingFeed)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("tenant %s: kind %q: %w", t.Slug, t.Kind, ErrUnsupported)
	}
	return view, nil
}

func groceryCards(convs []entities.Conversation, orders []entities.Order, now time.Time, loc *time.Location) []MetricCard {
	today := DayWindow(now, loc)
	yesterday := today.Shift(-1)
	counts := CountBy(orders, func(o entities.Order) entities.PaymentStatus { return o.PaymentStatus })

	convToday := CountIn(convs, today, conversationStartedAt)
	convYesterday := CountIn(convs, yesterday, conversationStartedAt)
	revToday := RevenueIn(orders, today)
	revYesterday := RevenueIn(orders, yesterday)
	aov := AverageOrderValue(orders)

	return []MetricCard{
		countCard("conversations_today", "Conversations Today", convToday, Trend(float64(convToday), float64(convYesterday)), "vs yesterday"),
		countCard("active_orders", "Active Orders", counts[entities.PaymentPending], NoData(), "awaiting payment"),
		countCard("completed_orders", "Completed Orders", counts[entities.PaymentConfirmed], NoData(), "payment confirmed"),
		currencyCard("revenue_today", "Revenue Today", revToday, Trend(float64(revToday), float64(revYesterday)), "vs yesterday"),
		currencyCard("revenue_week", "Revenue This Week", RevenueIn(orders, WeekWindow(now, loc)), NoData(), ""),
		currencyCard("revenue_month", "Revenue This Month", RevenueIn(orders, MonthWindow(now, loc)), NoData(), ""),
		{
			Key:     "average_order_value",
			Title:   "Average Order Value",
			Value:   aov,
			Display: FormatCurrencyMetric(aov),
			Caption: "confirmed orders",
		},
	}
}

func propertyCards(convs []entities.Conversation, viewings []entities.Viewing, now time.Time, loc *time.Location) []MetricCard {
	today := DayWindow(now, loc)
	yesterday := today.Shift(-1)
	week := WeekWindow(now, loc)

	inqToday := CountIn(convs, today, conversationStartedAt)
	inqYesterday := CountIn(convs, yesterday, conversationStartedAt)
	active := CountBy(convs, func(c entities.Conversation) entities.ConversationStatus { return c.Status })[entities.ConversationActive]
	scheduled := CountBy(viewings, func(v entities.Viewing) entities.ViewingStatus { return v.Status })[entities.ViewingScheduled]
	bookedWeek := CountIn(viewings, week, viewingCreatedAt)
	bookedLastWeek := CountIn(viewings, week.Shift(-7), viewingCreatedAt)
	rt := AverageResponseTime(convs)
	rr := ResponseRate(convs)
	conv := ConversionRate(len(viewings), len(convs))

	return []MetricCard{
		countCard("inquiries_today", "Inquiries Today", inqToday, Trend(float64(inqToday), float64(inqYesterday)), "vs yesterday"),
		countCard("active_conversations", "Active Conversations", active, NoData(), ""),
		countCard("viewings_scheduled", "Viewings Scheduled", scheduled, Trend(float64(bookedWeek), float64(bookedLastWeek)), "bookings vs last week"),
		{Key: "avg_response_time", Title: "Avg Response Time", Value: rt, Display: FormatResponseTime(rt), Caption: "first bot reply"},
		{Key: "response_rate", Title: "Response Rate", Value: rr, Display: FormatPercentage(rr)},
		{Key: "conversion_rate", Title: "Conversion Rate", Value: conv, Display: FormatPercentage(conv), Caption: "inquiry to viewing"},
		countCard("after_hours", "After-Hours Inquiries", AfterHours(convs, loc), NoData(), "10PM to 4AM, bot handled"),
	}
}

func countCard(key, title string, n int, trend Metric, caption string) MetricCard {
	return withTrend(MetricCard{
		Key:     key,
		Title:   title,
		Value:   Known(float64(n)),
		Display: FormatCount(n),
		Caption: caption,
	}, trend)
}

func currencyCard(key, title string, amount int64, trend Metric, caption string) MetricCard {
	return withTrend(MetricCard{
		Key:     key,
		Title:   title,
		Value:   Known(float64(amount)),
		Display: FormatCurrency(amount),
		Caption: caption,
	}, trend)
}

func withTrend(c MetricCard, trend Metric) MetricCard {
	c.Trend = trend
	if trend.OK {
		c.TrendDisplay = FormatTrend(trend)
	}
	return c
}

func conversationActivity(c entities.Conversation, t entities.Tenant, now time.Time) entities.ActivityItem {
	sub := FormatPhoneNumber(c.CustomerPhone)
	if c.PropertyName != "" {
		sub = "Inquiry about " + c.PropertyName
	} else if c.MessageCount != nil {
		sub = strconv.Itoa(*c.MessageCount) + " messages"
	}
	return entities.ActivityItem{
		ID:        c.ID,
		Title:     c.CustomerName,
		Subtitle:  sub,
		Status:    string(c.Status),
		Tone:      StatusTone(string(c.Status)),
		Extra:     FormatRelativeTime(c.LastMessageAt, now, t.Loc()),
		Timestamp: c.LastMessageAt,
	}
}

func orderActivity(o entities.Order, t entities.Tenant, now time.Time) entities.ActivityItem {
	return entities.ActivityItem{
		ID:        o.ID,
		Title:     o.CustomerName,
		Subtitle:  fmt.Sprintf("Order %s, %s", o.ID, FormatCurrency(o.TotalAmount)),
		Status:    string(o.PaymentStatus),
		Tone:      StatusTone(string(o.PaymentStatus)),
		Extra:     FormatRelativeTime(o.CreatedAt, now, t.Loc()),
		Timestamp: o.CreatedAt,
	}
}

func viewingActivity(v entities.Viewing, t entities.Tenant, now time.Time) entities.ActivityItem {
	sub := "Viewing: " + v.PropertyName
	if at, err := v.ScheduledAt(t.Loc()); err == nil {
		sub += ", " + FormatSchedule(at)
	}
	return entities.ActivityItem{
		ID:        v.ID,
		Title:     v.GuestName,
		Subtitle:  sub,
		Status:    string(v.Status),
		Tone:      StatusTone(string(v.Status)),
		Extra:     FormatRelativeTime(v.CreatedAt, now, t.Loc()),
		Timestamp: v.CreatedAt,
	}
}

// Conversations

func (u *DashboardUsecase) Conversations(slug string, q Query) (*ListView[entities.Conversation], error) {
	t, err := u.store.TenantBySlug(slug)
	if err != nil {
		return nil, err
	}
	convs, err := u.store.Conversations(t.ID)
	if err != nil {
		return nil, err
	}
	return newListView(convs, FilterConversations(convs, q), conversationStatus, entities.ConversationStatuses(t.Kind)), nil
}

func (u *DashboardUsecase) Conversation(slug, id string) (*ConversationDetail, error) {
	t, err := u.store.TenantBySlug(slug)
	if err != nil {
		return nil, err
	}
	c, err := u.store.Conversation(t.ID, id)
	if err != nil {
		return nil, err
	}
	msgs, err := u.store.Messages(t.ID, id)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(msgs, func(a, b entities.Message) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return &ConversationDetail{Conversation: c, Messages: msgs}, nil
}

// Orders

func (u *DashboardUsecase) orderTenant(slug string) (entities.Tenant, error) {
	t, err := u.store.TenantBySlug(slug)
	if err != nil {
		return t, err
	}
	if !t.HasOrders() {
		return t, fmt.Errorf("orders of tenant %s: %w", slug, ErrUnsupported)
	}
	return t, nil
}

func (u *DashboardUsecase) Orders(slug string, q Query) (*ListView[entities.Order], error) {
	t, err := u.orderTenant(slug)
	if err != nil {
		return nil, err
	}
	orders, err := u.store.Orders(t.ID)
	if err != nil {
		return nil, err
	}
	return newListView(orders, FilterOrders(orders, q), orderStatus, entities.PaymentStatuses), nil
}

// UpdateOrderStatus applies a payment status change through OrderGate.
// A rejected change returns a *TransitionError and leaves the order as it was.
func (u *DashboardUsecase) UpdateOrderStatus(slug, id string, to entities.PaymentStatus) (entities.Order, error) {
	t, err := u.orderTenant(slug)
	if err != nil {
		return entities.Order{}, err
	}
	now := u.clock()
	return u.store.UpdateOrder(t.ID, id, func(o *entities.Order) error {
		return TransitionOrder(o, to, now)
	})
}

// Viewings

func (u *DashboardUsecase) viewingTenant(slug string) (entities.Tenant, error) {
	t, err := u.store.TenantBySlug(slug)
	if err != nil {
		return t, err
	}
	if !t.HasViewings() {
		return t, fmt.Errorf("viewings of tenant %s: %w", slug, ErrUnsupported)
	}
	return t, nil
}

func (u *DashboardUsecase) Viewings(slug string, q Query) (*ListView[entities.Viewing], error) {
	t, err := u.viewingTenant(slug)
	if err != nil {
		return nil, err
	}
	viewings, err := u.store.Viewings(t.ID)
	if err != nil {
		return nil, err
	}
	return newListView(viewings, FilterViewings(viewings, q), viewingStatus, entities.ViewingStatuses), nil
}

// UpdateViewingStatus applies a viewing status change through ViewingGate.
func (u *DashboardUsecase) UpdateViewingStatus(slug, id string, to entities.ViewingStatus) (entities.Viewing, error) {
	t, err := u.viewingTenant(slug)
	if err != nil {
		return entities.Viewing{}, err
	}
	now := u.clock()
	return u.store.UpdateViewing(t.ID, id, func(v *entities.Viewing) error {
		return TransitionViewing(v, to, now)
	})
}

// ExportOrders writes the orders matching q as CSV.
func (u *DashboardUsecase) ExportOrders(slug string, q Query, w io.Writer) error {
	list, err := u.Orders(slug, q)
	if err != nil {
		return err
	}
	return repository.WriteOrdersCSV(w, list.Items)
}

// ExportViewings writes the viewings matching q as CSV.
func (u *DashboardUsecase) ExportViewings(slug string, q Query, w io.Writer) error {
	list, err := u.Viewings(slug, q)
	if err != nil {
		return err
	}
	return repository.WriteViewingsCSV(w, list.Items)
}

func newListView[T any, S ~string](all, filtered []T, status func(T) string, statuses []S) *ListView[T] {
	counts := CountBy(all, status)
	counts[StatusAll] = len(all)
	opts := make([]string, 0, len(statuses)+1)
	opts = append(opts, StatusAll)
	for _, s := range statuses {
		opts = append(opts, string(s))
	}
	return &ListView[T]{Items: filtered, Total: len(all), Counts: counts, Statuses: opts}
}

// Analytics

func (u *DashboardUsecase) Analytics(slug string) (*AnalyticsView, error) {
	t, err := u.store.TenantBySlug(slug)
	if err != nil {
		return nil, err
	}
	now := u.clock()
	loc := t.Loc()
	convs, err := u.store.Conversations(t.ID)
	if err != nil {
		return nil, err
	}
	view := &AnalyticsView{
		Tenant:        t,
		PeakHours:     PeakHours(convs, loc),
		ResponseTimes: ResponseTimeDistribution(convs),
	}
	week := WeekWindow(now, loc)
	switch t.Kind {
	case entities.TenantGrocery:
		orders, err := u.store.Orders(t.ID)
		if err != nil {
			return nil, err
		}
		view.RevenueChart = RevenueSeries(orders, now, loc)
		view.TopProducts = TopProducts(orders, topListSize)
		aov := AverageOrderValue(orders)
		view.Metrics = []MetricCard{
			currencyCard("revenue_total", "Total Revenue", ConfirmedRevenue(orders), NoData(), "confirmed orders"),
			countCard("orders_week", "Orders This Week", CountIn(orders, week, orderCreatedAt), NoData(), describeWindow(week)),
			{Key: "average_order_value", Title: "Average Order Value", Value: aov, Display: FormatCurrencyMetric(aov)},
		}
	case entities.TenantProperty:
		viewings, err := u.store.Viewings(t.ID)
		if err != nil {
			return nil, err
		}
		view.InquiryChart = InquirySeries(convs, viewings, now, loc)
		view.Sources = SourceBreakdown(viewings)
		view.TopProperties = TopProperties(convs, viewings, topListSize)
		conv := ConversionRate(len(viewings), len(convs))
		view.Metrics = []MetricCard{
			countCard("inquiries_week", "Total Inquiries", CountIn(convs, week, conversationStartedAt), NoData(), describeWindow(week)),
			countCard("viewings_booked", "Viewings Booked", len(viewings), NoData(), "all time"),
			{Key: "conversion_rate", Title: "Conversion Rate", Value: conv, Display: FormatPercentage(conv), Caption: "inquiry to viewing"},
			countCard("after_hours", "After-Hours Inquiries", AfterHours(convs, loc), NoData(), "10PM to 4AM, bot handled"),
		}
	default:
		return nil, fmt.Errorf("tenant %s: kind %q: %w", t.Slug, t.Kind, ErrUnsupported)
	}
	return view, nil
}

// Settings

func (u *DashboardUsecase) Settings(slug string) (entities.Settings, error) {
	t, err := u.store.TenantBySlug(slug)
	if err != nil {
		return entities.Settings{}, err
	}
	return u.store.Settings(t.ID)
}

func (u *DashboardUsecase) UpdateSettings(slug string, s entities.Settings) (entities.Settings, error) {
	t, err := u.store.TenantBySlug(slug)
	if err != nil {
		return entities.Settings{}, err
	}
	if err := entities.Validate(s); err != nil {
		return entities.Settings{}, fmt.Errorf("settings: %w: %w", ErrInvalidInput, err)
	}
	if err := u.store.SaveSettings(t.ID, s); err != nil {
		return entities.Settings{}, err
	}
	return s, nil
}

// ChatLink is the wa.me click-to-chat URL of the tenant's business number.
func (u *DashboardUsecase) ChatLink(slug string) (string, error) {
	s, err := u.Settings(slug)
	if err != nil {
		return "", err
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s.Phone)
	if digits == "" {
		return "", fmt.Errorf("settings: phone %q: %w", s.Phone, ErrInvalidInput)
	}
	return "https://wa.me/" + digits, nil
}
