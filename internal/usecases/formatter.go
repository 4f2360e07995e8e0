package usecases

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NoDataLabel is shown in place of a metric that has no data.
const NoDataLabel = "—"

var printer = message.NewPrinter(language.English)

// FormatCurrency renders whole naira with thousands separators, e.g. ₦15,000.
func FormatCurrency(amount int64) string {
	if amount < 0 {
		return "-" + printer.Sprintf("₦%d", -amount)
	}
	return printer.Sprintf("₦%d", amount)
}

// FormatCurrencyMetric renders a no-data metric as NoDataLabel.
func FormatCurrencyMetric(m Metric) string {
	if !m.OK {
		return NoDataLabel
	}
	return FormatCurrency(int64(m.Value + 0.5))
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatNumber abbreviates large counts: 1.2K, 3.4M.
func FormatNumber(n float64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", n/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", n/1_000)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// FormatPercentage renders one decimal place, e.g. 33.3%.
func FormatPercentage(m Metric) string {
	if !m.OK {
		return NoDataLabel
	}
	return fmt.Sprintf("%.1f%%", m.Rounded())
}

// FormatTrend renders a signed change, e.g. +12.5% or -3.0%.
func FormatTrend(m Metric) string {
	if !m.OK {
		return NoDataLabel
	}
	v := m.Rounded()
	if v >= 0 {
		return fmt.Sprintf("+%.1f%%", v)
	}
	return fmt.Sprintf("%.1f%%", v)
}

// FormatResponseTime renders seconds as 45s, 3m or 2h.
func FormatResponseTime(m Metric) string {
	if !m.OK {
		return NoDataLabel
	}
	s := int(m.Value)
	switch {
	case s < 60:
		return fmt.Sprintf("%ds", s)
	case s < 3600:
		return fmt.Sprintf("%dm", s/60)
	}
	return fmt.Sprintf("%dh", s/3600)
}

// FormatRelativeTime renders t relative to now, falling back to a date
// after a week.
func FormatRelativeTime(t, now time.Time, loc *time.Location) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
	return FormatDate(t, loc)
}

// FormatDate renders e.g. 15 Jan 2024.
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2 Jan 2006")
}

// FormatDateTime renders e.g. 15 Jan, 09:30 AM.
func FormatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2 Jan, 03:04 PM")
}

// FormatSchedule renders a viewing slot, e.g. Tue, 16 Jan at 2:00 PM.
func FormatSchedule(t time.Time) string {
	return t.Format("Mon, 2 Jan") + " at " + t.Format("3:04 PM")
}

// FormatPhoneNumber groups a +234 number as +234 803 456 7890.
func FormatPhoneNumber(phone string) string {
	digits := strings.ReplaceAll(phone, " ", "")
	if !strings.HasPrefix(digits, "+234") || len(digits) != 14 {
		return phone
	}
	return strings.Join([]string{digits[:4], digits[4:7], digits[7:10], digits[10:]}, " ")
}

// FormatStatus turns a status value into a label: no_show -> No Show.
func FormatStatus(status string) string {
	// a Caser keeps state, so one per call
	return cases.Title(language.English).String(strings.ReplaceAll(status, "_", " "))
}

// StatusTone is the badge colour class of a status.
func StatusTone(status string) string {
	switch strings.ToLower(status) {
	case "active", "scheduled", "confirmed":
		return "success"
	case "viewing_booked", "completed":
		return "info"
	case "pending":
		return "warning"
	case "no_response", "no_show", "cancelled", "failed", "abandoned":
		return "destructive"
	}
	return "secondary"
}

// Truncate shortens text to max runes, appending an ellipsis.
func Truncate(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	return string([]rune(text)[:max]) + "..."
}
