package entities

import (
	"fmt"
	"time"
)

type ViewingStatus string

const (
	ViewingScheduled ViewingStatus = "scheduled"
	ViewingCompleted ViewingStatus = "completed"
	ViewingCancelled ViewingStatus = "cancelled"
	ViewingNoShow    ViewingStatus = "no_show"
)

// ViewingStatuses in display order.
var ViewingStatuses = []ViewingStatus{ViewingScheduled, ViewingCompleted, ViewingCancelled, ViewingNoShow}

type LeadSource string

const (
	SourceWhatsApp  LeadSource = "whatsapp"
	SourceInstagram LeadSource = "instagram"
	SourceGoogle    LeadSource = "google"
	SourceReferral  LeadSource = "referral"
	SourceDirect    LeadSource = "direct"
	SourceWebsite   LeadSource = "website"
)

// Viewing is a scheduled property inspection.
type Viewing struct {
	ID           string        `json:"id" validate:"required"`
	TenantID     string        `json:"tenant_id" validate:"required"`
	GuestName    string        `json:"guest_name" validate:"required"`
	GuestPhone   string        `json:"guest_phone" validate:"required"`
	PropertyID   string        `json:"property_id" validate:"required"`
	PropertyName string        `json:"property_name" validate:"required"`
	ViewingDate  string        `json:"viewing_date" validate:"datetime=2006-01-02"`
	ViewingTime  string        `json:"viewing_time" validate:"datetime=15:04"`
	Status       ViewingStatus `json:"status" validate:"oneof=scheduled completed cancelled no_show"`
	Source       LeadSource    `json:"source" validate:"oneof=whatsapp instagram google referral direct website"`
	Notes        string        `json:"notes,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (v Viewing) Validate() error {
	if err := Validate(v); err != nil {
		return fmt.Errorf("viewing %s: %w", v.ID, err)
	}
	if v.CreatedAt.IsZero() {
		return fmt.Errorf("viewing %s: %w", v.ID, ErrMissingTimestamp)
	}
	return nil
}

// ScheduledAt combines the viewing date and time in loc.
func (v Viewing) ScheduledAt(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", v.ViewingDate+" "+v.ViewingTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("viewing %s: parse schedule: %w", v.ID, err)
	}
	return t, nil
}
