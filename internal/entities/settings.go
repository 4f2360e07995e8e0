package entities

type NotificationSettings struct {
	NewOrders            bool `json:"new_orders"`
	PaymentConfirmations bool `json:"payment_confirmations"`
	DailyReports         bool `json:"daily_reports"`
	WeeklyReports        bool `json:"weekly_reports"`
}

// Settings is the editable business profile of a tenant.
type Settings struct {
	BusinessName  string               `json:"business_name" validate:"required,max=256"`
	Phone         string               `json:"phone" validate:"required,max=32"`
	Location      string               `json:"location" validate:"max=256"`
	Email         string               `json:"email" validate:"required,email"`
	Notifications NotificationSettings `json:"notifications"`
}
