package model

// DashboardSummary is the admin landing-page headline, aggregated from the
// bookings, schools and support services.
type DashboardSummary struct {
	ActiveBookings   int64 `json:"active_bookings"`
	UpcomingBookings int64 `json:"upcoming_bookings"`
	Schools          int   `json:"schools"`
	CompleteProfiles int   `json:"complete_profiles"`
	OpenTickets      int   `json:"open_tickets"`
}

// TodayBooking is one of today's sessions on the admin dashboard, joined
// with the school directory.
type TodayBooking struct {
	Booking
	SchoolType string `json:"school_type,omitempty"`
}
