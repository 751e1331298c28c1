package models

// BarberStats backs the barber dashboard.
type BarberStats struct {
	Name                 string  `json:"name"`
	IsCheckedIn          bool    `json:"is_checked_in"`
	CustomersServedToday int     `json:"customers_served_today"`
	TotalEarnedToday     float64 `json:"total_earned_today"`
	QueueDurationMinutes int     `json:"queue_duration_minutes"`
}

// ShopStats backs the owner dashboard.
type ShopStats struct {
	TotalBookings int     `json:"total_bookings"`
	Revenue       float64 `json:"revenue"`
	ActiveBarbers int     `json:"active_barbers"`
}
