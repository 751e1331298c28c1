package booking

import "barberbook/models"

// defaultPrice is charged when a booking carries no service type.
const defaultPrice = 25

var servicesCatalog = []models.ServiceType{
	{
		ID:          "haircut",
		Title:       "Haircut",
		Description: "Professional haircut tailored to your style and preferences.",
		Price:       25,
	},
	{
		ID:          "hairwashing",
		Title:       "Hair Washing",
		Description: "Relaxing hair wash with premium shampoo and conditioning.",
		Price:       10,
		Discount:    "50% OFF",
	},
	{
		ID:          "beard",
		Title:       "Beard Trimming",
		Description: "Expert beard shaping and trimming for the perfect look.",
		Price:       15,
	},
}

// ServicesCatalog returns the shop's service catalogue.
func ServicesCatalog() []models.ServiceType {
	out := make([]models.ServiceType, len(servicesCatalog))
	copy(out, servicesCatalog)
	return out
}

// ServicePrice returns the price for a service id, falling back to the
// default price for unknown or absent service types.
func ServicePrice(serviceID string) float64 {
	for _, s := range servicesCatalog {
		if s.ID == serviceID {
			return s.Price
		}
	}
	return defaultPrice
}

// IsKnownService reports whether the id names a catalogue entry.
func IsKnownService(serviceID string) bool {
	for _, s := range servicesCatalog {
		if s.ID == serviceID {
			return true
		}
	}
	return false
}
