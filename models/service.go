package models

// ServiceType describes one entry of the shop's service catalogue.
type ServiceType struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Discount    string  `json:"discount,omitempty"`
}
