package models

import "time"

// Appointment is a confirmed booking of one slot with one barber.
// Date is the calendar day in YYYY-MM-DD form and Time the slot label
// ("14:30"); together with BarberID they are unique.
type Appointment struct {
	ID           string    `bson:"id" json:"id"`
	BarberID     int       `bson:"barber_id" json:"barber_id"`
	CustomerName string    `bson:"customer_name" json:"customer_name"`
	Date         string    `bson:"date" json:"date"`
	Time         string    `bson:"time" json:"time"`
	ServiceType  string    `bson:"service_type,omitempty" json:"service_type,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// BookingRequest is the JSON body accepted by POST /api/book.
type BookingRequest struct {
	BarberID     int    `json:"barber_id" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time" binding:"required"`
	CustomerName string `json:"customer_name" binding:"required"`
	ServiceType  string `json:"service_type,omitempty"`
}
