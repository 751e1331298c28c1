package models

// Shift is a barber's working window on one weekday. Weekday follows the
// shop convention 0=Monday .. 6=Sunday. Hours are whole clock hours; slots
// are generated from StartHour (inclusive) to EndHour (exclusive).
type Shift struct {
	BarberID  int `bson:"barber_id" json:"barber_id" binding:"required"`
	Weekday   int `bson:"weekday" json:"weekday"`
	StartHour int `bson:"start_hour" json:"start_hour"`
	EndHour   int `bson:"end_hour" json:"end_hour"`
}
