package models

// Barber is a member of staff that customers can book with. The numeric ID is
// the public identifier used by the booking API; Mongo's _id stays internal.
type Barber struct {
	ID          int    `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	PhotoURL    string `bson:"photo_url" json:"photo_url,omitempty"`
	IsActive    bool   `bson:"is_active" json:"is_active"`
	IsCheckedIn bool   `bson:"is_checked_in" json:"is_checked_in"`
}
