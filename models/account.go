package models

// Account roles.
const (
	RoleOwner  = "owner"
	RoleBarber = "barber"
)

// Account is a login identity. Barber accounts link to a Barber via BarberID;
// the owner account has no linked barber.
type Account struct {
	Username     string `bson:"username" json:"username"`
	PasswordHash string `bson:"password_hash" json:"-"`
	Role         string `bson:"role" json:"role"`
	BarberID     int    `bson:"barber_id,omitempty" json:"barber_id,omitempty"`
}
