package booking

import (
	"errors"
	"testing"

	appointmentRepo "barberbook/database/repository/appointment"
	"barberbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBarberRepo struct {
	barbers map[int]*models.Barber
}

func (r *memBarberRepo) GetAll() ([]models.Barber, error) {
	var out []models.Barber
	for _, b := range r.barbers {
		out = append(out, *b)
	}
	return out, nil
}

func (r *memBarberRepo) GetByID(id int) (*models.Barber, error) { return r.barbers[id], nil }
func (r *memBarberRepo) Create(b *models.Barber) error          { r.barbers[b.ID] = b; return nil }
func (r *memBarberRepo) SetCheckedIn(id int, v bool) error {
	r.barbers[id].IsCheckedIn = v
	return nil
}

func (r *memBarberRepo) CountCheckedIn() (int, error) {
	n := 0
	for _, b := range r.barbers {
		if b.IsCheckedIn {
			n++
		}
	}
	return n, nil
}

type memApptRepo struct {
	appts     []models.Appointment
	createErr error
}

func (r *memApptRepo) Create(a *models.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, ex := range r.appts {
		if ex.BarberID == a.BarberID && ex.Date == a.Date && ex.Time == a.Time {
			return appointmentRepo.ErrSlotTaken{}
		}
	}
	r.appts = append(r.appts, *a)
	return nil
}

func (r *memApptRepo) GetAll() ([]models.Appointment, error) { return r.appts, nil }

func (r *memApptRepo) GetByBarber(barberID int) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.appts {
		if a.BarberID == barberID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memApptRepo) GetByBarberAndDate(barberID int, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.appts {
		if a.BarberID == barberID && a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memApptRepo) GetByDate(date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.appts {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memApptRepo) Delete(id string) error {
	for i, a := range r.appts {
		if a.ID == id {
			r.appts = append(r.appts[:i], r.appts[i+1:]...)
			return nil
		}
	}
	return nil
}

func newBookingService() (*DefaultBookingService, *memApptRepo) {
	appts := &memApptRepo{}
	svc := &DefaultBookingService{
		Appointments: appts,
		Barbers: &memBarberRepo{barbers: map[int]*models.Barber{
			1: {ID: 1, Name: "Alex", IsActive: true},
		}},
	}
	return svc, appts
}

func validRequest() models.BookingRequest {
	return models.BookingRequest{
		BarberID:     1,
		Date:         "2024-06-10",
		Time:         "09:00",
		CustomerName: "Sam",
		ServiceType:  "haircut",
	}
}

func TestBook(t *testing.T) {
	svc, appts := newBookingService()

	appt, err := svc.Book(validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, appt.ID)
	assert.Equal(t, "Sam", appt.CustomerName)
	assert.Len(t, appts.appts, 1)
}

func TestBookTrimsCustomerName(t *testing.T) {
	svc, _ := newBookingService()
	req := validRequest()
	req.CustomerName = "  Sam  "

	appt, err := svc.Book(req)
	require.NoError(t, err)
	assert.Equal(t, "Sam", appt.CustomerName)
}

func TestBookValidation(t *testing.T) {
	svc, appts := newBookingService()

	cases := []struct {
		name   string
		mutate func(*models.BookingRequest)
	}{
		{"blank name", func(r *models.BookingRequest) { r.CustomerName = "   " }},
		{"bad date", func(r *models.BookingRequest) { r.Date = "10/06/2024" }},
		{"bad time", func(r *models.BookingRequest) { r.Time = "9am" }},
		{"unknown service", func(r *models.BookingRequest) { r.ServiceType = "massage" }},
		{"unknown barber", func(r *models.BookingRequest) { r.BarberID = 99 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := svc.Book(req)
			var vErr ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
	assert.Empty(t, appts.appts)
}

func TestBookEmptyServiceAllowed(t *testing.T) {
	svc, _ := newBookingService()
	req := validRequest()
	req.ServiceType = ""

	_, err := svc.Book(req)
	assert.NoError(t, err)
}

func TestBookTakenSlotConflicts(t *testing.T) {
	svc, _ := newBookingService()

	_, err := svc.Book(validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.CustomerName = "Pat"
	_, err = svc.Book(req)
	var cErr ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, "Slot already booked", cErr.Reason)
}

func TestBookRepoErrorPassesThrough(t *testing.T) {
	svc, appts := newBookingService()
	appts.createErr = errors.New("mongo down")

	_, err := svc.Book(validRequest())
	require.Error(t, err)
	var cErr ConflictError
	assert.False(t, errors.As(err, &cErr))
}

func TestCancelAppointment(t *testing.T) {
	svc, appts := newBookingService()
	appt, err := svc.Book(validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.CancelAppointment(appt.ID))
	assert.Empty(t, appts.appts)
}

func TestServiceCatalog(t *testing.T) {
	assert.Equal(t, 25.0, ServicePrice("haircut"))
	assert.Equal(t, 10.0, ServicePrice("hairwashing"))
	assert.Equal(t, 15.0, ServicePrice("beard"))
	// Unknown and empty services fall back to the default price.
	assert.Equal(t, 25.0, ServicePrice(""))
	assert.Equal(t, 25.0, ServicePrice("massage"))

	assert.True(t, IsKnownService("haircut"))
	assert.False(t, IsKnownService("massage"))
	assert.Len(t, ServicesCatalog(), 3)
}
