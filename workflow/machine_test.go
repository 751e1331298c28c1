package workflow

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"barberbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	mu        sync.Mutex
	barbers   []models.Barber
	listErr   error
	slotFn    func(barberID int, date string) ([]string, error)
	submitErr error
	// blockSubmit, when set, holds SubmitBooking until the channel is closed.
	blockSubmit chan struct{}
	submitted   []models.BookingRequest
}

func (g *fakeGateway) ListBarbers(ctx context.Context) ([]models.Barber, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.barbers, g.listErr
}

func (g *fakeGateway) ListSlots(ctx context.Context, barberID int, date string) ([]string, error) {
	g.mu.Lock()
	fn := g.slotFn
	g.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(barberID, date)
}

func (g *fakeGateway) SubmitBooking(ctx context.Context, req models.BookingRequest) error {
	g.mu.Lock()
	gate := g.blockSubmit
	g.mu.Unlock()
	if gate != nil {
		<-gate
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.submitted = append(g.submitted, req)
	return g.submitErr
}

func (g *fakeGateway) setSubmitErr(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.submitErr = err
}

func (g *fakeGateway) submittedReqs() []models.BookingRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]models.BookingRequest, len(g.submitted))
	copy(out, g.submitted)
	return out
}

// fixedNow is a Saturday, so the following Monday through Saturday are all
// selectable and the next day is the Sunday closing day.
var fixedNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func newTestMachine(gw *fakeGateway) *Machine {
	m := NewMachine(gw)
	m.now = func() time.Time { return fixedNow }
	return m
}

func defaultGateway() *fakeGateway {
	return &fakeGateway{
		barbers: []models.Barber{
			{ID: 1, Name: "Alex", IsActive: true},
			{ID: 2, Name: "Mike", IsActive: true},
		},
		slotFn: func(barberID int, date string) ([]string, error) {
			return []string{"09:00", "09:30"}, nil
		},
	}
}

func waitSlots(t *testing.T, m *Machine) Snapshot {
	t.Helper()
	require.Eventually(t, func() bool {
		s := m.Snapshot()
		return s.State == StateDateChosen && !s.SlotsLoading
	}, time.Second, 2*time.Millisecond)
	return m.Snapshot()
}

func waitSettled(t *testing.T, m *Machine) Snapshot {
	t.Helper()
	require.Eventually(t, func() bool {
		return m.Snapshot().State != StateSubmitting
	}, time.Second, 2*time.Millisecond)
	return m.Snapshot()
}

func TestOpenLoadsRoster(t *testing.T) {
	gw := defaultGateway()
	m := newTestMachine(gw)

	require.NoError(t, m.Open(context.Background()))
	snap := m.Snapshot()
	assert.Equal(t, StateBrowsing, snap.State)
	require.Len(t, snap.Barbers, 2)
	assert.Equal(t, "Alex", snap.Barbers[0].Name)
}

func TestChooseBarberUnknownRejected(t *testing.T) {
	m := newTestMachine(defaultGateway())
	require.NoError(t, m.Open(context.Background()))

	assert.ErrorIs(t, m.ChooseBarber(99), ErrUnknownBarber)
	assert.Equal(t, StateBrowsing, m.Snapshot().State)
}

func TestChangingBarberResetsDateAndSlot(t *testing.T) {
	m := newTestMachine(defaultGateway())
	require.NoError(t, m.Open(context.Background()))

	require.NoError(t, m.ChooseBarber(1))
	require.NoError(t, m.ChooseDate(NewDate(2024, time.June, 10)))
	waitSlots(t, m)
	require.NoError(t, m.ChooseSlot("09:00"))

	require.NoError(t, m.ChooseBarber(2))
	snap := m.Snapshot()
	assert.Equal(t, StateBarberChosen, snap.State)
	assert.True(t, snap.Draft.Date.IsZero())
	assert.Empty(t, snap.Draft.Slot)
	assert.Empty(t, snap.Slots)
	assert.False(t, snap.SlotsLoading)
}

func TestReselectingSameBarberIsNoOp(t *testing.T) {
	m := newTestMachine(defaultGateway())
	require.NoError(t, m.Open(context.Background()))

	require.NoError(t, m.ChooseBarber(1))
	require.NoError(t, m.ChooseDate(NewDate(2024, time.June, 10)))
	waitSlots(t, m)

	require.NoError(t, m.ChooseBarber(1))
	snap := m.Snapshot()
	assert.Equal(t, StateDateChosen, snap.State)
	assert.Equal(t, NewDate(2024, time.June, 10), snap.Draft.Date)
	assert.Equal(t, []string{"09:00", "09:30"}, snap.Slots)
}

func TestChooseDateRules(t *testing.T) {
	m := newTestMachine(defaultGateway())
	require.NoError(t, m.Open(context.Background()))

	// Without a barber there is no fetch key; the call is ignored.
	require.NoError(t, m.ChooseDate(NewDate(2024, time.June, 10)))
	assert.Equal(t, StateBrowsing, m.Snapshot().State)

	require.NoError(t, m.ChooseBarber(1))
	assert.ErrorIs(t, m.ChooseDate(NewDate(2024, time.January, 1)), ErrDateUnavailable)
	// 2024-06-09 is a Sunday, the shop's closing day.
	assert.ErrorIs(t, m.ChooseDate(NewDate(2024, time.June, 9)), ErrDateUnavailable)
	assert.Equal(t, StateBarberChosen, m.Snapshot().State)
	assert.True(t, m.Snapshot().Draft.Date.IsZero())

	// Today itself is selectable.
	require.NoError(t, m.ChooseDate(DateOf(fixedNow)))
	waitSlots(t, m)
}

func TestStaleSlotFetchDiscarded(t *testing.T) {
	gw := defaultGateway()
	releaseFirst := make(chan struct{})
	gw.slotFn = func(barberID int, date string) ([]string, error) {
		if date == "2024-06-10" {
			<-releaseFirst
			return []string{"09:00"}, nil
		}
		return []string{"10:00", "10:30"}, nil
	}
	m := newTestMachine(gw)
	require.NoError(t, m.Open(context.Background()))
	require.NoError(t, m.ChooseBarber(1))

	require.NoError(t, m.ChooseDate(NewDate(2024, time.June, 10)))
	require.NoError(t, m.ChooseDate(NewDate(2024, time.June, 11)))
	snap := waitSlots(t, m)
	assert.Equal(t, []string{"10:00", "10:30"}, snap.Slots)

	// The first fetch resolves late; its result must not overwrite the
	// current date's slots.
	close(releaseFirst)
	time.Sleep(50 * time.Millisecond)
	snap = m.Snapshot()
	assert.Equal(t, NewDate(2024, time.June, 11), snap.Draft.Date)
	assert.Equal(t, []string{"10:00", "10:30"}, snap.Slots)
	assert.False(t, snap.SlotsLoading)
}

func TestFailedSlotFetchMarksView(t *testing.T) {
	gw := defaultGateway()
	gw.slotFn = func(barberID int, date string) ([]string, error) {
		return nil, errors.New("gateway unavailable")
	}
	m := newTestMachine(gw)
	require.NoError(t, m.Open(context.Background()))
	require.NoError(t, m.ChooseBarber(1))
	require.NoError(t, m.ChooseDate(NewDate(2024, time.June, 10)))
	snap := waitSlots(t, m)

	assert.True(t, snap.SlotsFailed)
	assert.Empty(t, snap.Slots)
	assert.ErrorIs(t, m.ChooseSlot("09:00"), ErrSlotsNotReady)
}

func TestFailedSlotFetchRetriesOnSameDate(t *testing.T) {
	gw := defaultGateway()
	var calls atomic.Int32
	gw.slotFn = func(barberID int, date string) ([]string, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("gateway unavailable")
		}
		return []string{"09:00", "09:30"}, nil
	}
	m := newTestMachine(gw)
	require.NoError(t, m.Open(context.Background()))
	require.NoError(t, m.ChooseBarber(1))

	day := NewDate(2024, time.June, 10)
	require.NoError(t, m.ChooseDate(day))
	snap := waitSlots(t, m)
	require.True(t, snap.SlotsFailed)

	// Re-selecting the failed date is not a no-op: it retries the fetch.
	require.NoError(t, m.ChooseDate(day))
	require.Eventually(t, func() bool {
		s := m.Snapshot()
		return s.State == StateDateChosen && !s.SlotsLoading && !s.SlotsFailed
	}, time.Second, 2*time.Millisecond)

	snap = m.Snapshot()
	assert.Equal(t, []string{"09:00", "09:30"}, snap.Slots)
	assert.Equal(t, day, snap.Draft.Date)
	assert.EqualValues(t, 2, calls.Load())
	require.NoError(t, m.ChooseSlot("09:00"))
}

func TestLeavingFailedClearsFailureReason(t *testing.T) {
	gw := defaultGateway()
	gw.setSubmitErr(&SubmissionError{Reason: "Slot no longer available"})
	m := newTestMachine(gw)
	require.NoError(t, m.Open(context.Background()))
	require.NoError(t, m.ChooseBarber(1))
	require.NoError(t, m.ChooseDate(NewDate(2024, time.June, 10)))
	waitSlots(t, m)
	require.NoError(t, m.ChooseSlot("09:00"))
	m.SetCustomerName("Sam")

	require.NoError(t, m.Submit())
	snap := waitSettled(t, m)
	require.Equal(t, StateFailed, snap.State)
	require.Equal(t, "Slot no longer available", snap.FailureReason)

	// Moving on to another date leaves the failure behind.
	require.NoError(t, m.ChooseDate(NewDate(2024, time.June, 11)))
	snap = m.Snapshot()
	assert.Equal(t, StateDateChosen, snap.State)
	assert.Empty(t, snap.FailureReason)

	// Same for picking a different barber after a failure.
	gw.setSubmitErr(&SubmissionError{Reason: "Slot no longer available"})
	waitSlots(t, m)
	require.NoError(t, m.ChooseSlot("09:00"))
	require.NoError(t, m.Submit())
	snap = waitSettled(t, m)
	require.Equal(t, StateFailed, snap.State)
	require.NoError(t, m.ChooseBarber(2))
	assert.Empty(t, m.Snapshot().FailureReason)
}

func TestChooseSlotValidation(t *testing.T) {
	gw := defaultGateway()
	holdFetch := make(chan struct{})
	gw.slotFn = func(barberID int, date string) ([]string, error) {
		<-holdFetch
		return []string{"09:00"}, nil
	}
	m := newTestMachine(gw)
	require.NoError(t, m.Open(context.Background()))

	assert.ErrorIs(t, m.ChooseSlot("09:00"), ErrSlotsNotReady)

	require.NoError(t, m.ChooseBarber(1))
	require.NoError(t, m.ChooseDate(NewDate(2024, time.June, 10)))
	// Fetch still in flight.
	assert.ErrorIs(t, m.ChooseSlot("09:00"), ErrSlotsNotReady)

	close(holdFetch)
	waitSlots(t, m)
	assert.ErrorIs(t, m.ChooseSlot("23:30"), ErrSlotUnavailable)
	require.NoError(t, m.ChooseSlot("09:00"))
	assert.Equal(t, StateSlotChosen, m.Snapshot().State)
}

func TestEmptySlotSetNotSelectable(t *testing.T) {
	gw := defaultGateway()
	gw.slotFn = func(barberID int, date string) ([]string, error) {
		return []string{}, nil
	}
	m := newTestMachine(gw)
	require.NoError(t, m.Open(context.Background()))
	require.NoError(t, m.ChooseBarber(1))
	require.NoError(t, m.ChooseDate(NewDate(2024, time.June, 10)))
	snap := waitSlots(t, m)

	assert.Empty(t, snap.Slots)
	assert.False(t, snap.SlotsFailed)
	assert.ErrorIs(t, m.ChooseSlot("09:00"), ErrSlotsNotReady)
}

func TestSubmitIncompleteDraftIsLocal(t *testing.T) {
	gw := defaultGateway()
	m := newTestMachine(gw)
	require.NoError(t, m.Open(context.Background()))

	assert.ErrorIs(t, m.Submit(), ErrIncompleteDraft)

	require.NoError(t, m.ChooseBarber(1))
	require.NoError(t, m.ChooseDate(NewDate(2024, time.June, 10)))
	waitSlots(t, m)
	require.NoError(t, m.ChooseSlot("09:00"))

	// A whitespace-only name does not count as a name.
	m.SetCustomerName("   ")
	assert.ErrorIs(t, m.Submit(), ErrIncompleteDraft)
	assert.Empty(t, gw.submittedReqs())
	assert.Equal(t, StateSlotChosen, m.Snapshot().State)
}

func TestSubmitSendsExactRequest(t *testing.T) {
	gw := defaultGateway()
	m := newTestMachine(gw)
	require.NoError(t, m.Open(context.Background()))
	require.NoError(t, m.ChooseBarber(1))
	require.NoError(t, m.ChooseDate(NewDate(2024, time.June, 10)))
	waitSlots(t, m)
	require.NoError(t, m.ChooseSlot("09:00"))
	m.SetCustomerName("  Sam ")
	m.SetService("haircut")

	require.NoError(t, m.Submit())
	snap := waitSettled(t, m)
	assert.Equal(t, StateSucceeded, snap.State)
	assert.Nil(t, snap.Draft.Barber)
	assert.Empty(t, snap.Draft.Slot)

	reqs := gw.submittedReqs()
	require.Len(t, reqs, 1)
	assert.Equal(t, models.BookingRequest{
		BarberID:     1,
		Date:         "2024-06-10",
		Time:         "09:00",
		CustomerName: "Sam",
		ServiceType:  "haircut",
	}, reqs[0])
}

func TestSubmitFailureKeepsDraftForRetry(t *testing.T) {
	gw := defaultGateway()
	gw.setSubmitErr(&SubmissionError{Reason: "Slot no longer available"})
	m := newTestMachine(gw)
	require.NoError(t, m.Open(context.Background()))
	require.NoError(t, m.ChooseBarber(1))
	require.NoError(t, m.ChooseDate(NewDate(2024, time.June, 10)))
	waitSlots(t, m)
	require.NoError(t, m.ChooseSlot("09:30"))
	m.SetCustomerName("Sam")

	require.NoError(t, m.Submit())
	snap := waitSettled(t, m)
	assert.Equal(t, StateFailed, snap.State)
	assert.Equal(t, "Slot no longer available", snap.FailureReason)
	require.NotNil(t, snap.Draft.Barber)
	assert.Equal(t, "09:30", snap.Draft.Slot)
	require.Len(t, gw.submittedReqs(), 1)

	gw.setSubmitErr(nil)
	require.NoError(t, m.Submit())
	snap = waitSettled(t, m)
	assert.Equal(t, StateSucceeded, snap.State)
	assert.Len(t, gw.submittedReqs(), 2)
}

func TestSubmitWhileSubmittingRejected(t *testing.T) {
	gw := defaultGateway()
	gw.blockSubmit = make(chan struct{})
	m := newTestMachine(gw)
	require.NoError(t, m.Open(context.Background()))
	require.NoError(t, m.ChooseBarber(1))
	require.NoError(t, m.ChooseDate(NewDate(2024, time.June, 10)))
	waitSlots(t, m)
	require.NoError(t, m.ChooseSlot("09:00"))
	m.SetCustomerName("Sam")

	require.NoError(t, m.Submit())
	assert.ErrorIs(t, m.Submit(), ErrSubmissionInFlight)
	assert.ErrorIs(t, m.ChooseBarber(2), ErrSubmissionInFlight)
	assert.ErrorIs(t, m.ChooseDate(NewDate(2024, time.June, 11)), ErrSubmissionInFlight)

	close(gw.blockSubmit)
	assert.Equal(t, StateSucceeded, waitSettled(t, m).State)
}

func TestCloseResetsEverything(t *testing.T) {
	m := newTestMachine(defaultGateway())
	require.NoError(t, m.Open(context.Background()))
	require.NoError(t, m.ChooseBarber(1))
	require.NoError(t, m.ChooseDate(NewDate(2024, time.June, 10)))
	waitSlots(t, m)
	require.NoError(t, m.ChooseSlot("09:00"))
	m.SetCustomerName("Sam")

	m.Close()
	snap := m.Snapshot()
	assert.Equal(t, StateClosed, snap.State)
	assert.Empty(t, snap.Barbers)
	assert.Nil(t, snap.Draft.Barber)
	assert.True(t, snap.Draft.Date.IsZero())
	assert.Empty(t, snap.Draft.Slot)
	assert.Empty(t, snap.Draft.CustomerName)
	assert.Empty(t, snap.Slots)

	assert.ErrorIs(t, m.ChooseBarber(1), ErrClosed)
	assert.ErrorIs(t, m.Submit(), ErrClosed)

	// The machine can be reopened for a fresh session.
	require.NoError(t, m.Open(context.Background()))
	assert.Equal(t, StateBrowsing, m.Snapshot().State)
}

func TestSubmitResultAfterCloseIgnored(t *testing.T) {
	gw := defaultGateway()
	gw.blockSubmit = make(chan struct{})
	m := newTestMachine(gw)
	require.NoError(t, m.Open(context.Background()))
	require.NoError(t, m.ChooseBarber(1))
	require.NoError(t, m.ChooseDate(NewDate(2024, time.June, 10)))
	waitSlots(t, m)
	require.NoError(t, m.ChooseSlot("09:00"))
	m.SetCustomerName("Sam")
	require.NoError(t, m.Submit())

	m.Close()
	close(gw.blockSubmit)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, StateClosed, m.Snapshot().State)
}

func TestOnChangeObservesTransitions(t *testing.T) {
	m := newTestMachine(defaultGateway())
	var mu sync.Mutex
	var states []State
	m.OnChange(func(s Snapshot) {
		mu.Lock()
		states = append(states, s.State)
		mu.Unlock()
	})

	require.NoError(t, m.Open(context.Background()))
	require.NoError(t, m.ChooseBarber(1))
	require.NoError(t, m.ChooseDate(NewDate(2024, time.June, 10)))
	waitSlots(t, m)
	m.Close()

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(states), 4)
	assert.Equal(t, StateBrowsing, states[0])
	assert.Equal(t, StateBarberChosen, states[1])
	assert.Equal(t, StateDateChosen, states[2])
	assert.Equal(t, StateClosed, states[len(states)-1])
}
