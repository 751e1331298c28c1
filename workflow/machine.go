package workflow

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"barberbook/models"
)

// State names the steps of the booking workflow.
type State int

const (
	StateClosed State = iota
	StateBrowsing
	StateBarberChosen
	StateDateChosen
	StateSlotChosen
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateBrowsing:
		return "browsing"
	case StateBarberChosen:
		return "barber_chosen"
	case StateDateChosen:
		return "date_chosen"
	case StateSlotChosen:
		return "slot_chosen"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Draft is the in-progress booking selection. Zero/empty fields mean "not yet
// chosen".
type Draft struct {
	Barber       *models.Barber
	Date         Date
	Slot         string
	CustomerName string
	ServiceID    string
}

// Snapshot is a read-only view of the workflow for the presentation layer.
type Snapshot struct {
	State         State
	Barbers       []models.Barber
	Draft         Draft
	Slots         []string
	SlotsLoading  bool
	SlotsFailed   bool
	FailureReason string
}

// genericFailureReason is shown when the gateway rejects a booking without a
// usable reason.
const genericFailureReason = "Booking failed"

// Machine drives one booking workflow session: barber, then date, then slot,
// then submit. Slot availability is fetched whenever the (barber, date) key
// changes; a fetch result that arrives after the key has moved on is
// discarded, so the visible slot set always belongs to the current key.
//
// All user-facing methods are safe for concurrent use, but the machine models
// a single interactive session: one live slot fetch and at most one
// outstanding submission.
type Machine struct {
	gw Gateway

	// now is the clock used for the past-date rule; overridden in tests.
	now func() time.Time
	// closedWeekday is the shop's fixed closing day.
	closedWeekday time.Weekday
	// onChange, when set, observes every state change.
	onChange func(Snapshot)

	mu            sync.Mutex
	state         State
	barbers       []models.Barber
	draft         Draft
	slots         []string
	slotsLoading  bool
	slotsFailed   bool
	failureReason string

	// fetchGen tags the live slot fetch; stale resolutions are dropped.
	fetchGen uint64
	// session counts Open/Close cycles so a submission resolving after Close
	// cannot touch the next session.
	session uint64

	ctx    context.Context
	cancel context.CancelFunc
}

// NewMachine builds a workflow machine over the given gateway. The shop's
// closing day defaults to Sunday.
func NewMachine(gw Gateway) *Machine {
	return &Machine{
		gw:            gw,
		now:           time.Now,
		closedWeekday: time.Sunday,
		state:         StateClosed,
	}
}

// OnChange registers an observer invoked after every visible state change.
// Must be set before Open.
func (m *Machine) OnChange(fn func(Snapshot)) {
	m.onChange = fn
}

// Snapshot returns a copy of the current workflow view.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Machine) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:         m.state,
		Draft:         m.draft,
		SlotsLoading:  m.slotsLoading,
		SlotsFailed:   m.slotsFailed,
		FailureReason: m.failureReason,
	}
	snap.Barbers = append(snap.Barbers, m.barbers...)
	snap.Slots = append(snap.Slots, m.slots...)
	return snap
}

func (m *Machine) notify(snap Snapshot) {
	if m.onChange != nil {
		m.onChange(snap)
	}
}

// Open starts a new workflow session and loads the roster. The context bounds
// the whole session; Close cancels it.
func (m *Machine) Open(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateClosed {
		m.mu.Unlock()
		return nil
	}
	m.session++
	m.ctx, m.cancel = context.WithCancel(ctx)
	sessionCtx := m.ctx
	m.mu.Unlock()

	barbers, err := m.gw.ListBarbers(sessionCtx)
	if err != nil {
		m.mu.Lock()
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.barbers = barbers
	m.state = StateBrowsing
	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(snap)
	return nil
}

// Close abandons the session and clears the draft entirely. In-flight fetch
// or submission results are ignored once closed.
func (m *Machine) Close() {
	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		return
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.state = StateClosed
	m.barbers = nil
	m.draft = Draft{}
	m.slots = nil
	m.slotsLoading = false
	m.slotsFailed = false
	m.failureReason = ""
	m.fetchGen++
	m.session++
	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(snap)
}

// ChooseBarber selects a barber from the roster. Changing barber always
// resets the chosen date and slot; re-selecting the current barber is a
// no-op.
func (m *Machine) ChooseBarber(barberID int) error {
	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.state == StateSubmitting {
		m.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if m.draft.Barber != nil && m.draft.Barber.ID == barberID {
		m.mu.Unlock()
		return nil
	}

	var chosen *models.Barber
	for i := range m.barbers {
		if m.barbers[i].ID == barberID {
			chosen = &m.barbers[i]
			break
		}
	}
	if chosen == nil {
		m.mu.Unlock()
		return ErrUnknownBarber
	}

	m.draft.Barber = chosen
	m.draft.Date = Date{}
	m.draft.Slot = ""
	m.clearSlotViewLocked()
	m.state = StateBarberChosen
	m.failureReason = ""
	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(snap)
	return nil
}

// ChooseDate selects a calendar day and starts the slot fetch for the new
// (barber, date) key. Without a barber chosen first the call is ignored.
// Past dates and the shop's closing day are rejected. Re-selecting the
// current date is a no-op, except after a failed fetch, where it retries.
func (m *Machine) ChooseDate(d Date) error {
	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.state == StateSubmitting {
		m.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if m.draft.Barber == nil {
		// No valid fetch key without a barber; ignore rather than fetch.
		m.mu.Unlock()
		return nil
	}
	if d.Before(DateOf(m.now())) || d.Weekday() == m.closedWeekday {
		m.mu.Unlock()
		return ErrDateUnavailable
	}
	if !m.draft.Date.IsZero() && m.draft.Date == d && !m.slotsFailed {
		m.mu.Unlock()
		return nil
	}

	m.draft.Date = d
	m.draft.Slot = ""
	m.state = StateDateChosen
	m.failureReason = ""
	m.startFetchLocked()
	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(snap)
	return nil
}

// clearSlotViewLocked empties the slot view and invalidates any in-flight
// fetch.
func (m *Machine) clearSlotViewLocked() {
	m.fetchGen++
	m.slots = nil
	m.slotsLoading = false
	m.slotsFailed = false
}

// startFetchLocked issues the slot fetch for the current key. Bumping
// fetchGen supersedes any earlier fetch still in flight: whichever resolution
// carries a stale generation is dropped (last key wins).
func (m *Machine) startFetchLocked() {
	m.fetchGen++
	gen := m.fetchGen
	m.slots = nil
	m.slotsLoading = true
	m.slotsFailed = false

	ctx := m.ctx
	barberID := m.draft.Barber.ID
	date := m.draft.Date.String()
	go func() {
		labels, err := m.gw.ListSlots(ctx, barberID, date)
		m.applySlotResult(gen, labels, err)
	}()
}

func (m *Machine) applySlotResult(gen uint64, labels []string, err error) {
	m.mu.Lock()
	if gen != m.fetchGen || m.state == StateClosed {
		m.mu.Unlock()
		return
	}
	m.slotsLoading = false
	if err != nil {
		m.slots = nil
		m.slotsFailed = true
	} else {
		m.slots = labels
	}
	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(snap)
}

// ChooseSlot selects a time label from the current slot set. The set must be
// loaded and must contain the label.
func (m *Machine) ChooseSlot(label string) error {
	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.state == StateSubmitting {
		m.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if m.draft.Barber == nil || m.draft.Date.IsZero() {
		m.mu.Unlock()
		return ErrSlotsNotReady
	}
	if m.slotsLoading || m.slotsFailed || len(m.slots) == 0 {
		m.mu.Unlock()
		return ErrSlotsNotReady
	}
	if m.draft.Slot == label {
		m.mu.Unlock()
		return nil
	}
	member := false
	for _, s := range m.slots {
		if s == label {
			member = true
			break
		}
	}
	if !member {
		m.mu.Unlock()
		return ErrSlotUnavailable
	}

	m.draft.Slot = label
	m.state = StateSlotChosen
	m.failureReason = ""
	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(snap)
	return nil
}

// SetCustomerName records the customer's name as typed; it is trimmed at
// submission time.
func (m *Machine) SetCustomerName(name string) {
	m.mu.Lock()
	if m.state == StateClosed || m.state == StateSubmitting {
		m.mu.Unlock()
		return
	}
	m.draft.CustomerName = name
	m.mu.Unlock()
}

// SetService carries a pre-chosen service id through the workflow for
// display; it does not affect availability.
func (m *Machine) SetService(serviceID string) {
	m.mu.Lock()
	if m.state == StateClosed || m.state == StateSubmitting {
		m.mu.Unlock()
		return
	}
	m.draft.ServiceID = serviceID
	m.mu.Unlock()
}

// Submit freezes the draft and sends it to the gateway. It is rejected
// locally, without any network call, unless barber, date, and slot are all
// chosen and the trimmed customer name is non-empty. Only one submission may
// be outstanding; after a failure the draft is kept and Submit may be called
// again.
func (m *Machine) Submit() error {
	m.mu.Lock()
	if m.state == StateClosed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.state == StateSubmitting {
		m.mu.Unlock()
		return ErrSubmissionInFlight
	}
	name := strings.TrimSpace(m.draft.CustomerName)
	if m.draft.Barber == nil || m.draft.Date.IsZero() || m.draft.Slot == "" || name == "" {
		m.mu.Unlock()
		return ErrIncompleteDraft
	}

	req := models.BookingRequest{
		BarberID:     m.draft.Barber.ID,
		Date:         m.draft.Date.String(),
		Time:         m.draft.Slot,
		CustomerName: name,
		ServiceType:  m.draft.ServiceID,
	}
	m.state = StateSubmitting
	m.failureReason = ""
	session := m.session
	ctx := m.ctx
	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(snap)

	go func() {
		err := m.gw.SubmitBooking(ctx, req)
		m.applySubmitResult(session, err)
	}()
	return nil
}

func (m *Machine) applySubmitResult(session uint64, err error) {
	m.mu.Lock()
	// The workflow may have been closed while the call was outstanding; the
	// gateway ran to completion but its result is a no-op here.
	if session != m.session || m.state == StateClosed {
		m.mu.Unlock()
		return
	}
	if err != nil {
		m.state = StateFailed
		var subErr *SubmissionError
		if errors.As(err, &subErr) && subErr.Reason != "" {
			m.failureReason = subErr.Reason
		} else {
			m.failureReason = genericFailureReason
		}
	} else {
		m.state = StateSucceeded
		m.draft = Draft{}
		m.clearSlotViewLocked()
	}
	snap := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(snap)
}
