package booking

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cocopuff2234/airline-ops/internal/crew"
	"github.com/cocopuff2234/airline-ops/internal/fleet"
	"github.com/cocopuff2234/airline-ops/internal/flight"
	"github.com/cocopuff2234/airline-ops/internal/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqGenerator issues T1, T2, ... so tests can assert on stable IDs.
type seqGenerator struct{ n int }

func (g *seqGenerator) NextID() string {
	g.n++
	return fmt.Sprintf("T%d", g.n)
}

func newCrewedFlight(t *testing.T, capacity int, firstPrice, economyPrice float64) *flight.Flight {
	t.Helper()
	a320, err := fleet.Lookup("A320")
	require.NoError(t, err)
	plane, err := inventory.NewPlane("PL001", a320, capacity, firstPrice, economyPrice)
	require.NoError(t, err)

	dep := time.Date(2025, 10, 1, 14, 30, 0, 0, time.UTC)
	f, err := flight.New("AA001", "American", "JFK", "LAX", dep, dep.Add(6*time.Hour), plane, 1)
	require.NoError(t, err)

	require.NoError(t, f.AssignCaptain(crew.NewPilot("P001", "Cap", time.Now(), "JFK", crew.RankCaptain, []fleet.AircraftType{a320}, 5000)))
	require.NoError(t, f.AssignFirstOfficer(crew.NewPilot("P002", "FO", time.Now(), "JFK", crew.RankFirstOfficer, []fleet.AircraftType{a320}, 2000)))
	require.NoError(t, f.AddAttendant(crew.NewCabinCrew("FA001", "FA", time.Now(), "JFK", crew.PositionLead, []fleet.AircraftType{a320})))
	return f
}

func newUncrewedFlight(t *testing.T) *flight.Flight {
	t.Helper()
	a320, err := fleet.Lookup("A320")
	require.NoError(t, err)
	plane, err := inventory.NewPlane("PL002", a320, 10, 350, 150)
	require.NoError(t, err)
	dep := time.Date(2025, 10, 1, 14, 30, 0, 0, time.UTC)
	f, err := flight.New("AA002", "American", "JFK", "LAX", dep, dep.Add(6*time.Hour), plane, 1)
	require.NoError(t, err)
	return f
}

func TestNewTicket(t *testing.T) {
	gen := &seqGenerator{}
	f := newCrewedFlight(t, 10, 350, 150)
	cust := NewCustomer("C001", "Ada")

	tk, err := NewTicket(gen, f, cust, inventory.FareEconomy)
	require.NoError(t, err)
	assert.Equal(t, "T1", tk.ID())
	assert.Equal(t, StatusPending, tk.Status())
	assert.Equal(t, 150.0, tk.Price(), "price fixed from the fare table at creation")
	assert.Equal(t, 10, f.Plane().Available(), "no seat consumed before purchase")

	_, err = NewTicket(gen, nil, cust, inventory.FareEconomy)
	assert.ErrorIs(t, err, ErrNilFlight)
	_, err = NewTicket(gen, f, nil, inventory.FareEconomy)
	assert.ErrorIs(t, err, ErrNilCustomer)
	_, err = NewTicket(gen, f, cust, inventory.FareClass("premium"))
	assert.ErrorIs(t, err, inventory.ErrUnknownFareClass)
}

func TestPurchase(t *testing.T) {
	gen := &seqGenerator{}
	f := newCrewedFlight(t, 10, 350, 150)
	cust := NewCustomer("C001", "Ada")

	tk, err := NewTicket(gen, f, cust, inventory.FareEconomy)
	require.NoError(t, err)
	require.NoError(t, tk.Purchase())

	assert.Equal(t, StatusConfirmed, tk.Status())
	assert.Equal(t, 150.0, cust.Balance())
	assert.Len(t, cust.Tickets(), 1)
	assert.Equal(t, 9, f.Plane().Available())

	err = tk.Purchase()
	assert.ErrorIs(t, err, ErrNotPending, "a confirmed ticket cannot be purchased again")
	assert.Equal(t, 150.0, cust.Balance(), "repeat purchase changes nothing")
	assert.Equal(t, 9, f.Plane().Available())
}

func TestPurchase_NoCrew(t *testing.T) {
	gen := &seqGenerator{}
	f := newUncrewedFlight(t)
	cust := NewCustomer("C001", "Ada")

	tk, err := NewTicket(gen, f, cust, inventory.FareEconomy)
	require.NoError(t, err)

	err = tk.Purchase()
	assert.ErrorIs(t, err, ErrNoCrew)
	assert.Equal(t, StatusPending, tk.Status(), "failed purchase leaves the ticket pending")
	assert.Equal(t, 0.0, cust.Balance())
	assert.Empty(t, cust.Tickets())
	assert.Equal(t, 10, f.Plane().Available(), "no seat consumed on failure")
}

func TestPurchase_ClassSoldOut(t *testing.T) {
	// Capacity 10 splits into 2 first, 8 economy.
	gen := &seqGenerator{}
	f := newCrewedFlight(t, 10, 350, 150)
	cust := NewCustomer("C001", "Ada")

	for i := 0; i < 2; i++ {
		tk, err := NewTicket(gen, f, cust, inventory.FareFirst)
		require.NoError(t, err)
		require.NoError(t, tk.Purchase())
	}

	third, err := NewTicket(gen, f, cust, inventory.FareFirst)
	require.NoError(t, err)
	err = third.Purchase()
	assert.ErrorIs(t, err, inventory.ErrSoldOut, "first class exhausted")
	assert.Equal(t, StatusPending, third.Status())

	// Economy is unaffected by the sold-out first cabin.
	econ, err := NewTicket(gen, f, cust, inventory.FareEconomy)
	require.NoError(t, err)
	require.NoError(t, econ.Purchase())
	assert.Equal(t, 7, f.Plane().Available())
}

func TestCancel(t *testing.T) {
	gen := &seqGenerator{}
	f := newCrewedFlight(t, 10, 350, 150)
	cust := NewCustomer("C001", "Ada")

	tk, err := NewTicket(gen, f, cust, inventory.FareEconomy)
	require.NoError(t, err)
	require.NoError(t, tk.Purchase())
	require.NoError(t, tk.Cancel())

	assert.Equal(t, StatusCanceled, tk.Status())
	assert.Equal(t, 0.0, cust.Balance(), "cancel refunds the purchase")
	assert.Empty(t, cust.Tickets())
	assert.Equal(t, 10, f.Plane().Available(), "seat returned to inventory")

	err = tk.Cancel()
	assert.ErrorIs(t, err, ErrAlreadyCanceled)
	assert.Equal(t, 0.0, cust.Balance(), "second cancel is a reported no-op")
	assert.Equal(t, 10, f.Plane().Available())
}

func TestCancel_Pending(t *testing.T) {
	gen := &seqGenerator{}
	f := newCrewedFlight(t, 10, 350, 150)
	cust := NewCustomer("C001", "Ada")

	tk, err := NewTicket(gen, f, cust, inventory.FareEconomy)
	require.NoError(t, err)
	require.NoError(t, tk.Cancel())

	assert.Equal(t, StatusCanceled, tk.Status())
	assert.Equal(t, 0.0, cust.Balance(), "nothing to refund on a pending ticket")
	assert.Equal(t, 10, f.Plane().Available())

	err = tk.Purchase()
	assert.ErrorIs(t, err, ErrNotPending, "canceled is terminal")
}

func TestCancel_ReleasesBookedClass(t *testing.T) {
	gen := &seqGenerator{}
	f := newCrewedFlight(t, 10, 350, 150)
	cust := NewCustomer("C001", "Ada")

	tk, err := NewTicket(gen, f, cust, inventory.FareFirst)
	require.NoError(t, err)
	require.NoError(t, tk.Purchase())

	firstFree, err := f.Plane().AvailableIn(inventory.FareFirst)
	require.NoError(t, err)
	assert.Equal(t, 1, firstFree)

	require.NoError(t, tk.Cancel())
	firstFree, err = f.Plane().AvailableIn(inventory.FareFirst)
	require.NoError(t, err)
	assert.Equal(t, 2, firstFree, "the seat goes back to the class it was booked in")
}

func TestUpgrade_ChargesOnlyIncrease(t *testing.T) {
	gen := &seqGenerator{}
	f := newCrewedFlight(t, 10, 350, 150)
	cust := NewCustomer("C001", "Ada")

	tk, err := NewTicket(gen, f, cust, inventory.FareEconomy)
	require.NoError(t, err)
	require.NoError(t, tk.Purchase())
	require.Equal(t, 150.0, cust.Balance())

	require.NoError(t, tk.Upgrade(inventory.FareFirst, 350))
	assert.Equal(t, inventory.FareFirst, tk.FareClass())
	assert.Equal(t, 350.0, tk.Price())
	assert.Equal(t, 350.0, cust.Balance(), "150 + (350-150) difference")

	firstFree, err := f.Plane().AvailableIn(inventory.FareFirst)
	require.NoError(t, err)
	econFree, err := f.Plane().AvailableIn(inventory.FareEconomy)
	require.NoError(t, err)
	assert.Equal(t, 1, firstFree, "upgrade consumes a first seat")
	assert.Equal(t, 8, econFree, "and returns the economy seat")

	// Downgrade back: class and price move, balance does not.
	require.NoError(t, tk.Upgrade(inventory.FareEconomy, 150))
	assert.Equal(t, inventory.FareEconomy, tk.FareClass())
	assert.Equal(t, 150.0, tk.Price())
	assert.Equal(t, 350.0, cust.Balance(), "a cheaper class never refunds")
}

func TestUpgrade_Pending(t *testing.T) {
	gen := &seqGenerator{}
	f := newCrewedFlight(t, 10, 350, 150)
	cust := NewCustomer("C001", "Ada")

	tk, err := NewTicket(gen, f, cust, inventory.FareEconomy)
	require.NoError(t, err)

	require.NoError(t, tk.Upgrade(inventory.FareFirst, 350))
	assert.Equal(t, inventory.FareFirst, tk.FareClass())
	assert.Equal(t, 350.0, tk.Price())
	assert.Equal(t, 0.0, cust.Balance(), "pending tickets charge at purchase, not upgrade")
	assert.Equal(t, 10, f.Plane().Available(), "no seat held before purchase")
}

func TestUpgrade_PendingTargetSoldOut(t *testing.T) {
	gen := &seqGenerator{}
	f := newCrewedFlight(t, 10, 350, 150)
	cust := NewCustomer("C001", "Ada")

	// Fill first class (2 seats at capacity 10).
	for i := 0; i < 2; i++ {
		tk, err := NewTicket(gen, f, cust, inventory.FareFirst)
		require.NoError(t, err)
		require.NoError(t, tk.Purchase())
	}

	pending, err := NewTicket(gen, f, cust, inventory.FareEconomy)
	require.NoError(t, err)
	err = pending.Upgrade(inventory.FareFirst, 350)
	assert.ErrorIs(t, err, inventory.ErrSoldOut)
	assert.Equal(t, inventory.FareEconomy, pending.FareClass(), "failed upgrade changes nothing")
	assert.Equal(t, 150.0, pending.Price())
}

func TestUpgrade_Canceled(t *testing.T) {
	gen := &seqGenerator{}
	f := newCrewedFlight(t, 10, 350, 150)
	cust := NewCustomer("C001", "Ada")

	tk, err := NewTicket(gen, f, cust, inventory.FareEconomy)
	require.NoError(t, err)
	require.NoError(t, tk.Cancel())

	err = tk.Upgrade(inventory.FareFirst, 350)
	assert.ErrorIs(t, err, ErrCanceled)
}

func TestUpgrade_SameClass(t *testing.T) {
	gen := &seqGenerator{}
	f := newCrewedFlight(t, 10, 350, 150)
	cust := NewCustomer("C001", "Ada")

	tk, err := NewTicket(gen, f, cust, inventory.FareEconomy)
	require.NoError(t, err)
	require.NoError(t, tk.Purchase())
	require.NoError(t, tk.Upgrade(inventory.FareEconomy, 150))
	assert.Equal(t, 150.0, cust.Balance(), "same class is a no-op")
	assert.Equal(t, 9, f.Plane().Available())
}

func TestExpire_Pending(t *testing.T) {
	gen := &seqGenerator{}
	f := newCrewedFlight(t, 10, 350, 150)
	cust := NewCustomer("C001", "Ada")

	tk, err := NewTicket(gen, f, cust, inventory.FareEconomy)
	require.NoError(t, err)

	expired, status := tk.Expire()
	assert.True(t, expired)
	assert.Equal(t, StatusCanceled, status)
	assert.Equal(t, 0.0, cust.Balance(), "a pending ticket had charged nothing")
	assert.Equal(t, 10, f.Plane().Available(), "and held no seat")

	err = tk.Purchase()
	assert.ErrorIs(t, err, ErrNotPending, "expired is terminal")

	expired, status = tk.Expire()
	assert.False(t, expired, "second expiry finds the terminal state")
	assert.Equal(t, StatusCanceled, status)
}

func TestExpire_ConfirmedSurvives(t *testing.T) {
	gen := &seqGenerator{}
	f := newCrewedFlight(t, 10, 350, 150)
	cust := NewCustomer("C001", "Ada")

	tk, err := NewTicket(gen, f, cust, inventory.FareEconomy)
	require.NoError(t, err)
	require.NoError(t, tk.Purchase())

	expired, status := tk.Expire()
	assert.False(t, expired)
	assert.Equal(t, StatusConfirmed, status)
	assert.Equal(t, StatusConfirmed, tk.Status())
	assert.Equal(t, 150.0, cust.Balance(), "the purchase stands")
	assert.Equal(t, 9, f.Plane().Available(), "the seat stays held")
	assert.Len(t, cust.Tickets(), 1)
}

func TestExpire_RacesPurchase(t *testing.T) {
	// A purchase and an expiry hitting the same ticket must resolve to
	// exactly one winner: either the ticket confirms and the expiry sees
	// the confirmed state, or it expires and the purchase fails. A
	// confirmed ticket being silently canceled, or a charge surviving an
	// expiry, would both show up as a balance/seat mismatch here.
	f := newCrewedFlight(t, 1000, 350, 150)

	for i := 0; i < 100; i++ {
		gen := &seqGenerator{n: i * 10}
		cust := NewCustomer("C001", "Ada")
		tk, err := NewTicket(gen, f, cust, inventory.FareEconomy)
		require.NoError(t, err)

		var wg sync.WaitGroup
		var purchaseErr error
		var expired bool
		wg.Add(2)
		go func() {
			defer wg.Done()
			purchaseErr = tk.Purchase()
		}()
		go func() {
			defer wg.Done()
			expired, _ = tk.Expire()
		}()
		wg.Wait()

		if expired {
			assert.ErrorIs(t, purchaseErr, ErrNotPending)
			assert.Equal(t, StatusCanceled, tk.Status())
			assert.Equal(t, 0.0, cust.Balance())
		} else {
			assert.NoError(t, purchaseErr)
			assert.Equal(t, StatusConfirmed, tk.Status())
			assert.Equal(t, 150.0, cust.Balance())
			require.NoError(t, tk.Cancel())
		}
	}
	assert.Equal(t, 1000, f.Plane().Available(), "every iteration ends with the seat back")
}

func TestConcurrentPurchases_SameCustomer(t *testing.T) {
	gen := &seqGenerator{}
	f := newCrewedFlight(t, 10, 350, 150)
	cust := NewCustomer("C001", "Ada")

	tickets := make([]*Ticket, 4)
	for i := range tickets {
		tk, err := NewTicket(gen, f, cust, inventory.FareEconomy)
		require.NoError(t, err)
		tickets[i] = tk
	}

	var wg sync.WaitGroup
	for _, tk := range tickets {
		wg.Add(1)
		go func(tk *Ticket) {
			defer wg.Done()
			assert.NoError(t, tk.Purchase())
		}(tk)
	}
	wg.Wait()

	assert.Equal(t, 600.0, cust.Balance(), "no purchase loses its balance update")
	assert.Len(t, cust.Tickets(), 4)
	assert.Equal(t, 6, f.Plane().Available())
}

func TestUUIDGenerator_Unique(t *testing.T) {
	gen := UUIDGenerator{}
	a, b := gen.NextID(), gen.NextID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
