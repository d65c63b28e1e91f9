package flight

import (
	"testing"
	"time"

	"github.com/cocopuff2234/airline-ops/internal/crew"
	"github.com/cocopuff2234/airline-ops/internal/fleet"
	"github.com/cocopuff2234/airline-ops/internal/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDep = time.Date(2025, 10, 1, 14, 30, 0, 0, time.UTC)
	testArr = time.Date(2025, 10, 1, 17, 45, 0, 0, time.UTC)
)

func newTestFlight(t *testing.T, minAttendants int) *Flight {
	t.Helper()
	a320, err := fleet.Lookup("A320")
	require.NoError(t, err)
	plane, err := inventory.NewPlane("PL001", a320, 150, 200, 100)
	require.NoError(t, err)
	f, err := New("AA001", "American Airlines", "JFK", "LAX", testDep, testArr, plane, minAttendants)
	require.NoError(t, err)
	return f
}

func newCaptain(t *testing.T, id string) *crew.Pilot {
	t.Helper()
	a320, err := fleet.Lookup("A320")
	require.NoError(t, err)
	return crew.NewPilot(id, "Test Captain", time.Now(), "JFK", crew.RankCaptain, []fleet.AircraftType{a320}, 5000)
}

func newFirstOfficer(t *testing.T, id string) *crew.Pilot {
	t.Helper()
	a320, err := fleet.Lookup("A320")
	require.NoError(t, err)
	return crew.NewPilot(id, "Test FO", time.Now(), "JFK", crew.RankFirstOfficer, []fleet.AircraftType{a320}, 2000)
}

func newAttendant(t *testing.T, id string) *crew.CabinCrew {
	t.Helper()
	a320, err := fleet.Lookup("A320")
	require.NoError(t, err)
	return crew.NewCabinCrew(id, "Test FA", time.Now(), "JFK", crew.PositionJunior, []fleet.AircraftType{a320})
}

func TestNew_Validation(t *testing.T) {
	a320, err := fleet.Lookup("A320")
	require.NoError(t, err)
	plane, err := inventory.NewPlane("PL001", a320, 150, 200, 100)
	require.NoError(t, err)

	_, err = New("AA001", "American", "JFK", "LAX", testArr, testDep, plane, 2)
	assert.ErrorIs(t, err, ErrBadSchedule)

	_, err = New("AA001", "American", "JFK", "LAX", testDep, testArr, nil, 2)
	assert.ErrorIs(t, err, ErrNilPlane)

	f, err := New("AA001", "American", "JFK", "LAX", testDep, testArr, plane, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, f.MinAttendants(), "minimum attendants is normalized to at least one")
}

func TestAssignCaptain(t *testing.T) {
	f := newTestFlight(t, 2)

	tests := []struct {
		name    string
		pilot   *crew.Pilot
		wantErr error
	}{
		{name: "nil pilot", pilot: nil, wantErr: ErrNilCrew},
		{
			name: "wrong rank",
			pilot: func() *crew.Pilot {
				return newFirstOfficer(t, "P010")
			}(),
			wantErr: ErrWrongRank,
		},
		{
			name: "on leave",
			pilot: func() *crew.Pilot {
				p := newCaptain(t, "P011")
				p.SetStatus(crew.StatusOnLeave)
				return p
			}(),
			wantErr: ErrCrewUnavailable,
		},
		{
			name: "no type rating",
			pilot: func() *crew.Pilot {
				b737, err := fleet.Lookup("B737")
				require.NoError(t, err)
				return crew.NewPilot("P012", "Wrong Type", time.Now(), "JFK", crew.RankCaptain, []fleet.AircraftType{b737}, 5000)
			}(),
			wantErr: ErrNotRated,
		},
		{name: "valid captain", pilot: newCaptain(t, "P013")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.AssignCaptain(tt.pilot)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.pilot, f.Captain())
		})
	}
}

func TestAssignCaptain_LastWins(t *testing.T) {
	f := newTestFlight(t, 2)
	first := newCaptain(t, "P001")
	second := newCaptain(t, "P002")

	require.NoError(t, f.AssignCaptain(first))
	require.NoError(t, f.AssignCaptain(second))
	assert.Equal(t, second, f.Captain(), "later assignment overwrites")
}

func TestAddAttendant_NoDuplicates(t *testing.T) {
	f := newTestFlight(t, 2)
	fa := newAttendant(t, "FA001")

	require.NoError(t, f.AddAttendant(fa))
	err := f.AddAttendant(fa)
	assert.ErrorIs(t, err, ErrDuplicateAttendant)
	assert.Len(t, f.Attendants(), 1)
}

func TestRemoveAttendant(t *testing.T) {
	f := newTestFlight(t, 2)
	fa := newAttendant(t, "FA001")

	assert.False(t, f.RemoveAttendant(fa), "not on roster yet")
	require.NoError(t, f.AddAttendant(fa))
	assert.True(t, f.RemoveAttendant(fa))
	assert.False(t, f.RemoveAttendant(fa), "already removed")
}

func TestHasRequiredCrew(t *testing.T) {
	f := newTestFlight(t, 2)

	require.NoError(t, f.AssignCaptain(newCaptain(t, "P001")))
	require.NoError(t, f.AddAttendant(newAttendant(t, "FA001")))
	require.NoError(t, f.AddAttendant(newAttendant(t, "FA002")))

	assert.False(t, f.HasRequiredCrew(), "missing first officer")

	require.NoError(t, f.AssignFirstOfficer(newFirstOfficer(t, "P002")))
	assert.True(t, f.HasRequiredCrew())

	// Dropping below the attendant minimum flips it back.
	f.RemoveAttendant(f.Attendants()[0])
	assert.False(t, f.HasRequiredCrew())
}

type recordingNotifier struct {
	gateChanges []string
	delays      []int
}

func (r *recordingNotifier) OnGateChanged(flightNumber, oldGate, newGate string) {
	r.gateChanges = append(r.gateChanges, oldGate+"->"+newGate)
}

func (r *recordingNotifier) OnDelayed(flightNumber string, minutes int, newDeparture, newArrival time.Time) {
	r.delays = append(r.delays, minutes)
}

func TestDelayBy(t *testing.T) {
	f := newTestFlight(t, 2)
	rec := &recordingNotifier{}
	f.Subscribe(rec)

	err := f.DelayBy(0)
	assert.ErrorIs(t, err, ErrBadDelay)
	err = f.DelayBy(-10)
	assert.ErrorIs(t, err, ErrBadDelay)
	assert.Empty(t, rec.delays)

	require.NoError(t, f.DelayBy(45))
	assert.Equal(t, testDep.Add(45*time.Minute), f.Departure())
	assert.Equal(t, testArr.Add(45*time.Minute), f.Arrival())
	assert.Equal(t, []int{45}, rec.delays)
	assert.Equal(t, 3*time.Hour+15*time.Minute, f.Duration(), "delay shifts both ends")
}

func TestSetGate_Events(t *testing.T) {
	f := newTestFlight(t, 2)
	rec := &recordingNotifier{}
	f.Subscribe(rec)

	f.SetGate("A12")
	f.SetGate("A12") // no change, no event
	f.SetGate("B3")
	f.ClearGate()

	assert.Equal(t, []string{"->A12", "A12->B3", "B3->"}, rec.gateChanges)
	assert.Equal(t, "", f.Gate())
}

func TestCurrentStatus(t *testing.T) {
	f := newTestFlight(t, 2)

	assert.Equal(t, StatusScheduled, f.CurrentStatus(testDep.Add(-time.Hour)))
	assert.Equal(t, StatusScheduled, f.CurrentStatus(testDep))
	assert.Equal(t, StatusDeparted, f.CurrentStatus(testDep.Add(time.Minute)))
}
