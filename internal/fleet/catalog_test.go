package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	a320, err := Lookup("A320")
	require.NoError(t, err)
	assert.Equal(t, "Airbus", a320.Manufacturer)
	assert.Equal(t, 6, a320.SeatsPerRow)
	assert.Equal(t, "ABCDEF", a320.SeatLetters)
	assert.False(t, a320.Widebody)

	_, err = Lookup("a320")
	assert.ErrorIs(t, err, ErrUnknownType, "Lookup is exact-match only")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		want    string
		wantErr bool
	}{
		{name: "exact code", code: "B777", want: "B777"},
		{name: "lowercase", code: "b787", want: "B787"},
		{name: "surrounding whitespace", code: "  a350 ", want: "A350"},
		{name: "unknown code", code: "MD80", wantErr: true},
		{name: "empty", code: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.code)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Code)
		})
	}
}

func TestSupportsRoute(t *testing.T) {
	e175, err := Lookup("E175")
	require.NoError(t, err)

	assert.True(t, e175.SupportsRoute(2100))
	assert.False(t, e175.SupportsRoute(2101))

	a350, err := Lookup("A350")
	require.NoError(t, err)
	assert.True(t, a350.SupportsRoute(8000))
}

func TestCodes_SortedAndComplete(t *testing.T) {
	codes := Codes()
	assert.Equal(t, []string{"A320", "A321", "A350", "B737", "B777", "B787", "E175"}, codes)
}

func TestWidebodySeatLettersSkipI(t *testing.T) {
	for _, code := range Codes() {
		at, err := Lookup(code)
		require.NoError(t, err)
		if at.Widebody {
			assert.NotContains(t, at.SeatLetters, "I", "%s seat letters must skip I", code)
		}
		assert.GreaterOrEqual(t, len(at.SeatLetters), at.SeatsPerRow, "%s needs a letter per seat", code)
	}
}
