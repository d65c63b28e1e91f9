package fleet

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownType = errors.New("unknown aircraft type")

// AircraftType holds the static reference data for one aircraft model:
// performance figures plus the cabin layout used to generate seat maps.
// Entries are immutable; the catalog is read-only after process start.
type AircraftType struct {
	Code         string `json:"code"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	RangeNm      int    `json:"rangeNm"`
	TypicalSeats int    `json:"typicalSeats"`
	Widebody     bool   `json:"widebody"`
	SeatsPerRow  int    `json:"seatsPerRow"`
	SeatLetters  string `json:"seatLetters"`
}

// SupportsRoute reports whether the type can fly a route of the given
// distance in nautical miles.
func (t AircraftType) SupportsRoute(distanceNm int) bool {
	return distanceNm <= t.RangeNm
}

func (t AircraftType) String() string {
	return fmt.Sprintf("%s (%s %s)", t.Code, t.Manufacturer, t.Model)
}

var catalog = map[string]AircraftType{
	// Narrow-body
	"E175": {Code: "E175", Manufacturer: "Embraer", Model: "E175", RangeNm: 2100, TypicalSeats: 76, Widebody: false, SeatsPerRow: 4, SeatLetters: "ABCD"},
	"A320": {Code: "A320", Manufacturer: "Airbus", Model: "A320", RangeNm: 3300, TypicalSeats: 150, Widebody: false, SeatsPerRow: 6, SeatLetters: "ABCDEF"},
	"A321": {Code: "A321", Manufacturer: "Airbus", Model: "A321", RangeNm: 3500, TypicalSeats: 185, Widebody: false, SeatsPerRow: 6, SeatLetters: "ABCDEF"},
	"B737": {Code: "B737", Manufacturer: "Boeing", Model: "737-800", RangeNm: 2935, TypicalSeats: 160, Widebody: false, SeatsPerRow: 6, SeatLetters: "ABCDEF"},

	// Wide-body (seat letters skip I)
	"B787": {Code: "B787", Manufacturer: "Boeing", Model: "787-9", RangeNm: 7600, TypicalSeats: 296, Widebody: true, SeatsPerRow: 9, SeatLetters: "ABCDEFHJK"},
	"A350": {Code: "A350", Manufacturer: "Airbus", Model: "A350-900", RangeNm: 8100, TypicalSeats: 300, Widebody: true, SeatsPerRow: 9, SeatLetters: "ABCDEFHJK"},
	"B777": {Code: "B777", Manufacturer: "Boeing", Model: "777-300ER", RangeNm: 7350, TypicalSeats: 350, Widebody: true, SeatsPerRow: 10, SeatLetters: "ABCDEFGHJK"},
}

// Lookup returns the aircraft type registered under the exact code.
func Lookup(code string) (AircraftType, error) {
	t, ok := catalog[code]
	if !ok {
		return AircraftType{}, fmt.Errorf("%w: %s", ErrUnknownType, code)
	}
	return t, nil
}

// Parse resolves a free-text type code such as "a320" or " B777 ".
// Matching is case-insensitive after trimming whitespace.
func Parse(code string) (AircraftType, error) {
	return Lookup(strings.ToUpper(strings.TrimSpace(code)))
}

// Codes returns all registered type codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(catalog))
	for code := range catalog {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
