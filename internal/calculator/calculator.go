// Package calculator aggregates the estimated cost of a trip. Calculate is a
// pure function of its Inputs.
package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/pkordes/travel-planner/internal/domain"
)

// Unit conversion factors.
const (
	KmPerMile       = 1.60934
	KmplPerMpg      = 0.425144
	LitersPerGallon = 3.78541
	GallonsPerLiter = 0.264172
)

// ModeType is a kind of transport.
type ModeType string

const (
	ModeCar    ModeType = "car"
	ModeBus    ModeType = "bus"
	ModeTrain  ModeType = "train"
	ModeFlight ModeType = "flight"
)

// Units accepted by TransportMode.
const (
	UnitKm     = "km"
	UnitMiles  = "miles"
	UnitKmpl   = "kmpl"
	UnitMpg    = "mpg"
	UnitLiter  = "liter"
	UnitGallon = "gallon"
)

// TransportMode is one leg of transport. Car modes are costed by fuel; every
// other type is ticketed, priced per ticket.
type TransportMode struct {
	Type           ModeType `json:"type"`
	Count          int      `json:"count"`
	Distance       float64  `json:"distance,omitempty"`
	DistanceUnit   string   `json:"distanceUnit,omitempty"`
	Efficiency     float64  `json:"efficiency,omitempty"`
	EfficiencyUnit string   `json:"efficiencyUnit,omitempty"`
	FuelPrice      float64  `json:"fuelPrice,omitempty"`
	PriceUnit      string   `json:"priceUnit,omitempty"`
	ParkingToll    float64  `json:"parkingToll,omitempty"`
	TicketPrice    float64  `json:"ticketPrice,omitempty"`
}

// Misc holds the miscellaneous expense categories.
type Misc struct {
	EmergencyFund float64 `json:"emergencyFund"`
	Insurance     float64 `json:"insurance"`
	Tips          float64 `json:"tips"`
	Shopping      float64 `json:"shopping"`
	Miscellaneous float64 `json:"miscellaneous"`
}

// Total sums every category.
func (m Misc) Total() float64 {
	return m.EmergencyFund + m.Insurance + m.Tips + m.Shopping + m.Miscellaneous
}

// Inputs is everything a calculation needs.
type Inputs struct {
	Transport             []TransportMode `json:"transport"`
	Nights                int             `json:"nights"`
	AccommodationPerNight float64         `json:"accommodationPerNight"`
	DailyFood             float64         `json:"dailyFood"`
	Activities            float64         `json:"activities"`
	Misc                  Misc            `json:"misc"`
	People                int             `json:"people"`
	Days                  int             `json:"days"`
}

// DefaultInputs returns the values the calculator form starts with.
func DefaultInputs() Inputs {
	return Inputs{
		Transport: []TransportMode{{
			Type:           ModeCar,
			Count:          1,
			Distance:       500,
			DistanceUnit:   UnitKm,
			Efficiency:     15,
			EfficiencyUnit: UnitKmpl,
			FuelPrice:      100,
			PriceUnit:      UnitLiter,
		}},
		Nights:                2,
		AccommodationPerNight: 5000,
		DailyFood:             2000,
		Activities:            10000,
		People:                4,
		Days:                  3,
	}
}

// Breakdown is the result of Calculate. Amounts are unrounded.
type Breakdown struct {
	Modes          []float64 `json:"modes"`
	Transportation float64   `json:"transportation"`
	Accommodation  float64   `json:"accommodation"`
	Food           float64   `json:"food"`
	Activities     float64   `json:"activities"`
	Miscellaneous  float64   `json:"miscellaneous"`
	Total          float64   `json:"total"`
	PerPerson      float64   `json:"perPerson"`
}

// FieldError reports the input field that failed validation. It matches
// domain.ErrValidation with errors.Is.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error { return domain.ErrValidation }

// AsFieldError extracts a *FieldError from err.
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	ok := errors.As(err, &fe)
	return fe, ok
}

func fieldErr(field, format string, args ...any) error {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Calculate validates in and returns the cost breakdown. The first invalid
// field is reported and no partial result is returned.
func Calculate(in Inputs) (Breakdown, error) {
	if err := Validate(in); err != nil {
		return Breakdown{}, err
	}

	b := Breakdown{Modes: make([]float64, len(in.Transport))}
	for i, m := range in.Transport {
		b.Modes[i] = modeCost(m)
		b.Transportation += b.Modes[i]
	}
	b.Accommodation = float64(in.Nights) * in.AccommodationPerNight
	b.Food = float64(in.Days) * in.DailyFood * float64(in.People)
	b.Activities = in.Activities
	b.Miscellaneous = in.Misc.Total()
	b.Total = b.Transportation + b.Accommodation + b.Food + b.Activities + b.Miscellaneous
	b.PerPerson = b.Total / float64(in.People)
	return b, nil
}

func modeCost(m TransportMode) float64 {
	if m.Type != ModeCar {
		return m.TicketPrice * float64(m.Count)
	}

	km := m.Distance
	if m.DistanceUnit == UnitMiles {
		km *= KmPerMile
	}
	kmpl := m.Efficiency
	if m.EfficiencyUnit == UnitMpg {
		kmpl *= KmplPerMpg
	}
	liters := km / kmpl * float64(m.Count)

	multiplier := 1.0
	switch {
	case m.EfficiencyUnit != UnitMpg && m.PriceUnit == UnitGallon:
		multiplier = LitersPerGallon
	case m.EfficiencyUnit == UnitMpg && m.PriceUnit != UnitGallon:
		multiplier = GallonsPerLiter
	}
	return liters*m.FuelPrice*multiplier + m.ParkingToll
}

// Validate checks in without calculating.
func Validate(in Inputs) error {
	if len(in.Transport) == 0 {
		return fieldErr("transport", "please add at least one transportation mode")
	}
	for i, m := range in.Transport {
		if err := validateMode(fmt.Sprintf("transport[%d]", i), m); err != nil {
			return err
		}
	}
	if in.People <= 0 {
		return fieldErr("people", "please enter a valid number of people")
	}
	if in.Days <= 0 {
		return fieldErr("days", "please enter a valid trip duration")
	}
	if in.Nights < 0 {
		return fieldErr("nights", "must not be negative")
	}

	for _, f := range []struct {
		name  string
		value float64
	}{
		{"accommodationPerNight", in.AccommodationPerNight},
		{"dailyFood", in.DailyFood},
		{"activities", in.Activities},
		{"misc.emergencyFund", in.Misc.EmergencyFund},
		{"misc.insurance", in.Misc.Insurance},
		{"misc.tips", in.Misc.Tips},
		{"misc.shopping", in.Misc.Shopping},
		{"misc.miscellaneous", in.Misc.Miscellaneous},
	} {
		if err := amount(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

func validateMode(prefix string, m TransportMode) error {
	switch m.Type {
	case ModeCar:
		if !positive(m.Distance) {
			return fieldErr(prefix+".distance", "please enter a valid distance for car transportation")
		}
		if !positive(m.Efficiency) {
			return fieldErr(prefix+".efficiency", "please enter a valid fuel efficiency for car transportation")
		}
		if !positive(m.FuelPrice) {
			return fieldErr(prefix+".fuelPrice", "please enter a valid fuel price for car transportation")
		}
		if m.Count <= 0 {
			return fieldErr(prefix+".count", "please enter a valid number of vehicles")
		}
		if err := oneOf(prefix+".distanceUnit", m.DistanceUnit, UnitKm, UnitMiles); err != nil {
			return err
		}
		if err := oneOf(prefix+".efficiencyUnit", m.EfficiencyUnit, UnitKmpl, UnitMpg); err != nil {
			return err
		}
		if err := oneOf(prefix+".priceUnit", m.PriceUnit, UnitLiter, UnitGallon); err != nil {
			return err
		}
		return amount(prefix+".parkingToll", m.ParkingToll)
	case ModeBus, ModeTrain, ModeFlight:
		if !positive(m.TicketPrice) {
			return fieldErr(prefix+".ticketPrice", "please enter a valid ticket price for %s transportation", m.Type)
		}
		if m.Count <= 0 {
			return fieldErr(prefix+".count", "please enter a valid number of tickets")
		}
		return nil
	default:
		return fieldErr(prefix+".type", "unknown transport type %q", m.Type)
	}
}

// oneOf accepts value when it is empty (the metric default) or listed.
func oneOf(field, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fieldErr(field, "unknown unit %q", value)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func amount(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fieldErr(field, "please enter a valid non-negative amount")
	}
	return nil
}
