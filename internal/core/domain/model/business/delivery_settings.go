package business

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// RadiusUnit is the unit a delivery radius is expressed in.
type RadiusUnit string

const (
	// RadiusUnitMiles expresses a delivery radius in miles.
	RadiusUnitMiles RadiusUnit = "miles"

	// RadiusUnitKilometers expresses a delivery radius in kilometers.
	RadiusUnitKilometers RadiusUnit = "kilometers"
)

// ParseRadiusUnit converts a string into a RadiusUnit.
func ParseRadiusUnit(s string) (RadiusUnit, error) {
	unit := RadiusUnit(s)
	if unit != RadiusUnitMiles && unit != RadiusUnitKilometers {
		return "", errs.NewValueIsInvalidErrorWithCause("radiusUnit",
			fmt.Errorf("%q is not a valid radius unit", s))
	}
	return unit, nil
}

// String returns the unit name.
func (u RadiusUnit) String() string {
	return string(u)
}

const (
	minDeliveryRadius = 1
	maxDeliveryRadius = 100

	milesToKilometers = 1.60934
	kilometersToMiles = 0.621371
)

// DeliverySettings describes how far a business delivers and any special
// requirements drivers must meet.
type DeliverySettings struct {
	radius              int
	radiusUnit          RadiusUnit
	specialRequirements string
}

// NewDeliverySettings creates validated delivery settings.
func NewDeliverySettings(radius int, radiusUnit RadiusUnit, specialRequirements string) (DeliverySettings, error) {
	if radius < minDeliveryRadius || radius > maxDeliveryRadius {
		return DeliverySettings{}, errs.NewValueIsOutOfRangeError("radius",
			radius, minDeliveryRadius, maxDeliveryRadius)
	}
	if radiusUnit != RadiusUnitMiles && radiusUnit != RadiusUnitKilometers {
		return DeliverySettings{}, errs.NewValueIsInvalidErrorWithCause("radiusUnit",
			fmt.Errorf("%q is not a valid radius unit", radiusUnit))
	}

	return DeliverySettings{
		radius:              radius,
		radiusUnit:          radiusUnit,
		specialRequirements: specialRequirements,
	}, nil
}

// DefaultDeliverySettings returns the settings applied when a business is
// created without explicit ones: a 10 mile radius.
func DefaultDeliverySettings() DeliverySettings {
	return DeliverySettings{radius: 10, radiusUnit: RadiusUnitMiles}
}

// Radius returns the delivery radius in the settings' own unit.
func (d DeliverySettings) Radius() int {
	return d.radius
}

// RadiusUnit returns the unit the radius is expressed in.
func (d DeliverySettings) RadiusUnit() RadiusUnit {
	return d.radiusUnit
}

// SpecialRequirements returns driver requirements free text, if any.
func (d DeliverySettings) SpecialRequirements() string {
	return d.specialRequirements
}

// RadiusInKilometers returns the radius converted to kilometers.
func (d DeliverySettings) RadiusInKilometers() float64 {
	if d.radiusUnit == RadiusUnitKilometers {
		return float64(d.radius)
	}
	return float64(d.radius) * milesToKilometers
}

// RadiusInMiles returns the radius converted to miles.
func (d DeliverySettings) RadiusInMiles() float64 {
	if d.radiusUnit == RadiusUnitMiles {
		return float64(d.radius)
	}
	return float64(d.radius) * kilometersToMiles
}

// String formats the radius with its unit.
func (d DeliverySettings) String() string {
	return fmt.Sprintf("%d %s", d.radius, d.radiusUnit)
}
