package kernel

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Geographic coordinate bounds in decimal degrees.
const (
	// LatitudeMin is the southernmost valid latitude.
	LatitudeMin = -90.0
	// LatitudeMax is the northernmost valid latitude.
	LatitudeMax = 90.0
	// LongitudeMin is the westernmost valid longitude.
	LongitudeMin = -180.0
	// LongitudeMax is the easternmost valid longitude.
	LongitudeMax = 180.0
)

// ErrGeoLocationIsNotConstructed is returned when attempting to use an improperly
// initialized GeoLocation. Locations must be created via NewGeoLocation.
var ErrGeoLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"geo location must be created via NewGeoLocation constructor")

// GeoLocation represents a geographic position reported by a driver device.
// GeoLocation is an immutable value object that ensures coordinates are always
// within valid WGS84 bounds. The zero value is invalid and will fail
// validation - use the constructor to create instances.
//
// Example:
//
//	loc, err := kernel.NewGeoLocation(40.7128, -74.0060)
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(loc) // Output: GeoLocation(40.712800,-74.006000)
type GeoLocation struct {
	latitude  float64
	longitude float64

	guard guard.ConstructorGuard
}

// NewGeoLocation creates a new GeoLocation with the specified coordinates.
// Latitude must be within [LatitudeMin..LatitudeMax] and longitude within
// [LongitudeMin..LongitudeMax], both inclusive.
//
// Returns:
//   - GeoLocation: a valid location instance
//   - error: a ValueIsOutOfRangeError if either coordinate is out of bounds
func NewGeoLocation(latitude, longitude float64) (GeoLocation, error) {
	loc := GeoLocation{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return GeoLocation{}, err
	}

	return loc, nil
}

// Validate checks if the GeoLocation was properly constructed using the constructor.
// The zero value of GeoLocation is invalid and will fail this validation.
func (l GeoLocation) Validate() error {
	return l.guard.Validate(ErrGeoLocationIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (l GeoLocation) Latitude() float64 {
	return l.latitude
}

// Longitude returns the longitude in decimal degrees.
func (l GeoLocation) Longitude() float64 {
	return l.longitude
}

// String returns a human-readable representation in the format
// "GeoLocation(lat,lon)". This method implements the fmt.Stringer interface.
func (l GeoLocation) String() string {
	return fmt.Sprintf("GeoLocation(%f,%f)", l.latitude, l.longitude)
}

// IsEqual compares two locations for coordinate equality.
// Both locations must be properly constructed for the comparison to succeed.
func (l GeoLocation) IsEqual(other GeoLocation) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.latitude == other.latitude && l.longitude == other.longitude, nil
}

func (l *GeoLocation) setLatitude(latitude float64) error {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	l.latitude = latitude
	return nil
}

func (l *GeoLocation) setLongitude(longitude float64) error {
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}
	l.longitude = longitude
	return nil
}
