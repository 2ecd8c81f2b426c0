package kernel

import (
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an improperly
// initialized Address. Addresses must be created via NewAddress to ensure validity.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address represents a structured delivery destination.
// Address is an immutable value object; street, city, postal code, and country
// are mandatory while the state/province component is optional.
//
// The zero value of Address is invalid and will fail validation - use the
// constructor to create instances.
//
// Example:
//
//	addr, err := kernel.NewAddress("1 Main St", "Springfield", "IL", "62701", "USA")
//	if err != nil {
//	    // handle validation error
//	}
type Address struct {
	street        string
	city          string
	stateProvince string
	zipPostalCode string
	country       string

	guard guard.ConstructorGuard
}

// NewAddress creates a new Address with the given components.
// Street, city, ZIP/postal code, and country must be non-blank; stateProvince
// may be empty. Leading and trailing whitespace is trimmed from every component.
//
// Returns:
//   - Address: a valid address instance
//   - error: a ValueIsRequiredError naming the first missing component
func NewAddress(street, city, stateProvince, zipPostalCode, country string) (Address, error) {
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)
	stateProvince = strings.TrimSpace(stateProvince)
	zipPostalCode = strings.TrimSpace(zipPostalCode)
	country = strings.TrimSpace(country)

	if street == "" {
		return Address{}, errs.NewValueIsRequiredError("street")
	}
	if city == "" {
		return Address{}, errs.NewValueIsRequiredError("city")
	}
	if zipPostalCode == "" {
		return Address{}, errs.NewValueIsRequiredError("zipPostalCode")
	}
	if country == "" {
		return Address{}, errs.NewValueIsRequiredError("country")
	}

	return Address{
		street:        street,
		city:          city,
		stateProvince: stateProvince,
		zipPostalCode: zipPostalCode,
		country:       country,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Address was properly constructed using the constructor.
// The zero value of Address is invalid and will fail this validation.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street component.
func (a Address) Street() string {
	return a.street
}

// City returns the city component.
func (a Address) City() string {
	return a.city
}

// StateProvince returns the optional state/province component.
func (a Address) StateProvince() string {
	return a.stateProvince
}

// ZipPostalCode returns the ZIP/postal code component.
func (a Address) ZipPostalCode() string {
	return a.zipPostalCode
}

// Country returns the country component.
func (a Address) Country() string {
	return a.country
}

// String returns a single-line formatted address, skipping empty components.
// This method implements the fmt.Stringer interface.
func (a Address) String() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.street, a.city, a.stateProvince, a.zipPostalCode, a.country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// IsEqual compares two addresses component by component.
func (a Address) IsEqual(other Address) bool {
	return a.street == other.street &&
		a.city == other.city &&
		a.stateProvince == other.stateProvince &&
		a.zipPostalCode == other.zipPostalCode &&
		a.country == other.country
}
