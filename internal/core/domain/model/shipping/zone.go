package shipping

import (
	"errors"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrZoneIsNotConstructed is returned when a Zone was not created through the
// NewZone constructor.
var ErrZoneIsNotConstructed = errs.NewValueIsRequiredError(
	"zone must be created via NewZone constructor")

// ZoneMember is one geographic entry of a zone: a country, optionally
// narrowed to a single region within it. A member with an empty region covers
// the whole country.
type ZoneMember struct {
	Country string
	Region  string
}

// Zone is a named geographic region used to decide which addresses a shipping
// method serves. An address matches the zone when any member covers it.
type Zone struct {
	name    string
	members []ZoneMember

	guard guard.ConstructorGuard
}

// NewZone creates a Zone with the given members. A zone needs a name and at
// least one member; members need a country.
func NewZone(name string, members []ZoneMember) (Zone, error) {
	if name == "" {
		return Zone{}, errs.NewValueIsRequiredError("name")
	}
	if len(members) == 0 {
		return Zone{}, errs.NewValueIsRequiredError("members")
	}
	for _, member := range members {
		if member.Country == "" {
			return Zone{}, errs.NewValueIsInvalidErrorWithCause("members",
				errors.New("zone member country must not be empty"))
		}
	}

	return Zone{
		name:    name,
		members: members,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Zone was created through the constructor.
func (z Zone) Validate() error {
	return z.guard.Validate(ErrZoneIsNotConstructed)
}

// Name returns the zone's display name.
func (z Zone) Name() string {
	return z.name
}

// Members returns the zone's geographic entries.
func (z Zone) Members() []ZoneMember {
	return z.members
}

// Matches reports whether any zone member covers the address: the member
// country equals the address country and the member region, when set, equals
// the address region.
func (z Zone) Matches(addr order.Address) bool {
	for _, member := range z.members {
		if member.Country != addr.Country() {
			continue
		}
		if member.Region == "" || member.Region == addr.Region() {
			return true
		}
	}
	return false
}
