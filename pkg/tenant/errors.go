package tenant

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedHost is reported when a request carries no usable host.
	// The parser recovers from it by substituting the default host.
	ErrMalformedHost = errors.New("malformed host")

	// ErrReservedHostname is returned when the host names a platform-level
	// route. It means "no tenant", not a failure visible to the end user.
	ErrReservedHostname = errors.New("reserved hostname")

	// ErrTenantNotFound is returned when no tenant matches an explicitly
	// named subdomain, domain or identifier.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrDuplicateTenant is returned by a Store when an insert violates the
	// uniqueness of subdomain or domain.
	ErrDuplicateTenant = errors.New("tenant already exists")

	// ErrInvalidTenant is returned by a Store when a record breaks a storage
	// rule, such as a subdomain or domain that is not lowercase.
	ErrInvalidTenant = errors.New("invalid tenant record")

	// ErrDirectoryUnavailable is returned when the backing store fails.
	ErrDirectoryUnavailable = errors.New("tenant directory unavailable")

	// ErrCreateRaceExhausted is returned when the default tenant could neither
	// be created nor read back after a conflicting insert.
	ErrCreateRaceExhausted = fmt.Errorf("%w: default tenant create race not settled", ErrDirectoryUnavailable)

	// ErrNoTenantInContext is returned when no tenant is found in context.
	ErrNoTenantInContext = errors.New("no tenant in context")
)
