package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID,
// one that bypassed the constructor functions.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is the identifier value object for entities and aggregates. It wraps
// github.com/google/uuid behind a domain type so identifiers stay immutable
// and zero values are detectable.
//
// The zero value is invalid; construct through NewUUID, UUIDFromString, or
// UUIDFromBytes. Values are immutable and safe for concurrent use.
//
// Example:
//
//	// Fresh identifier for a new order
//	orderID := kernel.NewUUID()
//
//	// Reconstructed from persistence
//	orderID, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    return err
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random version 4 UUID. This is how new entity
// identifiers are minted.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	fmt.Println(orderID.String()) // e.g. "550e8400-e29b-41d4-a716-446655440000"
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses a UUID from its text form. Accepts the canonical
// hyphenated format as well as the braced and urn:uuid variants.
// Used when reconstructing identifiers from persistence or request paths.
//
// Example:
//
//	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
//	if err != nil {
//	    return fmt.Errorf("invalid order id: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes builds a UUID from a 16-byte slice, typically a binary uuid
// column read back from the database. The result must not be the nil UUID.
//
// Example:
//
//	orderID, err := kernel.UUIDFromBytes(rawID[:])
//	if err != nil {
//	    return err
//	}
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String renders the canonical hyphenated form,
// "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx". A zero-value UUID renders as
// "00000000-0000-0000-0000-000000000000".
func (u UUID) String() string {
	return u.id.String()
}

// Bytes exposes the wrapped uuid.UUID for persistence bindings and other
// integrations that need the underlying type. Slice it ([:]) when raw bytes
// are required. Prefer the domain type everywhere else.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether two UUIDs hold the same value.
//
// Example:
//
//	a := kernel.NewUUID()
//	b := a
//	a.IsEqual(b) // true
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero value (the nil
// UUID). Aggregates call this from their own constructors before accepting
// an identifier.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
