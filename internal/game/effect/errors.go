package effect

import "errors"

var (
	// ErrDuplicateKind is returned by Register when the ID is already taken
	// and the registry does not allow overrides.
	ErrDuplicateKind = errors.New("effect kind already registered")

	// ErrInvalidKind is returned by Register for a zero ID or missing factory.
	ErrInvalidKind = errors.New("invalid effect kind")

	// ErrRegistryFrozen is returned by Register after Freeze.
	ErrRegistryFrozen = errors.New("effect registry is frozen")
)
