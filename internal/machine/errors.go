package machine

import "errors"

// Domain errors for the machine package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, machine.ErrUnknownVariant) {
//	    // handle unknown variant
//	}
var (
	// ErrUnknownVariant is returned when a variant identifier or name is not recognised.
	ErrUnknownVariant = errors.New("machine: unknown variant")

	// ErrNotInitialized is returned when Produce is called before Initialize.
	ErrNotInitialized = errors.New("machine: registry not initialized")

	// ErrAlreadyInitialized is returned when Initialize is called twice.
	ErrAlreadyInitialized = errors.New("machine: registry already initialized")

	// ErrInvalidPrototype is returned when a prototype cannot be constructed
	// from its settings.
	ErrInvalidPrototype = errors.New("machine: invalid prototype")

	// ErrInvalidPolicy is returned when an unknown-variant policy is not recognised.
	ErrInvalidPolicy = errors.New("machine: invalid unknown-variant policy")
)
