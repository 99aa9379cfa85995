package lower

import "errors"

// Lowering performs no semantic validation; descriptors arrive resolved.
// The only failures are internal-consistency violations, and every one of
// them aborts the whole compilation unit.
var (
	// ErrMissingSetter indicates a var property whose setter descriptor is
	// absent.
	ErrMissingSetter = errors.New("var property without setter descriptor")
	// ErrMissingGetter indicates a non-abstract property whose getter
	// descriptor is absent.
	ErrMissingGetter = errors.New("property without getter descriptor")
	// ErrMissingSegments indicates a coroutine split attempted without
	// recorded coroutine segments.
	ErrMissingSegments = errors.New("suspend split without coroutine segments")
	// ErrUnknownKind indicates a declaration kind the dispatcher does not
	// recognize.
	ErrUnknownKind = errors.New("unknown declaration kind")
)
