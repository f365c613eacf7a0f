package mask

import "errors"

// Sentinel errors returned while building masks. Masking and unmasking
// themselves never fail.
var (
	// ErrInvalidPattern indicates an unusable mask pattern
	ErrInvalidPattern = errors.New("invalid mask pattern")

	// ErrInvalidRule indicates a malformed rule table entry
	ErrInvalidRule = errors.New("invalid rule")

	// ErrInvalidNumberFormat indicates a malformed number format
	ErrInvalidNumberFormat = errors.New("invalid number format")

	// ErrPresetNotFound indicates the named preset does not exist
	ErrPresetNotFound = errors.New("preset not found")

	// ErrInvalidPreset indicates a preset file entry that cannot be built
	ErrInvalidPreset = errors.New("invalid preset")
)
