package mask

// Masker converts between raw values and their masked display form.
type Masker interface {
	// Mask formats a raw value. Characters the mask cannot place are dropped.
	Mask(value string) string
	// Unmask recovers the raw value from a masked string.
	Unmask(value string) string
}

var (
	_ Masker = (*StringMask)(nil)
	_ Masker = (*NumberMask)(nil)
)
