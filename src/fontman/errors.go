package fontman

import "errors"

var (
	// ErrFontNotFound is returned when a font file cannot be opened.
	ErrFontNotFound = errors.New("font file not found")

	// ErrBadFont is returned when the rasterizer rejects a font file.
	ErrBadFont = errors.New("font file rejected by rasterizer")

	// ErrNotJPFont is returned when a Japanese override names a game font
	// that is not a shape font.
	ErrNotJPFont = errors.New("not a japanese shape font")

	// ErrBadSlot is returned for negative font slots.
	ErrBadSlot = errors.New("invalid font slot")
)
