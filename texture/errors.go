package texture

import "errors"

// Canonical errors shared by the loaders and encoders. Callers match with
// errors.Is; wrapped forms carry the detail.
var (
	// ErrImageLoad covers a source file that is missing, unreadable, or not
	// decodable to 3-channel color.
	ErrImageLoad = errors.New("source image unusable")

	// ErrUnsupportedLayout is returned when no encoder/decoder pair is
	// registered for the requested scheme.
	ErrUnsupportedLayout = errors.New("unsupported layout scheme")

	// ErrOddDimensions is returned by encoders whose packed geometry needs
	// even width and height.
	ErrOddDimensions = errors.New("packed layout requires even image dimensions")
)
