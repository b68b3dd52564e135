package persist

import "fmt"

var (
	// ErrUnsupportedFormat is returned when a snapshot encoding other than
	// the structured/binary pair is requested.
	ErrUnsupportedFormat = fmt.Errorf("unsupported snapshot format")
)
