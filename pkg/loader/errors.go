package loader

import "fmt"

// DecodeError reports that an asset was read from the bundle but its bytes
// could not be decoded as an image.
type DecodeError struct {
	// Key is the asset whose payload failed to decode.
	Key string

	// Err is the underlying decoder error.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image asset %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
