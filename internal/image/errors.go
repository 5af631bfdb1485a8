package image

import (
	"errors"
	"fmt"
)

// SamplingError reports that pixel data could not be obtained for analysis:
// the source could not be read or decoded, or the pixel buffer is unusable.
type SamplingError struct {
	// Op is the failing step, e.g. "open", "fetch", "decode", "sample", "raw".
	Op string
	// Path is the image path or URL, if known.
	Path string
	Err  error
}

func (e *SamplingError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("sampling failed (%s %s): %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("sampling failed (%s): %v", e.Op, e.Err)
}

func (e *SamplingError) Unwrap() error {
	return e.Err
}

// IsSamplingError reports whether err is or wraps a *SamplingError.
func IsSamplingError(err error) bool {
	var se *SamplingError
	return errors.As(err, &se)
}

func samplingError(op, path string, err error) error {
	return &SamplingError{Op: op, Path: path, Err: err}
}
