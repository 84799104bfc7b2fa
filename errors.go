package serial

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by Write and ReadLine when the port has not
// been configured yet, or has moved to the failed or closed state. The check
// happens before any device access.
var ErrNotConfigured = errors.New("serial: port not configured")

// OpenError reports that the device path could not be opened. The handle is
// unusable; retry with a fresh Open.
type OpenError struct {
	Device string
	Err    error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("serial: open %s: %v", e.Device, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// InvalidParameterError reports a parameter word or line configuration
// outside the enumerated valid combinations. The caller must supply
// corrected input; retrying with the same value cannot succeed. Word is zero
// when the error comes from validating a LineConfig rather than decoding a
// parameter word.
type InvalidParameterError struct {
	Word   byte
	Reason string
}

func (e *InvalidParameterError) Error() string {
	if e.Word != 0 {
		return fmt.Sprintf("serial: invalid parameters 0x%02x: %s", e.Word, e.Reason)
	}
	return fmt.Sprintf("serial: invalid parameters: %s", e.Reason)
}

// ApplyError reports that the device rejected the derived line attributes.
// The port moves to the failed state and must be discarded.
type ApplyError struct {
	Device string
	Err    error
}

func (e *ApplyError) Error() string {
	return fmt.Sprintf("serial: configure %s: %v", e.Device, e.Err)
}

func (e *ApplyError) Unwrap() error { return e.Err }

// ReadError reports a failed byte-level read. Any partially accumulated line
// is discarded. The port stays configured; the caller may retry the whole
// read.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("serial: read: %v", e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failed write on a path that did not lose data, such
// as flushing the output queue. The caller may retry on the still-configured
// port.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("serial: write: %v", e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// FatalWriteError reports a short write: the device accepted fewer bytes
// than requested, so the stream position is unknown and the port has moved
// to the failed state. All subsequent I/O on the port is rejected. It is a
// distinct type from WriteError so callers cannot mistake it for a
// retryable condition.
type FatalWriteError struct {
	Written   int
	Requested int
	Err       error
}

func (e *FatalWriteError) Error() string {
	return fmt.Sprintf("serial: short write: %d of %d bytes: %v", e.Written, e.Requested, e.Err)
}

func (e *FatalWriteError) Unwrap() error { return e.Err }
