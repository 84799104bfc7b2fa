package serial

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"
)

var (
	errNoProgress = errors.New("device stopped accepting bytes")
	errNoData     = errors.New("no data before inter-byte timeout")
)

// Write sends buf to the device one byte per syscall, stopping at the first
// byte the device refuses, and returns the number of bytes actually written.
// A short write means the stream position is unknown: the port moves to the
// failed state and the error is a *FatalWriteError the caller must not treat
// as retryable. On success the port settles briefly and flushes the output
// queue before returning.
//
// Rejected with ErrNotConfigured unless the port is configured.
func (p *Port) Write(buf []byte) (int, error) {
	if p.state != stateConfigured {
		return 0, ErrNotConfigured
	}

	written := 0
	var cause error
	for written < len(buf) {
		n, err := unix.Write(p.fd, buf[written:written+1])
		if err != nil || n <= 0 {
			cause = err
			break
		}
		written++
	}

	if written != len(buf) {
		if cause == nil {
			cause = errNoProgress
		}
		p.state = stateFailed
		p.logf("fatal short write on %s: %d of %d bytes: %v", p.device, written, len(buf), cause)
		return written, &FatalWriteError{Written: written, Requested: len(buf), Err: cause}
	}

	// Let the device drain before discarding whatever is left in the queue.
	time.Sleep(settleDelay)
	if err := p.flush(unix.TCOFLUSH); err != nil {
		return written, &WriteError{Err: err}
	}
	p.logf("wrote %d bytes to %s", written, p.device)
	return written, nil
}

// ReadLine flushes pending input, then accumulates bytes until a newline is
// seen or maxBytes bytes have been consumed. The newline is not part of the
// returned payload, which may be empty for an immediate blank line. A read
// failure on any byte discards the partial line and returns a *ReadError.
//
// The call blocks until a full line, maxBytes, or an error; how long a
// single byte may take is governed by the 0.5s inter-byte timeout set by
// Apply. Rejected with ErrNotConfigured unless the port is configured.
func (p *Port) ReadLine(maxBytes int) ([]byte, error) {
	if p.state != stateConfigured {
		return nil, ErrNotConfigured
	}

	// Drop stale input so the line starts at the next byte off the wire.
	if err := p.flush(unix.TCIFLUSH); err != nil {
		return nil, &ReadError{Err: err}
	}

	line := make([]byte, 0, 64)
	var b [1]byte
	for len(line) < maxBytes {
		n, err := unix.Read(p.fd, b[:])
		if err != nil {
			return nil, &ReadError{Err: err}
		}
		if n == 0 {
			return nil, &ReadError{Err: errNoData}
		}
		if b[0] == '\n' {
			break
		}
		line = append(line, b[0])
	}
	return line, nil
}
