// Package serial configures and drives a byte-oriented serial link over a
// Linux character device (a UART exposed as a device node).
//
// The package has two halves, used in order:
//
//   - Line configuration: a requested baud rate is snapped onto the supported
//     speed set (50..460800) and a packed 8-bit parameter word is decoded
//     into character size, parity, flow control and stop bits. The resulting
//     LineConfig is committed to the device via termios in a single
//     operation.
//   - Framed transport: blocking byte-wise writes and newline-delimited
//     reads over the configured port, with an explicit error taxonomy
//     (OpenError, InvalidParameterError, ApplyError, ReadError, WriteError,
//     FatalWriteError).
//
// The model is deliberately single-threaded and blocking: no goroutines, no
// internal buffering, no cancellation. A Port is uniquely owned and not safe
// for concurrent use. The per-byte inter-character timeout (0.5s) set during
// configuration is the only thing bounding how long a single byte read may
// block.
//
// This package does **not** support Windows.
//
// Example usage:
//
//	// 8 data bits, no parity, no flow control, 1 stop bit
//	port, err := serial.Open("/dev/ttyUSB0", 9600, 0x03)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	if _, err := port.Write([]byte("C,INFO\n")); err != nil {
//	    var fatal *serial.FatalWriteError
//	    if errors.As(err, &fatal) {
//	        log.Fatalf("link is gone: %v", fatal)
//	    }
//	    log.Printf("write failed: %v", err)
//	}
//
//	line, err := port.ReadLine(256)
//	if err != nil {
//	    log.Printf("read failed: %v", err)
//	} else {
//	    fmt.Printf("received: %s\n", line)
//	}
package serial
