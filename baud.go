package serial

import "golang.org/x/sys/unix"

// supportedBauds lists every line speed the port can be driven at, ascending,
// paired with the termios speed bits for the Cflag.
var supportedBauds = []struct {
	rate int
	bits uint32
}{
	{50, unix.B50},
	{75, unix.B75},
	{110, unix.B110},
	{134, unix.B134},
	{150, unix.B150},
	{200, unix.B200},
	{300, unix.B300},
	{600, unix.B600},
	{1200, unix.B1200},
	{1800, unix.B1800},
	{2400, unix.B2400},
	{4800, unix.B4800},
	{9600, unix.B9600},
	{19200, unix.B19200},
	{38400, unix.B38400},
	{57600, unix.B57600},
	{115200, unix.B115200},
	{230400, unix.B230400},
	{460800, unix.B460800},
}

// ResolveBaud maps a requested baud rate onto the supported set: the largest
// supported rate not exceeding the request. Requests above 460800 clamp to
// 460800, requests below 50 clamp to 50. Always succeeds.
func ResolveBaud(requested int) int {
	for i := len(supportedBauds) - 1; i > 0; i-- {
		if requested >= supportedBauds[i].rate {
			return supportedBauds[i].rate
		}
	}
	return supportedBauds[0].rate
}

// baudToUnix returns the termios speed bits for a rate from the supported
// set. Rates not in the set report false; callers resolve first.
func baudToUnix(rate int) (uint32, bool) {
	for _, b := range supportedBauds {
		if b.rate == rate {
			return b.bits, true
		}
	}
	return 0, false
}
