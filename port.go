package serial

import (
	"errors"
	"os"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// settleDelay is how long the port waits after changing line parameters or
// finishing a write before flushing, since devices may emit transient bytes
// right after a reconfiguration.
const settleDelay = 10 * time.Millisecond

type portState int

const (
	stateOpened portState = iota
	stateConfigured
	stateFailed
	stateClosed
)

var errPortUnusable = errors.New("port is failed or closed")

// Port is an exclusively owned handle to a serial character device. It is
// created in the opened state by OpenDevice and becomes usable for I/O only
// after Apply succeeds. A failed Apply or a fatal short write moves it to a
// terminal failed state; the caller must Close it and start over.
//
// A Port is not safe for concurrent use; callers needing shared access must
// serialize externally.
type Port struct {
	fd        int
	file      *os.File
	device    string
	state     portState
	config    LineConfig
	closeOnce sync.Once
	logger    *zap.SugaredLogger
}

// OpenDevice opens the character device at path for exclusive read/write
// access. The device does not become the controlling terminal and writes are
// synchronous. The returned Port rejects I/O until Apply has configured it.
func OpenDevice(path string) (*Port, error) {
	fd, err := syscall.Open(path, syscall.O_RDWR|syscall.O_NOCTTY|syscall.O_SYNC, 0666)
	if err != nil {
		return nil, &OpenError{Device: path, Err: err}
	}

	return &Port{
		fd:     fd,
		file:   os.NewFile(uintptr(fd), path),
		device: path,
		state:  stateOpened,
	}, nil
}

// Open opens the device and applies a configuration in one step: the
// requested baud is resolved per ResolveBaud and the parameter word decoded
// per DecodeParamWord. On any failure the device is closed and an error from
// the taxonomy in this package is returned.
func Open(device string, baudRate int, paramWord byte) (*Port, error) {
	cfg, err := DecodeParamWord(paramWord)
	if err != nil {
		return nil, err
	}
	cfg.BaudRate = ResolveBaud(baudRate)

	p, err := OpenDevice(device)
	if err != nil {
		return nil, err
	}
	if err := p.Apply(cfg); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// SetLogger attaches an optional debug logger. The port never logs unless
// one is set.
func (p *Port) SetLogger(logger *zap.SugaredLogger) {
	p.logger = logger
}

func (p *Port) logf(format string, v ...any) {
	if p.logger != nil {
		p.logger.Infof(format, v...)
	}
}

// Configured reports whether the port is ready for Write and ReadLine.
func (p *Port) Configured() bool {
	return p.state == stateConfigured
}

// Config returns the applied line configuration. Zero until Apply succeeds.
func (p *Port) Config() LineConfig {
	return p.config
}

// Apply validates cfg, derives the full termios attribute set from the
// device's current attributes and commits it in a single TCSETS. The line is
// put in raw mode: receiver enabled, local mode, no CR/NL translation, no
// echo, no canonical processing, VMIN=1 and a 0.5s inter-byte timeout.
// After a successful commit the port settles briefly and flushes both
// queues.
//
// Applying the same configuration twice yields the same line state. On any
// failure the port moves to the failed state and all further I/O is
// rejected.
func (p *Port) Apply(cfg LineConfig) error {
	if p.state == stateFailed || p.state == stateClosed {
		return &ApplyError{Device: p.device, Err: errPortUnusable}
	}

	if err := cfg.validate(); err != nil {
		p.state = stateFailed
		return &ApplyError{Device: p.device, Err: err}
	}
	speed, _ := baudToUnix(cfg.BaudRate)

	tio, err := unix.IoctlGetTermios(p.fd, unix.TCGETS)
	if err != nil {
		p.state = stateFailed
		return &ApplyError{Device: p.device, Err: err}
	}

	// Raw mode
	tio.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL
	tio.Oflag = 0
	tio.Lflag &^= unix.ECHO | unix.ECHOE | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN

	// Line speed
	tio.Cflag &^= unix.CBAUD
	tio.Cflag |= speed
	tio.Ispeed = speed
	tio.Ospeed = speed

	// Character size
	tio.Cflag &^= unix.CSIZE
	switch cfg.CharSize {
	case 5:
		tio.Cflag |= unix.CS5
	case 6:
		tio.Cflag |= unix.CS6
	case 7:
		tio.Cflag |= unix.CS7
	case 8:
		tio.Cflag |= unix.CS8
	}

	// Ignore modem control lines, enable the receiver
	tio.Cflag |= unix.CLOCAL | unix.CREAD

	switch cfg.Parity {
	case ParityNone:
		tio.Cflag &^= unix.PARENB | unix.PARODD
		tio.Iflag &^= unix.INPCK
		tio.Iflag |= unix.IGNPAR
	case ParityEven:
		tio.Cflag |= unix.PARENB
		tio.Cflag &^= unix.PARODD
		tio.Iflag |= unix.INPCK
		tio.Iflag &^= unix.IGNPAR
	case ParityOdd:
		tio.Cflag |= unix.PARENB | unix.PARODD
		tio.Iflag |= unix.INPCK
		tio.Iflag &^= unix.IGNPAR
	}

	tio.Iflag &^= unix.IXON | unix.IXOFF | unix.IXANY
	tio.Cflag &^= unix.CRTSCTS
	switch cfg.FlowControl {
	case FlowSoftware:
		tio.Iflag |= unix.IXON | unix.IXOFF
	case FlowHardware:
		tio.Cflag |= unix.CRTSCTS
	case FlowBoth:
		tio.Iflag |= unix.IXON | unix.IXOFF
		tio.Cflag |= unix.CRTSCTS
	}

	if cfg.StopBits == 2 {
		tio.Cflag |= unix.CSTOPB
	} else {
		tio.Cflag &^= unix.CSTOPB
	}

	// One byte at a time, 0.5s between bytes
	tio.Cc[unix.VMIN] = 1
	tio.Cc[unix.VTIME] = 5

	if err := unix.IoctlSetTermios(p.fd, unix.TCSETS, tio); err != nil {
		p.state = stateFailed
		return &ApplyError{Device: p.device, Err: err}
	}

	// Let the line settle, then drop any transient bytes the device emitted
	// during the parameter change.
	time.Sleep(settleDelay)
	if err := p.flush(unix.TCIOFLUSH); err != nil {
		p.state = stateFailed
		return &ApplyError{Device: p.device, Err: err}
	}

	p.config = cfg
	p.state = stateConfigured
	p.logf("configured %s: %d baud, %d%s%d, flow %s",
		p.device, cfg.BaudRate, cfg.CharSize, parityLetter(cfg.Parity), cfg.StopBits, cfg.FlowControl)
	return nil
}

func parityLetter(p Parity) string {
	switch p {
	case ParityEven:
		return "E"
	case ParityOdd:
		return "O"
	}
	return "N"
}

func (p *Port) flush(queue int) error {
	return unix.IoctlSetInt(p.fd, unix.TCFLSH, queue)
}

// Close releases the underlying descriptor. Safe to call multiple times;
// only the first call has effect. Any state the port was in, including
// failed, is torn down the same way.
func (p *Port) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.state = stateClosed
		if p.file != nil {
			err = p.file.Close()
		}
	})
	return err
}
