package serial

import "fmt"

// Parity selects the parity generation and checking mode of the line.
type Parity int

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

func (p Parity) String() string {
	switch p {
	case ParityNone:
		return "none"
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	}
	return fmt.Sprintf("Parity(%d)", int(p))
}

// FlowControl selects the flow control mode of the line.
type FlowControl int

const (
	FlowNone FlowControl = iota
	FlowSoftware
	FlowHardware
	FlowBoth
)

func (f FlowControl) String() string {
	switch f {
	case FlowNone:
		return "none"
	case FlowSoftware:
		return "software"
	case FlowHardware:
		return "hardware"
	case FlowBoth:
		return "software+hardware"
	}
	return fmt.Sprintf("FlowControl(%d)", int(f))
}

// LineConfig fully describes a serial line: resolved baud rate, character
// size in bits, parity, flow control and stop bits. A Port holds an
// immutable copy once the configuration has been applied.
type LineConfig struct {
	BaudRate    int
	CharSize    int
	Parity      Parity
	FlowControl FlowControl
	StopBits    int
}

// Parameter word bit layout. Bits 0-1 select the character size, bits 2-3
// the parity mode, bits 4-5 the flow control mode, bit 6 the stop bit
// count. Bit 7 is reserved and must be zero.
const (
	charSizeMask = 0x03
	parityShift  = 2
	parityMask   = 0x03
	flowShift    = 4
	flowMask     = 0x03
	stopBit      = 0x40
	reservedBit  = 0x80
)

// DecodeParamWord decodes a packed 8-bit parameter word into a LineConfig.
// The BaudRate field is left zero; callers fill it with a resolved rate.
// Character size: 00→5, 01→6, 10→7, 11→8. Parity: 00 and 01→none, 10→even,
// 11→odd. Flow control: 00→off, 01→software, 10→hardware, 11→both. Bit 6
// set selects two stop bits. Words with the reserved bit set fail with
// *InvalidParameterError.
func DecodeParamWord(word byte) (LineConfig, error) {
	if word&reservedBit != 0 {
		return LineConfig{}, &InvalidParameterError{Word: word, Reason: "reserved bit 7 set"}
	}

	cfg := LineConfig{
		CharSize: 5 + int(word&charSizeMask),
		StopBits: 1,
	}

	switch (word >> parityShift) & parityMask {
	case 0, 1:
		// Two encodings for "off"; both are accepted on purpose.
		cfg.Parity = ParityNone
	case 2:
		cfg.Parity = ParityEven
	case 3:
		cfg.Parity = ParityOdd
	}

	switch (word >> flowShift) & flowMask {
	case 0:
		cfg.FlowControl = FlowNone
	case 1:
		cfg.FlowControl = FlowSoftware
	case 2:
		cfg.FlowControl = FlowHardware
	case 3:
		cfg.FlowControl = FlowBoth
	}

	if word&stopBit != 0 {
		cfg.StopBits = 2
	}

	return cfg, nil
}

// validate rejects configurations outside the enumerated combinations. Used
// by Apply so hand-built LineConfigs get the same checks as decoded ones.
func (c LineConfig) validate() error {
	if c.CharSize < 5 || c.CharSize > 8 {
		return &InvalidParameterError{Reason: fmt.Sprintf("character size %d not in [5,8]", c.CharSize)}
	}
	if c.Parity < ParityNone || c.Parity > ParityOdd {
		return &InvalidParameterError{Reason: fmt.Sprintf("unknown parity mode %d", int(c.Parity))}
	}
	if c.FlowControl < FlowNone || c.FlowControl > FlowBoth {
		return &InvalidParameterError{Reason: fmt.Sprintf("unknown flow control mode %d", int(c.FlowControl))}
	}
	if c.StopBits != 1 && c.StopBits != 2 {
		return &InvalidParameterError{Reason: fmt.Sprintf("stop bits %d not 1 or 2", c.StopBits)}
	}
	if _, ok := baudToUnix(c.BaudRate); !ok {
		return &InvalidParameterError{Reason: fmt.Sprintf("baud rate %d not in supported set", c.BaudRate)}
	}
	return nil
}
