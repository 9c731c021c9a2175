package bus

import (
	"fmt"
	"io"

	"go.bug.st/serial"
)

const DefaultBaud = 115200

// SerialPort is the part of serial.Port the bridge needs.
type SerialPort interface {
	io.Writer
	SetRTS(rts bool) error
	Close() error
}

// Serial feeds a USB-serial bridge whose firmware shifts every received
// byte into the chain. RTS doubles as the enable line: it is asserted for
// the whole frame and dropped once the frame has been written, which
// latches it.
type Serial struct {
	port SerialPort
	name string
	buf  []byte
	open bool
}

func NewSerial(p SerialPort) *Serial {
	return &Serial{port: p}
}

func OpenSerial(name string, baud int) (*Serial, error) {
	if baud == 0 {
		baud = DefaultBaud
	}
	p, err := serial.Open(name, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", name, err)
	}
	s := NewSerial(p)
	s.name = name
	return s, nil
}

func (s *Serial) Enable() error {
	s.buf = s.buf[:0]
	if err := s.port.SetRTS(true); err != nil {
		return err
	}
	s.open = true
	return nil
}

func (s *Serial) TransmitByte(b byte) error {
	if !s.open {
		return ErrNotEnabled
	}
	s.buf = append(s.buf, b)
	return nil
}

func (s *Serial) Latch() error {
	s.open = false
	var err error
	if len(s.buf) > 0 {
		var n int
		n, err = s.port.Write(s.buf)
		if err == nil && n != len(s.buf) {
			err = io.ErrShortWrite
		}
	}
	if rerr := s.port.SetRTS(false); err == nil {
		err = rerr
	}
	return err
}

func (s *Serial) Close() error {
	return s.port.Close()
}

func (s *Serial) String() string {
	return fmt.Sprintf("serial{%s}", s.name)
}
