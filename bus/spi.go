// Package bus holds the transports that carry frames to the shift-register
// chain: a hardware SPI port, bit-banged GPIO, a serial bridge and
// in-memory recorders for dry runs.
package bus

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

var ErrNotEnabled = errors.New("byte sent outside of a frame")

// DefaultSpeed is slow enough for long ribbon cables between modules.
const DefaultSpeed = 1 * physic.MegaHertz

// SPI shifts frames out of a hardware SPI port. The enable line is active
// low: it is pulled low for the duration of a frame and released on Latch,
// which also commits the registers' contents to the outputs.
type SPI struct {
	conn spi.Conn
	port spi.PortCloser
	en   gpio.PinOut
	buf  []byte
	open bool
}

func NewSPI(c spi.Conn, en gpio.PinOut) *SPI {
	return &SPI{conn: c, en: en}
}

// OpenSPI opens dev ("" for the first port) in mode 0, 8 bits per word.
func OpenSPI(dev string, hz physic.Frequency, en gpio.PinOut) (*SPI, error) {
	if hz == 0 {
		hz = DefaultSpeed
	}
	p, err := spireg.Open(dev)
	if err != nil {
		return nil, fmt.Errorf("spi %q: %w", dev, err)
	}
	c, err := p.Connect(hz, spi.Mode0, 8)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("spi %q connect: %w", dev, err)
	}
	s := NewSPI(c, en)
	s.port = p
	return s, nil
}

func (s *SPI) Enable() error {
	s.buf = s.buf[:0]
	if err := s.en.Out(gpio.Low); err != nil {
		return err
	}
	s.open = true
	return nil
}

func (s *SPI) TransmitByte(b byte) error {
	if !s.open {
		return ErrNotEnabled
	}
	s.buf = append(s.buf, b)
	return nil
}

// Latch sends the buffered frame in a single transaction and releases the
// enable line, even when the transaction failed.
func (s *SPI) Latch() error {
	s.open = false
	var err error
	if len(s.buf) > 0 {
		err = s.conn.Tx(s.buf, nil)
	}
	if eerr := s.en.Out(gpio.High); err == nil {
		err = eerr
	}
	return err
}

func (s *SPI) Close() error {
	if s.port == nil {
		return nil
	}
	return s.port.Close()
}

func (s *SPI) String() string {
	return fmt.Sprintf("spi{%s, en=%s}", s.conn, s.en)
}
