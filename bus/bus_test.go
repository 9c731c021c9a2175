package bus_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spitest"

	. "github.com/coreman2200/funtimes-flipdisc/bus"
	"github.com/coreman2200/funtimes-flipdisc/chain"
	"github.com/coreman2200/funtimes-flipdisc/frame"
	"github.com/coreman2200/funtimes-flipdisc/profile"
)

func send(t *testing.T, tr frame.Transport, f []byte) {
	require.NoError(t, tr.Enable())
	for _, b := range f {
		require.NoError(t, tr.TransmitByte(b))
	}
	require.NoError(t, tr.Latch())
}

func TestSPISendsOneTransactionPerFrame(t *testing.T) {
	f := []byte{0, 0, 0, 0x04, 0x00, 0x80}
	p := spitest.Playback{
		Playback: conntest.Playback{
			Ops: []conntest.IO{{W: f}},
		},
	}
	c, err := p.Connect(physic.MegaHertz, spi.Mode0, 8)
	require.NoError(t, err)
	en := &gpiotest.Pin{N: "EN", L: gpio.High}

	s := NewSPI(c, en)
	require.NoError(t, s.Enable())
	assert.Equal(t, gpio.Low, en.L)
	for _, b := range f {
		require.NoError(t, s.TransmitByte(b))
	}
	require.NoError(t, s.Latch())
	assert.Equal(t, gpio.High, en.L)
	require.NoError(t, p.Close())
}

func TestSPIRecordsRawBytes(t *testing.T) {
	buf := bytes.Buffer{}
	c, err := spitest.NewRecordRaw(&buf).Connect(physic.MegaHertz, spi.Mode0, 8)
	require.NoError(t, err)
	s := NewSPI(c, &gpiotest.Pin{N: "EN"})
	send(t, s, []byte{1, 2, 3})
	send(t, s, []byte{4})
	assert.Equal(t, []byte{1, 2, 3, 4}, buf.Bytes())
}

func TestByteOutsideFrame(t *testing.T) {
	s := NewSPI(nil, &gpiotest.Pin{N: "EN"})
	assert.ErrorIs(t, s.TransmitByte(1), ErrNotEnabled)

	r := &Recorder{}
	assert.ErrorIs(t, r.TransmitByte(1), ErrNotEnabled)
}

type edges struct {
	*gpiotest.Pin
	log *[]gpio.Level
}

func (e *edges) Out(l gpio.Level) error {
	*e.log = append(*e.log, l)
	return e.Pin.Out(l)
}

func TestBitBangMSBFirst(t *testing.T) {
	var bits, clk []gpio.Level
	data := &edges{Pin: &gpiotest.Pin{N: "DATA"}, log: &bits}
	clock := &edges{Pin: &gpiotest.Pin{N: "CLK"}, log: &clk}
	en := &gpiotest.Pin{N: "EN"}

	b := NewBitBang(data, clock, en)
	send(t, b, []byte{0b10100001})

	assert.Equal(t, []gpio.Level{true, false, true, false, false, false, false, true}, bits)
	// one idle low on enable then a high/low pair per bit
	assert.Len(t, clk, 1+16)
	assert.Equal(t, gpio.High, en.L)
}

type port struct {
	bytes.Buffer
	rts    []bool
	closed bool
}

func (p *port) SetRTS(rts bool) error {
	p.rts = append(p.rts, rts)
	return nil
}

func (p *port) Close() error {
	p.closed = true
	return nil
}

func TestSerialFramesWithRTS(t *testing.T) {
	p := &port{}
	s := NewSerial(p)
	send(t, s, []byte{0, 0x21, 0})
	assert.Equal(t, []byte{0, 0x21, 0}, p.Bytes())
	assert.Equal(t, []bool{true, false}, p.rts)
	require.NoError(t, s.Close())
	assert.True(t, p.closed)
}

type brokenPort struct{ port }

func (p *brokenPort) Write(b []byte) (int, error) {
	return 0, errors.New("unplugged")
}

func TestSerialReleasesRTSOnError(t *testing.T) {
	p := &brokenPort{}
	s := NewSerial(p)
	require.NoError(t, s.Enable())
	require.NoError(t, s.TransmitByte(1))
	assert.Error(t, s.Latch())
	assert.Equal(t, []bool{true, false}, p.rts)
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	send(t, r, []byte{0xAB, 0})
	send(t, r, []byte{0, 0})
	assert.Len(t, r.Frames(), 2)
	assert.Equal(t, []byte{0, 0}, r.Last())
	assert.Equal(t, "ab00\n0000\n", r.Dump())
	r.Reset()
	assert.Empty(t, r.Frames())
	assert.Nil(t, r.Last())
}

func TestSimMirrorsDecodedFlips(t *testing.T) {
	c := chain.New(nil, profile.D3X1, profile.D7SEG)
	sim := NewSim(c)

	shape, _ := profile.Default().Shape(profile.D7SEG)
	ctl, _ := shape.Control(22, true)
	f, err := frame.Build(c, profile.D7SEG, 1, ctl)
	require.NoError(t, err)

	send(t, sim, f)
	send(t, sim, make([]byte, c.FrameLength()))

	m, err := sim.Board().Module(1)
	require.NoError(t, err)
	assert.True(t, m.Discs[22].Known)
	assert.True(t, m.Discs[22].On)
	assert.False(t, m.Discs[0].Known)
	assert.Len(t, sim.Frames(), 2)

	sim.Attach(c)
	m, _ = sim.Board().Module(1)
	assert.False(t, m.Discs[22].Known)
}

func TestSimRejectsGarbage(t *testing.T) {
	c := chain.New(nil, profile.D3X1)
	sim := NewSim(c)
	f := make([]byte, c.FrameLength())
	f[len(f)-1] = 0xFF
	require.NoError(t, sim.Enable())
	for _, b := range f {
		require.NoError(t, sim.TransmitByte(b))
	}
	assert.ErrorIs(t, sim.Latch(), frame.ErrUnknownFlip)
}

var errStuck = errors.New("stuck")

type stuckPin struct{ *gpiotest.Pin }

func (p *stuckPin) Out(gpio.Level) error { return errStuck }

type noRTSPort struct{ port }

func (p *noRTSPort) SetRTS(bool) error { return errStuck }

func TestFailedEnableLeavesFrameClosed(t *testing.T) {
	s := NewSPI(nil, &stuckPin{Pin: &gpiotest.Pin{N: "EN"}})
	assert.ErrorIs(t, s.Enable(), errStuck)
	assert.ErrorIs(t, s.TransmitByte(1), ErrNotEnabled)

	sr := NewSerial(&noRTSPort{})
	assert.ErrorIs(t, sr.Enable(), errStuck)
	assert.ErrorIs(t, sr.TransmitByte(1), ErrNotEnabled)
}
