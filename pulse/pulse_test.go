package pulse_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	. "github.com/coreman2200/funtimes-flipdisc/pulse"
)

type trace []string

type wire struct {
	*gpiotest.Pin
	t      *trace
	failOn gpio.Level
	err    error
}

func (w *wire) Out(l gpio.Level) error {
	if w.err != nil && l == w.failOn {
		return w.err
	}
	*w.t = append(*w.t, fmt.Sprintf("%s=%s", w.N, l))
	return w.Pin.Out(l)
}

type clock struct {
	t *trace
}

func (c clock) Sleep(d time.Duration) {
	*c.t = append(*c.t, "sleep "+d.String())
}

func rig() (*trace, *wire, *wire, *Sequencer) {
	tr := &trace{}
	ch := &wire{Pin: &gpiotest.Pin{N: "CH"}, t: tr}
	pl := &wire{Pin: &gpiotest.Pin{N: "PL"}, t: tr}
	return tr, ch, pl, New(ch, pl, clock{tr})
}

func TestPrimeThenCycle(t *testing.T) {
	tr, ch, pl, s := rig()
	s.SetDelay(20 * time.Millisecond)

	require.NoError(t, s.Prime())
	require.NoError(t, s.Cycle())

	assert.Equal(t, trace{
		"PL=Low", "CH=High", "sleep 100ms", "CH=Low",
		"PL=Low", "CH=High", "sleep 100µs", "CH=Low",
		"PL=High", "sleep 1ms", "PL=Low",
		"sleep 20ms",
	}, *tr)
	assert.Equal(t, gpio.Low, ch.L)
	assert.Equal(t, gpio.Low, pl.L)
	assert.Equal(t, 1, s.Cycles())
	assert.Equal(t, Idle, s.State())
}

func TestFirstCycleChargesLong(t *testing.T) {
	tr, _, _, s := rig()
	require.False(t, s.Primed())
	require.NoError(t, s.Cycle())
	require.NoError(t, s.Cycle())
	assert.Equal(t, "sleep 100ms", (*tr)[2])
	assert.Contains(t, *tr, "sleep 100µs")
	assert.True(t, s.Primed())
	assert.Equal(t, 2, s.Cycles())
}

func TestTransitions(t *testing.T) {
	_, _, _, s := rig()
	s.SetDelay(time.Millisecond)
	var seen []string
	s.OnTransition(func(from, to State) {
		seen = append(seen, from.String()+">"+to.String())
	})
	require.NoError(t, s.Cycle())
	assert.Equal(t, []string{"idle>charging", "charging>release", "release>settling", "settling>idle"}, seen)
}

func TestZeroDelaySkipsSettleSleep(t *testing.T) {
	tr, _, _, s := rig()
	require.NoError(t, s.Prime())
	*tr = nil
	require.NoError(t, s.Cycle())
	assert.Equal(t, "PL=Low", (*tr)[len(*tr)-1])
}

func TestPinErrorLeavesSupplyOff(t *testing.T) {
	tr, ch, pl, s := rig()
	pl.failOn, pl.err = gpio.High, errors.New("stuck")

	err := s.Cycle()
	assert.ErrorIs(t, err, pl.err)
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, gpio.Low, ch.L)
	assert.Equal(t, gpio.Low, pl.L)
	assert.Equal(t, 0, s.Cycles())
	assert.Equal(t, "CH=Low", (*tr)[len(*tr)-1])
}

func TestCustomTiming(t *testing.T) {
	tr := &trace{}
	ch := &wire{Pin: &gpiotest.Pin{N: "CH"}, t: tr}
	pl := &wire{Pin: &gpiotest.Pin{N: "PL"}, t: tr}
	s := New(ch, pl, clock{tr}, WithTiming(Timing{Prime: time.Second, Charge: time.Millisecond, Pulse: 2 * time.Millisecond}), WithDelay(5*time.Millisecond))
	require.NoError(t, s.Cycle())
	assert.Equal(t, trace{
		"PL=Low", "CH=High", "sleep 1s", "CH=Low",
		"PL=High", "sleep 2ms", "PL=Low",
		"sleep 5ms",
	}, *tr)
	assert.Equal(t, 5*time.Millisecond, s.Delay())
}

func TestRealClock(t *testing.T) {
	start := time.Now()
	RealClock{}.Sleep(200 * time.Microsecond)
	assert.GreaterOrEqual(t, time.Since(start), 200*time.Microsecond)
}
