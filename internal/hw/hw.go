// Package hw brings up the host, the pins and the bus named by a config.
package hw

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/mcp23xxx"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"
	"periph.io/x/host/v3"

	"github.com/coreman2200/funtimes-flipdisc/bus"
	"github.com/coreman2200/funtimes-flipdisc/chain"
	"github.com/coreman2200/funtimes-flipdisc/frame"
	"github.com/coreman2200/funtimes-flipdisc/internal/config"
	"github.com/coreman2200/funtimes-flipdisc/model"
	"github.com/coreman2200/funtimes-flipdisc/profile"
	"github.com/coreman2200/funtimes-flipdisc/pulse"
)

var ErrNoPin = errors.New("pin not found")

// Rig is everything a controller needs, opened from a config.
type Rig struct {
	Driver    string
	Profile   *profile.Profile
	Transport frame.Transport
	Seq       *pulse.Sequencer
	Style     model.Style
	// Preview is drawn by the caller after each command. The simulator
	// draws on its own and leaves it nil.
	Preview display.Drawer

	closers []func() error
}

func (r *Rig) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		errs = append(errs, r.closers[i]())
	}
	return errors.Join(errs...)
}

// Open initializes the host and builds the rig. When hardware bring-up
// fails and cfg.FallbackSim is set, a simulated rig is returned instead.
func Open(cfg *config.Config, log zerolog.Logger) (*Rig, error) {
	prof, err := profile.Lookup(cfg.Profile)
	if err != nil {
		return nil, err
	}
	st, err := cfg.Preview.Style()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == config.DriverSim {
		return openSim(cfg, prof, st, log), nil
	}
	r, err := openHardware(cfg, prof, log)
	if err != nil {
		if !cfg.FallbackSim {
			return nil, err
		}
		log.Warn().Err(err).Str("driver", cfg.Driver).Msg("hardware init failed; falling back to SIM")
		return openSim(cfg, prof, st, log), nil
	}
	r.Style = st
	return r, nil
}

// NewBoard returns an empty board in the rig's preview style.
func (r *Rig) NewBoard() *model.Board {
	b := model.NewBoard(chain.New(r.Profile))
	r.Style.Apply(b)
	return b
}

func openSim(cfg *config.Config, prof *profile.Profile, st model.Style, log zerolog.Logger) *Rig {
	r := &Rig{Driver: config.DriverSim, Profile: prof, Style: st}
	var opts []bus.SimOption
	opts = append(opts, bus.WithSimLogger(log), bus.WithStyle(st))
	if cfg.Preview.Kind == "screen" {
		opts = append(opts, bus.WithDrawer(screen.New(discCount(cfg, prof))))
	}
	r.Transport = bus.NewSim(chain.New(prof), opts...)
	r.Seq = pulse.New(&gpiotest.Pin{N: "CH"}, &gpiotest.Pin{N: "PL"}, nil, delay(cfg))
	return r
}

func openHardware(cfg *config.Config, prof *profile.Profile, log zerolog.Logger) (*Rig, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	r := &Rig{Driver: cfg.Driver, Profile: prof}

	pins, err := r.pinSource(cfg)
	if err != nil {
		return nil, err
	}
	out := func(name string, l gpio.Level) (gpio.PinOut, error) {
		p, err := pins(name)
		if err != nil {
			return nil, err
		}
		if err := p.Out(l); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return p, nil
	}

	ch, err := out(cfg.Pins.Charge, gpio.Low)
	if err != nil {
		return nil, r.fail(err)
	}
	pl, err := out(cfg.Pins.Release, gpio.Low)
	if err != nil {
		return nil, r.fail(err)
	}
	r.Seq = pulse.New(ch, pl, pulse.RealClock{}, delay(cfg))
	r.closers = append(r.closers, r.Seq.Halt)

	switch cfg.Driver {
	case config.DriverSPI:
		en, err := out(cfg.Pins.Enable, gpio.High)
		if err != nil {
			return nil, r.fail(err)
		}
		s, err := bus.OpenSPI(cfg.SPI.Dev, physic.Frequency(cfg.SPI.SpeedHz)*physic.Hertz, en)
		if err != nil {
			return nil, r.fail(err)
		}
		r.Transport = s
		r.closers = append(r.closers, s.Close)
	case config.DriverBitBang:
		en, err := out(cfg.Pins.Enable, gpio.High)
		if err != nil {
			return nil, r.fail(err)
		}
		data, err := out(cfg.Pins.Data, gpio.Low)
		if err != nil {
			return nil, r.fail(err)
		}
		clk, err := out(cfg.Pins.Clock, gpio.Low)
		if err != nil {
			return nil, r.fail(err)
		}
		r.Transport = bus.NewBitBang(data, clk, en)
	case config.DriverSerial:
		s, err := bus.OpenSerial(cfg.Serial.Port, cfg.Serial.Baud)
		if err != nil {
			return nil, r.fail(err)
		}
		r.Transport = s
		r.closers = append(r.closers, s.Close)
	default:
		return nil, r.fail(fmt.Errorf("driver %q: %w", cfg.Driver, config.ErrInvalid))
	}

	if err := r.openPreview(cfg, prof); err != nil {
		log.Warn().Err(err).Str("preview", cfg.Preview.Kind).Msg("preview disabled")
	}
	log.Info().Str("driver", cfg.Driver).Str("transport", fmt.Sprint(r.Transport)).Msg("hardware ready")
	return r, nil
}

func (r *Rig) fail(err error) error {
	_ = r.Close()
	return err
}

// pinSource resolves pin names on the SoC, or on an MCP23xxx expander when
// one is configured. Expander pins are named by port letter and bit: A0,
// B7.
func (r *Rig) pinSource(cfg *config.Config) (func(string) (gpio.PinOut, error), error) {
	if cfg.Expander.Bus == "" && cfg.Expander.Variant == "" {
		return func(name string) (gpio.PinOut, error) {
			p := gpioreg.ByName(name)
			if p == nil {
				return nil, fmt.Errorf("%q: %w", name, ErrNoPin)
			}
			return p, nil
		}, nil
	}

	b, err := i2creg.Open(cfg.Expander.Bus)
	if err != nil {
		return nil, fmt.Errorf("i2c %q: %w", cfg.Expander.Bus, err)
	}
	r.closers = append(r.closers, b.Close)
	variant := mcp23xxx.MCP23017
	if strings.EqualFold(cfg.Expander.Variant, "mcp23008") {
		variant = mcp23xxx.MCP23008
	}
	addr := cfg.Expander.Addr
	if addr == 0 {
		addr = 0x20
	}
	dev, err := mcp23xxx.NewI2C(b, variant, addr)
	if err != nil {
		return nil, r.fail(fmt.Errorf("%v at 0x%02x: %w", variant, addr, err))
	}
	r.closers = append(r.closers, dev.Close)

	return func(name string) (gpio.PinOut, error) {
		port, bit, err := parseExpanderPin(name)
		if err != nil {
			return nil, err
		}
		if port >= len(dev.Pins) || bit >= len(dev.Pins[port]) {
			return nil, fmt.Errorf("%q on %v: %w", name, variant, ErrNoPin)
		}
		return dev.Pins[port][bit], nil
	}, nil
}

func parseExpanderPin(name string) (port, bit int, err error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if len(n) < 2 || n[0] < 'A' || n[0] > 'B' {
		return 0, 0, fmt.Errorf("%q: %w", name, ErrNoPin)
	}
	bit, err = strconv.Atoi(n[1:])
	if err != nil || bit < 0 || bit > 7 {
		return 0, 0, fmt.Errorf("%q: %w", name, ErrNoPin)
	}
	return int(n[0] - 'A'), bit, nil
}

func (r *Rig) openPreview(cfg *config.Config, prof *profile.Profile) error {
	n := discCount(cfg, prof)
	switch cfg.Preview.Kind {
	case "screen":
		r.Preview = screen.New(n)
	case "nrzled":
		p, err := spireg.Open(cfg.Preview.Dev)
		if err != nil {
			return err
		}
		d, err := nrzled.NewSPI(p, &nrzled.Opts{
			NumPixels: n,
			Channels:  3,
			Freq:      2500 * physic.KiloHertz,
		})
		if err != nil {
			p.Close()
			return err
		}
		r.Preview = d
		r.closers = append(r.closers, d.Halt, p.Close)
	}
	return nil
}

func discCount(cfg *config.Config, prof *profile.Profile) int {
	n := 0
	for _, t := range cfg.Chain {
		if s, ok := prof.Shape(t); ok {
			n += s.Discs()
		}
	}
	if n == 0 {
		n = 1
	}
	return n
}

func delay(cfg *config.Config) pulse.Option {
	return pulse.WithDelay(time.Duration(cfg.FlipDelayMs) * time.Millisecond)
}
