package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/funtimes-flipdisc/chain"
	"github.com/coreman2200/funtimes-flipdisc/model"
	"github.com/coreman2200/funtimes-flipdisc/profile"
)

var ErrInvalid = errors.New("invalid config")

// Driver names.
const (
	DriverSPI     = "spi"
	DriverBitBang = "bitbang"
	DriverSerial  = "serial"
	DriverSim     = "sim"
)

// RecommendedMaxDelay is the longest flip delay that still reads as
// animation rather than a stall.
const RecommendedMaxDelay = 100

type Pins struct {
	Enable  string `yaml:"enable"`  // EN, active low
	Charge  string `yaml:"charge"`  // CH
	Release string `yaml:"release"` // PL
	Data    string `yaml:"data,omitempty"`
	Clock   string `yaml:"clock,omitempty"`
}

// Expander routes the pin names above to an MCP23xxx on I²C when Bus is
// set. Pin names are then port letter and bit, e.g. "A0" or "B7".
type Expander struct {
	Bus     string `yaml:"bus"`
	Addr    uint16 `yaml:"addr"`
	Variant string `yaml:"variant"` // mcp23008 | mcp23017
}

type SPI struct {
	Dev     string `yaml:"dev"`      // e.g. /dev/spidev0.0, "" for the first port
	SpeedHz int64  `yaml:"speed_hz"` // e.g. 1000000
}

type Serial struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

type Preview struct {
	Kind       string `yaml:"kind"` // "" | screen | nrzled
	Dev        string `yaml:"dev,omitempty"`
	Face       string `yaml:"face,omitempty"`       // color side as RRGGBB hex
	Brightness int    `yaml:"brightness,omitempty"` // 1..255, 0 keeps the default
}

// Style turns the preview colors into a board style.
func (p Preview) Style() (model.Style, error) {
	var st model.Style
	if p.Face != "" {
		v, err := strconv.ParseUint(strings.TrimPrefix(p.Face, "#"), 16, 24)
		if err != nil {
			return st, fmt.Errorf("preview.face %q: %w", p.Face, ErrInvalid)
		}
		st.Face = uint32(v)
	}
	if p.Brightness < 0 || p.Brightness > 255 {
		return st, fmt.Errorf("preview.brightness %d not in 0..255: %w", p.Brightness, ErrInvalid)
	}
	st.Brightness = uint8(p.Brightness)
	return st, nil
}

type Config struct {
	Driver      string         `yaml:"driver"` // spi | bitbang | serial | sim
	Profile     string         `yaml:"profile,omitempty"`
	Chain       []profile.Type `yaml:"chain"`
	FlipDelayMs int            `yaml:"flip_delay_ms"`

	Pins     Pins     `yaml:"pins"`
	Expander Expander `yaml:"expander,omitempty"`
	SPI      SPI      `yaml:"spi,omitempty"`
	Serial   Serial   `yaml:"serial,omitempty"`
	Preview  Preview  `yaml:"preview,omitempty"`

	LogLevel    string `yaml:"log_level"`
	Listen      string `yaml:"listen"`
	FallbackSim bool   `yaml:"fallback_sim"`
}

// Default wires a Raspberry Pi header: SPI0 for data, GPIO for EN, CH and
// PL.
func Default() *Config {
	return &Config{
		Driver:      DriverSPI,
		Profile:     profile.FlipoName,
		Chain:       []profile.Type{profile.D7SEG},
		FlipDelayMs: 0,
		Pins: Pins{
			Enable:  "GPIO25",
			Charge:  "GPIO24",
			Release: "GPIO23",
			Data:    "GPIO10",
			Clock:   "GPIO11",
		},
		SPI:         SPI{SpeedHz: 1000000},
		Serial:      Serial{Baud: 115200},
		LogLevel:    "info",
		Listen:      ":8080",
		FallbackSim: true,
	}
}

// Load reads path over the defaults, so a file only needs the fields it
// changes.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate checks c and returns warnings for legal but unusual values.
func (c *Config) Validate() (warnings []string, err error) {
	var errs []error
	switch c.Driver {
	case DriverSPI, DriverSim:
	case DriverBitBang:
		if c.Pins.Data == "" || c.Pins.Clock == "" {
			errs = append(errs, fmt.Errorf("bitbang needs pins.data and pins.clock: %w", ErrInvalid))
		}
	case DriverSerial:
		if c.Serial.Port == "" {
			errs = append(errs, fmt.Errorf("serial needs serial.port: %w", ErrInvalid))
		}
	default:
		errs = append(errs, fmt.Errorf("driver %q: %w", c.Driver, ErrInvalid))
	}
	if len(c.Chain) > chain.MaxSlots {
		errs = append(errs, fmt.Errorf("%d modules, chain holds %d: %w", len(c.Chain), chain.MaxSlots, ErrInvalid))
	}
	if c.FlipDelayMs < 0 || c.FlipDelayMs > 255 {
		errs = append(errs, fmt.Errorf("flip_delay_ms %d not in 0..255: %w", c.FlipDelayMs, ErrInvalid))
	} else if c.FlipDelayMs > RecommendedMaxDelay {
		warnings = append(warnings, fmt.Sprintf("flip_delay_ms %d is above the recommended %d", c.FlipDelayMs, RecommendedMaxDelay))
	}
	if c.Driver != DriverSim {
		if c.Pins.Charge == "" || c.Pins.Release == "" {
			errs = append(errs, fmt.Errorf("pulse supply needs pins.charge and pins.release: %w", ErrInvalid))
		}
		// the serial bridge enables frames with RTS
		if c.Driver != DriverSerial && c.Pins.Enable == "" {
			errs = append(errs, fmt.Errorf("pins.enable is required: %w", ErrInvalid))
		}
	}
	if _, perr := profile.Lookup(c.Profile); perr != nil {
		errs = append(errs, perr)
	}
	switch strings.ToLower(c.Expander.Variant) {
	case "", "mcp23008", "mcp23017":
	default:
		errs = append(errs, fmt.Errorf("expander.variant %q: %w", c.Expander.Variant, ErrInvalid))
	}
	switch c.Preview.Kind {
	case "", "screen", "nrzled":
	default:
		errs = append(errs, fmt.Errorf("preview.kind %q: %w", c.Preview.Kind, ErrInvalid))
	}
	if _, serr := c.Preview.Style(); serr != nil {
		errs = append(errs, serr)
	}
	return warnings, errors.Join(errs...)
}
