package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/coreman2200/funtimes-flipdisc/internal/config"
	"github.com/coreman2200/funtimes-flipdisc/profile"
)

func TestDefaultIsValid(t *testing.T) {
	w, err := Default().Validate()
	assert.NoError(t, err)
	assert.Empty(t, w)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flipdisc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
driver: sim
chain: [D7SEG, d3x1, "0x7F", D2X1]
flip_delay_ms: 20
`), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverSim, c.Driver)
	assert.Equal(t, []profile.Type{profile.D7SEG, profile.D3X1, profile.D7SEG, profile.D3X1}, c.Chain)
	assert.Equal(t, 20, c.FlipDelayMs)
	assert.Equal(t, "GPIO24", c.Pins.Charge)
	assert.Equal(t, ":8080", c.Listen)
}

func TestLoadRejectsUnknownModule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flipdisc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chain: [D9X9]\n"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flipdisc.yaml")
	c := Default()
	c.Chain = []profile.Type{profile.D3X5, profile.D1X7}
	require.NoError(t, Save(path, c))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "- D3X5")

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

var TestConfigsFailValidation = []struct {
	Name   string
	Change func(c *Config)
}{
	{"unknown driver", func(c *Config) { c.Driver = "usb" }},
	{"too many modules", func(c *Config) { c.Chain = make([]profile.Type, 9) }},
	{"delay too long", func(c *Config) { c.FlipDelayMs = 256 }},
	{"missing pulse pin", func(c *Config) { c.Pins.Release = "" }},
	{"missing enable", func(c *Config) { c.Pins.Enable = "" }},
	{"bitbang without clock", func(c *Config) { c.Driver = DriverBitBang; c.Pins.Clock = "" }},
	{"serial without port", func(c *Config) { c.Driver = DriverSerial }},
	{"unknown profile", func(c *Config) { c.Profile = "flipo-1999" }},
	{"unknown expander", func(c *Config) { c.Expander.Variant = "pcf8574" }},
	{"unknown preview", func(c *Config) { c.Preview.Kind = "hdmi" }},
	{"face not hex", func(c *Config) { c.Preview.Face = "yellow" }},
	{"face too wide", func(c *Config) { c.Preview.Face = "1FFCC00" }},
	{"brightness too high", func(c *Config) { c.Preview.Brightness = 256 }},
}

func TestValidate(t *testing.T) {
	for _, v := range TestConfigsFailValidation {
		t.Run(v.Name, func(t *testing.T) {
			c := Default()
			v.Change(c)
			_, err := c.Validate()
			assert.Error(t, err)
		})
	}
}

func TestValidateWarnsOnSlowDelay(t *testing.T) {
	c := Default()
	c.FlipDelayMs = 150
	w, err := c.Validate()
	require.NoError(t, err)
	assert.Len(t, w, 1)
}

func TestSimNeedsNoPins(t *testing.T) {
	c := Default()
	c.Driver = DriverSim
	c.Pins = Pins{}
	_, err := c.Validate()
	assert.NoError(t, err)
}

func TestPreviewStyle(t *testing.T) {
	st, err := Preview{Face: "#ff8800", Brightness: 40}.Style()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xFF8800), st.Face)
	assert.Equal(t, uint8(40), st.Brightness)

	st, err = Preview{}.Style()
	require.NoError(t, err)
	assert.Zero(t, st)

	_, err = Preview{Brightness: -1}.Style()
	assert.ErrorIs(t, err, ErrInvalid)
}
