package bus

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// BitBang shifts frames out MSB first on plain GPIO lines, for boards
// where the SPI controller is taken or absent. Data is sampled on the
// rising clock edge.
type BitBang struct {
	data  gpio.PinOut
	clock gpio.PinOut
	en    gpio.PinOut
	open  bool
}

func NewBitBang(data, clock, en gpio.PinOut) *BitBang {
	return &BitBang{data: data, clock: clock, en: en}
}

func (b *BitBang) Enable() error {
	if err := b.clock.Out(gpio.Low); err != nil {
		return err
	}
	b.open = true
	return b.en.Out(gpio.Low)
}

func (b *BitBang) TransmitByte(v byte) error {
	if !b.open {
		return ErrNotEnabled
	}
	for i := 7; i >= 0; i-- {
		if err := b.data.Out(v&(1<<uint(i)) != 0); err != nil {
			return err
		}
		if err := b.clock.Out(gpio.High); err != nil {
			return err
		}
		if err := b.clock.Out(gpio.Low); err != nil {
			return err
		}
	}
	return nil
}

func (b *BitBang) Latch() error {
	b.open = false
	return b.en.Out(gpio.High)
}

func (b *BitBang) String() string {
	return fmt.Sprintf("bitbang{data=%s, clk=%s, en=%s}", b.data, b.clock, b.en)
}
