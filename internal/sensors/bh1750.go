// Package sensors implements the Ambient controller: it samples a
// BH1750FVI light sensor over I2C, smooths and rate-limits the reading,
// and publishes the result as the player's brightness.
package sensors

import (
	"time"

	"periph.io/x/periph/conn/i2c"
)

// Address is the BH1750FVI's fixed I2C address with its ADDR pin tied low.
const Address = 0x23

const (
	cmdPowerOn            = 0x01
	cmdOneTimeHighResMode = 0x21
)

const measurementDelay = 180 * time.Millisecond

// Bus is the subset of [i2c.Bus] the sensor needs, narrowed so tests can
// substitute a fake.
type Bus interface {
	Tx(addr uint16, w, r []byte) error
}

// Sensor drives a BH1750FVI in one-time high-resolution mode.
type Sensor struct {
	bus   Bus
	sleep func(time.Duration)
}

// NewSensor wraps bus. sleep defaults to time.Sleep; tests may override it.
func NewSensor(bus Bus) *Sensor {
	return &Sensor{bus: bus, sleep: time.Sleep}
}

// ReadLux performs one power-on/trigger/measure cycle and returns the
// computed lux value, per spec.md §4.4.
func (s *Sensor) ReadLux() (int, error) {
	dev := &i2c.Dev{Bus: busAdapter{s.bus}, Addr: Address}

	if err := dev.Tx([]byte{cmdPowerOn}, nil); err != nil {
		return 0, err
	}
	if err := dev.Tx([]byte{cmdOneTimeHighResMode}, nil); err != nil {
		return 0, err
	}

	s.sleep(measurementDelay)

	buf := make([]byte, 2)
	if err := dev.Tx(nil, buf); err != nil {
		return 0, err
	}

	raw := int(buf[0])<<8 | int(buf[1])
	return raw * 10 / 12, nil
}

// busAdapter adapts the narrow [Bus] interface to [i2c.Bus], which also
// requires Speed and String.
type busAdapter struct {
	Bus
}

func (busAdapter) Speed(hz int64) error { return nil }
func (busAdapter) String() string       { return "bh1750" }
