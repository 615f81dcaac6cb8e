package sensors

import (
	"fmt"

	"github.com/basso-labs/ledsign/internal/config"
	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/host"
)

// OpenBus initializes the periph.io host drivers and opens the named I2C
// bus (per spec.md §4.4, bus "1"), returning a closer the caller must
// release on shutdown.
func OpenBus(name string) (i2c.BusCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("sensors: host init: %w", err)
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("sensors: open bus %q: %w", name, err)
	}
	return bus, nil
}

// DefaultBusName is the I2C bus the BH1750 sits on.
const DefaultBusName = config.DefaultI2CBus
