package sensors

import (
	"context"
	"math"
	"time"

	"github.com/basso-labs/ledsign"
	"github.com/basso-labs/ledsign/brightness"
	"github.com/basso-labs/ledsign/internal/brokerclient"
	"github.com/montanaflynn/stats"
)

// windowSize is the rolling-mean window length, per spec.md §4.4 step 3.
const windowSize = 10

// maxStep is the largest brightness change applied per cycle, per spec.md
// §4.4 step 5.
const maxStep = 5

// cycleSleep is how long the controller waits between readings once the
// target brightness has been reached, and the backoff applied after an
// I2C error.
const cycleSleep = time.Second

// luxFullScale is the lux reading at which normalized brightness saturates
// to 1, per spec.md §4.4 step 1.
const luxFullScale = 400.0

// gamma boosts low-light perception in the brightness mapping.
const gamma = 0.6

// LuxReader is the narrow interface the controller needs from a sensor,
// so tests can substitute a fake.
type LuxReader interface {
	ReadLux() (int, error)
}

// Controller is the Ambient controller.
type Controller struct {
	sensor  LuxReader
	broker  brokerclient.Client
	logger  ledsign.Logger
	sleep   func(time.Duration)
	window  []float64
	current int
}

// NewController constructs a [Controller] whose current brightness starts
// at 50. The first reading already steps it toward the window's mean; it
// does not wait for a full window.
func NewController(sensor LuxReader, broker brokerclient.Client, logger ledsign.Logger) *Controller {
	return &Controller{
		sensor:  sensor,
		broker:  broker,
		logger:  logger,
		sleep:   time.Sleep,
		current: brightness.ClampRender(50),
	}
}

// Run samples, maps, and publishes brightness in a loop until ctx is
// canceled.
func (c *Controller) Run(ctx context.Context) {
	for ctx.Err() == nil {
		if err := c.step(ctx); err != nil {
			c.logger.Warnf("ledsign: sensors: %s", err.Error())
			c.sleep(cycleSleep)
		}
	}
}

func (c *Controller) step(ctx context.Context) error {
	lux, err := c.sensor.ReadLux()
	if err != nil {
		return err
	}

	target, err := c.pushAndTarget(lux)
	if err != nil {
		return err
	}

	diff := target - c.current
	if diff == 0 {
		c.sleep(cycleSleep)
		return nil
	}

	step := maxStep
	if abs(diff) < maxStep {
		step = abs(diff)
	}
	if diff < 0 {
		step = -step
	}
	c.current = brightness.ClampRender(c.current + step)

	if err := c.broker.Publish(ctx, brokerclient.PlayerBrightnessTopic, c.current); err != nil {
		return err
	}
	return c.broker.SetInt(ctx, brokerclient.PlayerBrightnessKey, c.current)
}

// pushAndTarget maps a lux reading into [1,100], pushes it into the
// rolling window, and returns the window's integer mean as the target
// brightness.
func (c *Controller) pushAndTarget(lux int) (int, error) {
	normalized := math.Min(float64(lux)/luxFullScale, 1)
	mapped := math.Pow(normalized, gamma)*99 + 1

	c.window = append(c.window, math.Round(mapped))
	if len(c.window) > windowSize {
		c.window = c.window[len(c.window)-windowSize:]
	}

	mean, err := stats.Mean(c.window)
	if err != nil {
		return 0, err
	}
	return brightness.ClampRender(int(math.Round(mean))), nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
