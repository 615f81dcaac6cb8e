// Package director implements the Orchestrator: it drives the Renderer,
// pushes frames into the broker's queue, applies backpressure when the
// Transport stalls, and relays brightness updates to the Renderer.
package director

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/basso-labs/ledsign"
	"github.com/basso-labs/ledsign/brightness"
	"github.com/basso-labs/ledsign/internal/brokerclient"
)

// Renderer is the subset of the player [player.Engine] the director
// drives. It is an interface so tests can substitute a stub renderer.
type Renderer interface {
	Play() (wrapped bool)
	GetImageData() []byte
	SetBrightness(v int)
}

// stallRecheckDelay is how long the Director waits before re-checking a
// queue that appears full, per spec.md §4.3 step 3.
const stallRecheckDelay = 5 * time.Millisecond

// stallCooldown is how long the Director waits after flushing a stalled
// queue before resuming.
const stallCooldown = 100 * time.Millisecond

// errorBackoff is the sleep issued after any loop error, per spec.md
// §4.3 step 4.
const errorBackoff = time.Second

// Director is the Orchestrator.
type Director struct {
	renderer Renderer
	broker   brokerclient.Client
	logger   ledsign.Logger
	fps      int
	running  atomic.Bool
}

// New constructs a [Director]. fps is the queue-length threshold at
// which the Director suspects the Transport has stalled (one second's
// worth of buffered frames).
func New(renderer Renderer, broker brokerclient.Client, logger ledsign.Logger, fps int) *Director {
	d := &Director{renderer: renderer, broker: broker, logger: logger, fps: fps}
	d.running.Store(true)
	return d
}

// Stop requests the run loop to exit after its current iteration.
func (d *Director) Stop() {
	d.running.Store(false)
}

// Startup applies any persisted brightness to the renderer and
// subscribes to brightness updates, returning a function that must be
// called to stop the subscription when the caller is done with it.
func (d *Director) Startup(ctx context.Context) (stop func(), err error) {
	if v, ok, err := d.broker.GetInt(ctx, brokerclient.PlayerBrightnessKey); err == nil && ok {
		d.renderer.SetBrightness(brightness.ClampRender(v))
	} else if err != nil {
		return nil, err
	}

	subCtx, cancel := context.WithCancel(ctx)
	ch, err := d.broker.Subscribe(subCtx, brokerclient.PlayerBrightnessTopic)
	if err != nil {
		cancel()
		return nil, err
	}

	go func() {
		for v := range ch {
			d.renderer.SetBrightness(brightness.ClampRender(v))
		}
	}()

	return cancel, nil
}

// Run drives the renderer and feeds the broker's frame queue until Stop
// is called or ctx is canceled.
func (d *Director) Run(ctx context.Context) {
	for d.running.Load() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		d.renderer.Play()
		frame := d.renderer.GetImageData()

		queueLen, err := d.broker.PushFrame(ctx, frame)
		if err != nil {
			d.logger.Warnf("ledsign: director: push failed: %s", err.Error())
			sleep(ctx, errorBackoff)
			continue
		}

		if queueLen == int64(d.fps) {
			d.handlePossibleStall(ctx)
		}
	}
}

// handlePossibleStall implements spec.md §4.3 step 3: re-check the queue
// after a short delay, and if it is still full, presume the Transport
// has stalled, flush the queue, and cool down before resuming.
func (d *Director) handlePossibleStall(ctx context.Context) {
	sleep(ctx, stallRecheckDelay)

	queueLen, err := d.broker.QueueLen(ctx)
	if err != nil {
		d.logger.Warnf("ledsign: director: queue length check failed: %s", err.Error())
		sleep(ctx, errorBackoff)
		return
	}
	if queueLen != int64(d.fps) {
		return
	}

	if err := d.broker.FlushFrames(ctx); err != nil {
		d.logger.Warnf("ledsign: director: flush failed: %s", err.Error())
		sleep(ctx, errorBackoff)
		return
	}
	sleep(ctx, stallCooldown)
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
