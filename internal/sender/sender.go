package sender

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/basso-labs/ledsign"
	"github.com/basso-labs/ledsign/brightness"
	"github.com/basso-labs/ledsign/frame"
	"github.com/basso-labs/ledsign/internal/brokerclient"
)

// popTimeout is how long [Sender] blocks on the frames queue per
// iteration (spec.md §4.1).
const popTimeout = time.Second

// queueEmptyRetry is the sleep issued when an iteration's queue pop
// times out with no frame available (spec.md §4.1 step 4). The deadline
// clock is not reset in this case: the next available frame is emitted
// as soon as it arrives.
const queueEmptyRetry = 100 * time.Microsecond

// Sender is the Transport: it pops one frame per tick from the broker,
// repackages it into row and commit packets, and emits them on a raw
// socket against a 1/240s deadline.
type Sender struct {
	socket  RawSocket
	clk     Clock
	broker  brokerclient.Client
	logger  ledsign.Logger
	width   int
	height  int
	running atomic.Bool

	rowBuf      []byte
	commitBuf   []byte
	brightness  int
}

// New constructs a [Sender]. width and height must match the frames the
// broker will deliver; a mismatch is caught per-frame, not here.
func New(socket RawSocket, clk Clock, broker brokerclient.Client, logger ledsign.Logger, width, height int) *Sender {
	s := &Sender{
		socket:     socket,
		clk:        clk,
		broker:     broker,
		logger:     logger,
		width:      width,
		height:     height,
		rowBuf:     make([]byte, rowPayloadLen(width)),
		commitBuf:  make([]byte, commitPayloadLen),
		brightness: brokerclient.DefaultSenderBrightness,
	}
	s.running.Store(true)
	return s
}

// Stop requests the run loop to exit after its current iteration.
func (s *Sender) Stop() {
	s.running.Store(false)
}

// Run drives the Transport until Stop is called or ctx is canceled. It
// never returns an error for transient I/O failures: those are logged
// and the loop proceeds to the next tick, per spec.md §7.
func (s *Sender) Run(ctx context.Context) {
	deadline := s.clk.Now() + Period
	for s.running.Load() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		payload, hwBrightness, ok, err := s.broker.PopFrameAndBrightness(ctx, popTimeout, brokerclient.SenderBrightnessKey)
		if err != nil {
			s.logger.Warnf("ledsign: sender: broker error: %s", err.Error())
			s.clk.Sleep(brokerclient.DefaultReconnectBackoff)
			continue
		}
		if ok {
			s.brightness = brightness.ClampHardware(hwBrightness)
		}

		if payload == nil {
			// Queue-empty: sleep briefly and retry without emitting a
			// commit. The deadline is not reset.
			s.clk.Sleep(queueEmptyRetry)
			continue
		}

		f := frame.Frame(payload)
		if err := f.Validate(s.width, s.height); err != nil {
			s.logger.Warnf("ledsign: sender: dropping frame: %s", err.Error())
			continue
		}

		s.emitRows(f)

		hybridWait(s.clk, deadline)
		deadline = s.clk.Now() + Period

		s.emitCommit()
	}
}

// emitRows writes every row packet for f, in ascending row order.
func (s *Sender) emitRows(f frame.Frame) {
	for row := 0; row < s.height; row++ {
		buildRowHeader(s.rowBuf, row, s.width)
		fillRowPixels(s.rowBuf, f, row, s.width)
		if _, err := s.socket.Send(EtherTypeRow, s.rowBuf); err != nil {
			s.logger.Warnf("ledsign: sender: row %d send failed: %s", row, err.Error())
		}
	}
}

// emitCommit writes the commit packet for the current brightness. This
// is the latch moment visible to the LEDs.
func (s *Sender) emitCommit() {
	buildCommitPayload(s.commitBuf, s.brightness)
	if _, err := s.socket.Send(EtherTypeCommit, s.commitBuf); err != nil {
		s.logger.Warnf("ledsign: sender: commit send failed: %s", err.Error())
	}
}
