package sensors

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/basso-labs/ledsign/internal/brokerclient"
	"github.com/basso-labs/ledsign/internal/nulllog"
)

type fakeReader struct {
	lux []int
	i   int
	err error
}

func (f *fakeReader) ReadLux() (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.i >= len(f.lux) {
		f.i = len(f.lux) - 1
	}
	v := f.lux[f.i]
	f.i++
	return v, nil
}

func noSleep(time.Duration) {}

// TestBrightnessRampsTowardTarget implements spec.md §8 scenario 4: a
// sequence of rising lux readings should ramp current brightness toward
// the target in steps no larger than 5.
func TestBrightnessRampsTowardTarget(t *testing.T) {
	reader := &fakeReader{lux: []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 480, 480, 480, 480, 480, 480, 480, 480, 480, 480}}
	broker := brokerclient.NewFake()
	c := NewController(reader, broker, &nulllog.Logger{})
	c.sleep = noSleep
	c.current = 1

	ctx := context.Background()
	prev := c.current
	sawStepOverLimit := false
	for i := 0; i < len(reader.lux); i++ {
		if err := c.step(ctx); err != nil {
			t.Fatal(err)
		}
		if d := abs(c.current - prev); d > maxStep {
			sawStepOverLimit = true
		}
		prev = c.current
	}
	if sawStepOverLimit {
		t.Fatal("brightness changed by more than maxStep in one cycle")
	}
	if c.current <= 1 {
		t.Fatalf("expected brightness to ramp up from 1, got %d", c.current)
	}
}

func TestBrightnessClampedTo1And100(t *testing.T) {
	reader := &fakeReader{lux: []int{1000}}
	broker := brokerclient.NewFake()
	c := NewController(reader, broker, &nulllog.Logger{})
	c.sleep = noSleep

	for i := 0; i < 40; i++ {
		if err := c.step(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if c.current < 1 || c.current > 100 {
		t.Fatalf("brightness %d escaped [1,100]", c.current)
	}
}

func TestPublishesAndPersistsOnChange(t *testing.T) {
	reader := &fakeReader{lux: []int{400}}
	broker := brokerclient.NewFake()
	c := NewController(reader, broker, &nulllog.Logger{})
	c.sleep = noSleep
	c.current = 1

	ch, err := broker.Subscribe(context.Background(), brokerclient.PlayerBrightnessTopic)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.step(context.Background()); err != nil {
		t.Fatal(err)
	}

	select {
	case v := <-ch:
		if v != c.current {
			t.Fatalf("published %d, current is %d", v, c.current)
		}
	case <-time.After(time.Second):
		t.Fatal("no publish observed")
	}

	persisted, ok, err := broker.GetInt(context.Background(), brokerclient.PlayerBrightnessKey)
	if err != nil || !ok {
		t.Fatalf("expected persisted brightness, ok=%v err=%v", ok, err)
	}
	if persisted != c.current {
		t.Fatalf("persisted %d, current is %d", persisted, c.current)
	}
}

func TestSensorErrorBacksOffWithoutPublishing(t *testing.T) {
	reader := &fakeReader{err: errors.New("i2c: nack")}
	broker := brokerclient.NewFake()
	c := NewController(reader, broker, &nulllog.Logger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	slept := false
	c.sleep = func(d time.Duration) {
		if d == cycleSleep {
			slept = true
		}
		cancel()
	}

	if err := c.step(context.Background()); err == nil {
		t.Fatal("expected error from step")
	}
	// Run must back off after the failed step; the fake sleep cancels
	// ctx so Run returns after its first backoff.
	c.Run(ctx)
	if !slept {
		t.Fatal("expected backoff sleep on sensor error")
	}
	if n, _ := broker.QueueLen(context.Background()); n != 0 {
		t.Fatalf("expected no frames touched, queue len %d", n)
	}
	if _, ok, _ := broker.GetInt(context.Background(), brokerclient.PlayerBrightnessKey); ok {
		t.Fatal("expected no persisted brightness after a sensor error")
	}
}
