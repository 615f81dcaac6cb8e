package brokerclient

import (
	"context"
	"sync"
	"time"
)

// Fake is an in-memory [Client] used by tests that exercise broker
// consumers without a real broker process, grounded on the teacher's own
// preference for small mockable interfaces (e.g. netem.MockableNIC).
type Fake struct {
	mu     sync.Mutex
	frames [][]byte
	ints   map[string]int
	subs   map[string][]chan int
}

// NewFake returns an empty [Fake].
func NewFake() *Fake {
	return &Fake{
		ints: map[string]int{},
		subs: map[string][]chan int{},
	}
}

var _ Client = &Fake{}

func (f *Fake) PushFrame(ctx context.Context, payload []byte) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, payload)
	return int64(len(f.frames)), nil
}

func (f *Fake) PopFrame(ctx context.Context, timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)
	for {
		f.mu.Lock()
		if len(f.frames) > 0 {
			frame := f.frames[0]
			f.frames = f.frames[1:]
			f.mu.Unlock()
			return frame, nil
		}
		f.mu.Unlock()

		if time.Now().After(deadline) {
			return nil, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Millisecond):
		}
	}
}

func (f *Fake) PopFrameAndBrightness(ctx context.Context, timeout time.Duration, brightnessKey string) ([]byte, int, bool, error) {
	frame, err := f.PopFrame(ctx, timeout)
	if err != nil {
		return nil, 0, false, err
	}
	brightness, ok, err := f.GetInt(ctx, brightnessKey)
	if err != nil {
		return nil, 0, false, err
	}
	return frame, brightness, ok, nil
}

func (f *Fake) FlushFrames(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = nil
	return nil
}

func (f *Fake) QueueLen(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.frames)), nil
}

func (f *Fake) GetInt(ctx context.Context, key string) (int, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.ints[key]
	return v, ok, nil
}

func (f *Fake) SetInt(ctx context.Context, key string, value int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ints[key] = value
	return nil
}

func (f *Fake) Publish(ctx context.Context, channel string, value int) error {
	f.mu.Lock()
	subs := append([]chan int{}, f.subs[channel]...)
	f.mu.Unlock()
	for _, ch := range subs {
		ch <- value
	}
	return nil
}

func (f *Fake) Subscribe(ctx context.Context, channel string) (<-chan int, error) {
	ch := make(chan int, 8)
	f.mu.Lock()
	f.subs[channel] = append(f.subs[channel], ch)
	f.mu.Unlock()
	return ch, nil
}

func (f *Fake) Close() error {
	return nil
}
