// Package brokerclient wraps the Unix-socket key-value and pub/sub
// broker shared by all four processes behind a small interface, the way
// the teacher's netem package hides concrete network primitives behind
// NIC and UnderlyingNetwork.
package brokerclient

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Keys and channels defined by the wire contract (spec.md §6).
const (
	FramesKey               = "player:frames"
	SenderBrightnessKey     = "sender:brightness"
	PlayerBrightnessKey     = "player:brightness"
	PlayerBrightnessTopic   = "player:brightness:channel"
	defaultSenderBright     = 255
	defaultReconnectBackoff = time.Second
)

// Client is the broker surface used by the sign's four processes.
type Client interface {
	// PushFrame right-pushes payload onto the frames queue and returns
	// the queue's new length.
	PushFrame(ctx context.Context, payload []byte) (int64, error)

	// PopFrame blocking left-pops a frame, waiting up to timeout. It
	// returns (nil, nil) on timeout with no frame available.
	PopFrame(ctx context.Context, timeout time.Duration) ([]byte, error)

	// PopFrameAndBrightness pipelines a blocking frame pop with a
	// brightness read into a single round trip, per spec.md §4.1's
	// requirement that the two reads happen together to minimize
	// latency between wake and transmit. brightnessOK is false if the
	// brightness key is absent.
	PopFrameAndBrightness(ctx context.Context, timeout time.Duration, brightnessKey string) (frame []byte, brightness int, brightnessOK bool, err error)

	// FlushFrames atomically empties the frames queue.
	FlushFrames(ctx context.Context) error

	// QueueLen returns the current length of the frames queue.
	QueueLen(ctx context.Context) (int64, error)

	// GetInt reads an integer-valued key. ok is false if the key is
	// absent.
	GetInt(ctx context.Context, key string) (value int, ok bool, err error)

	// SetInt persists an integer-valued key.
	SetInt(ctx context.Context, key string, value int) error

	// Publish publishes an integer value on a pub/sub channel.
	Publish(ctx context.Context, channel string, value int) error

	// Subscribe returns a channel of integer values published on
	// channel. The returned channel is closed when ctx is canceled.
	Subscribe(ctx context.Context, channel string) (<-chan int, error)

	// Close releases the underlying connection.
	Close() error
}

// redisClient is the [Client] implementation backed by go-redis dialed
// over a Unix domain socket.
type redisClient struct {
	rdb *redis.Client
}

// New dials the broker at socketPath.
func New(socketPath string) Client {
	return &redisClient{
		rdb: redis.NewClient(&redis.Options{
			Network: "unix",
			Addr:    socketPath,
		}),
	}
}

var _ Client = &redisClient{}

func (c *redisClient) PushFrame(ctx context.Context, payload []byte) (int64, error) {
	return c.rdb.RPush(ctx, FramesKey, payload).Result()
}

func (c *redisClient) PopFrame(ctx context.Context, timeout time.Duration) ([]byte, error) {
	res, err := c.rdb.BLPop(ctx, timeout, FramesKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	// BLPop returns [key, value].
	return []byte(res[1]), nil
}

func (c *redisClient) PopFrameAndBrightness(ctx context.Context, timeout time.Duration, brightnessKey string) ([]byte, int, bool, error) {
	pipe := c.rdb.Pipeline()
	blpop := pipe.BLPop(ctx, timeout, FramesKey)
	get := pipe.Get(ctx, brightnessKey)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, 0, false, err
	}

	var frame []byte
	if res, err := blpop.Result(); err == nil {
		frame = []byte(res[1])
	} else if err != redis.Nil {
		return nil, 0, false, err
	}

	brightness, ok := 0, false
	if s, err := get.Result(); err == nil {
		if v, convErr := strconv.Atoi(s); convErr == nil {
			brightness, ok = v, true
		}
	} else if err != redis.Nil {
		return nil, 0, false, err
	}

	return frame, brightness, ok, nil
}

func (c *redisClient) FlushFrames(ctx context.Context) error {
	return c.rdb.Del(ctx, FramesKey).Err()
}

func (c *redisClient) QueueLen(ctx context.Context) (int64, error) {
	return c.rdb.LLen(ctx, FramesKey).Result()
}

func (c *redisClient) GetInt(ctx context.Context, key string) (int, bool, error) {
	s, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

func (c *redisClient) SetInt(ctx context.Context, key string, value int) error {
	return c.rdb.Set(ctx, key, strconv.Itoa(value), 0).Err()
}

func (c *redisClient) Publish(ctx context.Context, channel string, value int) error {
	return c.rdb.Publish(ctx, channel, strconv.Itoa(value)).Err()
}

func (c *redisClient) Subscribe(ctx context.Context, channel string) (<-chan int, error) {
	sub := c.rdb.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		return nil, err
	}

	out := make(chan int)
	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				v, err := strconv.Atoi(msg.Payload)
				if err != nil {
					continue
				}
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (c *redisClient) Close() error {
	return c.rdb.Close()
}

// DefaultSenderBrightness is the brightness the sender seeds
// sender:brightness with if it is absent at startup (spec.md §4.1).
const DefaultSenderBrightness = defaultSenderBright

// DefaultReconnectBackoff is the linear backoff used when reconnecting
// to a disconnected broker (spec.md §4.1, §7).
const DefaultReconnectBackoff = defaultReconnectBackoff
