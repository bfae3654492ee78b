package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	redisOpTimeout     = 5 * time.Second
	removalChannelBase = "portalclient:removed:"
)

// RedisStorage is a [Storage] backend on a shared Redis instance. It also
// implements [Watcher]: deletions are fanned out over pub/sub so that other
// store instances sharing the same Redis observe a logout, the durable-storage
// analog of a browser storage event. Each RedisStorage carries a random
// instance id and filters its own deletions out of the fanout, matching the
// browser contract that storage events never fire in the originating tab.
type RedisStorage struct {
	client     *redis.Client
	instanceID string
}

type removalEvent struct {
	Instance string `json:"instance"`
	Key      string `json:"key"`
}

// NewRedisStorage wraps an initialized go-redis client.
func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{
		client:     client,
		instanceID: uuid.NewString(),
	}
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), redisOpTimeout)
}

// Get implements [Storage].
func (s *RedisStorage) Get(key string) (string, bool, error) {
	ctx, cancel := opContext()
	defer cancel()

	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set implements [Storage].
func (s *RedisStorage) Set(key, value string) error {
	ctx, cancel := opContext()
	defer cancel()
	return s.client.Set(ctx, key, value, 0).Err()
}

// Delete implements [Storage]. The removal is published to the key's fanout
// channel after the delete succeeds; publish failures are logged and do not
// fail the delete.
func (s *RedisStorage) Delete(key string) error {
	ctx, cancel := opContext()
	defer cancel()

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(removalEvent{Instance: s.instanceID, Key: key})
	if err != nil {
		return err
	}
	if err := s.client.Publish(ctx, removalChannelBase+key, payload).Err(); err != nil {
		log.Print("portalclient: redis removal publish failed")
	}
	return nil
}

// Keys implements [Storage].
func (s *RedisStorage) Keys(prefix string) ([]string, error) {
	ctx, cancel := opContext()
	defer cancel()
	return s.client.Keys(ctx, prefix+"*").Result()
}

// Watch implements [Watcher] over the key's removal channel. Removals
// originating from this instance are ignored.
func (s *RedisStorage) Watch(key string, fn func()) (func(), error) {
	pubsub := s.client.Subscribe(context.Background(), removalChannelBase+key)

	// Force the subscription onto the wire before returning so callers never
	// miss a removal published right after Watch.
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range pubsub.Channel() {
			var ev removalEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				continue
			}
			if ev.Instance == s.instanceID {
				continue
			}
			fn()
		}
	}()

	stop := func() {
		_ = pubsub.Close()
		<-done
	}
	return stop, nil
}
