package store

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/kizzycode/loreyawen"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces this package's keys within a shared Redis instance,
// the way the teacher's backend package namespaces its own async-protocol
// state.
const keyPrefix = "loreyawen:session:"

// RedisStore persists Records as Redis hashes, one per device address.
// It's the async-state pattern the teacher's backend.ClientConfig.RedisClient
// uses, repurposed here to hold frame counters and wrapped session keys
// instead of pending-request state.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore wraps an existing redis client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(devAddr loreyawen.DevAddr) string {
	return fmt.Sprintf("%s%s", keyPrefix, devAddr.String())
}

// Load implements Backend.
func (s *RedisStore) Load(ctx context.Context, devAddr loreyawen.DevAddr) (*Record, error) {
	vals, err := s.client.HGetAll(ctx, redisKey(devAddr)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "store: redis hgetall")
	}
	if len(vals) == 0 {
		return nil, ErrNotFound
	}

	rec := &Record{
		DevAddr:        devAddr,
		KEKLabel:       vals["kek_label"],
		WrappedNwkSKey: []byte(vals["nwkskey"]),
		WrappedAppSKey: []byte(vals["appskey"]),
	}
	if v, ok := vals["uplink_counter"]; ok {
		rec.UplinkCounter = decodeCounter(v)
	}
	if v, ok := vals["downlink_counter"]; ok {
		rec.DownlinkCounter = decodeCounter(v)
	}
	return rec, nil
}

// Save implements Backend.
func (s *RedisStore) Save(ctx context.Context, rec *Record) error {
	err := s.client.HSet(ctx, redisKey(rec.DevAddr), map[string]interface{}{
		"kek_label":        rec.KEKLabel,
		"nwkskey":          rec.WrappedNwkSKey,
		"appskey":          rec.WrappedAppSKey,
		"uplink_counter":   encodeCounter(rec.UplinkCounter),
		"downlink_counter": encodeCounter(rec.DownlinkCounter),
	}).Err()
	if err != nil {
		return errors.Wrap(err, "store: redis hset")
	}
	return nil
}

func encodeCounter(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func decodeCounter(s string) uint32 {
	b := []byte(s)
	if len(b) != 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}
