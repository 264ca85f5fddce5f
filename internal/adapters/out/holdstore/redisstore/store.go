// Package redisstore keeps pending transitions in Redis so every API
// instance sees the same holds. Each hold is a string key with the hold TTL;
// a per-order set indexes the groups that currently have a hold.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "logistics:hold"

type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient connects and pings Redis.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Store implements ports.HoldStore on Redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl, now: time.Now}
}

func holdKey(orderID kernel.UUID, group order.GroupRef) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, orderID, group)
}

func indexKey(orderID kernel.UUID) string {
	return fmt.Sprintf("%s-index:%s", keyPrefix, orderID)
}

// Put stores hold with the remaining part of the TTL measured from its
// request time. A hold that is already expired is not stored.
func (s *Store) Put(ctx context.Context, hold order.PendingTransition) error {
	if err := hold.Validate(); err != nil {
		return err
	}

	remaining := s.ttl - s.now().Sub(hold.RequestedAt())
	if remaining <= 0 {
		return s.Delete(ctx, hold.OrderID(), hold.Group())
	}

	data, err := encodeHold(hold)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, holdKey(hold.OrderID(), hold.Group()), data, remaining)
		pipe.SAdd(ctx, indexKey(hold.OrderID()), hold.Group().String())
		pipe.Expire(ctx, indexKey(hold.OrderID()), s.ttl)
		return nil
	})
	return err
}

func (s *Store) Get(ctx context.Context, orderID kernel.UUID, group order.GroupRef) (order.PendingTransition, error) {
	data, err := s.client.Get(ctx, holdKey(orderID, group)).Bytes()
	if errors.Is(err, redis.Nil) {
		return order.PendingTransition{}, errs.NewObjectNotFoundError("pending transition", group.String())
	}
	if err != nil {
		return order.PendingTransition{}, err
	}
	return decodeHold(data)
}

func (s *Store) Delete(ctx context.Context, orderID kernel.UUID, group order.GroupRef) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, holdKey(orderID, group))
		pipe.SRem(ctx, indexKey(orderID), group.String())
		return nil
	})
	return err
}

// ListByOrder reads the order's index and drops members whose hold key
// has already expired.
func (s *Store) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.PendingTransition, error) {
	members, err := s.client.SMembers(ctx, indexKey(orderID)).Result()
	if err != nil {
		return nil, err
	}

	out := make([]order.PendingTransition, 0, len(members))
	if len(members) == 0 {
		return out, nil
	}
	sort.Strings(members)

	keys := make([]string, 0, len(members))
	for _, m := range members {
		keys = append(keys, fmt.Sprintf("%s:%s:%s", keyPrefix, orderID, m))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	var stale []any
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			stale = append(stale, members[i])
			continue
		}
		hold, decodeErr := decodeHold([]byte(raw))
		if decodeErr != nil {
			return nil, decodeErr
		}
		out = append(out, hold)
	}

	if len(stale) > 0 {
		if err = s.client.SRem(ctx, indexKey(orderID), stale...).Err(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DeleteExpired always reports zero: Redis evicts hold keys itself and
// ListByOrder prunes the index lazily.
func (s *Store) DeleteExpired(context.Context, time.Time) (int, error) {
	return 0, nil
}
