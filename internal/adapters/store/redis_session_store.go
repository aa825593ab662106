package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"visit-route-service/internal/domain"
)

// RedisSessionStore keeps per-session selection state and the last
// reconciled schedule in Redis, so sessions survive process restarts when
// the service runs behind a load balancer.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(addr, password string, db int, ttl time.Duration) *RedisSessionStore {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	return &RedisSessionStore{client: client, ttl: ttl}
}

// Ping verifies the connection at startup.
func (r *RedisSessionStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisSessionStore) Close() error {
	return r.client.Close()
}

func selectionKey(sessionID string) string { return "session:" + sessionID + ":selection" }
func scheduleKey(sessionID string) string  { return "session:" + sessionID + ":schedule" }

func (r *RedisSessionStore) Selection(ctx context.Context, sessionID string) (domain.Selection, error) {
	raw, err := r.client.Get(ctx, selectionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Selection{Weekday: domain.DefaultWeekday}, nil
	}
	if err != nil {
		return domain.Selection{}, fmt.Errorf("redis get selection: %w", err)
	}

	var sel domain.Selection
	if err := json.Unmarshal([]byte(raw), &sel); err != nil {
		return domain.Selection{}, fmt.Errorf("decode selection: %w", err)
	}
	if sel.Weekday == "" {
		sel.Weekday = domain.DefaultWeekday
	}
	return sel, nil
}

func (r *RedisSessionStore) SetWeekday(ctx context.Context, sessionID, weekday string) error {
	sel, err := r.Selection(ctx, sessionID)
	if err != nil {
		return err
	}
	sel.Weekday = weekday
	return r.putSelection(ctx, sessionID, sel)
}

func (r *RedisSessionStore) SetWeek(ctx context.Context, sessionID string, week int) error {
	sel, err := r.Selection(ctx, sessionID)
	if err != nil {
		return err
	}
	sel.Week = &week
	return r.putSelection(ctx, sessionID, sel)
}

func (r *RedisSessionStore) putSelection(ctx context.Context, sessionID string, sel domain.Selection) error {
	raw, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}
	if err := r.client.Set(ctx, selectionKey(sessionID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set selection: %w", err)
	}
	return nil
}

func (r *RedisSessionStore) Schedule(ctx context.Context, sessionID string) (*domain.Schedule, error) {
	raw, err := r.client.Get(ctx, scheduleKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get schedule: %w", err)
	}

	var s domain.Schedule
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	return &s, nil
}

func (r *RedisSessionStore) SaveSchedule(ctx context.Context, sessionID string, s *domain.Schedule) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}
	if err := r.client.Set(ctx, scheduleKey(sessionID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set schedule: %w", err)
	}
	return nil
}
