package session

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // Sentinel errors
	"time"          // Session lifetime

	"github.com/redis/go-redis/v9" // Redis client
)

var ErrNotFound = errors.New("session not found")

// Session is a logged-in client, keyed by the token id it was issued with
type Session struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	State     State     `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps sessions in Redis as JSON under session:<id>
type Store struct {
	rdb *redis.Client
}

// NewStore creates a Store on top of a Redis client
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func key(id string) string {
	return "session:" + id
}

// Save writes s with the given time to live
func (st *Store) Save(ctx context.Context, s *Session, ttl time.Duration) error {
	b, err := json.Marshal(s) // Marshal session to JSON
	if err != nil {
		return err
	}
	return st.rdb.Set(ctx, key(s.ID), b, ttl).Err()
}

// Get loads the session with id, or ErrNotFound when it expired or never existed
func (st *Store) Get(ctx context.Context, id string) (*Session, error) {
	val, err := st.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound // Key does not exist
	} else if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(val, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete removes the session with id
func (st *Store) Delete(ctx context.Context, id string) error {
	return st.rdb.Del(ctx, key(id)).Err()
}
