package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/helios/backend/internal/domain/cart"
	"github.com/helios/backend/internal/infrastructure/config"
)

// RedisCartStore implements cart.Store backed by Redis.
// Each session cart is a hash of product ID to quantity; the staged
// shipping details live in a sibling JSON key. Every mutation refreshes
// the session TTL.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCartStore creates a cart store on an existing Redis client
func NewRedisCartStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl, logger: logger}
}

// NewRedisClient creates and pings a Redis client from configuration
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

func shippingKey(sessionID string) string {
	return "cart:" + sessionID + ":shipping"
}

// Get returns the cart for a session, empty if none exists
func (s *RedisCartStore) Get(ctx context.Context, sessionID string) (cart.Cart, error) {
	entries, err := s.client.HGetAll(ctx, cartKey(sessionID)).Result()
	if err != nil {
		return cart.Cart{}, err
	}

	c := cart.Cart{}
	for id, qty := range entries {
		productID, err := uuid.Parse(id)
		if err != nil {
			s.logger.Warn("dropping malformed cart entry",
				zap.String("session_id", sessionID),
				zap.String("key", id))
			continue
		}
		quantity, err := strconv.Atoi(qty)
		if err != nil || quantity <= 0 {
			continue
		}
		c.Lines = append(c.Lines, cart.Line{ProductID: productID, Quantity: quantity})
	}

	return c, nil
}

// Add inserts a product line if absent, reporting whether it was added
func (s *RedisCartStore) Add(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (bool, error) {
	added, err := s.client.HSetNX(ctx, cartKey(sessionID), productID.String(), quantity).Result()
	if err != nil {
		return false, err
	}
	if err := s.touch(ctx, sessionID); err != nil {
		return added, err
	}
	return added, nil
}

// Update overwrites the quantity of a product line
func (s *RedisCartStore) Update(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) error {
	if err := s.client.HSet(ctx, cartKey(sessionID), productID.String(), quantity).Err(); err != nil {
		return err
	}
	return s.touch(ctx, sessionID)
}

// Remove deletes a product line
func (s *RedisCartStore) Remove(ctx context.Context, sessionID string, productID uuid.UUID) error {
	if err := s.client.HDel(ctx, cartKey(sessionID), productID.String()).Err(); err != nil {
		return err
	}
	return s.touch(ctx, sessionID)
}

// Clear empties the session cart
func (s *RedisCartStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, cartKey(sessionID)).Err()
}

// SetShipping stages the checkout delivery details in the session
func (s *RedisCartStore) SetShipping(ctx context.Context, sessionID string, shipping cart.StagedShipping) error {
	payload, err := json.Marshal(shipping)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, shippingKey(sessionID), payload, s.ttl).Err()
}

// GetShipping returns the staged delivery details, nil if none staged
func (s *RedisCartStore) GetShipping(ctx context.Context, sessionID string) (*cart.StagedShipping, error) {
	payload, err := s.client.Get(ctx, shippingKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var shipping cart.StagedShipping
	if err := json.Unmarshal(payload, &shipping); err != nil {
		return nil, err
	}
	return &shipping, nil
}

// ClearShipping discards the staged delivery details
func (s *RedisCartStore) ClearShipping(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, shippingKey(sessionID)).Err()
}

// touch refreshes the session TTL after a mutation
func (s *RedisCartStore) touch(ctx context.Context, sessionID string) error {
	return s.client.Expire(ctx, cartKey(sessionID), s.ttl).Err()
}

// Ensure RedisCartStore implements cart.Store
var _ cart.Store = (*RedisCartStore)(nil)
