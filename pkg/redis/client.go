package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/onurcolak/whatsapp-session-bridge/environments"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/logger"
)

type Client struct {
	client valkey.Client
}

const reconnectKeyPrefix = "wa:reconnect:"

func NewRedisClient(cfg environments.RedisConfig) (*Client, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)},
		Password:    cfg.Password,
		SelectDB:    cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Valkey client: %w", err)
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()

		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Infof("Connected to Redis (via Valkey client)")

	return &Client{client: client}, nil
}

// AcquireReconnectLock marks a reconnect as in flight for sessionID. It
// returns false when another holder already owns the lock.
func (c *Client) AcquireReconnectLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	key := reconnectKeyPrefix + sessionID

	err := c.client.Do(ctx, c.client.B().Set().Key(key).Value(time.Now().UTC().Format(time.RFC3339)).Nx().PxMilliseconds(ttl.Milliseconds()).Build()).Error()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to acquire reconnect lock: %w", err)
	}

	logger.Debugf("Acquired reconnect lock for session %s", sessionID)

	return true, nil
}

func (c *Client) ReleaseReconnectLock(ctx context.Context, sessionID string) error {
	if err := c.client.Do(ctx, c.client.B().Del().Key(reconnectKeyPrefix+sessionID).Build()).Error(); err != nil {
		return fmt.Errorf("failed to release reconnect lock: %w", err)
	}
	return nil
}

func (c *Client) IsReconnecting(ctx context.Context, sessionID string) (bool, error) {
	n, err := c.client.Do(ctx, c.client.B().Exists().Key(reconnectKeyPrefix+sessionID).Build()).AsInt64()
	if err != nil {
		return false, fmt.Errorf("failed to check reconnect lock: %w", err)
	}
	return n > 0, nil
}

func (c *Client) Close() error {
	c.client.Close()
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Do(ctx, c.client.B().Ping().Build()).Error()
}
