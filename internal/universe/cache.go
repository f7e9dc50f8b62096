package universe

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"starforge/internal/shared/errors"

	"github.com/redis/go-redis/v9"
)

const snapshotKeyPrefix = "starforge:universe:"

// SnapshotCache keeps published universes in Redis so a restart with the
// same parameters can skip generation. A nil cache, or one without a
// client, never hits and silently drops saves.
type SnapshotCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewSnapshotCache(client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *SnapshotCache {
	logger.Debug("Initializing snapshot cache", "enabled", client != nil, "ttl", ttl)

	return &SnapshotCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *SnapshotCache) enabled() bool {
	return c != nil && c.client != nil
}

// SnapshotKey identifies a universe by its seed and a digest of the rest
// of its generation parameters.
func SnapshotKey(cfg Config) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode generation config: %w", err)
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s%d:%x", snapshotKeyPrefix, cfg.Galaxy.Seed, sum[:8]), nil
}

func (c *SnapshotCache) Load(ctx context.Context, cfg Config) (*Universe, bool) {
	if !c.enabled() {
		return nil, false
	}

	key, err := SnapshotKey(cfg)
	if err != nil {
		c.logger.Warn("Failed to build snapshot key", "error", err)
		return nil, false
	}
	logger := c.logger.With("component", "snapshot_cache", "operation", "load", "key", key)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		logger.Debug("Snapshot cache miss")
		return nil, false
	}
	if err != nil {
		logger.Warn("Failed to read universe snapshot", "error", err)
		return nil, false
	}

	var u Universe
	if err := json.Unmarshal(data, &u); err != nil {
		logger.Warn("Discarding unreadable universe snapshot", "error", err)
		return nil, false
	}
	u.Config.Workers = cfg.Workers
	u.Config.Sectors = cfg.Sectors
	u.buildIndex()

	logger.Debug("Snapshot cache hit", "universe_id", u.ID, "bytes", len(data))
	return &u, true
}

func (c *SnapshotCache) Save(ctx context.Context, u *Universe) error {
	if !c.enabled() {
		return nil
	}

	key, err := SnapshotKey(u.Config)
	if err != nil {
		return errors.WrapInternal("failed to build snapshot key", err)
	}

	data, err := json.Marshal(u)
	if err != nil {
		return errors.WrapInternal("failed to encode universe snapshot", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return errors.WrapExternal("failed to store universe snapshot", err)
	}

	c.logger.Debug("Universe snapshot stored", "key", key, "bytes", len(data))
	return nil
}
