package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/logger"
)

// VehicleCache is a best-effort read-through cache in front of the
// vehicle store. A miss or a redis failure is never an error for the
// caller; the caller falls back to the store.
type VehicleCache struct {
	rdb *redis.Client
}

func NewVehicleCache(rdb *redis.Client) *VehicleCache {
	return &VehicleCache{rdb: rdb}
}

func (c *VehicleCache) GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, bool) {
	data, err := c.rdb.Get(ctx, fmt.Sprintf(KeyVehicle, id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("vehicle cache read failed", "vehicle_id", id, "error", err)
		}
		return nil, false
	}
	var v domain.Vehicle
	if err := json.Unmarshal(data, &v); err != nil {
		logger.Warn("vehicle cache entry corrupt", "vehicle_id", id, "error", err)
		return nil, false
	}
	return &v, true
}

func (c *VehicleCache) SetVehicle(ctx context.Context, v *domain.Vehicle) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, fmt.Sprintf(KeyVehicle, v.ID), data, TTLVehicle).Err(); err != nil {
		logger.Warn("vehicle cache write failed", "vehicle_id", v.ID, "error", err)
	}
}

func (c *VehicleCache) Invalidate(ctx context.Context, id int32) {
	if err := c.rdb.Del(ctx, fmt.Sprintf(KeyVehicle, id)).Err(); err != nil {
		logger.Warn("vehicle cache invalidation failed", "vehicle_id", id, "error", err)
	}
}
