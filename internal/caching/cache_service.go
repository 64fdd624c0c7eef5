package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"hidecraft/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Material caching
	GetMaterial(ctx context.Context, materialID uuid.UUID) (*models.Material, error)
	SetMaterial(ctx context.Context, material *models.Material, ttl time.Duration) error
	DeleteMaterial(ctx context.Context, materialID uuid.UUID) error

	// Stock level caching
	GetStockLevel(ctx context.Context, materialID uuid.UUID, location string) (*models.StockLevel, error)
	SetStockLevel(ctx context.Context, level *models.StockLevel, ttl time.Duration) error
	DeleteStockLevel(ctx context.Context, materialID uuid.UUID, location string) error
	InvalidateMaterialStock(ctx context.Context, materialID uuid.UUID) error

	// Generic string operations for token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port as well as bare host:port
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func materialKey(materialID uuid.UUID) string {
	return fmt.Sprintf("hidecraft:material:%s", materialID.String())
}

func stockKey(materialID uuid.UUID, location string) string {
	return fmt.Sprintf("hidecraft:stock:%s:%s", materialID.String(), location)
}

func (r *redisCacheService) GetMaterial(ctx context.Context, materialID uuid.UUID) (*models.Material, error) {
	data, err := r.client.Get(ctx, materialKey(materialID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var material models.Material
	if err := json.Unmarshal(data, &material); err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *redisCacheService) SetMaterial(ctx context.Context, material *models.Material, ttl time.Duration) error {
	data, err := json.Marshal(material)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, materialKey(material.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteMaterial(ctx context.Context, materialID uuid.UUID) error {
	return r.client.Del(ctx, materialKey(materialID)).Err()
}

func (r *redisCacheService) GetStockLevel(ctx context.Context, materialID uuid.UUID, location string) (*models.StockLevel, error) {
	data, err := r.client.Get(ctx, stockKey(materialID, location)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var level models.StockLevel
	if err := json.Unmarshal(data, &level); err != nil {
		return nil, err
	}
	return &level, nil
}

func (r *redisCacheService) SetStockLevel(ctx context.Context, level *models.StockLevel, ttl time.Duration) error {
	data, err := json.Marshal(level)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, stockKey(level.MaterialID, level.Location), data, ttl).Err()
}

func (r *redisCacheService) DeleteStockLevel(ctx context.Context, materialID uuid.UUID, location string) error {
	return r.client.Del(ctx, stockKey(materialID, location)).Err()
}

// InvalidateMaterialStock drops every cached stock level for a material.
// Used after operations that touch multiple locations (transfers, aggregate
// status recomputation).
func (r *redisCacheService) InvalidateMaterialStock(ctx context.Context, materialID uuid.UUID) error {
	pattern := fmt.Sprintf("hidecraft:stock:%s:*", materialID.String())
	iter := r.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
