// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"lengolf/config"

	"github.com/go-redis/redis/v8"
)

var (
	// ContextCacheClient holds per-conversation message history.
	ContextCacheClient *redis.Client
	// ApprovalCacheClient backs the approval resolution lock.
	ApprovalCacheClient *redis.Client
)

// InitContextCache initializes the Redis client for conversation context caching.
func InitContextCache() {
	ContextCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisContextDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := ContextCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Context Cache): %v", err)
	}
}

// GetContextCacheClient returns the conversation context cache client.
func GetContextCacheClient() *redis.Client {
	if ContextCacheClient == nil {
		InitContextCache()
	}
	return ContextCacheClient
}

// InitApprovalCache initializes the Redis client for approval lock keys.
func InitApprovalCache() {
	ApprovalCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisApprovalDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := ApprovalCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Approval Cache): %v", err)
	}
}

// GetApprovalCacheClient returns the approval lock client.
func GetApprovalCacheClient() *redis.Client {
	if ApprovalCacheClient == nil {
		InitApprovalCache()
	}
	return ApprovalCacheClient
}
