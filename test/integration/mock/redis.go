package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisConnOnce sync.Once
var redisConn *redis.Client
var redisServer *miniredis.Miniredis

// NewRedis returns the shared client backed by an in-process miniredis.
func NewRedis() *redis.Client {
	redisConnOnce.Do(func() {
		redisConn, redisServer = openRedisConn()
	})

	return redisConn
}

func openRedisConn() (*redis.Client, *miniredis.Miniredis) {
	server, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	conn := redis.NewClient(&redis.Options{
		Addr: server.Addr(),
	})

	return conn, server
}

// ClearRedis drops every stored rate snapshot.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.Background()).Err()
}

// RedisKeyExists reports whether key is present in the shared miniredis.
func RedisKeyExists(key string) bool {
	if redisServer == nil {
		return false
	}
	return redisServer.Exists(key)
}
