package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient so callers can pass a single-node,
// cluster or miniredis-backed client interchangeably.
type Client interface {
	redis.UniversalClient
}
