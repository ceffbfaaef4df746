package cache

import (
	"net"
	"strconv"
	"time"
)

// RedisOption configures Redis cache.
type RedisOption func(*RedisConfig)

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	PoolTimeout  time.Duration
	MinIdleConns int
	Prefix       string
}

// WithRedisAddr sets host and port from a "host:port" address; malformed input is ignored.
func WithRedisAddr(addr string) RedisOption {
	return func(c *RedisConfig) {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return
		}
		p, err := strconv.Atoi(port)
		if err != nil {
			return
		}
		c.Host = host
		c.Port = p
	}
}

// WithRedisPassword sets Redis password.
func WithRedisPassword(password string) RedisOption {
	return func(c *RedisConfig) {
		c.Password = password
	}
}

// WithRedisDB sets Redis database number.
func WithRedisDB(db int) RedisOption {
	return func(c *RedisConfig) {
		c.DB = db
	}
}

// WithRedisPool sets connection pool settings; zero values keep the defaults.
func WithRedisPool(poolSize, minIdleConns int, timeout time.Duration) RedisOption {
	return func(c *RedisConfig) {
		if poolSize > 0 {
			c.PoolSize = poolSize
		}
		if minIdleConns > 0 {
			c.MinIdleConns = minIdleConns
		}
		if timeout > 0 {
			c.PoolTimeout = timeout
		}
	}
}

// WithRedisPrefix sets key prefix.
func WithRedisPrefix(prefix string) RedisOption {
	return func(c *RedisConfig) {
		c.Prefix = prefix
	}
}

// MemoryOption configures Memory cache.
type MemoryOption func(*MemoryConfig)

// MemoryConfig holds memory cache configuration.
type MemoryConfig struct {
	MaxSize         int
	CleanupInterval time.Duration
}

// WithMemoryMaxSize sets max cache size.
func WithMemoryMaxSize(size int) MemoryOption {
	return func(c *MemoryConfig) {
		c.MaxSize = size
	}
}

// WithMemoryCleanup sets cleanup interval; non-positive values are ignored.
func WithMemoryCleanup(interval time.Duration) MemoryOption {
	return func(c *MemoryConfig) {
		if interval > 0 {
			c.CleanupInterval = interval
		}
	}
}

// LayeredOption configures Layered cache.
type LayeredOption func(*LayeredConfig)

// LayeredConfig holds layered cache configuration.
type LayeredConfig struct {
	MemoryMaxSize int
	MemoryCleanup time.Duration
}

// WithLayeredMemorySize sets L1 cache size.
func WithLayeredMemorySize(size int) LayeredOption {
	return func(c *LayeredConfig) {
		c.MemoryMaxSize = size
	}
}

// WithLayeredMemoryCleanup sets how often L1 drops expired entries.
func WithLayeredMemoryCleanup(interval time.Duration) LayeredOption {
	return func(c *LayeredConfig) {
		c.MemoryCleanup = interval
	}
}
