package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenerateKey creates a cache key with prefix and ID.
func GenerateKey(prefix string, id string) string {
	return fmt.Sprintf("%s:%s", prefix, id)
}

// GenerateKeyWithParams creates a cache key with multiple parameters.
func GenerateKeyWithParams(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key = fmt.Sprintf("%s:%v", key, param)
	}
	return key
}

// HashKey generates a hex SHA-256 digest of a key.
func HashKey(key string) string {
	hasher := sha256.New()
	hasher.Write([]byte(key))
	return hex.EncodeToString(hasher.Sum(nil))
}

// BuildPattern creates a glob pattern matching every key under prefix.
func BuildPattern(prefix string) string {
	return fmt.Sprintf("%s*", prefix)
}
