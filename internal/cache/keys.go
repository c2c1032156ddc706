package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	GlobalKeyPrefix = "examingest"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// DocumentTextKey is the key of the reconstructed text of the document at url. URLs are
// hashed so the key stays short and free of separators.
func DocumentTextKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return GenerateCacheKey("import", "text", hex.EncodeToString(sum[:16]))
}
