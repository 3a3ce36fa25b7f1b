package menuval

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText returns the hex SHA-256 of text with its whitespace collapsed, so
// "Garlic  Sauce " and "Garlic Sauce" share a cache entry.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(strings.Join(strings.Fields(text), " ")))
	return hex.EncodeToString(sum[:])
}

// CacheKey is "<hash>:<source>:<target>". Direction is part of the key.
func CacheKey(hash string, source, target Language) string {
	return strings.Join([]string{hash, string(source), string(target)}, ":")
}
