package utils

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// CacheKey builds a stable key from its parts. Keys are not secrets; sha256
// just keeps them short and collision-resistant regardless of input size.
func CacheKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:32]
}

// QueryHash identifies a (user, query) pair the way the preference store
// dedupes repeated submissions.
func QueryHash(userID, query string) string {
	h := sha256.New()
	h.Write([]byte(strings.TrimSpace(userID)))
	h.Write([]byte{0})
	h.Write([]byte(strings.TrimSpace(query)))
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}
