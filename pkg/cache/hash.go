package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// RenderKey derives the cache key for one rendered scene. The key
// covers the full story document, the scene ID, and the renderer
// parameters, so any change to the narrative or the output settings
// misses the cache.
func RenderKey(storyDoc []byte, sceneID string, format string, scale float64) string {
	meta := fmt.Sprintf("%s|%s|%g", sceneID, format, scale)
	return fmt.Sprintf("render:%s:%s", Hash(storyDoc), Hash([]byte(meta)))
}
