package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a key of the form prefix:sha256(json(parts)).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Keyer derives cache keys for the values kanon memoizes.
type Keyer interface {
	// OrbitsKey returns the key for the orbit partition of the graph whose
	// structural digest is graphDigest, as computed by engine.
	OrbitsKey(engine, graphDigest string) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// OrbitsKey implements [Keyer].
func (DefaultKeyer) OrbitsKey(engine, graphDigest string) string {
	return hashKey("orbits", engine, graphDigest)
}
