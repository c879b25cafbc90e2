package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey returns "<kind>:<digest>", where digest covers the JSON encoding
// of fields. Scene keys and artifact keys are both built this way, so a
// change to any vertex, factor or render setting yields a new key.
func hashKey(kind string, fields ...any) string {
	h := sha256.New()
	// Encoding plain numbers, strings and bools cannot fail.
	_ = json.NewEncoder(h).Encode(fields)
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 digest of data. The pipeline uses it to turn
// keyer output into scene and artifact hashes, and the file cache uses it
// to name entries.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
