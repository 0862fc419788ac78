package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// Hasher computes keyed HMAC-SHA256 digests of request bodies.
//
// Client and server each hold a Hasher built from the shared hash key; the
// hex digest travels in the HashSHA256 header. Hash instances are pooled to
// avoid an allocation per request.
type Hasher struct {
	pool sync.Pool
}

// NewHasher returns a Hasher keyed with hashKey. An empty key yields a nil
// Hasher, which signs nothing and accepts everything.
func NewHasher(hashKey string) *Hasher {
	if hashKey == "" {
		return nil
	}

	key := []byte(hashKey)
	return &Hasher{
		pool: sync.Pool{
			New: func() any {
				return hmac.New(sha256.New, key)
			},
		},
	}
}

// Sum returns the raw HMAC-SHA256 digest of data.
func (h *Hasher) Sum(data []byte) []byte {
	mac := h.pool.Get().(hash.Hash)
	mac.Reset()

	mac.Write(data)
	sum := mac.Sum(nil)

	mac.Reset()
	h.pool.Put(mac)

	return sum
}

// Hex returns the hex-encoded digest of data, or "" for a nil Hasher.
func (h *Hasher) Hex(data []byte) string {
	if h == nil {
		return ""
	}
	return hex.EncodeToString(h.Sum(data))
}

// Verify reports whether expected is the hex digest of data. A nil Hasher
// verifies everything.
func (h *Hasher) Verify(data []byte, expected string) bool {
	if h == nil {
		return true
	}

	got, err := hex.DecodeString(expected)
	if err != nil {
		return false
	}
	return hmac.Equal(got, h.Sum(data))
}

// HashString computes an HMAC-SHA256 signature over the given string
// using the provided hash key and returns the result as a hex-encoded string.
//
// Unlike [Hasher], this function creates a new HMAC instance on each call.
// Suitable for one-off hashing.
func HashString(data string, hashKey string) string {
	mac := hmac.New(sha256.New, []byte(hashKey))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
