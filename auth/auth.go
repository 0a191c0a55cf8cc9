// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"net/http"
)

// SeedKeyHeader carries the operator key for POST /seed.
const SeedKeyHeader = "X-Seed-Key"

var ErrInvalidSeedKey = errors.New("invalid seed key")

// ValidateSeedKey checks the presented key against the configured one.
// An empty expected key disables the check.
func ValidateSeedKey(presented, expected string) error {
	if expected == "" {
		return nil
	}
	// Compare digests so the comparison time does not depend on key length
	p := sha256.Sum256([]byte(presented))
	e := sha256.Sum256([]byte(expected))
	if !hmac.Equal(p[:], e[:]) {
		return ErrInvalidSeedKey
	}
	return nil
}

// ValidateSeedRequest reads the key from the request header
func ValidateSeedRequest(r *http.Request, expected string) error {
	return ValidateSeedKey(r.Header.Get(SeedKeyHeader), expected)
}
