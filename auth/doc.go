// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth guards operator endpoints.

# Seed Key

POST /seed wipes the collection, so it can be protected by a shared key
configured with SEED_KEY. Clients send it in the X-Seed-Key header:

	if err := auth.ValidateSeedRequest(r, cfg.SeedKey); err != nil {
		// 401
	}

An empty configured key disables the check. Keys are compared through their
SHA-256 digests with hmac.Equal, so timing does not reveal how much of the
key matched.
*/
package auth
