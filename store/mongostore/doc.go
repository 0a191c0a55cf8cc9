// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package mongostore implements store.Store on a MongoDB "pokemons"
// collection with unique indexes on name and no. Native ids are ObjectIDs.
// Duplicate key failures (server code 11000) are reported with the
// server's keyValue document, or parsed from the message when absent.
package mongostore
