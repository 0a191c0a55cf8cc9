// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package seed imports the initial pokemon set from PokeAPI.
//
// Catalog reads the resource list (name and url per entry) and Importer
// wipes the store and bulk inserts one pokemon per entry, taking the
// catalog number from the last path segment of the entry url.
package seed
