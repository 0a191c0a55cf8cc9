// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store defines the storage interface shared by all backends.

# Backends

  - mongostore: MongoDB, native ids are ObjectIDs
  - sqlstore: PostgreSQL or SQLite, native ids are UUIDs

# Errors

Backends return two interpretable errors:

	store.ErrNotFound          // single lookup matched nothing
	*store.DuplicateKeyError   // unique index on name or no collided

Everything else is an opaque storage failure.
*/
package store
