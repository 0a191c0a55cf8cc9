// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pokemon implements the pokemon operations on top of a store.Store.

# Lookup

A lookup term is tried as a catalog number, then as a store id, then as a
lowercased name:

	keys := pokemon.Candidates("25", st.ValidID)  // Numeric(25), Name("25")

The first candidate that matches wins. Numbers are accepted in any JSON-like
form with an integral value ("25", "25.0").

# Errors

Every Service method returns a *pokemon.Error whose Kind is one of
Validation, NotFound, Conflict or Internal. Conflicts come from the store's
unique indexes on name and no and carry the colliding values:

	pokemon already exists in db {"no":25}

Internal errors are logged with their cause and carry a fixed message.
*/
package pokemon
