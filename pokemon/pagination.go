// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pokemon

// DefaultLimit is used when neither the caller nor configuration supplies
// a page size.
const DefaultLimit = 6

// Pagination substitutes defaults for absent paging parameters. It does
// not cap limit.
type Pagination struct {
	DefaultLimit int
}

// Normalize returns the effective limit and offset. Zero means absent.
// Positivity is validated at the boundary, not here.
func (p Pagination) Normalize(limit, offset int) (int, int) {
	if limit == 0 {
		limit = p.DefaultLimit
		if limit <= 0 {
			limit = DefaultLimit
		}
	}
	return limit, offset
}
