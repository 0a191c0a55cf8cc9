// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pokemon

import (
	"math"
	"strconv"
	"strings"

	"github.com/danielhkuo/pokedex/models"
)

// KeyKind identifies which lookup strategy a Key uses.
type KeyKind int

const (
	KeyNumeric KeyKind = iota + 1
	KeyNativeID
	KeyName
)

func (k KeyKind) String() string {
	switch k {
	case KeyNumeric:
		return "no"
	case KeyNativeID:
		return "id"
	case KeyName:
		return "name"
	}
	return "unknown"
}

// Key is a single lookup strategy for a term. Exactly one of No, ID or
// Name is meaningful, selected by Kind.
type Key struct {
	Kind KeyKind
	No   int
	ID   string
	Name string
}

// Candidates classifies term into lookup keys in priority order:
// catalog number, native id, then lowercased and trimmed name. Numeric
// always comes first so a term that is both a number and a valid id is
// tried as a number.
func Candidates(term string, validID func(string) bool) []Key {
	keys := make([]Key, 0, 3)

	if no, ok := parseNo(term); ok {
		keys = append(keys, Key{Kind: KeyNumeric, No: no})
	}
	if validID != nil && validID(term) {
		keys = append(keys, Key{Kind: KeyNativeID, ID: term})
	}
	keys = append(keys, Key{Kind: KeyName, Name: NormalizeName(term)})

	return keys
}

// NormalizeName lowercases and trims a name for storage and lookup.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// parseNo accepts any finite number with an integral value up to
// models.MaxNo, the same bound Create and Update enforce. Fractional
// numbers cannot equal a catalog number and are skipped.
func parseNo(term string) (int, bool) {
	s := strings.TrimSpace(term)
	if s == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f != math.Trunc(f) || f > models.MaxNo || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
