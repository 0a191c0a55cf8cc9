// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mongostore

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/danielhkuo/pokedex/store"
)

// Server codes for duplicate key errors.
const (
	codeDuplicateKey       = 11000
	codeDuplicateKeyLegacy = 11001
)

var (
	// E11000 duplicate key error collection: db.pokemons index: name_1 dup key: { name: "pikachu" }
	dupKeyPattern  = regexp.MustCompile(`dup key: \{ ?(.*?) ?\}`)
	dupPairPattern = regexp.MustCompile(`(\w+): ("(?:[^"\\]|\\.)*"|[^,\s]+)`)
)

// translateError converts duplicate key failures into
// *store.DuplicateKeyError. Other errors are returned unchanged.
func translateError(err error) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}

	kv := make(map[string]any)
	for _, we := range writeErrors(err) {
		if we.Code != codeDuplicateKey && we.Code != codeDuplicateKeyLegacy {
			continue
		}
		collectKeyValue(kv, we)
	}
	return &store.DuplicateKeyError{KeyValue: kv, Err: err}
}

func writeErrors(err error) []mongo.WriteError {
	var we mongo.WriteException
	if errors.As(err, &we) {
		return we.WriteErrors
	}

	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		out := make([]mongo.WriteError, 0, len(bwe.WriteErrors))
		for _, e := range bwe.WriteErrors {
			out = append(out, e.WriteError)
		}
		return out
	}

	return nil
}

// collectKeyValue prefers the server's keyValue document and falls back to
// parsing the error message.
func collectKeyValue(kv map[string]any, we mongo.WriteError) {
	if len(we.Raw) > 0 {
		if val, err := we.Raw.LookupErr("keyValue"); err == nil {
			if doc, ok := val.DocumentOK(); ok {
				if elems, err := doc.Elements(); err == nil && len(elems) > 0 {
					for _, el := range elems {
						var v any
						if err := el.Value().Unmarshal(&v); err == nil {
							kv[el.Key()] = normalizeValue(v)
						}
					}
					return
				}
			}
		}
	}

	for k, v := range parseDupKeyMessage(we.Message) {
		kv[k] = v
	}
}

func parseDupKeyMessage(msg string) map[string]any {
	m := dupKeyPattern.FindStringSubmatch(msg)
	if m == nil {
		return nil
	}

	kv := make(map[string]any)
	for _, pair := range dupPairPattern.FindAllStringSubmatch(m[1], -1) {
		raw := pair[2]
		if unquoted, err := strconv.Unquote(raw); err == nil {
			kv[pair[1]] = unquoted
			continue
		}
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			kv[pair[1]] = n
			continue
		}
		kv[pair[1]] = raw
	}
	return kv
}

func normalizeValue(v any) any {
	switch n := v.(type) {
	case int32:
		return int(n)
	case int64:
		return int(n)
	}
	return v
}
