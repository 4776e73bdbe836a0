// Package search provides combobox search functions over any item type.
package search

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/mark3labs/pickr/internal/combobox"
)

// Mode names accepted by ByName.
const (
	ModeSubstring = "substring"
	ModeFuzzy     = "fuzzy"
)

// ErrUnknownMode is returned by ByName for an unrecognized mode.
var ErrUnknownMode = errors.New("unknown search mode")

// Key extracts the searchable text of an item.
type Key[T any] func(T) string

// Substring matches items whose key contains the query, ignoring case.
// Matches keep their original order.
func Substring[T any](key Key[T]) combobox.SearchFunc[T] {
	return func(items []T, query string) []T {
		needle := strings.ToLower(query)
		return filter(items, func(item T) bool {
			return strings.Contains(strings.ToLower(key(item)), needle)
		})
	}
}

var initAlgo sync.Once

// Fuzzy matches items whose key contains the query's characters in order,
// using fzf's matcher. Matching is case-insensitive unless the query has an
// upper-case letter. Matches keep their original order.
func Fuzzy[T any](key Key[T]) combobox.SearchFunc[T] {
	initAlgo.Do(func() { algo.Init("default") })

	return func(items []T, query string) []T {
		if query == "" {
			return filter(items, func(T) bool { return true })
		}
		caseSensitive := strings.IndexFunc(query, unicode.IsUpper) >= 0
		pattern := []rune(query)
		if !caseSensitive {
			pattern = []rune(strings.ToLower(query))
		}
		slab := util.MakeSlab(16*1024, 2048)

		return filter(items, func(item T) bool {
			chars := util.ToChars([]byte(key(item)))
			result, _ := algo.FuzzyMatchV2(caseSensitive, true, true, &chars, pattern, false, slab)
			return result.Start >= 0
		})
	}
}

// ByName returns the search function for mode.
func ByName[T any](mode string, key Key[T]) (combobox.SearchFunc[T], error) {
	switch mode {
	case ModeSubstring, "":
		return Substring(key), nil
	case ModeFuzzy:
		return Fuzzy(key), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
