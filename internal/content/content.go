// Package content converts arbitrary tool return values into the
// canonical list of typed content items used on the wire.
//
// Normalize is total: every Go value maps to at least one item, with
// stringification as the terminal fallback, so the dispatch path never
// has to handle a conversion failure.
package content

import (
	"fmt"
	"strings"
)

// Item is the canonical result unit: a typed text fragment.
type Item struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Text wraps a string as a single text item.
func Text(s string) Item {
	return Item{Type: "text", Text: s}
}

// Normalize converts v into a non-empty ordered sequence of items.
// Dispatch rules, in priority order:
//
//  1. nil → a single empty text item.
//  2. Already-canonical input ([]Item, or a []any where every element
//     carries both type and text) → passed through unchanged.
//  3. A sequence of plain values → joined with newlines into one item.
//  4. A single item-shaped value (Item, *Item, or a map with type and
//     text keys) → wrapped as one item.
//  5. A map with a "content" key → recurse into that key.
//  6. Anything else → stringified into one item.
func Normalize(v any) []Item {
	switch val := v.(type) {
	case nil:
		return []Item{Text("")}

	case string:
		return []Item{Text(val)}

	case Item:
		return []Item{val}

	case *Item:
		if val == nil {
			return []Item{Text("")}
		}
		return []Item{*val}

	case []Item:
		if len(val) == 0 {
			return []Item{Text("")}
		}
		return val

	case []string:
		return []Item{Text(strings.Join(val, "\n"))}

	case []any:
		return normalizeSlice(val)

	case map[string]any:
		if it, ok := asItem(val); ok {
			return []Item{it}
		}
		if inner, ok := val["content"]; ok {
			return Normalize(inner)
		}
		return []Item{Text(stringify(val))}

	default:
		return []Item{Text(stringify(val))}
	}
}

// normalizeSlice maps element-wise when every element is item-shaped,
// otherwise joins the stringified elements with newlines.
func normalizeSlice(vals []any) []Item {
	if len(vals) == 0 {
		return []Item{Text("")}
	}

	items := make([]Item, 0, len(vals))
	structured := true
	for _, v := range vals {
		it, ok := asItem(v)
		if !ok {
			structured = false
			break
		}
		items = append(items, it)
	}
	if structured {
		return items
	}

	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = stringify(v)
	}
	return []Item{Text(strings.Join(parts, "\n"))}
}

// asItem recognizes item-shaped values structurally: an Item, or a map
// exposing both "type" and "text" string fields.
func asItem(v any) (Item, bool) {
	switch val := v.(type) {
	case Item:
		return val, true
	case *Item:
		if val != nil {
			return *val, true
		}
	case map[string]any:
		typ, tok := val["type"].(string)
		text, xok := val["text"].(string)
		if tok && xok {
			return Item{Type: typ, Text: text}, true
		}
	}
	return Item{}, false
}

// stringify is the terminal fallback. fmt.Sprint never fails (it
// recovers panicking String methods itself), which guarantees
// Normalize terminates with a result for any input.
func stringify(v any) string {
	return fmt.Sprint(v)
}
