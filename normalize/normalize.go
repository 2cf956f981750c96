// Package normalize bridges loosely-typed form submissions and the canonical
// document shape: list fields may arrive as a comma-separated string, a bare
// string, or a real array; price lists as "name:price,..." strings; boolean
// flags as the literals "true"/"false". Every function here is idempotent on
// already-canonical input.
package normalize

import (
	"strconv"
	"strings"
)

// FallbackServiceName labels price-list entries submitted without a name.
const FallbackServiceName = "Service"

// PriceItem is one entry of a service price list.
type PriceItem struct {
	Name  string `json:"name" bson:"name"`
	Price int    `json:"price" bson:"price"`
}

// SplitList splits a comma-separated string, trims each token and drops
// empty ones. Order is preserved and duplicates are kept.
func SplitList(input string) []string {
	if strings.TrimSpace(input) == "" {
		return []string{}
	}
	parts := strings.Split(input, ",")
	out := []string{}
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// CleanList filters empty entries out of an already-split list, trimming
// whitespace. Order is preserved and duplicates are kept.
func CleanList(items []string) []string {
	out := []string{}
	for _, it := range items {
		if t := strings.TrimSpace(it); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ParsePriceList parses "name1:price1,name2:price2" into price items. A
// missing or non-numeric price becomes 0; a missing name becomes the
// fallback label. Entries without a colon still yield an item with price 0.
func ParsePriceList(input string) []PriceItem {
	if strings.TrimSpace(input) == "" {
		return []PriceItem{}
	}
	items := []PriceItem{}
	for _, entry := range strings.Split(input, ",") {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		name, priceStr, _ := strings.Cut(entry, ":")
		item := PriceItem{Name: strings.TrimSpace(name)}
		if item.Name == "" {
			item.Name = FallbackServiceName
		}
		if n, err := strconv.Atoi(strings.TrimSpace(priceStr)); err == nil && n >= 0 {
			item.Price = n
		}
		items = append(items, item)
	}
	return items
}

// ParseBool accepts the literal strings "true"/"false" in addition to
// booleans; anything else is false.
func ParseBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	default:
		return false
	}
}
