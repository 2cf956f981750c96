package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexStrings decodes from either a JSON array of strings or a single
// comma-separated string, normalizing to a clean []string either way.
type FlexStrings []string

func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = SplitList(s)
		return nil
	}
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	items := []string{}
	for _, v := range raw {
		if str, ok := v.(string); ok {
			if t := strings.TrimSpace(str); t != "" {
				items = append(items, t)
			}
		}
	}
	*f = items
	return nil
}

// FlexBool decodes from a JSON bool or the strings "true"/"false"; any
// other value, including null, is false.
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexBool(ParseBool(v))
	return nil
}

// FlexPriceList decodes from either a "name:price,..." string or a JSON
// array of {name, price} objects.
type FlexPriceList []PriceItem

func (f *FlexPriceList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = ParsePriceList(s)
		return nil
	}
	var items []PriceItem
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	if items == nil {
		items = []PriceItem{}
	}
	for i := range items {
		items[i].Name = strings.TrimSpace(items[i].Name)
		if items[i].Name == "" {
			items[i].Name = FallbackServiceName
		}
		if items[i].Price < 0 {
			items[i].Price = 0
		}
	}
	*f = items
	return nil
}

// FlexFloat decodes from a JSON number or a numeric string. Present is
// false for null and for unparseable strings, matching form submissions
// where an empty field means "not supplied".
type FlexFloat struct {
	Value   float64
	Present bool
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	// json.Unmarshal treats null as a no-op on *float64, which would leave
	// Present true; null must stay "not supplied"
	if string(data) == "null" {
		f.Present = false
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		f.Value, f.Present = n, true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		f.Present = false
		return nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		f.Present = false
		return nil
	}
	f.Value, f.Present = n, true
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Present {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
