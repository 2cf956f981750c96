package normalize

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestFlexStrings(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{`"wifi, pool"`, []string{"wifi", "pool"}},
		{`["wifi", " pool "]`, []string{"wifi", "pool"}},
		{`["wifi", "", 3]`, []string{"wifi"}},
		{`""`, []string{}},
		{`[]`, []string{}},
	}
	for _, c := range cases {
		var f FlexStrings
		if err := json.Unmarshal([]byte(c.in), &f); err != nil {
			t.Fatalf("unmarshal %s: %v", c.in, err)
		}
		if !reflect.DeepEqual([]string(f), c.want) {
			t.Errorf("FlexStrings(%s) = %v, want %v", c.in, f, c.want)
		}
	}
}

func TestFlexBool(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{`true`, true},
		{`false`, false},
		{`"true"`, true},
		{`"false"`, false},
		{`"on"`, false},
		{`null`, false},
	}
	for _, c := range cases {
		var f FlexBool
		if err := json.Unmarshal([]byte(c.in), &f); err != nil {
			t.Fatalf("unmarshal %s: %v", c.in, err)
		}
		if bool(f) != c.want {
			t.Errorf("FlexBool(%s) = %v, want %v", c.in, f, c.want)
		}
	}
}

func TestFlexPriceList(t *testing.T) {
	var fromString FlexPriceList
	if err := json.Unmarshal([]byte(`"Swedish:1500,Thai:2000"`), &fromString); err != nil {
		t.Fatal(err)
	}
	var fromArray FlexPriceList
	if err := json.Unmarshal([]byte(`[{"name":"Swedish","price":1500},{"name":"Thai","price":2000}]`), &fromArray); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(fromString, fromArray) {
		t.Errorf("string and array forms diverge: %v vs %v", fromString, fromArray)
	}

	var sanitized FlexPriceList
	if err := json.Unmarshal([]byte(`[{"name":"  ","price":-10}]`), &sanitized); err != nil {
		t.Fatal(err)
	}
	want := FlexPriceList{{Name: FallbackServiceName, Price: 0}}
	if !reflect.DeepEqual(sanitized, want) {
		t.Errorf("sanitized = %v, want %v", sanitized, want)
	}
}

func TestFlexFloat(t *testing.T) {
	cases := []struct {
		in      string
		value   float64
		present bool
	}{
		{`42.5`, 42.5, true},
		{`"42.5"`, 42.5, true},
		{`" 42.5 "`, 42.5, true},
		{`"abc"`, 0, false},
		{`""`, 0, false},
		{`null`, 0, false},
	}
	for _, c := range cases {
		var f FlexFloat
		if err := json.Unmarshal([]byte(c.in), &f); err != nil {
			t.Fatalf("unmarshal %s: %v", c.in, err)
		}
		if f.Present != c.present || (c.present && f.Value != c.value) {
			t.Errorf("FlexFloat(%s) = {%v %v}, want {%v %v}", c.in, f.Value, f.Present, c.value, c.present)
		}
	}

	absent, _ := json.Marshal(FlexFloat{})
	if string(absent) != "null" {
		t.Errorf("absent marshals to %s, want null", absent)
	}
}
