package reviews

import (
	"testing"

	"wanderlust/models"
	"wanderlust/normalize"
)

func strptr(s string) *string { return &s }

func rating(v float64) normalize.FlexFloat {
	return normalize.FlexFloat{Value: v, Present: true}
}

func TestSanitizeRoundsRating(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{4.4, 4},
		{4.5, 5},
		{1.0, 1},
		{4.99, 5},
	}
	for _, c := range cases {
		got := sanitize(&models.ReviewPayload{Rating: rating(c.in)})
		if got.Rating != c.want {
			t.Errorf("rating %v rounds to %d, want %d", c.in, got.Rating, c.want)
		}
	}
}

func TestSanitizeAuthor(t *testing.T) {
	cases := []struct {
		name   string
		author *string
		want   string
	}{
		{"missing", nil, models.AnonymousAuthor},
		{"blank", strptr("   "), models.AnonymousAuthor},
		{"single char after trim", strptr(" a "), models.AnonymousAuthor},
		{"kept", strptr("  Priya  "), "Priya"},
	}
	for _, c := range cases {
		got := sanitize(&models.ReviewPayload{Rating: rating(4), Author: c.author})
		if got.Author != c.want {
			t.Errorf("%s: author = %q, want %q", c.name, got.Author, c.want)
		}
	}
}

func TestSanitizeTrimsComment(t *testing.T) {
	got := sanitize(&models.ReviewPayload{Rating: rating(3), Comment: strptr("  great place  ")})
	if got.Comment != "great place" {
		t.Errorf("comment = %q", got.Comment)
	}
}

func TestSanitizedFieldsPartial(t *testing.T) {
	set := sanitizedFields(&models.ReviewPayload{Comment: strptr(" updated ")})
	if len(set) != 1 || set["comment"] != "updated" {
		t.Errorf("set = %v", set)
	}

	set = sanitizedFields(&models.ReviewPayload{Rating: rating(3.6)})
	if set["rating"] != 4 {
		t.Errorf("rating = %v, want 4", set["rating"])
	}

	set = sanitizedFields(&models.ReviewPayload{Author: strptr(" x ")})
	if set["author"] != models.AnonymousAuthor {
		t.Errorf("short author = %v, want anonymous", set["author"])
	}

	if set := sanitizedFields(&models.ReviewPayload{}); len(set) != 0 {
		t.Errorf("empty payload produced fields: %v", set)
	}
}
