// Package schema holds the declarative rule sets applied to mutation
// payloads. A rule set either accepts a payload or reports every violation
// at once, joined into a single human-readable message; callers never apply
// a partially valid payload.
package schema

import (
	"fmt"
	"net/url"
	"strings"

	"wanderlust/normalize"
)

// ValidationError aggregates every field violation of one payload.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// Rule checks one field and reports zero or more violation messages.
type Rule interface {
	Check() []string
}

type RuleSet []Rule

// Validate runs every rule and aggregates the violations.
func (rs RuleSet) Validate() error {
	var msgs []string
	for _, r := range rs {
		msgs = append(msgs, r.Check()...)
	}
	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

// StringRule bounds the trimmed length of an optional or required string.
type StringRule struct {
	Name     string
	Value    *string
	Required bool
	Min      int
	Max      int
}

func (r StringRule) Check() []string {
	if r.Value == nil || strings.TrimSpace(*r.Value) == "" {
		if r.Required {
			return []string{r.Name + " is required"}
		}
		return nil
	}
	n := len(strings.TrimSpace(*r.Value))
	var msgs []string
	if r.Min > 0 && n < r.Min {
		msgs = append(msgs, fmt.Sprintf("%s must be at least %d characters long", r.Name, r.Min))
	}
	if r.Max > 0 && n > r.Max {
		msgs = append(msgs, fmt.Sprintf("%s cannot exceed %d characters", r.Name, r.Max))
	}
	return msgs
}

// NumberRule bounds a numeric field supplied as a number or numeric string.
type NumberRule struct {
	Name     string
	Value    normalize.FlexFloat
	Required bool
	Min      float64
	Max      float64
}

func (r NumberRule) Check() []string {
	if !r.Value.Present {
		if r.Required {
			return []string{r.Name + " is required"}
		}
		return nil
	}
	var msgs []string
	if r.Value.Value < r.Min {
		if r.Min == 0 {
			msgs = append(msgs, r.Name+" cannot be negative")
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must be at least %v", r.Name, r.Min))
		}
	}
	if r.Value.Value > r.Max {
		msgs = append(msgs, fmt.Sprintf("%s cannot exceed %s", r.Name, formatBound(r.Max)))
	}
	return msgs
}

// EnumRule restricts an optional string to a fixed category set.
type EnumRule struct {
	Name    string
	Value   *string
	Allowed []string
}

func (r EnumRule) Check() []string {
	if r.Value == nil || *r.Value == "" {
		return nil
	}
	for _, a := range r.Allowed {
		if *r.Value == a {
			return nil
		}
	}
	return []string{fmt.Sprintf("%s must be one of: %s", r.Name, strings.Join(r.Allowed, ", "))}
}

// URIRule requires a well-formed absolute URL; empty values pass.
type URIRule struct {
	Name  string
	Value string
}

func (r URIRule) Check() []string {
	if r.Value == "" {
		return nil
	}
	u, err := url.Parse(r.Value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return []string{"Please provide a valid URL for the " + strings.ToLower(r.Name)}
	}
	return nil
}

func formatBound(v float64) string {
	switch v {
	case 1000000:
		return "1,000,000"
	default:
		return fmt.Sprintf("%v", v)
	}
}
