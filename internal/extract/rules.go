// Package extract scrapes structured agent fields out of free-form pipeline
// text. Every rule pairs a matcher with a default, so extraction can degrade
// but never fail: callers always receive a complete value set.
package extract

import (
	"regexp"
	"strings"
)

// Rule binds one field to a matcher and the default used when the matcher
// finds nothing. Rules are independently unit-testable.
type Rule struct {
	Field   string
	Match   func(text string) (string, bool)
	Default string
}

// labeled returns a matcher for "Label: value" lines.
func labeled(label string) func(string) (string, bool) {
	re := regexp.MustCompile(`(?mi)^\s*` + regexp.QuoteMeta(label) + `:\s*(.+)$`)
	return func(text string) (string, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		return strings.TrimSpace(m[1]), true
	}
}

// hexColor returns a matcher for "Label: #rrggbb" lines, normalized to
// lowercase.
func hexColor(label string) func(string) (string, bool) {
	re := regexp.MustCompile(`(?mi)^\s*` + regexp.QuoteMeta(label) + `:\s*(#[0-9a-fA-F]{6})\b`)
	return func(text string) (string, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		return strings.ToLower(m[1]), true
	}
}

// Rules is the fixed extraction table for scalar fields.
var Rules = []Rule{
	{Field: "name", Match: labeled("Agent Name"), Default: "AI Assistant"},
	{Field: "description", Match: labeled("Description"), Default: "A helpful AI assistant that answers questions and solves problems."},
	{Field: "tone", Match: labeled("Tone"), Default: "friendly"},
	{Field: "primary_color", Match: hexColor("Primary Color"), Default: "#6366f1"},
	{Field: "secondary_color", Match: hexColor("Secondary Color"), Default: "#8b5cf6"},
	{Field: "greeting", Match: labeled("Greeting"), Default: "Hi! How can I help you today?"},
}

// DefaultCapabilities is substituted when no capability list is found.
var DefaultCapabilities = []string{"communication", "problem-solving", "customer-service"}

// Fields holds every extracted scalar value keyed by rule field name.
type Fields map[string]string

// Apply runs the full rule table over the text. The result carries a value
// for every rule, defaulted where the matcher missed.
func Apply(text string) Fields {
	out := make(Fields, len(Rules))
	for _, r := range Rules {
		if v, ok := r.Match(text); ok {
			out[r.Field] = v
			continue
		}
		out[r.Field] = r.Default
	}
	return out
}

// capabilitiesRe captures the bullet list under a "Core Capabilities:"
// heading; the list ends at the first non-bullet line.
var capabilitiesRe = regexp.MustCompile(`(?mi)^\s*Core Capabilities:\s*\n((?:\s*[-*]\s+.+\n?)+)`)

var bulletRe = regexp.MustCompile(`(?m)^\s*[-*]\s+(.+)$`)

// Capabilities parses the bullet list under "Core Capabilities:". Missing or
// empty lists yield the fixed default set.
func Capabilities(text string) []string {
	m := capabilitiesRe.FindStringSubmatch(text)
	if m == nil {
		return append([]string(nil), DefaultCapabilities...)
	}

	var caps []string
	for _, b := range bulletRe.FindAllStringSubmatch(m[1], -1) {
		if v := strings.TrimSpace(b[1]); v != "" {
			caps = append(caps, v)
		}
	}
	if len(caps) == 0 {
		return append([]string(nil), DefaultCapabilities...)
	}
	return caps
}
