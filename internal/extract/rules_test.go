package extract

import (
	"reflect"
	"testing"
)

const sampleSpec = `# Agent Specification

Agent Name: Aria Assistant
Description: A friendly customer assistant.
Tone: warm
Core Capabilities:
- A
- B
Primary Color: #FF8800
Secondary Color: #112233
Greeting: Hello there!

## Personality
Warm and professional.`

func TestApplyExtractsLabeledFields(t *testing.T) {
	fields := Apply(sampleSpec)

	want := map[string]string{
		"name":            "Aria Assistant",
		"description":     "A friendly customer assistant.",
		"tone":            "warm",
		"primary_color":   "#ff8800",
		"secondary_color": "#112233",
		"greeting":        "Hello there!",
	}
	for field, wantVal := range want {
		if got := fields[field]; got != wantVal {
			t.Errorf("%s = %q, want %q", field, got, wantVal)
		}
	}
}

func TestApplyDefaultsOnMiss(t *testing.T) {
	fields := Apply("no labeled sections anywhere in this prose")

	for _, r := range Rules {
		if got := fields[r.Field]; got != r.Default {
			t.Errorf("%s = %q, want default %q", r.Field, got, r.Default)
		}
	}
}

func TestApplyNeverMissingFields(t *testing.T) {
	for _, text := range []string{"", sampleSpec, "Agent Name: X"} {
		fields := Apply(text)
		if len(fields) != len(Rules) {
			t.Errorf("Apply(%q) returned %d fields, want %d", text, len(fields), len(Rules))
		}
	}
}

func TestCapabilities(t *testing.T) {
	got := Capabilities("Core Capabilities:\n- A\n- B\n")
	if !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("got %v, want [A B]", got)
	}
}

func TestCapabilitiesDefault(t *testing.T) {
	got := Capabilities("nothing of interest here")
	if !reflect.DeepEqual(got, DefaultCapabilities) {
		t.Errorf("got %v, want %v", got, DefaultCapabilities)
	}
}

func TestCapabilitiesListEndsAtNonBullet(t *testing.T) {
	text := "Core Capabilities:\n- first\n- second\nPrimary Color: #000000\n- stray bullet\n"
	got := Capabilities(text)
	if !reflect.DeepEqual(got, []string{"first", "second"}) {
		t.Errorf("got %v, want [first second]", got)
	}
}

func TestCapabilitiesStarBullets(t *testing.T) {
	got := Capabilities("Core Capabilities:\n* alpha\n* beta\n")
	if !reflect.DeepEqual(got, []string{"alpha", "beta"}) {
		t.Errorf("got %v, want [alpha beta]", got)
	}
}

func TestRulesIndividuallyMatchable(t *testing.T) {
	for _, r := range Rules {
		if _, ok := r.Match("completely unrelated text"); ok {
			t.Errorf("rule %s matched unrelated text", r.Field)
		}
		if r.Default == "" {
			t.Errorf("rule %s has no default", r.Field)
		}
	}
}
