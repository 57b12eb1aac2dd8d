package ditaml

import (
	"errors"
	"testing"
)

func TestKebabCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"My First Concept!", "my-first-concept"},
		{"Understanding   SD-WAN", "understanding-sd-wan"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"snake_case_title", "snake-case-title"},
		{"Already-kebab", "already-kebab"},
		{"MiXeD CaSe 123", "mixed-case-123"},
		{"don't panic", "don-t-panic"},
		{"v1.2 Notes", "v1-2-notes"},
		{"!!!", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := KebabCase(c.in); got != c.want {
			t.Errorf("KebabCase(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestKebabCase_Idempotent(t *testing.T) {
	inputs := []string{"My First Concept!", "a  b   c", "X_Y-Z", "c-my-first-concept"}
	for _, in := range inputs {
		once := KebabCase(in)
		twice := KebabCase(once)
		if once != twice {
			t.Errorf("KebabCase not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestTopicID_Prefixes(t *testing.T) {
	cases := []struct {
		ct    ContentType
		title string
		want  string
	}{
		{Concept, "My First Concept!", "c-my-first-concept"},
		{Task, "Configure the Device", "t-configure-the-device"},
		{Process, "Release Process", "pr-release-process"},
		{Principle, "Design Principles", "pl-design-principles"},
		{Reference, "CLI Reference", "r-cli-reference"},
	}
	for _, c := range cases {
		got, err := TopicID(c.ct, c.title)
		if err != nil {
			t.Fatalf("TopicID(%s, %q): unexpected error: %v", c.ct, c.title, err)
		}
		if got != c.want {
			t.Errorf("TopicID(%s, %q) = %q, want %q", c.ct, c.title, got, c.want)
		}
	}
}

func TestTopicID_Deterministic(t *testing.T) {
	a, err := TopicID(Concept, "Same Title")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := TopicID(Concept, "Same Title")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Errorf("same type+title produced different ids: %q vs %q", a, b)
	}
}

func TestTopicID_EmptyTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "!!!", "---"} {
		_, err := TopicID(Concept, title)
		if !errors.Is(err, ErrEmptyTitle) {
			t.Errorf("TopicID(concept, %q): expected ErrEmptyTitle, got %v", title, err)
		}
	}
}

func TestTopicID_UnknownType(t *testing.T) {
	_, err := TopicID(ContentType("chapter"), "Some Title")
	if !errors.Is(err, ErrMissingTemplate) {
		t.Errorf("expected ErrMissingTemplate, got %v", err)
	}
}

func TestParseContentType(t *testing.T) {
	for _, ct := range TypeOrder {
		got, err := ParseContentType(string(ct))
		if err != nil {
			t.Fatalf("ParseContentType(%q): unexpected error: %v", ct, err)
		}
		if got != ct {
			t.Errorf("ParseContentType(%q) = %q", ct, got)
		}
	}
	if _, err := ParseContentType("glossary"); !errors.Is(err, ErrMissingTemplate) {
		t.Errorf("expected ErrMissingTemplate for unknown type, got %v", err)
	}
}

func TestTypeForElement(t *testing.T) {
	cases := []struct {
		element  string
		filename string
		want     ContentType
		ok       bool
	}{
		{"ct_task", "t-setup.xml", Task, true},
		{"ct_process", "pr-release.xml", Process, true},
		{"ct_principle", "pl-design.xml", Principle, true},
		{"ct_concept", "c-overview.xml", Concept, true},
		{"ct_concept", "r-cli.xml", Reference, true},
		{"topic", "x.xml", "", false},
	}
	for _, c := range cases {
		got, ok := TypeForElement(c.element, c.filename)
		if ok != c.ok || got != c.want {
			t.Errorf("TypeForElement(%q, %q) = (%q, %v), want (%q, %v)",
				c.element, c.filename, got, ok, c.want, c.ok)
		}
	}
}
