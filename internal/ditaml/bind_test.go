package ditaml

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerate_Concept(t *testing.T) {
	topic, err := Generate(Concept, "My First Concept!", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if topic.ID != "c-my-first-concept" {
		t.Errorf("expected id %q, got %q", "c-my-first-concept", topic.ID)
	}
	if topic.Filename != "c-my-first-concept.xml" {
		t.Errorf("expected filename %q, got %q", "c-my-first-concept.xml", topic.Filename)
	}

	// The derived id appears exactly once, in the id attribute position.
	attr := `id="c-my-first-concept"`
	if n := strings.Count(topic.XML, attr); n != 1 {
		t.Errorf("expected id attribute exactly once, found %d in:\n%s", n, topic.XML)
	}
	if !strings.Contains(topic.XML, `<ct_concept id="c-my-first-concept"`) {
		t.Errorf("id attribute not on root element:\n%s", topic.XML)
	}
	if !strings.Contains(topic.XML, "<title>My First Concept!</title>") {
		t.Errorf("title not substituted:\n%s", topic.XML)
	}
}

func TestGenerate_ElementPerType(t *testing.T) {
	cases := []struct {
		ct      ContentType
		element string
	}{
		{Concept, "<ct_concept "},
		{Task, "<ct_task "},
		{Process, "<ct_process "},
		{Principle, "<ct_principle "},
		// Reference reuses the concept element.
		{Reference, "<ct_concept "},
	}
	for _, c := range cases {
		topic, err := Generate(c.ct, "Sample Title", nil)
		if err != nil {
			t.Fatalf("Generate(%s): unexpected error: %v", c.ct, err)
		}
		if !strings.Contains(topic.XML, c.element) {
			t.Errorf("Generate(%s): expected root element %q in:\n%s", c.ct, c.element, topic.XML)
		}
	}
}

func TestGenerate_EscapesTitle(t *testing.T) {
	topic, err := Generate(Concept, "Routing & <Switching>", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(topic.XML, "<title>Routing &amp; &lt;Switching&gt;</title>") {
		t.Errorf("title not escaped:\n%s", topic.XML)
	}
	if topic.ID != "c-routing-switching" {
		t.Errorf("expected id %q, got %q", "c-routing-switching", topic.ID)
	}
}

func TestGenerate_OptionalFieldsDefaultEmpty(t *testing.T) {
	topic, err := Generate(Concept, "No Extras", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(topic.XML, "<shortdesc></shortdesc>") {
		t.Errorf("expected empty shortdesc:\n%s", topic.XML)
	}
}

func TestGenerate_ShortdescEscaped(t *testing.T) {
	topic, err := Generate(Concept, "With Shortdesc", map[string]string{
		"shortdesc": "A & B",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(topic.XML, "<shortdesc>A &amp; B</shortdesc>") {
		t.Errorf("shortdesc not escaped:\n%s", topic.XML)
	}
}

func TestGenerate_BodyPassedThrough(t *testing.T) {
	topic, err := Generate(Concept, "With Body", map[string]string{
		"body": "<p>already markup</p>",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(topic.XML, "<p>already markup</p>") {
		t.Errorf("body markup was escaped or dropped:\n%s", topic.XML)
	}
}

func TestBind_MissingRequiredField(t *testing.T) {
	// Bind without id/title must report the missing placeholder.
	_, err := Bind(Concept, map[string]string{"title": "Only Title"})
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
}

func TestBind_UnknownType(t *testing.T) {
	_, err := Bind(ContentType("chapter"), map[string]string{"id": "x", "title": "y"})
	if !errors.Is(err, ErrMissingTemplate) {
		t.Errorf("expected ErrMissingTemplate, got %v", err)
	}
}

func TestGenerate_EmptyTitle(t *testing.T) {
	_, err := Generate(Task, "   ", nil)
	if !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
}
