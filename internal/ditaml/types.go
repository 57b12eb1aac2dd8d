// Package ditaml generates DITA topic documents from the fixed CTWG
// content-type templates: identifier normalization, template binding,
// and introspection of generated files.
package ditaml

import "fmt"

// ContentType identifies one of the five CTWG topic flavors.
type ContentType string

const (
	Concept   ContentType = "concept"
	Task      ContentType = "task"
	Process   ContentType = "process"
	Principle ContentType = "principle"
	Reference ContentType = "reference"
)

// TypeOrder is the canonical ordering used for chapter maps and listings.
var TypeOrder = []ContentType{Concept, Task, Process, Principle, Reference}

// prefixes follow the CTWG filename convention.
var prefixes = map[ContentType]string{
	Concept:   "c-",
	Task:      "t-",
	Process:   "pr-",
	Principle: "pl-",
	Reference: "r-",
}

// elements maps each content type to its DITA root element.
// Reference topics ship on the concept DTD and reuse its element;
// they are told apart by the r- filename prefix.
var elements = map[ContentType]string{
	Concept:   "ct_concept",
	Task:      "ct_task",
	Process:   "ct_process",
	Principle: "ct_principle",
	Reference: "ct_concept",
}

// ParseContentType validates a user-supplied type string.
func ParseContentType(s string) (ContentType, error) {
	ct := ContentType(s)
	if _, ok := prefixes[ct]; !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingTemplate, s)
	}
	return ct, nil
}

// Valid reports whether t is one of the five known content types.
func (t ContentType) Valid() bool {
	_, ok := prefixes[t]
	return ok
}

// Prefix returns the filename/id prefix for the content type.
func (t ContentType) Prefix() string { return prefixes[t] }

// Element returns the DITA root element name for the content type.
func (t ContentType) Element() string { return elements[t] }

// TypeForElement resolves a root element name back to a content type.
// ct_concept files named with the r- prefix are references.
func TypeForElement(element, filename string) (ContentType, bool) {
	switch element {
	case "ct_task":
		return Task, true
	case "ct_process":
		return Process, true
	case "ct_principle":
		return Principle, true
	case "ct_concept":
		if len(filename) >= 2 && filename[:2] == "r-" {
			return Reference, true
		}
		return Concept, true
	}
	return "", false
}

// Topic is a single generated DITA document. Immutable once created;
// it lives in the owning session until export or deletion.
type Topic struct {
	Type     ContentType
	Title    string
	ID       string
	Filename string
	XML      string
}
