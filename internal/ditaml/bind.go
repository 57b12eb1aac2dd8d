package ditaml

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.xml
var templateFS embed.FS

// optionalFields are placeholders every template may reference but a
// caller is allowed to omit; they default to empty.
var optionalFields = []string{"shortdesc", "body"}

// xmlEscaper covers text content and attribute values.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeXML escapes a plain-text value for use in element content or
// attribute values.
func EscapeXML(s string) string { return xmlEscaper.Replace(s) }

// Bind loads the static template for the content type and substitutes
// the named placeholders with the given field values. Field values are
// XML-escaped, except "body", which carries pre-rendered DITA markup.
// A placeholder the template references without a binding or default
// yields ErrMissingField.
func Bind(ct ContentType, fields map[string]string) (string, error) {
	if !ct.Valid() {
		return "", fmt.Errorf("%w: %q", ErrMissingTemplate, ct)
	}
	raw, err := templateFS.ReadFile("templates/ct-" + string(ct) + ".xml")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrMissingTemplate, ct)
	}

	data := make(map[string]string, len(fields)+len(optionalFields))
	for _, k := range optionalFields {
		data[k] = ""
	}
	for k, v := range fields {
		if k == "body" {
			data[k] = v
			continue
		}
		data[k] = EscapeXML(v)
	}

	tpl, err := template.New("ct-" + string(ct)).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", ct, err)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMissingField, err)
	}
	return buf.String(), nil
}

// Generate derives the topic id from the title and binds the template,
// producing a complete, immutable Topic.
func Generate(ct ContentType, title string, fields map[string]string) (*Topic, error) {
	id, err := TopicID(ct, title)
	if err != nil {
		return nil, err
	}

	data := make(map[string]string, len(fields)+2)
	for k, v := range fields {
		data[k] = v
	}
	data["id"] = id
	data["title"] = title

	xml, err := Bind(ct, data)
	if err != nil {
		return nil, err
	}

	return &Topic{
		Type:     ct,
		Title:    title,
		ID:       id,
		Filename: id + ".xml",
		XML:      xml,
	}, nil
}
