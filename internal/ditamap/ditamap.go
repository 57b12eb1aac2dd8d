// Package ditamap builds the chapter map document referencing a set of
// generated DITA topics.
package ditamap

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ctwg/ditagen/internal/ditaml"
)

// Entry is one topic referenced from the chapter map.
type Entry struct {
	Filename string
	Element  string
	Title    string
	Type     ditaml.ContentType
}

// Filename returns the map file name for a chapter title.
func Filename(chapterTitle string) (string, error) {
	slug := ditaml.KebabCase(chapterTitle)
	if slug == "" {
		return "", fmt.Errorf("%w: %q", ditaml.ErrEmptyTitle, chapterTitle)
	}
	return slug + ".ditamap", nil
}

// Build assembles the chapter map. The first concept (lowest filename)
// becomes the parent topicref; nested under it come the remaining
// concepts, then principles, processes, tasks, and references, each
// group sorted by filename. With no concepts, all topicrefs sit flat
// in canonical type order. The map is rebuilt in full on every call.
func Build(chapterTitle string, entries []Entry) (string, error) {
	slug := ditaml.KebabCase(chapterTitle)
	if slug == "" {
		return "", fmt.Errorf("%w: %q", ditaml.ErrEmptyTitle, chapterTitle)
	}
	if len(entries) == 0 {
		return "", ditaml.ErrNoTopics
	}

	byType := make(map[ditaml.ContentType][]Entry)
	for _, e := range entries {
		byType[e.Type] = append(byType[e.Type], e)
	}
	for ct := range byType {
		group := byType[ct]
		sort.Slice(group, func(i, j int) bool { return group[i].Filename < group[j].Filename })
	}

	title := ditaml.EscapeXML(chapterTitle)
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<!DOCTYPE map PUBLIC \"-//CISCO//DTD DITA 1.3 Map v1.0//EN\" \"cisco-map.dtd\">\n")
	b.WriteString("<!-- Please change the title attribute of the <map> element using Attribute Inspector, whenever you change the <title> text. -->\n")
	fmt.Fprintf(&b, "<map xml:lang=\"en_US\" title=\"%s\" id=\"map_%s\">\n", title, slug)
	fmt.Fprintf(&b, "    <title>%s</title>\n", title)

	concepts := byType[ditaml.Concept]
	if len(concepts) > 0 {
		parent := concepts[0]
		writeTopicref(&b, "    ", parent, true)

		for _, e := range concepts[1:] {
			writeTopicref(&b, "        ", e, false)
		}
		for _, ct := range []ditaml.ContentType{ditaml.Principle, ditaml.Process, ditaml.Task, ditaml.Reference} {
			for _, e := range byType[ct] {
				writeTopicref(&b, "        ", e, false)
			}
		}
		b.WriteString("    </topicref>\n")
	} else {
		for _, ct := range ditaml.TypeOrder {
			for _, e := range byType[ct] {
				writeTopicref(&b, "    ", e, false)
			}
		}
	}

	b.WriteString("</map>\n")
	return b.String(), nil
}

func writeTopicref(b *strings.Builder, indent string, e Entry, open bool) {
	closing := "/>"
	if open {
		closing = ">"
	}
	fmt.Fprintf(b, "%s<topicref href=\"%s\" format=\"dita\" scope=\"local\" type=\"%s\" navtitle=\"%s\"%s\n",
		indent, ditaml.EscapeXML(e.Filename), e.Element, ditaml.EscapeXML(e.Title), closing)
}

// FromDir rebuilds map entries from a directory of generated topic files.
// ct_concept files carrying the r- prefix are classified as references.
func FromDir(dir string) ([]Entry, error) {
	names, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(names)

	var entries []Entry
	for _, name := range names {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		info, err := ditaml.Inspect(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("inspect %s: %w", filepath.Base(name), err)
		}

		base := filepath.Base(name)
		ct, ok := ditaml.TypeForElement(info.Element, base)
		if !ok {
			// Not one of ours; leave it out of the map.
			continue
		}
		title := info.Title
		if title == "" {
			title = strings.TrimSuffix(base, ".xml")
		}
		entries = append(entries, Entry{
			Filename: base,
			Element:  info.Element,
			Title:    title,
			Type:     ct,
		})
	}
	return entries, nil
}
