// Package manifest loads yaml chapter manifests for batch generation.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ctwg/ditagen/internal/ditaml"
)

// Chapter describes a batch of topics to generate plus the map title.
//
// Example:
//
//	chapter: Getting Started Guide
//	topics:
//	  concept:
//	    - title: Widget Overview
//	      shortdesc: What widgets are.
//	  task:
//	    - title: Install Widgets
//	      body: install-widgets.md
type Chapter struct {
	Title  string             `yaml:"chapter"`
	Topics map[string][]Topic `yaml:"topics"`

	dir string // manifest location, for resolving body paths
}

// Topic is one entry under a content-type key.
type Topic struct {
	Title     string `yaml:"title"`
	Shortdesc string `yaml:"shortdesc,omitempty"`
	// Body is a path to a markdown file, relative to the manifest.
	Body string `yaml:"body,omitempty"`
}

// Item is a flattened, validated topic to generate.
type Item struct {
	Type         ditaml.ContentType
	Title        string
	Shortdesc    string
	BodyMarkdown string
}

// Load reads and validates a chapter manifest.
func Load(path string) (*Chapter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var c Chapter
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	c.dir = filepath.Dir(path)

	if c.Title == "" {
		return nil, fmt.Errorf("manifest: chapter title is required")
	}
	for key := range c.Topics {
		if _, err := ditaml.ParseContentType(key); err != nil {
			return nil, fmt.Errorf("manifest: unknown content type %q", key)
		}
	}
	return &c, nil
}

// Items flattens the manifest in canonical type order, reading any
// referenced body files.
func (c *Chapter) Items() ([]Item, error) {
	var items []Item
	for _, ct := range ditaml.TypeOrder {
		for _, t := range c.Topics[string(ct)] {
			item := Item{
				Type:      ct,
				Title:     t.Title,
				Shortdesc: t.Shortdesc,
			}
			if t.Body != "" {
				data, err := os.ReadFile(filepath.Join(c.dir, t.Body))
				if err != nil {
					return nil, fmt.Errorf("read body for %q: %w", t.Title, err)
				}
				item.BodyMarkdown = string(data)
			}
			items = append(items, item)
		}
	}
	return items, nil
}
