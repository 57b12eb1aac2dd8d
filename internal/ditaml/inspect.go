package ditaml

import (
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
)

// TopicInfo is what the map builder needs to know about a generated file.
type TopicInfo struct {
	Element string
	ID      string
	Title   string
}

// Inspect reads the root element name, id attribute, and title text of a
// generated topic. Comments inside the title are ignored.
func Inspect(r io.Reader) (TopicInfo, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return TopicInfo{}, fmt.Errorf("parse topic: %w", err)
	}

	root := xmlquery.FindOne(doc, "/*")
	if root == nil {
		return TopicInfo{}, fmt.Errorf("parse topic: no root element")
	}

	info := TopicInfo{
		Element: root.Data,
		ID:      root.SelectAttr("id"),
	}
	if t := xmlquery.FindOne(root, "title"); t != nil {
		info.Title = strings.TrimSpace(t.InnerText())
	}
	return info, nil
}
