package source

import (
	"strings"
	"testing"
)

func TestTextExtractor_ParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	e := &TextExtractor{}
	doc, err := e.Extract(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	want := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	if doc.Text != want {
		t.Errorf("expected %q, got %q", want, doc.Text)
	}
}

func TestTextExtractor_EmptyInput(t *testing.T) {
	e := &TextExtractor{}
	doc, err := e.Extract(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "" {
		t.Errorf("expected empty text, got %q", doc.Text)
	}
}

func TestMarkdownExtractor_TitleFromH1(t *testing.T) {
	input := "# Release Notes\n\nSome intro.\n\n## Details\n\n- item one\n- item two\n"
	e := &MarkdownExtractor{}
	doc, err := e.Extract(strings.NewReader(input), "relnotes.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Release Notes" {
		t.Errorf("expected title from h1, got %q", doc.Title)
	}
	for _, want := range []string{"Some intro.", "Details", "- item one"} {
		if !strings.Contains(doc.Text, want) {
			t.Errorf("expected text to contain %q, got:\n%s", want, doc.Text)
		}
	}
}

func TestHTMLExtractor_TitleAndBody(t *testing.T) {
	input := `<html><head><title>Widget Guide</title><style>p{}</style></head>
<body><h1>Widgets</h1><p>Widgets are great.</p><script>ignored()</script></body></html>`
	e := &HTMLExtractor{}
	doc, err := e.Extract(strings.NewReader(input), "guide.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Widget Guide" {
		t.Errorf("expected title from <title>, got %q", doc.Title)
	}
	if !strings.Contains(doc.Text, "Widgets are great.") {
		t.Errorf("missing paragraph text:\n%s", doc.Text)
	}
	if strings.Contains(doc.Text, "ignored()") {
		t.Errorf("script content leaked into text:\n%s", doc.Text)
	}
}

func TestForFile_Unsupported(t *testing.T) {
	if _, err := ForFile("image.png"); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if IsSupportedExtension("image.png") {
		t.Error("png should not be supported")
	}
	if !IsSupportedExtension("Report.PDF") {
		t.Error("extension check should be case-insensitive")
	}
}
