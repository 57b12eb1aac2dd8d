package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ctwg/ditagen/internal/ditaml"
	"github.com/ctwg/ditagen/internal/ditamap"
)

func writeWorkspace(t *testing.T) (string, []string) {
	t.Helper()
	dir := t.TempDir()

	var filenames []string
	for ct, title := range map[ditaml.ContentType]string{
		ditaml.Concept: "Widget Overview",
		ditaml.Task:    "Install Widgets",
	} {
		topic, err := ditaml.Generate(ct, title, nil)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, topic.Filename), []byte(topic.XML), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		filenames = append(filenames, topic.Filename)
	}

	entries, err := ditamap.FromDir(dir)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	mapXML, err := ditamap.Build("Widgets", entries)
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "widgets.ditamap"), []byte(mapXML), 0o644); err != nil {
		t.Fatalf("write map: %v", err)
	}
	return dir, filenames
}

func listZip(t *testing.T, data []byte) []string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func TestBuild_WithMap(t *testing.T) {
	dir, filenames := writeWorkspace(t)

	data, err := Build(dir, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := listZip(t, data)

	// Exactly one map file and one file per generated topic.
	var mapCount, topicCount int
	for _, n := range names {
		if strings.HasSuffix(n, ".ditamap") {
			mapCount++
		} else {
			topicCount++
		}
	}
	if mapCount != 1 {
		t.Errorf("expected exactly 1 map file, got %d: %v", mapCount, names)
	}
	if topicCount != len(filenames) {
		t.Errorf("expected %d topic files, got %d: %v", len(filenames), topicCount, names)
	}
	for _, want := range filenames {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Errorf("archive missing %s: %v", want, names)
		}
	}
}

func TestBuild_WithoutMap(t *testing.T) {
	dir, _ := writeWorkspace(t)

	data, err := Build(dir, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, n := range listZip(t, data) {
		if strings.HasSuffix(n, ".ditamap") {
			t.Errorf("map file included without includeMap: %s", n)
		}
	}
}

func TestBuild_ContentsRoundTrip(t *testing.T) {
	dir, filenames := writeWorkspace(t)

	data, err := Build(dir, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	rc, err := zr.Open(filenames[0])
	if err != nil {
		t.Fatalf("open entry: %v", err)
	}
	got, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}
	want, err := os.ReadFile(filepath.Join(dir, filenames[0]))
	if err != nil {
		t.Fatalf("read original: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Error("archived content differs from the generated file")
	}
}

func TestBuild_EmptyDir(t *testing.T) {
	_, err := Build(t.TempDir(), true)
	if !errors.Is(err, ditaml.ErrNoTopics) {
		t.Errorf("expected ErrNoTopics, got %v", err)
	}
}
