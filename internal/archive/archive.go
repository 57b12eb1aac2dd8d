// Package archive bundles generated topic files into a zip download.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ctwg/ditagen/internal/ditaml"
)

// Build zips the generated files in dir: every *.xml sorted by name,
// plus *.ditamap files when includeMap is set. The archive is built in
// memory; no temp files.
func Build(dir string, includeMap bool) ([]byte, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var topics, maps []string
	for _, de := range dirents {
		if de.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(de.Name())) {
		case ".xml":
			topics = append(topics, de.Name())
		case ".ditamap":
			maps = append(maps, de.Name())
		}
	}
	if len(topics) == 0 {
		return nil, ditaml.ErrNoTopics
	}
	sort.Strings(topics)
	sort.Strings(maps)

	names := topics
	if includeMap {
		names = append(names, maps...)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("add %s: %w", name, err)
		}
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		_, err = io.Copy(w, f)
		f.Close()
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
