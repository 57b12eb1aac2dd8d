// Package workspace owns per-user generation sessions: an on-disk
// folder of generated topics plus the in-memory record used for
// duplicate detection, map building, and export.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ctwg/ditagen/internal/archive"
	"github.com/ctwg/ditagen/internal/body"
	"github.com/ctwg/ditagen/internal/ditaml"
	"github.com/ctwg/ditagen/internal/ditamap"
)

var (
	// ErrInvalidOwner rejects owner ids that normalize to nothing.
	ErrInvalidOwner = errors.New("invalid owner id")
	// ErrNotFound reports a missing workspace file.
	ErrNotFound = errors.New("file not found")
)

// Workspace is one owner's generation session. Topics are immutable
// once generated; the session holds them until export or deletion.
type Workspace struct {
	mu sync.Mutex

	SessionID string
	Owner     string
	Dir       string

	topics   map[string]*ditaml.Topic // keyed by topic id
	lastUsed time.Time
}

// TopicRequest is one user submission.
type TopicRequest struct {
	Type         ditaml.ContentType
	Title        string
	Shortdesc    string
	BodyMarkdown string
}

// Generate derives the topic id, binds the template, writes the file,
// and records the topic. A second topic with the same type and title
// within the session is rejected.
func (w *Workspace) Generate(req TopicRequest) (*ditaml.Topic, error) {
	fields := map[string]string{}
	if req.Shortdesc != "" {
		fields["shortdesc"] = req.Shortdesc
	}
	if req.BodyMarkdown != "" {
		markup, err := body.FromMarkdown([]byte(req.BodyMarkdown))
		if err != nil {
			return nil, fmt.Errorf("convert body markdown: %w", err)
		}
		fields["body"] = markup
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastUsed = time.Now()

	// Pre-check so a duplicate never reaches the filesystem.
	id, err := ditaml.TopicID(req.Type, req.Title)
	if err != nil {
		return nil, err
	}
	if prev, ok := w.topics[id]; ok {
		return nil, fmt.Errorf("%w: %q and %q both generate %s", ditaml.ErrDuplicateTitle, prev.Title, req.Title, id)
	}

	topic, err := ditaml.Generate(req.Type, req.Title, fields)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(w.Dir, topic.Filename), []byte(topic.XML), 0o644); err != nil {
		return nil, fmt.Errorf("write topic: %w", err)
	}

	w.topics[topic.ID] = topic
	return topic, nil
}

// List returns the generated topics on disk, in filename order.
func (w *Workspace) List() ([]ditamap.Entry, error) {
	w.touch()
	return ditamap.FromDir(w.Dir)
}

// MapFiles returns the chapter map files on disk, in filename order.
func (w *Workspace) MapFiles() ([]string, error) {
	w.touch()
	names, err := generatedFiles(w.Dir)
	if err != nil {
		return nil, err
	}
	var maps []string
	for _, name := range names {
		if strings.EqualFold(filepath.Ext(name), ".ditamap") {
			maps = append(maps, name)
		}
	}
	return maps, nil
}

// Remove deletes one generated file (topic or map) from the workspace.
func (w *Workspace) Remove(filename string) error {
	name, err := safeName(filename)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastUsed = time.Now()

	path := filepath.Join(w.Dir, name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("remove %s: %w", name, err)
	}
	for id, t := range w.topics {
		if t.Filename == name {
			delete(w.topics, id)
		}
	}
	return nil
}

// Clear removes every generated file and resets the session record.
func (w *Workspace) Clear() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastUsed = time.Now()

	names, err := generatedFiles(w.Dir)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := os.Remove(filepath.Join(w.Dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	w.topics = make(map[string]*ditaml.Topic)
	return nil
}

// BuildMap rebuilds the chapter map in full from the files on disk and
// writes it to the workspace. Returns the map filename and content.
func (w *Workspace) BuildMap(chapterTitle string) (string, string, error) {
	w.touch()

	entries, err := ditamap.FromDir(w.Dir)
	if err != nil {
		return "", "", err
	}
	xml, err := ditamap.Build(chapterTitle, entries)
	if err != nil {
		return "", "", err
	}
	name, err := ditamap.Filename(chapterTitle)
	if err != nil {
		return "", "", err
	}
	if err := os.WriteFile(filepath.Join(w.Dir, name), []byte(xml), 0o644); err != nil {
		return "", "", fmt.Errorf("write map: %w", err)
	}
	return name, xml, nil
}

// Export bundles the workspace into a zip archive.
func (w *Workspace) Export(includeMap bool) ([]byte, error) {
	w.touch()
	return archive.Build(w.Dir, includeMap)
}

func (w *Workspace) touch() {
	w.mu.Lock()
	w.lastUsed = time.Now()
	w.mu.Unlock()
}

func (w *Workspace) idle(now time.Time) time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return now.Sub(w.lastUsed)
}

// safeName rejects anything but a bare generated file name.
func safeName(name string) (string, error) {
	base := filepath.Base(name)
	if base != name || base == "." || base == "" || strings.Contains(base, "..") {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".xml", ".ditamap":
		return base, nil
	}
	return "", fmt.Errorf("%w: %q", ErrNotFound, name)
}

func generatedFiles(dir string) ([]string, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var names []string
	for _, de := range dirents {
		if de.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(de.Name())) {
		case ".xml", ".ditamap":
			names = append(names, de.Name())
		}
	}
	return names, nil
}

// At opens a standalone workspace rooted at exactly dir, creating the
// directory if needed. Unlike Manager.Get it does not normalize the
// path; batch runs use it to honor an output flag verbatim.
func At(dir string) (*Workspace, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace dir: %w", err)
	}
	return &Workspace{
		SessionID: NewSessionID(),
		Owner:     filepath.Base(dir),
		Dir:       dir,
		topics:    make(map[string]*ditaml.Topic),
		lastUsed:  time.Now(),
	}, nil
}

// NewSessionID mints an opaque id for a workspace session.
func NewSessionID() string {
	return uuid.NewString()
}
