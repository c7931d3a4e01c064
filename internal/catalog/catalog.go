// Package catalog loads the YAML index of exercise snippets.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the command looks for the catalog when no path is
// given.
const DefaultPath = "exercises/catalog.yaml"

// Entry describes one standalone snippet.
type Entry struct {
	Name      string   `yaml:"name"`
	Dir       string   `yaml:"dir"`
	Topic     string   `yaml:"topic,omitempty"`
	Summary   string   `yaml:"summary,omitempty"`
	Args      []string `yaml:"args,omitempty"`
	Recursive bool     `yaml:"recursive,omitempty"`
}

// Source returns the snippet's main.go path.
func (e Entry) Source() string {
	return filepath.Join(e.Dir, "main.go")
}

// ExpectPath returns the default expected-output path for the snippet.
func (e Entry) ExpectPath() string {
	return filepath.Join(e.Dir, "expected.out")
}

// Catalog is the decoded catalog file. Entry dirs are absolute or relative
// to the working directory after Load.
type Catalog struct {
	Exercises []Entry `yaml:"exercises"`

	byName map[string]int
}

// Load reads and validates the catalog at path. Relative entry dirs are
// resolved against the catalog's own directory.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	cat, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	base := filepath.Dir(path)
	for i := range cat.Exercises {
		e := &cat.Exercises[i]
		if !filepath.IsAbs(e.Dir) {
			e.Dir = filepath.Join(base, e.Dir)
		}
		info, err := os.Stat(e.Dir)
		if err != nil {
			return nil, fmt.Errorf("%s: exercise %q: %w", path, e.Name, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s: exercise %q: %s is not a directory", path, e.Name, e.Dir)
		}
	}
	return cat, nil
}

// Decode parses a catalog without touching the filesystem.
func Decode(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var cat Catalog
	if err := dec.Decode(&cat); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("catalog is empty")
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	cat.byName = make(map[string]int, len(cat.Exercises))
	for i, e := range cat.Exercises {
		if e.Name == "" {
			return nil, fmt.Errorf("exercise %d has no name", i)
		}
		if e.Dir == "" {
			return nil, fmt.Errorf("exercise %q has no dir", e.Name)
		}
		if _, dup := cat.byName[e.Name]; dup {
			return nil, fmt.Errorf("duplicate exercise name %q", e.Name)
		}
		cat.byName[e.Name] = i
	}
	return &cat, nil
}

// Lookup returns the entry called name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Entry{}, false
	}
	return c.Exercises[i], true
}

// Names returns all exercise names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.Exercises))
	for _, e := range c.Exercises {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

// Select returns the entries for names, or every entry in sorted order when
// names is empty.
func (c *Catalog) Select(names []string) ([]Entry, error) {
	if len(names) == 0 {
		names = c.Names()
	}
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		e, ok := c.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown exercise %q", name)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
