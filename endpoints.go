package main

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Endpoint maps an element name to the relative path of its
// documentation page.
type Endpoint struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Section groups element names that share the first segment of their
// documentation path. Used to build the unknown element hint.
type Section struct {
	Name     string
	Elements []string
}

// EndpointTable is an immutable, ordered name -> path mapping.
// Lookup is exact-match and case-sensitive; callers must pass the
// exact key. Constructed once at process start and never mutated.
type EndpointTable struct {
	entries []Endpoint
	index   map[string]string
}

// NewEndpointTable builds a table from entries, preserving their order.
func NewEndpointTable(entries []Endpoint) (*EndpointTable, error) {
	t := &EndpointTable{
		entries: make([]Endpoint, 0, len(entries)),
		index:   make(map[string]string, len(entries)),
	}
	for i, e := range entries {
		if e.Name == "" {
			return nil, Errorf(EINVALID, "endpoint entry %d: name required", i)
		}
		if e.Path == "" {
			return nil, Errorf(EINVALID, "endpoint entry %d (%s): path required", i, e.Name)
		}
		if _, exists := t.index[e.Name]; exists {
			return nil, Errorf(EINVALID, "duplicate endpoint name %q", e.Name)
		}
		t.entries = append(t.entries, e)
		t.index[e.Name] = e.Path
	}
	return t, nil
}

// LoadEndpointTable reads a YAML endpoint list from path. The file is
// a sequence of {name, path} entries; sequence order becomes table
// order.
func LoadEndpointTable(path string) (*EndpointTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Errorf(EINVALID, "read endpoint file: %v", err)
	}
	var entries []Endpoint
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, Errorf(EINVALID, "parse endpoint file %s: %v", path, err)
	}
	if len(entries) == 0 {
		return nil, Errorf(EINVALID, "endpoint file %s contains no entries", path)
	}
	return NewEndpointTable(entries)
}

// Resolve returns the documentation path for name. No trimming, no
// case folding.
func (t *EndpointTable) Resolve(name string) (string, bool) {
	path, ok := t.index[name]
	return path, ok
}

// Names returns the element names in table order.
func (t *EndpointTable) Names() []string {
	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.Name
	}
	return names
}

// Len returns the number of known elements.
func (t *EndpointTable) Len() int {
	return len(t.entries)
}

// Sections regroups the table by the first path segment. Section order
// follows the first appearance of each section in the table; names
// within a section keep table order. Names whose path has no segment
// fall into an "other" bucket.
func (t *EndpointTable) Sections() []Section {
	var sections []Section
	byName := make(map[string]int)
	for _, e := range t.entries {
		section := pathSection(e.Path)
		idx, ok := byName[section]
		if !ok {
			idx = len(sections)
			byName[section] = idx
			sections = append(sections, Section{Name: section})
		}
		sections[idx].Elements = append(sections[idx].Elements, e.Name)
	}
	return sections
}

// pathSection extracts the first non-empty path segment.
func pathSection(path string) string {
	for _, segment := range strings.Split(strings.TrimPrefix(path, "/"), "/") {
		if segment != "" {
			return segment
		}
	}
	return "other"
}

// DefaultEndpoints is the built-in table for a Material for MkDocs
// component library site. Paths are relative to the configured base
// URL.
func DefaultEndpoints() *EndpointTable {
	t, err := NewEndpointTable([]Endpoint{
		// inputs
		{Name: "button", Path: "/inputs/button/"},
		{Name: "checkbox", Path: "/inputs/checkbox/"},
		{Name: "input", Path: "/inputs/input/"},
		{Name: "radio", Path: "/inputs/radio/"},
		{Name: "select", Path: "/inputs/select/"},
		{Name: "slider", Path: "/inputs/slider/"},
		{Name: "switch", Path: "/inputs/switch/"},
		{Name: "textarea", Path: "/inputs/textarea/"},
		{Name: "upload", Path: "/inputs/upload/"},

		// layouts
		{Name: "card", Path: "/layouts/card/"},
		{Name: "column", Path: "/layouts/column/"},
		{Name: "dialog", Path: "/layouts/dialog/"},
		{Name: "expansion", Path: "/layouts/expansion/"},
		{Name: "grid", Path: "/layouts/grid/"},
		{Name: "row", Path: "/layouts/row/"},
		{Name: "splitter", Path: "/layouts/splitter/"},
		{Name: "tabs", Path: "/layouts/tabs/"},

		// media
		{Name: "audio", Path: "/media/audio/"},
		{Name: "icon", Path: "/media/icon/"},
		{Name: "image", Path: "/media/image/"},
		{Name: "video", Path: "/media/video/"},

		// core features
		{Name: "configuration", Path: "/core/configuration/"},
		{Name: "events", Path: "/core/events/"},
		{Name: "storage", Path: "/core/storage/"},
		{Name: "styling", Path: "/core/styling/"},
		{Name: "routing", Path: "/core/routing/"},
	})
	if err != nil {
		// The built-in table is validated by tests; a failure here is
		// a programming error.
		panic(err)
	}
	return t
}
