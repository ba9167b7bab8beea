// Package audit cross-checks tool registrations found in source text against
// tool mentions found in documentation text.
//
// Everything here is a pure function of its input: callers hand in (label,
// text) pairs and get plain values back. File discovery and rendering live
// elsewhere.
package audit

import "sort"

// File is one unit of input text, identified by a label (usually a
// slash-separated path relative to the project root).
type File struct {
	Label string
	Text  string
}

// ToolRecord describes a single tool registration.
type ToolRecord struct {
	Name        string `json:"name" yaml:"name"`
	File        string `json:"file" yaml:"file"`
	Deprecated  bool   `json:"deprecated" yaml:"deprecated"`
	Description string `json:"description" yaml:"description"`
}

// Registry maps a tool name to the record that defined it.
type Registry map[string]ToolRecord

// Deprecated counts the deprecated records in the registry.
func (r Registry) Deprecated() int {
	count := 0
	for _, record := range r {
		if record.Deprecated {
			count++
		}
	}
	return count
}

// Names returns the registry keys in lexicographic order.
func (r Registry) Names() []string {
	return sortedKeys(r)
}

// Mentions maps a tool name to the sorted labels of the documents that
// mention it at least once.
type Mentions map[string][]string

// Names returns the mentioned tool names in lexicographic order.
func (m Mentions) Names() []string {
	return sortedKeys(m)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedFiles(files []File) []File {
	out := make([]File, len(files))
	copy(out, files)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Label < out[j].Label
	})
	return out
}
