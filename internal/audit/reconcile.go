package audit

// Reference is one entry of a discrepancy list.
type Reference struct {
	Name       string   `json:"name" yaml:"name"`
	Docs       []string `json:"docs,omitempty" yaml:"docs,omitempty"`
	File       string   `json:"file,omitempty" yaml:"file,omitempty"`
	Deprecated bool     `json:"deprecated" yaml:"deprecated"`
}

type Summary struct {
	SourceTools     int `json:"source_tools" yaml:"source_tools"`
	DocumentedTools int `json:"documented_tools" yaml:"documented_tools"`
	DeprecatedTools int `json:"deprecated_tools" yaml:"deprecated_tools"`
}

// Result holds the three discrepancy lists, each sorted by name.
type Result struct {
	// NotInSource lists names mentioned in docs with no registration.
	NotInSource []Reference `json:"not_in_source" yaml:"not_in_source"`
	// DeprecatedInDocs lists deprecated tools that docs still mention.
	DeprecatedInDocs []Reference `json:"deprecated_in_docs" yaml:"deprecated_in_docs"`
	// Undocumented lists registered tools no document mentions.
	Undocumented []Reference `json:"undocumented" yaml:"undocumented"`
	Summary      Summary     `json:"summary" yaml:"summary"`
}

// Failed reports whether docs reference missing or deprecated tools.
// Undocumented tools alone never fail an audit.
func (r Result) Failed() bool {
	return len(r.NotInSource) > 0 || len(r.DeprecatedInDocs) > 0
}

// Reconcile compares registered tools with documentation mentions.
func Reconcile(registry Registry, mentions Mentions) Result {
	result := Result{
		NotInSource:      []Reference{},
		DeprecatedInDocs: []Reference{},
		Undocumented:     []Reference{},
		Summary: Summary{
			SourceTools:     len(registry),
			DocumentedTools: len(mentions),
			DeprecatedTools: registry.Deprecated(),
		},
	}

	for _, name := range mentions.Names() {
		docs := append([]string(nil), mentions[name]...)
		record, ok := registry[name]
		if !ok {
			result.NotInSource = append(result.NotInSource, Reference{Name: name, Docs: docs})
			continue
		}
		if record.Deprecated {
			result.DeprecatedInDocs = append(result.DeprecatedInDocs, Reference{
				Name:       name,
				Docs:       docs,
				File:       record.File,
				Deprecated: true,
			})
		}
	}

	for _, name := range registry.Names() {
		if _, ok := mentions[name]; ok {
			continue
		}
		record := registry[name]
		result.Undocumented = append(result.Undocumented, Reference{
			Name:       name,
			File:       record.File,
			Deprecated: record.Deprecated,
		})
	}

	return result
}
