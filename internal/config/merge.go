package config

import "strings"

// Merge overlays the set fields of override onto base. Empty strings and
// zero sizes keep the base value; a nil slice keeps the base slice while an
// empty one clears it.
func Merge(base, override Config) Config {
	out := base
	if strings.TrimSpace(override.Path) != "" {
		out.Path = override.Path
	}
	if strings.TrimSpace(override.Prefix) != "" {
		out.Prefix = override.Prefix
	}
	if strings.TrimSpace(override.Marker) != "" {
		out.Marker = override.Marker
	}
	if override.Sources != nil {
		out.Sources = cloneStrings(override.Sources)
	}
	if override.Exclude != nil {
		out.Exclude = cloneStrings(override.Exclude)
	}
	if override.Docs != nil {
		out.Docs = cloneStrings(override.Docs)
	}
	if override.DeprecationMarkers != nil {
		out.DeprecationMarkers = cloneStrings(override.DeprecationMarkers)
	}
	if override.DeprecationWindow != 0 {
		out.DeprecationWindow = override.DeprecationWindow
	}
	if override.DescriptionLength != 0 {
		out.DescriptionLength = override.DescriptionLength
	}
	if override.Lookahead != 0 {
		out.Lookahead = override.Lookahead
	}
	if strings.TrimSpace(override.Format) != "" {
		out.Format = strings.ToLower(strings.TrimSpace(override.Format))
	}
	return out
}

func cloneStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}
