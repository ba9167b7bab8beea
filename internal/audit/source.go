package audit

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	DefaultPrefix            = "spectree__"
	DefaultMarker            = "server.registerTool"
	DefaultDeprecationWindow = 200
	DefaultDescriptionLength = 100
	DefaultLookahead         = 2000
)

var DefaultDeprecationMarkers = []string{"DEPRECATED", "⚠️"}

type SourceOptions struct {
	// Prefix every tool name must start with. Other registrations are ignored.
	Prefix string
	// Marker is the call that registers a tool, e.g. server.registerTool.
	Marker             string
	DeprecationMarkers []string
	// DeprecationWindow is the number of bytes after the registration start
	// searched for a deprecation marker. The window always extends at least
	// to the end of the description.
	DeprecationWindow int
	// DescriptionLength caps the stored description, in runes.
	DescriptionLength int
	// Lookahead bounds how far past the opening brace the description key
	// is searched for.
	Lookahead int
}

func (o SourceOptions) withDefaults() SourceOptions {
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
	if o.Marker == "" {
		o.Marker = DefaultMarker
	}
	if o.DeprecationMarkers == nil {
		o.DeprecationMarkers = DefaultDeprecationMarkers
	}
	if o.DeprecationWindow <= 0 {
		o.DeprecationWindow = DefaultDeprecationWindow
	}
	if o.DescriptionLength <= 0 {
		o.DescriptionLength = DefaultDescriptionLength
	}
	if o.Lookahead <= 0 {
		o.Lookahead = DefaultLookahead
	}
	return o
}

// SourceExtractor finds tool registrations in source text.
type SourceExtractor struct {
	opts SourceOptions
	head *regexp.Regexp
}

func NewSourceExtractor(opts SourceOptions) *SourceExtractor {
	opts = opts.withDefaults()
	head := regexp.MustCompile(regexp.QuoteMeta(opts.Marker) + "\\(\\s*[\"'`]([^\"'`]+)[\"'`]\\s*,\\s*\\{")
	return &SourceExtractor{opts: opts, head: head}
}

// Extract returns the registered tools keyed by name. Files are scanned in
// label order and a later registration of the same name replaces an earlier
// one.
func (e *SourceExtractor) Extract(files []File) Registry {
	registry := Registry{}
	for _, record := range e.Registrations(files) {
		registry[record.Name] = record
	}
	return registry
}

// Registrations returns every matched registration in scan order, including
// duplicates.
func (e *SourceExtractor) Registrations(files []File) []ToolRecord {
	var records []ToolRecord
	for _, file := range sortedFiles(files) {
		records = append(records, e.scan(file)...)
	}
	return records
}

func (e *SourceExtractor) scan(file File) []ToolRecord {
	var records []ToolRecord
	text := file.Text
	for _, loc := range e.head.FindAllStringSubmatchIndex(text, -1) {
		name := text[loc[2]:loc[3]]
		if !strings.HasPrefix(name, e.opts.Prefix) {
			continue
		}
		limit := min(len(text), loc[1]+e.opts.Lookahead)
		description, end, ok := findDescription(text, loc[1], limit)
		if !ok {
			continue
		}
		records = append(records, ToolRecord{
			Name:        name,
			File:        file.Label,
			Deprecated:  e.deprecated(text, loc[0], end),
			Description: excerpt(description, e.opts.DescriptionLength),
		})
	}
	return records
}

func (e *SourceExtractor) deprecated(text string, start, descriptionEnd int) bool {
	end := min(len(text), max(start+e.opts.DeprecationWindow, descriptionEnd))
	window := text[start:end]
	for _, marker := range e.opts.DeprecationMarkers {
		if marker != "" && strings.Contains(window, marker) {
			return true
		}
	}
	return false
}

// findDescription scans an object literal body starting just after its
// opening brace for a top-level description key with a string value. It
// returns the raw string contents and the offset just past the closing quote.
func findDescription(text string, pos, limit int) (string, int, bool) {
	depth := 0
	for i := pos; i < limit; {
		c := text[i]
		switch {
		case c == '/' && i+1 < limit && text[i+1] == '/':
			i = skipLineComment(text, i, limit)
			continue
		case c == '/' && i+1 < limit && text[i+1] == '*':
			i = skipBlockComment(text, i, limit)
			continue
		case isQuote(c):
			value, next, ok := readQuoted(text, i, limit)
			if !ok {
				return "", 0, false
			}
			if depth == 0 && value == "description" {
				if desc, end, found := descriptionValue(text, next, limit); found {
					return desc, end, true
				}
			}
			i = next
			continue
		case c == '{' || c == '[' || c == '(':
			depth++
		case c == '}' || c == ']' || c == ')':
			if depth == 0 {
				return "", 0, false
			}
			depth--
		case depth == 0 && isKeyAt(text, i, "description"):
			if desc, end, found := descriptionValue(text, i+len("description"), limit); found {
				return desc, end, true
			}
			i += len("description")
			continue
		}
		i++
	}
	return "", 0, false
}

// descriptionValue expects ":" followed by a quoted string at pos.
func descriptionValue(text string, pos, limit int) (string, int, bool) {
	i := skipSpace(text, pos, limit)
	if i >= limit || text[i] != ':' {
		return "", 0, false
	}
	i = skipSpace(text, i+1, limit)
	if i >= limit || !isQuote(text[i]) {
		return "", 0, false
	}
	return readQuoted(text, i, limit)
}

func readQuoted(text string, pos, limit int) (string, int, bool) {
	quote := text[pos]
	for i := pos + 1; i < limit; i++ {
		switch text[i] {
		case '\\':
			i++
		case quote:
			return text[pos+1 : i], i + 1, true
		}
	}
	return "", 0, false
}

func isKeyAt(text string, i int, key string) bool {
	if !strings.HasPrefix(text[i:], key) {
		return false
	}
	if i > 0 && isIdentByte(text[i-1]) {
		return false
	}
	end := i + len(key)
	return end >= len(text) || !isIdentByte(text[end])
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' || c == '.' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func isQuote(c byte) bool {
	return c == '"' || c == '\'' || c == '`'
}

func skipSpace(text string, i, limit int) int {
	for i < limit && strings.IndexByte(" \t\r\n", text[i]) >= 0 {
		i++
	}
	return i
}

func skipLineComment(text string, i, limit int) int {
	if idx := strings.IndexByte(text[i:limit], '\n'); idx >= 0 {
		return i + idx + 1
	}
	return limit
}

func skipBlockComment(text string, i, limit int) int {
	if idx := strings.Index(text[i+2:limit], "*/"); idx >= 0 {
		return i + 2 + idx + 2
	}
	return limit
}

func excerpt(description string, length int) string {
	if utf8.RuneCountInString(description) <= length {
		return description
	}
	runes := []rune(description)
	return string(runes[:length]) + "..."
}
