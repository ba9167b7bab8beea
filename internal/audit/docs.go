package audit

import (
	"regexp"
	"sort"
)

// DocExtractor finds tool-name mentions in documentation text.
type DocExtractor struct {
	pattern *regexp.Regexp
}

// NewDocExtractor matches the prefix followed by one or more lowercase
// letters or underscores. An empty prefix falls back to DefaultPrefix.
func NewDocExtractor(prefix string) *DocExtractor {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &DocExtractor{pattern: regexp.MustCompile(regexp.QuoteMeta(prefix) + `[a-z_]+`)}
}

// Extract returns, for every mentioned name, the sorted labels of the
// documents mentioning it. A document counts once per name.
func (e *DocExtractor) Extract(files []File) Mentions {
	seen := map[string]map[string]bool{}
	for _, file := range sortedFiles(files) {
		for _, name := range e.pattern.FindAllString(file.Text, -1) {
			docs, ok := seen[name]
			if !ok {
				docs = map[string]bool{}
				seen[name] = docs
			}
			docs[file.Label] = true
		}
	}

	mentions := Mentions{}
	for name, docs := range seen {
		labels := make([]string, 0, len(docs))
		for label := range docs {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		mentions[name] = labels
	}
	return mentions
}
