package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectree/toolaudit/internal/audit"
	"github.com/spectree/toolaudit/internal/config"
)

type recordingReporter struct {
	noopReporter
	infos   []string
	warns   []string
	results []audit.Result
	tools   []audit.ToolRecord
	total   int
	deprec  int
}

func (r *recordingReporter) Info(message string)             { r.infos = append(r.infos, message) }
func (r *recordingReporter) Warn(message string)             { r.warns = append(r.warns, message) }
func (r *recordingReporter) AuditResult(result audit.Result) { r.results = append(r.results, result) }
func (r *recordingReporter) Tool(record audit.ToolRecord)    { r.tools = append(r.tools, record) }
func (r *recordingReporter) ListSummary(total, deprecated int) {
	r.total = total
	r.deprec = deprecated
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, contents := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	}
}

const toolsDir = "packages/mcp/src/tools/"

func registration(name, description string) string {
	return "server.registerTool(\"" + name + "\", {\n  description: \"" + description + "\",\n});\n"
}

func TestAuditFailsOnBrokenReferences(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		toolsDir + "old.ts":         registration("spectree__old_tool", "DEPRECATED: use search"),
		toolsDir + "search.ts":      registration("spectree__search", "Search"),
		toolsDir + "search.test.ts": registration("spectree__test_only", "Ignored"),
		"docs/mcp/tools.md":         "Call spectree__search or spectree__old_tool.",
		"docs/mcp/faq.md":           "Not spectree__typo_tool.",
	})
	reporter := &recordingReporter{}

	err := Audit(root, AuditOptions{Reporter: reporter})

	require.ErrorIs(t, err, ErrAuditFailed)
	require.Len(t, reporter.results, 1)
	result := reporter.results[0]
	assert.Equal(t, []audit.Reference{{Name: "spectree__typo_tool", Docs: []string{"docs/mcp/faq.md"}}}, result.NotInSource)
	require.Len(t, result.DeprecatedInDocs, 1)
	assert.Equal(t, "spectree__old_tool", result.DeprecatedInDocs[0].Name)
	assert.Equal(t, toolsDir+"old.ts", result.DeprecatedInDocs[0].File)
	assert.Empty(t, result.Undocumented)
	assert.Equal(t, audit.Summary{SourceTools: 2, DocumentedTools: 3, DeprecatedTools: 1}, result.Summary)
}

func TestAuditWritesJSONReport(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		toolsDir + "tools.ts": registration("spectree__a", "A") + registration("spectree__b", "B"),
		"docs/mcp/index.md":   "Only spectree__a is documented.",
	})
	reporter := &recordingReporter{}
	var out bytes.Buffer

	err := Audit(root, AuditOptions{
		Overrides: config.Config{Format: config.FormatJSON},
		Reporter:  reporter,
		Out:       &out,
	})

	require.NoError(t, err)
	assert.Empty(t, reporter.results)

	var decoded struct {
		Passed      bool         `json:"passed"`
		Fingerprint string       `json:"fingerprint"`
		Result      audit.Result `json:"result"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.True(t, decoded.Passed)
	assert.Len(t, decoded.Fingerprint, 64)
	assert.Equal(t, []audit.Reference{{Name: "spectree__b", File: toolsDir + "tools.ts"}}, decoded.Result.Undocumented)
}

func TestAuditEmptyTreePasses(t *testing.T) {
	t.Parallel()

	reporter := &recordingReporter{}

	err := Audit(t.TempDir(), AuditOptions{Reporter: reporter})

	require.NoError(t, err)
	require.Len(t, reporter.results, 1)
	assert.Equal(t, audit.Summary{}, reporter.results[0].Summary)
	assert.Len(t, reporter.warns, 2)
}

func TestAuditUsesConfigFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"toolaudit.yaml": "prefix: acme__\nmarker: tools.add\nsources: [\"src/*.js\"]\ndocs: [\"README.md\"]\n",
		"src/tools.js":   `tools.add("acme__build", { description: "Build" });`,
		"README.md":      "See acme__build and acme__deploy.",
	})
	reporter := &recordingReporter{}

	err := Audit(root, AuditOptions{Reporter: reporter})

	require.ErrorIs(t, err, ErrAuditFailed)
	require.Len(t, reporter.results, 1)
	assert.Equal(t, "acme__deploy", reporter.results[0].NotInSource[0].Name)
}

func TestAuditRejectsInvalidOverride(t *testing.T) {
	t.Parallel()

	err := Audit(t.TempDir(), AuditOptions{Overrides: config.Config{Format: "html"}})

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAuditFailed)
}

func TestList(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		toolsDir + "a.ts": registration("spectree__dup", "DEPRECATED first") + registration("spectree__one", "One"),
		toolsDir + "b.ts": registration("spectree__dup", "Second"),
	})

	t.Run("latest registration per tool", func(t *testing.T) {
		t.Parallel()

		reporter := &recordingReporter{}
		require.NoError(t, List(root, ListOptions{Reporter: reporter}))

		require.Len(t, reporter.tools, 2)
		assert.Equal(t, "spectree__dup", reporter.tools[0].Name)
		assert.Equal(t, toolsDir+"b.ts", reporter.tools[0].File)
		assert.Equal(t, 2, reporter.total)
		assert.Equal(t, 0, reporter.deprec)
	})

	t.Run("every registration", func(t *testing.T) {
		t.Parallel()

		reporter := &recordingReporter{}
		require.NoError(t, List(root, ListOptions{All: true, Reporter: reporter}))

		require.Len(t, reporter.tools, 3)
		assert.Equal(t, 3, reporter.total)
		assert.Equal(t, 1, reporter.deprec)
	})
}

func TestInit(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	reporter := &recordingReporter{}

	require.NoError(t, Init(root, InitOptions{Overrides: config.Config{Prefix: "acme__"}, Reporter: reporter}))
	assert.Contains(t, reporter.infos, "created toolaudit.toml")

	cfg, err := config.Load(root, "", config.Config{})
	require.NoError(t, err)
	assert.Equal(t, "acme__", cfg.Prefix)
	assert.Equal(t, config.Default().Sources, cfg.Sources)

	err = Init(root, InitOptions{})
	assert.ErrorContains(t, err, "already exists")
}

func TestFindRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "toolaudit.toml"), nil, 0o644))

	assert.Equal(t, root, FindRoot(nested))
}
