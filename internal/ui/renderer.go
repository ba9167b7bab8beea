package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/spectree/toolaudit/internal/app"
	"github.com/spectree/toolaudit/internal/audit"
)

const rule = "================================================================================"

type Options struct {
	NoColor bool
	Out     io.Writer
	// Err receives warnings so machine-readable reports on Out stay clean.
	Err io.Writer
}

type Renderer struct {
	out     io.Writer
	err     io.Writer
	isTTY   bool
	noColor bool
	styles  styles
}

type styles struct {
	info    lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	error   lipgloss.Style
	label   lipgloss.Style
	tool    lipgloss.Style
	heading lipgloss.Style
	summary lipgloss.Style
}

func NewRenderer(opts Options) *Renderer {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := opts.Err
	if errOut == nil {
		errOut = os.Stderr
	}
	isTTY := isTerminal(out)
	profile := termenv.EnvColorProfile()
	if opts.NoColor || !isTTY {
		profile = termenv.Ascii
	}
	lipgloss.SetColorProfile(profile)

	return &Renderer{
		out:     out,
		err:     errOut,
		isTTY:   isTTY,
		noColor: opts.NoColor || profile == termenv.Ascii,
		styles: styles{
			info:    lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
			ok:      lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
			warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
			error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			tool:    lipgloss.NewStyle().Foreground(lipgloss.Color("105")).Bold(true),
			heading: lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
			summary: lipgloss.NewStyle().Bold(true),
		},
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r *Renderer) Info(message string) {
	r.println(r.styles.info.Render(message))
}

func (r *Renderer) Warn(message string) {
	r.fprintln(r.err, r.styles.warn.Render("warning")+" "+message)
}

func (r *Renderer) AuditResult(result audit.Result) {
	r.section("TOOL DOCUMENTATION AUDIT")
	r.println(r.styles.summary.Render("Summary"))
	r.println(fmt.Sprintf("  Tools in source code: %d", result.Summary.SourceTools))
	r.println(fmt.Sprintf("  Unique tools mentioned in docs: %d", result.Summary.DocumentedTools))
	r.println(fmt.Sprintf("  Deprecated tools in source: %d", result.Summary.DeprecatedTools))

	r.section(fmt.Sprintf("Tools in docs but not in source (%d)", len(result.NotInSource)))
	for _, ref := range result.NotInSource {
		r.println("  " + r.styles.error.Render("x") + " " + r.styles.tool.Render(ref.Name))
		r.println(r.styles.label.Render("    mentioned in: ") + strings.Join(ref.Docs, ", "))
	}
	if len(result.NotInSource) == 0 {
		r.println("  " + r.styles.ok.Render("none found"))
	}

	r.section(fmt.Sprintf("Deprecated tools mentioned in docs (%d)", len(result.DeprecatedInDocs)))
	for _, ref := range result.DeprecatedInDocs {
		r.println("  " + r.styles.warn.Render("!") + " " + r.styles.tool.Render(ref.Name))
		r.println(r.styles.label.Render("    mentioned in: ") + strings.Join(ref.Docs, ", "))
		r.println(r.styles.label.Render("    deprecated in: ") + ref.File)
	}
	if len(result.DeprecatedInDocs) == 0 {
		r.println("  " + r.styles.ok.Render("none found"))
	}

	r.section(fmt.Sprintf("Tools in source but not documented (%d)", len(result.Undocumented)))
	for _, ref := range result.Undocumented {
		r.println("  " + r.styles.tool.Render(ref.Name) + deprecatedTag(r, ref.Deprecated))
		r.println(r.styles.label.Render("    file: ") + ref.File)
	}
	if len(result.Undocumented) == 0 {
		r.println("  " + r.styles.ok.Render("all tools are documented"))
	}

	r.section("Results")
	r.println(fmt.Sprintf("  Tools with typos/errors in docs: %d", len(result.NotInSource)))
	r.println(fmt.Sprintf("  Deprecated tools in docs: %d", len(result.DeprecatedInDocs)))
	r.println(fmt.Sprintf("  Undocumented tools: %d", len(result.Undocumented)))
	if result.Failed() {
		r.println(r.styles.error.Render("FAIL") + " documentation references missing or deprecated tools")
		return
	}
	r.println(r.styles.ok.Render("PASS") + " documentation matches source")
}

func (r *Renderer) Tool(record audit.ToolRecord) {
	r.println(r.styles.tool.Render(record.Name) + deprecatedTag(r, record.Deprecated))
	r.println(r.styles.label.Render("  file: ") + record.File)
	if strings.TrimSpace(record.Description) != "" {
		r.println(r.styles.label.Render("  description: ") + record.Description)
	}
}

func (r *Renderer) ListSummary(total, deprecated int) {
	msg := fmt.Sprintf("found %d tools, %d deprecated", total, deprecated)
	r.println(r.styles.summary.Render(msg))
}

func (r *Renderer) Progress(label string, total int) app.ProgressReporter {
	if total <= 0 || !r.isTTY {
		return noopProgress{}
	}
	return &progressReporter{
		out:   r.out,
		total: total,
		label: label,
		model: progress.New(
			progress.WithWidth(28),
			progress.WithDefaultGradient(),
		),
	}
}

func deprecatedTag(r *Renderer, deprecated bool) string {
	if !deprecated {
		return ""
	}
	return " " + r.styles.warn.Render("[DEPRECATED]")
}

func (r *Renderer) section(title string) {
	r.println("")
	r.println(r.styles.label.Render(rule))
	r.println(r.styles.heading.Render(title))
	r.println(r.styles.label.Render(rule))
}

func (r *Renderer) println(message string) {
	r.fprintln(r.out, message)
}

func (r *Renderer) fprintln(w io.Writer, message string) {
	if message == "" {
		fmt.Fprintln(w)
		return
	}
	if strings.TrimSpace(message) == "" {
		return
	}
	fmt.Fprintln(w, message)
}

type progressReporter struct {
	out     io.Writer
	model   progress.Model
	total   int
	current int
	label   string
}

func (p *progressReporter) Increment(label string) {
	if label != "" {
		p.label = label
	}
	p.current++
	p.renderLine()
}

func (p *progressReporter) Done() {
	p.current = p.total
	p.renderLine()
	fmt.Fprintln(p.out)
}

// renderLine redraws in place; Done ends the line.
func (p *progressReporter) renderLine() {
	percent := float64(p.current) / float64(p.total)
	bar := p.model.ViewAs(percent)
	fmt.Fprintf(p.out, "\r\033[K%s %d/%d %s", bar, p.current, p.total, truncate(p.label, 64))
}

type noopProgress struct{}

func (n noopProgress) Increment(string) {}
func (n noopProgress) Done()            {}

func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	if max <= 3 {
		return value[:max]
	}
	return value[:max-3] + "..."
}
