package app

import "github.com/spectree/toolaudit/internal/audit"

type ProgressReporter interface {
	Increment(label string)
	Done()
}

type Reporter interface {
	Info(message string)
	Warn(message string)
	AuditResult(result audit.Result)
	Tool(record audit.ToolRecord)
	ListSummary(total, deprecated int)
	Progress(label string, total int) ProgressReporter
}

type noopReporter struct{}

func (n noopReporter) Info(string)                           {}
func (n noopReporter) Warn(string)                           {}
func (n noopReporter) AuditResult(audit.Result)              {}
func (n noopReporter) Tool(audit.ToolRecord)                 {}
func (n noopReporter) ListSummary(int, int)                  {}
func (n noopReporter) Progress(string, int) ProgressReporter { return noopProgress{} }

type noopProgress struct{}

func (n noopProgress) Increment(string) {}
func (n noopProgress) Done()            {}

func ensureReporter(reporter Reporter) Reporter {
	if reporter == nil {
		return noopReporter{}
	}
	return reporter
}
