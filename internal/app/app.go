package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spectree/toolaudit/internal/audit"
	"github.com/spectree/toolaudit/internal/config"
	"github.com/spectree/toolaudit/internal/digest"
	"github.com/spectree/toolaudit/internal/discover"
	"github.com/spectree/toolaudit/internal/report"
)

// ErrAuditFailed is returned when docs reference missing or deprecated tools.
var ErrAuditFailed = errors.New("audit failed: documentation references missing or deprecated tools")

type AuditOptions struct {
	ConfigPath string
	Overrides  config.Config
	Reporter   Reporter
	// Out receives JSON and YAML reports. Defaults to stdout.
	Out    io.Writer
	Logger *slog.Logger
}

type ListOptions struct {
	ConfigPath string
	Overrides  config.Config
	// All lists every registration, duplicates included.
	All      bool
	Reporter Reporter
	Logger   *slog.Logger
}

func Audit(root string, opts AuditOptions) error {
	logger := ensureLogger(opts.Logger)
	reporter := ensureReporter(opts.Reporter)

	cfg, err := config.Load(root, opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}
	logConfig(logger, cfg)

	pl, err := discover.Build(root, cfg)
	if err != nil {
		return err
	}
	logger.Debug("discovered inputs", "sources", len(pl.Sources), "docs", len(pl.Docs))
	warnEmpty(reporter, cfg, pl)

	progress := reporter
	if cfg.Format != config.FormatText {
		progress = noopReporter{}
	}
	sources, err := readWithProgress(root, pl.Sources, progress.Progress("Reading sources", len(pl.Sources)))
	if err != nil {
		return err
	}
	docs, err := readWithProgress(root, pl.Docs, progress.Progress("Reading docs", len(pl.Docs)))
	if err != nil {
		return err
	}

	registry := audit.NewSourceExtractor(cfg.SourceOptions()).Extract(sources)
	mentions := audit.NewDocExtractor(cfg.Prefix).Extract(docs)
	logger.Debug("extracted", "tools", len(registry), "mentioned", len(mentions))

	result := audit.Reconcile(registry, mentions)
	logger.Debug("reconciled",
		"not_in_source", len(result.NotInSource),
		"deprecated_in_docs", len(result.DeprecatedInDocs),
		"undocumented", len(result.Undocumented),
	)

	if cfg.Format == config.FormatText {
		reporter.AuditResult(result)
	} else {
		out := opts.Out
		if out == nil {
			out = os.Stdout
		}
		fingerprint := digest.HashFiles(append(append([]audit.File{}, sources...), docs...))
		if err := report.Write(out, cfg.Format, report.New(result, fingerprint)); err != nil {
			return fmt.Errorf("write %s report: %w", cfg.Format, err)
		}
	}

	if result.Failed() {
		return ErrAuditFailed
	}
	return nil
}

func List(root string, opts ListOptions) error {
	logger := ensureLogger(opts.Logger)
	reporter := ensureReporter(opts.Reporter)

	cfg, err := config.Load(root, opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}
	logConfig(logger, cfg)

	pl, err := discover.Build(root, cfg)
	if err != nil {
		return err
	}
	logger.Debug("discovered sources", "sources", len(pl.Sources))
	if len(pl.Sources) == 0 {
		reporter.Warn("no source files match " + strings.Join(cfg.Sources, ", "))
	}

	sources, err := discover.Read(root, pl.Sources)
	if err != nil {
		return err
	}

	extractor := audit.NewSourceExtractor(cfg.SourceOptions())
	var records []audit.ToolRecord
	if opts.All {
		records = extractor.Registrations(sources)
	} else {
		registry := extractor.Extract(sources)
		for _, name := range registry.Names() {
			records = append(records, registry[name])
		}
	}

	deprecated := 0
	for _, record := range records {
		if record.Deprecated {
			deprecated++
		}
		reporter.Tool(record)
	}
	reporter.ListSummary(len(records), deprecated)
	return nil
}

func readWithProgress(root string, labels []string, progress ProgressReporter) ([]audit.File, error) {
	defer progress.Done()
	files := make([]audit.File, 0, len(labels))
	for _, label := range labels {
		progress.Increment(label)
		file, err := discover.ReadFile(root, label)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func warnEmpty(reporter Reporter, cfg config.Config, pl discover.Plan) {
	if len(pl.Sources) == 0 {
		reporter.Warn("no source files match " + strings.Join(cfg.Sources, ", "))
	}
	if len(pl.Docs) == 0 {
		reporter.Warn("no documentation files match " + strings.Join(cfg.Docs, ", "))
	}
}

func logConfig(logger *slog.Logger, cfg config.Config) {
	path := cfg.Path
	if path == "" {
		path = "(defaults)"
	}
	logger.Debug("loaded config",
		"path", path,
		"prefix", cfg.Prefix,
		"marker", cfg.Marker,
		"format", cfg.Format,
	)
}

func ensureLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}
