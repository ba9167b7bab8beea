package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spectree/toolaudit/internal/config"
)

type InitOptions struct {
	Overrides config.Config
	Reporter  Reporter
}

// Init writes a toolaudit.toml holding the effective defaults.
func Init(root string, opts InitOptions) error {
	reporter := ensureReporter(opts.Reporter)

	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	existing, err := config.Find(rootAbs)
	if err != nil {
		return err
	}
	if existing != "" {
		return fmt.Errorf("config already exists at %s", existing)
	}

	cfg := config.Merge(config.Default(), opts.Overrides)
	if err := config.Validate(cfg); err != nil {
		return err
	}
	content, err := renderConfigTemplate(cfg)
	if err != nil {
		return err
	}

	path := filepath.Join(rootAbs, config.FileNames[0])
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err
	}
	reporter.Info("created " + config.FileNames[0])
	reporter.Info("next steps:")
	reporter.Info("1. Point sources and docs at your tool registrations and documentation.")
	reporter.Info("2. Run `toolaudit list` to check which tools are detected.")
	reporter.Info("3. Run `toolaudit audit` in CI; it exits non-zero on broken or deprecated references.")
	return nil
}

func renderConfigTemplate(cfg config.Config) (string, error) {
	body, err := config.Marshal(cfg)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("# toolaudit configuration\n")
	b.WriteString("#\n")
	b.WriteString("# prefix:  namespace every tool name starts with\n")
	b.WriteString("# marker:  call that registers a tool, followed by (\"name\", { description: \"...\" })\n")
	b.WriteString("# sources: globs for files holding registrations; exclude removes matches\n")
	b.WriteString("# docs:    globs for documentation that mentions tools\n")
	b.WriteString("# format:  text, json or yaml\n")
	b.WriteString("\n")
	b.Write(body)
	return b.String(), nil
}
