package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/spectree/toolaudit/internal/app"
	"github.com/spectree/toolaudit/internal/config"
	"github.com/spectree/toolaudit/internal/ui"
)

type CLI struct {
	NoColor bool     `help:"Disable color output."`
	Verbose bool     `short:"v" help:"Log diagnostics to stderr."`
	Path    string   `help:"Run as if in this directory."`
	Config  string   `help:"Config file (defaults to toolaudit.toml or toolaudit.yaml in the root)."`
	Audit   AuditCmd `cmd:"" help:"Cross-check tool registrations against documentation."`
	List    ListCmd  `cmd:"" help:"List tools registered in source."`
	Init    InitCmd  `cmd:"" help:"Write a default toolaudit.toml."`
}

type AuditCmd struct {
	Prefix string `help:"Override the tool name prefix."`
	Format string `help:"Output format: text, json or yaml."`
}

type ListCmd struct {
	Prefix string `help:"Override the tool name prefix."`
	All    bool   `help:"Show every registration, including duplicates."`
}

type InitCmd struct {
	Prefix string `help:"Tool name prefix to write into the config."`
}

type Context struct {
	Root       string
	ConfigPath string
	Reporter   app.Reporter
	Logger     *slog.Logger
}

func (c *AuditCmd) Run(ctx *Context) error {
	return app.Audit(ctx.Root, app.AuditOptions{
		ConfigPath: ctx.ConfigPath,
		Overrides:  config.Config{Prefix: c.Prefix, Format: c.Format},
		Reporter:   ctx.Reporter,
		Out:        os.Stdout,
		Logger:     ctx.Logger,
	})
}

func (c *ListCmd) Run(ctx *Context) error {
	return app.List(ctx.Root, app.ListOptions{
		ConfigPath: ctx.ConfigPath,
		Overrides:  config.Config{Prefix: c.Prefix},
		All:        c.All,
		Reporter:   ctx.Reporter,
		Logger:     ctx.Logger,
	})
}

func (c *InitCmd) Run(ctx *Context) error {
	return app.Init(ctx.Root, app.InitOptions{
		Overrides: config.Config{Prefix: c.Prefix},
		Reporter:  ctx.Reporter,
	})
}

func main() {
	var cli CLI
	parser := kong.Must(&cli,
		kong.Name("toolaudit"),
		kong.Description("Catch drift between registered tools and their documentation."),
		kong.UsageOnError(),
	)
	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	baseDir, err := resolveBaseDir(cwd, cli.Path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	root := app.FindRoot(baseDir)
	noColor := cli.NoColor || os.Getenv("NO_COLOR") != ""
	reporter := ui.NewRenderer(ui.Options{NoColor: noColor, Out: os.Stdout, Err: os.Stderr})

	err = ctx.Run(&Context{
		Root:       root,
		ConfigPath: resolveConfigPath(cwd, cli.Config),
		Reporter:   reporter,
		Logger:     newLogger(os.Stderr, cli.Verbose),
	})
	if err != nil {
		// The renderer already printed the failing sections.
		if !errors.Is(err, app.ErrAuditFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func resolveConfigPath(cwd, path string) string {
	if strings.TrimSpace(path) == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cwd, path)
}

func resolveBaseDir(cwd, override string) (string, error) {
	if strings.TrimSpace(override) == "" {
		return cwd, nil
	}
	path := override
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		path = filepath.Dir(path)
	}
	return path, nil
}
