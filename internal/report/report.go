// Package report renders audit results in machine-readable formats.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/spectree/toolaudit/internal/audit"
	"github.com/spectree/toolaudit/internal/config"
)

type Report struct {
	Passed      bool         `json:"passed" yaml:"passed"`
	Fingerprint string       `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Result      audit.Result `json:"result" yaml:"result"`
}

func New(result audit.Result, fingerprint string) Report {
	return Report{
		Passed:      !result.Failed(),
		Fingerprint: fingerprint,
		Result:      result,
	}
}

// Write encodes rep as JSON or YAML.
func Write(w io.Writer, format string, rep Report) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}
