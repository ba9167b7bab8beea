package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var Formats = []string{FormatText, FormatJSON, FormatYAML}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Prefix) == "" {
		return errors.New("prefix is required")
	}
	if strings.TrimSpace(cfg.Marker) == "" {
		return errors.New("marker is required")
	}
	if len(cfg.Sources) == 0 {
		return errors.New("at least one sources glob is required")
	}
	if len(cfg.Docs) == 0 {
		return errors.New("at least one docs glob is required")
	}
	for _, pattern := range append(append(append([]string{}, cfg.Sources...), cfg.Exclude...), cfg.Docs...) {
		if strings.TrimSpace(pattern) == "" {
			return errors.New("globs must not be empty")
		}
	}
	if cfg.DeprecationWindow <= 0 {
		return fmt.Errorf("deprecation_window must be positive, got %d", cfg.DeprecationWindow)
	}
	if cfg.DescriptionLength <= 0 {
		return fmt.Errorf("description_length must be positive, got %d", cfg.DescriptionLength)
	}
	if cfg.Lookahead <= 0 {
		return fmt.Errorf("lookahead must be positive, got %d", cfg.Lookahead)
	}
	for _, format := range Formats {
		if cfg.Format == format {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q (want one of %s)", cfg.Format, strings.Join(Formats, ", "))
}
