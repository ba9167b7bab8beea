package app

import (
	"os"
	"path/filepath"

	"github.com/spectree/toolaudit/internal/config"
)

// FindRoot walks up from dir to the nearest directory holding a toolaudit
// config or a .git entry. It returns dir when neither is found.
func FindRoot(dir string) string {
	current := dir
	for {
		if found, err := config.Find(current); err == nil && found != "" {
			return current
		}
		if _, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir
		}
		current = parent
	}
}
