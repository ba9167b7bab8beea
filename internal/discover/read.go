package discover

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spectree/toolaudit/internal/audit"
)

// ReadError reports a planned file that could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e ReadError) Unwrap() error {
	return e.Err
}

// ReadFile loads one planned file, labelled by its slash-separated path.
func ReadFile(root, label string) (audit.File, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(label)))
	if err != nil {
		return audit.File{}, ReadError{Path: label, Err: err}
	}
	return audit.File{Label: label, Text: string(data)}, nil
}

// Read loads every label in order and stops at the first failure.
func Read(root string, labels []string) ([]audit.File, error) {
	files := make([]audit.File, 0, len(labels))
	for _, label := range labels {
		file, err := ReadFile(root, label)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}
