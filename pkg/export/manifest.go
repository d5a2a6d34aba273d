package export

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/iasonasma/LibreLingo/pkg/identity"
)

// Manifest accumulates the audio clips a bundle needs, one line per
// occurrence. Duplicates are kept.
type Manifest struct {
	lines []string
}

// Add records text spoken in languageID.
func (m *Manifest) Add(languageID, text string) {
	m.lines = append(m.lines, languageID+"|"+identity.AudioID(languageID, text)+"|"+text)
}

// Lines returns the recorded lines in insertion order.
func (m *Manifest) Lines() []string {
	return m.lines
}

// Len returns the number of recorded lines.
func (m *Manifest) Len() int {
	return len(m.lines)
}

// WriteFile writes the lines joined by "\n" to path, replacing any existing
// file. Text is written as is; "|" and newlines are not escaped.
func (m *Manifest) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &IOError{Op: "create directory", Path: filepath.Dir(path), Err: err}
	}
	if err := os.WriteFile(path, []byte(strings.Join(m.lines, "\n")), 0o644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
