package desktop

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// NoteExtension is appended to note paths
const NoteExtension = ".md"

// Opener shows a note in the main window
type Opener func(relPath string) error

// FSVault is a vault of markdown notes rooted in a directory
type FSVault struct {
	fs     afero.Fs
	root   string
	name   string
	open   Opener
	logger *zap.Logger
}

// NewFSVault creates a vault over fs rooted at root
func NewFSVault(fs afero.Fs, root, name string, logger *zap.Logger) *FSVault {
	return &FSVault{
		fs:     fs,
		root:   root,
		name:   name,
		logger: logger,
	}
}

// SetOpener sets how opened notes are shown
func (v *FSVault) SetOpener(open Opener) {
	v.open = open
}

// Name returns the vault display name
func (v *FSVault) Name() string {
	return v.name
}

// Root returns the vault directory
func (v *FSVault) Root() string {
	return v.root
}

// CreateAndOpen creates path+".md" if it does not exist and opens it.
// An existing note is opened untouched.
func (v *FSVault) CreateAndOpen(path string) error {
	rel := strings.Trim(path, "/") + NoteExtension
	full, err := v.resolve(rel)
	if err != nil {
		return err
	}

	if err := v.fs.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create folder for %s: %w", rel, err)
	}

	exists, err := afero.Exists(v.fs, full)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", rel, err)
	}
	if !exists {
		if err := afero.WriteFile(v.fs, full, nil, 0o644); err != nil {
			return fmt.Errorf("failed to create %s: %w", rel, err)
		}
		v.logger.Info("Created note", zap.String("path", rel))
	}

	if v.open == nil {
		v.logger.Debug("No opener set, note not shown", zap.String("path", rel))
		return nil
	}
	return v.open(rel)
}

// resolve joins rel onto the root, refusing paths that escape it
func (v *FSVault) resolve(rel string) (string, error) {
	full := filepath.Join(v.root, filepath.FromSlash(rel))
	inside, err := filepath.Rel(v.root, full)
	if err != nil || inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("note path %q is outside the vault", rel)
	}
	return full, nil
}
