package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// File persists the flat settings mapping on disk. The format follows the
// file extension: .yaml/.yml, .toml, anything else is JSON.
type File struct {
	fs     afero.Fs
	path   string
	logger *zap.Logger
}

// NewFile creates a settings file persister on the OS filesystem
func NewFile(path string, logger *zap.Logger) *File {
	return NewFileFs(afero.NewOsFs(), path, logger)
}

// NewFileFs creates a settings file persister on fs
func NewFileFs(fs afero.Fs, path string, logger *zap.Logger) *File {
	return &File{
		fs:     fs,
		path:   path,
		logger: logger,
	}
}

// Path returns the settings file path
func (f *File) Path() string {
	return f.path
}

// Load reads the mapping. A missing file yields an empty mapping.
func (f *File) Load() (map[string]any, error) {
	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist yet - will be created on first save
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	out := map[string]any{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return out, nil
	}

	switch f.format() {
	case "yaml":
		err = yaml.Unmarshal(data, &out)
	case "toml":
		err = toml.Unmarshal(data, &out)
	default:
		err = json.Unmarshal(data, &out)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	f.logger.Debug("Settings loaded",
		zap.String("file", f.path),
		zap.Int("keys", len(out)))

	return out, nil
}

// Save writes the mapping atomically
func (f *File) Save(mapping map[string]any) error {
	var (
		data []byte
		err  error
	)
	switch f.format() {
	case "yaml":
		data, err = yaml.Marshal(mapping)
	case "toml":
		data, err = toml.Marshal(mapping)
	default:
		data, err = json.MarshalIndent(mapping, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := f.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create settings dir: %w", err)
	}

	tmp, err := afero.TempFile(f.fs, dir, ".settings-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		f.fs.Remove(tmpName)
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		f.fs.Remove(tmpName)
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := f.fs.Chmod(tmpName, 0o644); err != nil {
		f.logger.Debug("Failed to chmod settings file", zap.Error(err))
	}
	if err := f.fs.Rename(tmpName, f.path); err != nil {
		f.fs.Remove(tmpName)
		return fmt.Errorf("failed to replace settings file: %w", err)
	}

	f.logger.Debug("Settings saved", zap.String("file", f.path))
	return nil
}

func (f *File) format() string {
	switch strings.ToLower(filepath.Ext(f.path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return "json"
	}
}
