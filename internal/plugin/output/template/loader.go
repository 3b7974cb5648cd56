// Package template loads exporter templates, preferring user overrides in
// ~/.config/tintscale/templates/{pluginName}/ over the embedded defaults.
package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// ErrTemplateExists is returned by Dump when an override is already present.
var ErrTemplateExists = errors.New("custom template already exists")

// Loader reads templates for one plugin.
type Loader struct {
	pluginName string
	defaults   fs.FS
	customBase string
	logger     hclog.Logger
}

// DefaultCustomBase returns ~/.config/tintscale/templates, or a relative
// path when the home directory is unknown.
func DefaultCustomBase() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ".config", "tintscale", "templates")
}

// New creates a loader for pluginName backed by the given default templates.
func New(pluginName string, defaults fs.FS) *Loader {
	return &Loader{
		pluginName: pluginName,
		defaults:   defaults,
		customBase: DefaultCustomBase(),
		logger:     hclog.NewNullLogger(),
	}
}

// WithCustomBase sets the directory searched for overrides.
func (l *Loader) WithCustomBase(customBase string) *Loader {
	l.customBase = customBase
	return l
}

// WithLogger sets the logger used to report which template was chosen.
func (l *Loader) WithLogger(logger hclog.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// Load returns the named template and whether it came from an override.
func (l *Loader) Load(filename string) (content []byte, fromCustom bool, err error) {
	customPath := l.CustomPath(filename)
	if content, err := os.ReadFile(customPath); err == nil {
		l.logger.Debug("using custom template", "plugin", l.pluginName, "path", customPath)
		return content, true, nil
	}

	content, err = fs.ReadFile(l.defaults, filename)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load template %q: %w", filename, err)
	}
	l.logger.Trace("using embedded template", "plugin", l.pluginName, "name", filename)
	return content, false, nil
}

// CustomDir returns the override directory for this plugin.
func (l *Loader) CustomDir() string {
	return filepath.Join(l.customBase, l.pluginName)
}

// CustomPath returns where an override for filename would live.
func (l *Loader) CustomPath(filename string) string {
	return filepath.Join(l.CustomDir(), filepath.FromSlash(filename))
}

// HasCustomTemplate reports whether an override exists for filename.
func (l *Loader) HasCustomTemplate(filename string) bool {
	_, err := os.Stat(l.CustomPath(filename))
	return err == nil
}

// List returns every default template name.
func (l *Loader) List() ([]string, error) {
	var names []string
	err := fs.WalkDir(l.defaults, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && path.Ext(p) == ".tmpl" {
			names = append(names, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return names, nil
}

// Dump copies a default template to the override directory so it can be
// edited. Existing overrides are left alone unless force is set.
func (l *Loader) Dump(filename string, force bool) (string, error) {
	content, err := fs.ReadFile(l.defaults, filename)
	if err != nil {
		return "", fmt.Errorf("failed to read template %q: %w", filename, err)
	}

	out := l.CustomPath(filename)
	if !force && l.HasCustomTemplate(filename) {
		return out, fmt.Errorf("%w: %s", ErrTemplateExists, out)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return out, fmt.Errorf("failed to create directory %q: %w", filepath.Dir(out), err)
	}
	if err := os.WriteFile(out, content, 0o644); err != nil {
		return out, fmt.Errorf("failed to write template to %q: %w", out, err)
	}
	return out, nil
}

// DumpAll dumps every default template. Existing overrides are skipped and
// reported together in the returned error.
func (l *Loader) DumpAll(force bool) ([]string, error) {
	names, err := l.List()
	if err != nil {
		return nil, err
	}

	var dumped []string
	var skipped []error
	for _, name := range names {
		out, err := l.Dump(name, force)
		if errors.Is(err, ErrTemplateExists) {
			skipped = append(skipped, err)
			continue
		}
		if err != nil {
			return dumped, err
		}
		dumped = append(dumped, out)
	}
	return dumped, errors.Join(skipped...)
}
