// Package output provides the interface and registry for scale exporters.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tintscale/internal/scale"
)

// ErrNilResult is returned by Generate when no scale was supplied.
var ErrNilResult = errors.New("scale result cannot be nil")

// Plugin represents an output plugin that turns a built scale into files.
type Plugin interface {
	// Name returns the plugin's name (e.g., "tailwind", "swatch").
	Name() string

	// Description returns a human-readable description of the plugin.
	Description() string

	// Generate creates output file(s) from the given scale.
	// Returns map of filename -> content to support plugins that generate multiple files.
	Generate(result *scale.Result) (map[string][]byte, error)

	// RegisterFlags registers plugin-specific flags with cobra command.
	RegisterFlags(cmd *cobra.Command)

	// Validate checks if the plugin configuration is valid.
	Validate() error

	// DefaultOutputDir returns the default output directory for this plugin.
	DefaultOutputDir() string
}

// Registry holds all registered output plugins.
type Registry struct {
	plugins map[string]Plugin
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin to the registry.
func (r *Registry) Register(plugin Plugin) {
	r.plugins[plugin.Name()] = plugin
}

// Get retrieves a plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	plugin, ok := r.plugins[name]
	return plugin, ok
}

// List returns all registered plugin names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// WriteFiles validates and runs a plugin, then writes its files beneath dir.
// An empty dir uses the plugin's default. With dryRun set nothing is written
// and the paths that would have been written are still returned.
func WriteFiles(p Plugin, result *scale.Result, dir string, dryRun bool, logger hclog.Logger) ([]string, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name(), err)
	}

	files, err := p.Generate(result)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name(), err)
	}

	if dir == "" {
		dir = p.DefaultOutputDir()
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		paths = append(paths, path)

		if dryRun {
			logger.Info("dry run, not writing", "plugin", p.Name(), "path", path, "bytes", len(files[name]))
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return paths, fmt.Errorf("failed to create directory %q: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, files[name], 0o644); err != nil {
			return paths, fmt.Errorf("failed to write %q: %w", path, err)
		}
		logger.Debug("wrote file", "plugin", p.Name(), "path", path, "bytes", len(files[name]))
	}

	return paths, nil
}
