// Package manager owns the exporter registry and decides which exporters run.
package manager

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/jmylchreest/tintscale/internal/plugin/output"
	"github.com/jmylchreest/tintscale/internal/plugin/output/swatch"
	"github.com/jmylchreest/tintscale/internal/plugin/output/tailwind"
)

const (
	envDisabled = "TINTSCALE_DISABLED_PLUGINS"
	envEnabled  = "TINTSCALE_ENABLED_PLUGINS"
)

// Config holds plugin configuration.
type Config struct {
	// DisabledPlugins is a list of plugin names to disable. "all" disables
	// every plugin.
	DisabledPlugins []string

	// EnabledPlugins is a list of plugin names to explicitly enable.
	// If set, only these plugins are enabled (whitelist mode).
	EnabledPlugins []string
}

// Builder provides a fluent interface for constructing a Manager.
type Builder struct {
	config   Config
	registry *output.Registry
	useEnv   bool
	builtins bool
}

// NewBuilder creates a new Manager builder with default settings.
func NewBuilder() *Builder {
	return &Builder{
		registry: output.NewRegistry(),
		builtins: true,
	}
}

// WithConfig sets the configuration for the manager.
func (b *Builder) WithConfig(config Config) *Builder {
	b.config = config
	return b
}

// WithEnvConfig reads TINTSCALE_DISABLED_PLUGINS and TINTSCALE_ENABLED_PLUGINS.
// Environment lists replace the corresponding configured list.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// WithRegistry replaces the registry; built-in plugins are not added.
func (b *Builder) WithRegistry(registry *output.Registry) *Builder {
	b.registry = registry
	b.builtins = false
	return b
}

// Build constructs the Manager with the configured settings.
func (b *Builder) Build() *Manager {
	config := b.config

	if b.useEnv {
		if disabled := os.Getenv(envDisabled); disabled != "" {
			config.DisabledPlugins = parsePluginList(disabled)
		}
		if enabled := os.Getenv(envEnabled); enabled != "" {
			config.EnabledPlugins = parsePluginList(enabled)
		}
	}

	m := &Manager{
		config:   config,
		registry: b.registry,
	}
	if b.builtins {
		m.registerBuiltinPlugins()
	}
	return m
}

// Manager tracks which exporters are enabled and owns the registry.
type Manager struct {
	config   Config
	registry *output.Registry
}

func (m *Manager) registerBuiltinPlugins() {
	m.registry.Register(tailwind.New())
	m.registry.Register(swatch.New())
}

// Registry returns the output registry.
func (m *Manager) Registry() *output.Registry {
	return m.registry
}

// Get returns a registered plugin, enabled or not.
func (m *Manager) Get(name string) (output.Plugin, bool) {
	return m.registry.Get(name)
}

// IsEnabled reports whether a plugin may run. Built-in plugins are enabled
// unless disabled or excluded by a whitelist.
func (m *Manager) IsEnabled(name string) bool {
	if slices.Contains(m.config.DisabledPlugins, "all") || slices.Contains(m.config.DisabledPlugins, name) {
		return false
	}
	if len(m.config.EnabledPlugins) == 0 || slices.Contains(m.config.EnabledPlugins, "all") {
		return true
	}
	return slices.Contains(m.config.EnabledPlugins, name)
}

// Enabled returns the names of enabled plugins in sorted order.
func (m *Manager) Enabled() []string {
	var names []string
	for _, name := range m.registry.List() {
		if m.IsEnabled(name) {
			names = append(names, name)
		}
	}
	return names
}

// Resolve turns a --outputs selection into plugins. "all" selects every
// enabled plugin; naming a disabled or unknown plugin is an error.
func (m *Manager) Resolve(selection []string) ([]output.Plugin, error) {
	var names []string
	for _, s := range selection {
		s = strings.TrimSpace(s)
		switch {
		case s == "":
		case s == "all":
			names = append(names, m.Enabled()...)
		default:
			names = append(names, s)
		}
	}
	slices.Sort(names)
	names = slices.Compact(names)

	plugins := make([]output.Plugin, 0, len(names))
	for _, name := range names {
		p, ok := m.registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown output plugin: %s (available: %s)", name, strings.Join(m.registry.List(), ", "))
		}
		if !m.IsEnabled(name) {
			return nil, fmt.Errorf("output plugin %s is disabled", name)
		}
		plugins = append(plugins, p)
	}
	return plugins, nil
}

// parsePluginList parses a comma-separated list of plugin names. The
// "output:" prefix is accepted and dropped.
func parsePluginList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimPrefix(strings.TrimSpace(part), "output:")
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
