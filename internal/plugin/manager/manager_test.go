package manager

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tintscale/internal/plugin/output"
	"github.com/jmylchreest/tintscale/internal/scale"
)

// Mock output plugin for testing.
type mockOutputPlugin struct {
	name string
}

func (m *mockOutputPlugin) Name() string        { return m.name }
func (m *mockOutputPlugin) Description() string { return "mock" }
func (m *mockOutputPlugin) Generate(_ *scale.Result) (map[string][]byte, error) {
	return nil, nil
}
func (m *mockOutputPlugin) DefaultOutputDir() string       { return "." }
func (m *mockOutputPlugin) RegisterFlags(_ *cobra.Command) {}
func (m *mockOutputPlugin) Validate() error                { return nil }

func mockRegistry(names ...string) *output.Registry {
	r := output.NewRegistry()
	for _, n := range names {
		r.Register(&mockOutputPlugin{name: n})
	}
	return r
}

func TestBuild_RegistersBuiltins(t *testing.T) {
	m := NewBuilder().Build()
	if diff := cmp.Diff([]string{"swatch", "tailwind"}, m.Registry().List()); diff != "" {
		t.Errorf("built-in plugins mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"swatch", "tailwind"}, m.Enabled()); diff != "" {
		t.Errorf("Enabled() mismatch (-want +got):\n%s", diff)
	}
}

func TestManager_IsEnabled(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   map[string]bool
	}{
		{
			name: "no config enables everything",
			want: map[string]bool{"a": true, "b": true},
		},
		{
			name:   "disabled",
			config: Config{DisabledPlugins: []string{"a"}},
			want:   map[string]bool{"a": false, "b": true},
		},
		{
			name:   "disable all wins over enable",
			config: Config{DisabledPlugins: []string{"all"}, EnabledPlugins: []string{"a"}},
			want:   map[string]bool{"a": false, "b": false},
		},
		{
			name:   "whitelist",
			config: Config{EnabledPlugins: []string{"b"}},
			want:   map[string]bool{"a": false, "b": true},
		},
		{
			name:   "enable all",
			config: Config{EnabledPlugins: []string{"all"}},
			want:   map[string]bool{"a": true, "b": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewBuilder().WithRegistry(mockRegistry("a", "b")).WithConfig(tt.config).Build()
			for name, want := range tt.want {
				if got := m.IsEnabled(name); got != want {
					t.Errorf("IsEnabled(%s) = %v, want %v", name, got, want)
				}
			}
		})
	}
}

func TestManager_Resolve(t *testing.T) {
	m := NewBuilder().
		WithRegistry(mockRegistry("a", "b", "c")).
		WithConfig(Config{DisabledPlugins: []string{"c"}}).
		Build()

	names := func(ps []output.Plugin) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.Name()
		}
		return out
	}

	got, err := m.Resolve([]string{"all"})
	if err != nil {
		t.Fatalf("Resolve(all) error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, names(got)); diff != "" {
		t.Errorf("Resolve(all) mismatch (-want +got):\n%s", diff)
	}

	got, err = m.Resolve([]string{"b", " a", "b", ""})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, names(got)); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}

	if got, err := m.Resolve(nil); err != nil || len(got) != 0 {
		t.Errorf("Resolve(nil) = %v, %v", got, err)
	}
	if _, err := m.Resolve([]string{"missing"}); err == nil {
		t.Error("Resolve(missing) expected an error")
	}
	if _, err := m.Resolve([]string{"c"}); err == nil {
		t.Error("Resolve(disabled) expected an error")
	}
}

func TestBuilder_WithEnvConfig(t *testing.T) {
	t.Setenv(envDisabled, "output:swatch, ")
	t.Setenv(envEnabled, "")

	m := NewBuilder().WithConfig(Config{DisabledPlugins: []string{"tailwind"}}).WithEnvConfig().Build()
	if m.IsEnabled("swatch") {
		t.Error("swatch should be disabled by the environment")
	}
	if !m.IsEnabled("tailwind") {
		t.Error("environment list should replace the configured disabled list")
	}
}

func TestParsePluginList(t *testing.T) {
	got := parsePluginList(" tailwind ,output:swatch,,")
	if diff := cmp.Diff([]string{"tailwind", "swatch"}, got); diff != "" {
		t.Errorf("parsePluginList() mismatch (-want +got):\n%s", diff)
	}
}
