// Package tailwind provides a Tailwind CSS output plugin for colour scales.
package tailwind

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tintscale/internal/plugin/output"
	"github.com/jmylchreest/tintscale/internal/plugin/output/common"
	tmplloader "github.com/jmylchreest/tintscale/internal/plugin/output/template"
	"github.com/jmylchreest/tintscale/internal/scale"
)

//go:embed *.tmpl
var templates embed.FS

const (
	cssTemplate    = "scale.css.tmpl"
	configTemplate = "tailwind.config.js.tmpl"
)

// Plugin implements the output.Plugin interface for Tailwind CSS.
type Plugin struct {
	format    string // "css" or "config"
	mode      string // "hex", "rgb" or "oklch"
	outputDir string
	loader    *tmplloader.Loader
}

// New creates a new Tailwind CSS output plugin.
func New() *Plugin {
	return NewWithFormat("css")
}

// NewWithFormat creates a new Tailwind CSS output plugin with a specific format.
func NewWithFormat(format string) *Plugin {
	return &Plugin{
		format: format,
		mode:   "hex",
		loader: tmplloader.New("tailwind", templates),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "tailwind"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Generate a Tailwind CSS theme (v4 @theme CSS or tailwind.config.js)"
}

// SetLogger sets the logger used while loading templates.
func (p *Plugin) SetLogger(logger hclog.Logger) {
	p.loader.WithLogger(logger)
}

// Loader exposes the template loader so overrides can be dumped.
func (p *Plugin) Loader() *tmplloader.Loader {
	return p.loader
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.format, "tailwind.format", p.format, "Output format (css or config)")
	cmd.Flags().StringVar(&p.mode, "tailwind.value", p.mode, "Colour value notation (hex, rgb or oklch)")
	cmd.Flags().StringVar(&p.outputDir, "tailwind.output-dir", "", "Output directory (default: detected from project layout)")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.format != "css" && p.format != "config" {
		return fmt.Errorf("invalid format: %s (must be 'css' or 'config')", p.format)
	}
	switch p.mode {
	case "hex", "rgb", "oklch":
	default:
		return fmt.Errorf("invalid value notation: %s (must be 'hex', 'rgb' or 'oklch')", p.mode)
	}
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	if p.outputDir != "" {
		return p.outputDir
	}

	if p.format == "config" {
		return "."
	}

	// CSS lives next to the app stylesheet in Next.js style layouts.
	if _, err := os.Stat("app"); err == nil {
		return "app"
	}
	if _, err := os.Stat("src"); err == nil {
		return filepath.Join("src", "app")
	}

	return "."
}

// Generate renders the scale as Tailwind colours.
func (p *Plugin) Generate(result *scale.Result) (map[string][]byte, error) {
	if result == nil {
		return nil, output.ErrNilResult
	}

	data := prepareData(result, p.mode)

	if p.format == "config" {
		content, err := p.render(configTemplate, data)
		if err != nil {
			return nil, err
		}
		return map[string][]byte{"tailwind.config.js": content}, nil
	}

	content, err := p.render(cssTemplate, data)
	if err != nil {
		return nil, err
	}
	return map[string][]byte{data.Name + ".css": content}, nil
}

func (p *Plugin) render(name string, data Data) ([]byte, error) {
	content, _, err := p.loader.Load(name)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(name).Funcs(common.TemplateFuncs()).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Data is passed to the Tailwind templates.
type Data struct {
	Name       string
	BaseHue    float64
	Background string
	Strategy   string
	Shades     []Shade
}

// Shade is one colour in the scale. Mode selects the value notation.
type Shade struct {
	Index int
	Hex   string
	Mode  string
}

func prepareData(result *scale.Result, mode string) Data {
	name := common.Kebab(result.Config.Name)
	if name == "" {
		name = "scale"
	}

	data := Data{
		Name:       name,
		BaseHue:    result.Config.BaseHue,
		Background: result.Background.Hex,
		Strategy:   result.Strategy.String(),
		Shades:     make([]Shade, 0, result.Palette.Len()),
	}
	for _, e := range result.Palette.Entries() {
		data.Shades = append(data.Shades, Shade{Index: e.Index, Hex: e.Hex, Mode: mode})
	}
	return data
}
