package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tintscale/internal/plugin/output"
	"github.com/jmylchreest/tintscale/internal/plugin/output/template"
)

// templated is implemented by output plugins that render templates.
type templated interface {
	output.Plugin
	Loader() *template.Loader
}

// templatesDir returns the override directory with ~ expanded, or "" for
// the default.
func (a *app) templatesDir() (string, error) {
	dir := a.viper.GetString(flagTemplatesDir)
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	return dir, nil
}

// configureTemplates points every templated plugin at the override directory.
func (a *app) configureTemplates() {
	dir, err := a.templatesDir()
	if err != nil {
		a.logger.Warn("ignoring template directory", "error", err)
		return
	}
	for _, p := range a.templatedPlugins(nil) {
		if dir != "" {
			p.Loader().WithCustomBase(dir)
		}
		p.Loader().WithLogger(a.logger.Named(p.Name()))
	}
}

// templatedPlugins returns the templated plugins, optionally limited to names.
func (a *app) templatedPlugins(names []string) []templated {
	var out []templated
	for _, name := range a.plugins.Registry().List() {
		if len(names) > 0 && !slices.Contains(names, name) {
			continue
		}
		p, _ := a.plugins.Get(name)
		if tp, ok := p.(templated); ok {
			out = append(out, tp)
		}
	}
	return out
}

func (a *app) newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage output plugin templates",
		Long: `Manage the templates used by output plugins.

Templates can be customised by dumping them to
~/.config/tintscale/templates/{plugin-name}/ (or --templates-dir) and editing
them. Custom templates are used instead of the embedded ones.

Examples:
  tintscale templates list
  tintscale templates dump tailwind
  tintscale templates dump --force`,
	}

	listCmd := &cobra.Command{
		Use:   "list [plugin...]",
		Short: "List plugin templates and their overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.configureTemplates()
			return a.runTemplatesList(cmd, args)
		},
	}

	var force bool
	dumpCmd := &cobra.Command{
		Use:   "dump [plugin...]",
		Short: "Copy embedded templates to the override directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.configureTemplates()
			return a.runTemplatesDump(cmd, args, force)
		},
	}
	dumpCmd.Flags().BoolVar(&force, "force", false, "overwrite existing custom templates")

	cmd.AddCommand(listCmd, dumpCmd)
	return cmd
}

func (a *app) selectTemplated(args []string) ([]templated, error) {
	for _, name := range args {
		if _, ok := a.plugins.Get(name); !ok {
			return nil, fmt.Errorf("plugin %q not found", name)
		}
	}
	plugins := a.templatedPlugins(args)
	if len(plugins) == 0 {
		return nil, fmt.Errorf("no matching plugins with templates")
	}
	return plugins, nil
}

func (a *app) runTemplatesList(cmd *cobra.Command, args []string) error {
	plugins, err := a.selectTemplated(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	hasCustom := false
	for _, p := range plugins {
		loader := p.Loader()
		names, err := loader.List()
		if err != nil {
			return fmt.Errorf("failed to list templates for %s: %w", p.Name(), err)
		}

		fmt.Fprintf(out, "Plugin: %s\n", p.Name())
		fmt.Fprintf(out, "  Custom template directory: %s\n", loader.CustomDir())
		for _, name := range names {
			marker := ""
			if loader.HasCustomTemplate(name) {
				marker = "*"
				hasCustom = true
			}
			fmt.Fprintf(out, "    - %s%s\n", name, marker)
		}
	}

	if hasCustom {
		fmt.Fprintln(out, "\nTemplates with active overrides are shown with an asterisk (*).")
	}
	return nil
}

func (a *app) runTemplatesDump(cmd *cobra.Command, args []string, force bool) error {
	plugins, err := a.selectTemplated(args)
	if err != nil {
		return err
	}

	var skipped []error
	for _, p := range plugins {
		dumped, err := p.Loader().DumpAll(force)
		for _, path := range dumped {
			fmt.Fprintf(cmd.OutOrStdout(), "Dumped %s\n", path)
		}
		if errors.Is(err, template.ErrTemplateExists) {
			skipped = append(skipped, err)
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", p.Name(), err)
		}
	}

	if len(skipped) > 0 {
		return fmt.Errorf("some templates were not overwritten (use --force): %w", errors.Join(skipped...))
	}
	return nil
}
