package config

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/charmbracelet/log"
)

//go:embed templates/focus.toml.tmpl
var templateFS embed.FS

// configTemplatePath is the embedded starter config template.
const configTemplatePath = "templates/focus.toml.tmpl"

// TemplateVars holds variables available for text/template substitution when
// rendering the starter focus.toml.
type TemplateVars struct {
	Title         string
	DefaultFilter string
	IDGenerator   string
	ConfirmClear  bool
}

// DefaultTemplateVars returns TemplateVars filled from NewDefaults.
func DefaultTemplateVars() TemplateVars {
	d := NewDefaults()
	return TemplateVars{
		Title:         d.UI.Title,
		DefaultFilter: d.UI.DefaultFilter,
		IDGenerator:   d.Store.IDGenerator,
		ConfirmClear:  d.UI.ConfirmClearEnabled(),
	}
}

// RenderConfig renders the starter template with vars and returns the TOML
// text.
func RenderConfig(vars TemplateVars) ([]byte, error) {
	content, err := templateFS.ReadFile(configTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("reading embedded file %s: %w", configTemplatePath, err)
	}

	tmpl, err := template.New(ConfigFileName).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", configTemplatePath, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", configTemplatePath, err)
	}
	return buf.Bytes(), nil
}

// WriteConfig renders the starter template into destDir/focus.toml. When
// force is false an existing file is left untouched and created is false.
// Returns the destination path.
func WriteConfig(destDir string, vars TemplateVars, force bool) (path string, created bool, err error) {
	path = filepath.Join(destDir, ConfigFileName)

	if _, statErr := os.Stat(path); statErr == nil {
		if !force {
			log.Debug("skipping existing file", "path", path)
			return path, false, nil
		}
		log.Debug("overwriting existing file", "path", path)
	}

	output, err := RenderConfig(vars)
	if err != nil {
		return path, false, err
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return path, false, fmt.Errorf("creating directory %s: %w", destDir, err)
	}
	if err := os.WriteFile(path, output, 0o600); err != nil {
		return path, false, fmt.Errorf("writing file %s: %w", path, err)
	}

	log.Debug("created config file", "path", path)
	return path, true, nil
}
