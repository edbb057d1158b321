package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/Bitlatte/sitenav/internal/model"
	"github.com/Bitlatte/sitenav/internal/site"
)

var moduleTemplate = template.Must(template.New("config.mts").Parse(`import { defineConfig } from 'vitepress'

export default defineConfig({{ . }})
`))

// Write serializes s in the renderer's key layout.
func Write(w io.Writer, s *model.Site, format site.Format) error {
	if s == nil {
		return errors.New("nothing to export")
	}
	switch format {
	case site.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("failed to encode site config as json: %w", err)
		}
	case site.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("failed to encode site config as yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to flush yaml encoder: %w", err)
		}
	case site.FormatTS:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("failed to encode site config as json: %w", err)
		}
		if err := moduleTemplate.Execute(w, string(bytes.TrimSpace(buf.Bytes()))); err != nil {
			return fmt.Errorf("failed to execute template %q: %w", moduleTemplate.Name(), err)
		}
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
	return nil
}

// FileName is the conventional output file name for format.
func FileName(format site.Format) string {
	switch format {
	case site.FormatYAML:
		return "config.yaml"
	case site.FormatTS:
		return "config.mts"
	}
	return "config.json"
}
