package flashing

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// RenderFormat selects the debug rendering of a document.
type RenderFormat string

const (
	RenderJSON RenderFormat = "json"
	RenderYAML RenderFormat = "yaml"
)

// ParseRenderFormat parses a format name
func ParseRenderFormat(s string) (RenderFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return RenderJSON, nil
	case "", "yaml", "yml":
		return RenderYAML, nil
	default:
		return "", fmt.Errorf("unknown render format: %s", s)
	}
}

// Render writes doc to w in the given format. It only reads the document.
func Render(w io.Writer, doc *Document, format RenderFormat) error {
	switch format {
	case RenderJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Flashing *Document `json:"flashing"`
		}{doc})
	case RenderYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]*Document{"flashing": doc}); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown render format: %s", format)
	}
}
