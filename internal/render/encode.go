package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/h0rv/qimen/internal/domain"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat indicates an output format render does not support.
var ErrUnknownFormat = errors.New("unknown output format")

// ErrNotRenderable indicates a value the text format cannot draw.
var ErrNotRenderable = errors.New("value has no text rendering")

// Encode writes v to w in format: text, json, yaml or toml.
func Encode(w io.Writer, format string, v any) error {
	switch format {
	case "text":
		s, err := Text(v)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, s)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case "toml":
		if err := toml.NewEncoder(w).Encode(v); err != nil {
			return fmt.Errorf("failed to encode toml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Text renders any chart type as a text grid.
func Text(v any) (string, error) {
	switch c := v.(type) {
	case domain.HourChart:
		return HourText(c), nil
	case domain.MinuteChart:
		return HourText(c.HourChart), nil
	case domain.DayChart:
		return DayText(c), nil
	case domain.Overall:
		return OverallText(c), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrNotRenderable, v)
	}
}
