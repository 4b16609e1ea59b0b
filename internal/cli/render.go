package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/TylerBrock/colorjson"

	"github.com/jmylchreest/swatch/internal/analyse"
	"github.com/jmylchreest/swatch/internal/colour"
)

// Output formats.
const (
	formatText  = "text"
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTable = "table"
)

// renderOptions controls how a result is written.
type renderOptions struct {
	format  string
	preview bool
	names   bool

	// colour enables syntax colouring of JSON for terminals.
	colour bool
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML, formatTable:
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json, yaml, table)", format)
	}
}

// render formats the result according to the specified format.
func render(result *analyse.Result, opts renderOptions) ([]byte, error) {
	switch opts.format {
	case formatText, "":
		return []byte(formatPlain(result, opts)), nil
	case formatJSON:
		data, err := result.Palette.ToJSON(result.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to convert to JSON: %w", err)
		}
		if opts.colour {
			if data, err = colouriseJSON(data); err != nil {
				return nil, err
			}
		}
		return append(data, '\n'), nil
	case formatYAML:
		data, err := result.Palette.ToYAML(result.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to convert to YAML: %w", err)
		}
		return data, nil
	case formatTable:
		return []byte(formatTableOutput(result, opts)), nil
	default:
		return nil, validateFormat(opts.format)
	}
}

// formatPlain writes the header, count line and one line per entry.
func formatPlain(result *analyse.Result, opts renderOptions) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Image: %s\n", result.Source)
	fmt.Fprintf(&sb, "Dominant colors (%d):\n", result.Palette.Len())

	for _, e := range result.Palette.All() {
		sb.WriteString(e.String())
		if opts.names {
			name, _ := colour.NearestName(e.RGB)
			fmt.Fprintf(&sb, " name=%s", name)
		}
		if opts.preview {
			sb.WriteString(" ")
			sb.WriteString(colour.ColourPreview(e.RGB, 0))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatTableOutput(result *analyse.Result, opts renderOptions) string {
	headers := []string{"#", "HEX", "RGB", "PIXELS", "SHARE"}
	if opts.names {
		headers = append(headers, "NAME")
	}

	table := NewTable(headers)
	table.SetAlignment(0, AlignRight)
	table.SetAlignment(3, AlignRight)
	table.SetAlignment(4, AlignRight)

	for i, e := range result.Palette.All() {
		row := []string{
			strconv.Itoa(i + 1),
			e.Hex,
			e.RGB.String(),
			strconv.FormatInt(e.Count, 10),
			fmt.Sprintf("%.1f%%", result.Palette.Share(i)*100),
		}
		if opts.names {
			name, _ := colour.NearestName(e.RGB)
			row = append(row, name)
		}
		table.AddRow(row)
	}

	return fmt.Sprintf("Image: %s\n\n%s", result.Source, table.Render())
}

// colouriseJSON re-encodes JSON with terminal colours. Object keys come out sorted.
func colouriseJSON(data []byte) ([]byte, error) {
	var obj any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	f := colorjson.NewFormatter()
	f.Indent = 2
	return f.Marshal(obj)
}
