package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/jmylchreest/swatch/internal/analyse"
	"github.com/jmylchreest/swatch/internal/colour"
)

func testResult() *analyse.Result {
	return &analyse.Result{
		Source: "wall.png",
		Palette: colour.NewPalette([]colour.Entry{
			{Count: 3, Hex: "#ff0000", RGB: colour.RGB{R: 255}},
			{Count: 1, Hex: "#000000"},
		}),
	}
}

func TestRenderColouredJSON(t *testing.T) {
	color.NoColor = true

	out, err := render(testResult(), renderOptions{format: formatJSON, colour: true})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	var doc colour.Document
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("coloured JSON is not valid with colour disabled: %v\n%s", err, out)
	}
	if doc.Image != "wall.png" || doc.Count != 2 || doc.Total != 4 {
		t.Errorf("unexpected document: %+v", doc)
	}
	if doc.Colors[0].Hex != "#ff0000" {
		t.Errorf("first colour = %s, want #ff0000", doc.Colors[0].Hex)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := render(testResult(), renderOptions{format: "xml"})
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}

func TestRenderPreview(t *testing.T) {
	out, err := render(testResult(), renderOptions{format: formatText, preview: true})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(string(out), "\033[48;2;255;0;0m") {
		t.Errorf("expected a preview block for #ff0000, got %q", out)
	}
}
