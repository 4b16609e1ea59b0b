package colour

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestNewPalette(t *testing.T) {
	palette := NewPalette([]Entry{
		{Count: 10, Hex: "#ff0000", RGB: RGB{R: 255}},
		{Count: 20, Hex: "#00ff00", RGB: RGB{G: 255}},
	})

	if palette == nil {
		t.Fatal("NewPalette returned nil")
	}

	if palette.Len() != 2 {
		t.Errorf("Expected palette length 2, got %d", palette.Len())
	}
}

func TestPaletteSort(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    []string
	}{
		{
			name:    "empty palette",
			entries: nil,
			want:    nil,
		},
		{
			name: "descending by count",
			entries: []Entry{
				{Count: 5, Hex: "#000005"},
				{Count: 100, Hex: "#000100"},
				{Count: 42, Hex: "#000042"},
			},
			want: []string{"#000100", "#000042", "#000005"},
		},
		{
			name: "ties keep encounter order",
			entries: []Entry{
				{Count: 7, Hex: "#aaaaaa"},
				{Count: 9, Hex: "#bbbbbb"},
				{Count: 7, Hex: "#cccccc"},
				{Count: 7, Hex: "#dddddd"},
			},
			want: []string{"#bbbbbb", "#aaaaaa", "#cccccc", "#dddddd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPalette(tt.entries)
			p.Sort()

			if p.Len() != len(tt.want) {
				t.Fatalf("Len() = %d, want %d", p.Len(), len(tt.want))
			}
			for i, e := range p.Entries {
				if e.Hex != tt.want[i] {
					t.Errorf("entry %d = %s, want %s", i, e.Hex, tt.want[i])
				}
			}
		})
	}
}

func TestEntryString(t *testing.T) {
	e := Entry{Count: 1234, Hex: "#1a2b3c", RGB: RGB{R: 26, G: 43, B: 60}}
	want := "- #1a2b3c rgb(26, 43, 60) pixels=1234"
	if got := e.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPaletteShare(t *testing.T) {
	p := NewPalette([]Entry{{Count: 75}, {Count: 25}})

	if got := p.TotalPixels(); got != 100 {
		t.Errorf("TotalPixels() = %d, want 100", got)
	}
	if got := p.Share(0); got != 0.75 {
		t.Errorf("Share(0) = %v, want 0.75", got)
	}
	if got := p.Share(5); got != 0 {
		t.Errorf("Share(5) = %v, want 0", got)
	}
	if got := NewPalette(nil).Share(0); got != 0 {
		t.Errorf("Share on empty palette = %v, want 0", got)
	}
}

func TestPaletteToJSON(t *testing.T) {
	p := NewPalette([]Entry{{Count: 3, Hex: "#ff8000", RGB: RGB{R: 255, G: 128}}})

	data, err := p.ToJSON("wall.jpg")
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("ToJSON produced invalid JSON: %v", err)
	}
	if doc.Image != "wall.jpg" || doc.Count != 1 || doc.Total != 3 {
		t.Errorf("unexpected document header: %+v", doc)
	}
	if doc.Colors[0].RGB != (RGB{R: 255, G: 128}) {
		t.Errorf("unexpected rgb: %+v", doc.Colors[0].RGB)
	}
}

func TestPaletteToJSONEmpty(t *testing.T) {
	data, err := NewPalette(nil).ToJSON("x.png")
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if !strings.Contains(string(data), `"colors": []`) {
		t.Errorf("expected empty colors array, got %s", data)
	}
}

func TestPaletteToYAML(t *testing.T) {
	p := NewPalette([]Entry{{Count: 9, Hex: "#000000"}})

	data, err := p.ToYAML("a.png")
	if err != nil {
		t.Fatalf("ToYAML failed: %v", err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("ToYAML produced invalid YAML: %v", err)
	}
	if doc.Count != 1 || doc.Colors[0].Count != 9 {
		t.Errorf("unexpected document: %+v", doc)
	}
}

func TestAllIterator(t *testing.T) {
	p := NewPalette([]Entry{{Count: 1}, {Count: 2}, {Count: 3}})

	seen := 0
	for i := range p.All() {
		seen++
		if i == 1 {
			break
		}
	}
	if seen != 2 {
		t.Errorf("expected iteration to stop after 2 entries, got %d", seen)
	}
}
