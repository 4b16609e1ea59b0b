// Package colour provides the palette types produced by histogram extraction.
package colour

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// RGB represents a color in RGB format.
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Entry is a single quantised colour and the number of pixels it covers.
type Entry struct {
	Count int64  `json:"pixels" yaml:"pixels"`
	Hex   string `json:"hex" yaml:"hex"`
	RGB   RGB    `json:"rgb" yaml:"rgb"`
}

// String returns the entry in the "- #rrggbb rgb(r, g, b) pixels=n" line format.
func (e Entry) String() string {
	return fmt.Sprintf("- %s %s pixels=%d", e.Hex, e.RGB.String(), e.Count)
}

// Palette is an ordered list of entries, most frequent first once sorted.
type Palette struct {
	Entries []Entry
}

// NewPalette creates a new Palette with the given entries.
// The entries are kept in the order given; call Sort to rank them.
func NewPalette(entries []Entry) *Palette {
	return &Palette{
		Entries: entries,
	}
}

// Len returns the number of entries in the palette.
func (p *Palette) Len() int {
	return len(p.Entries)
}

// Sort orders entries by pixel count, highest first.
// Entries with equal counts keep their relative order.
func (p *Palette) Sort() {
	slices.SortStableFunc(p.Entries, func(a, b Entry) int {
		return cmp.Compare(b.Count, a.Count)
	})
}

// TotalPixels returns the sum of all entry counts.
func (p *Palette) TotalPixels() int64 {
	var total int64
	for _, e := range p.Entries {
		total += e.Count
	}
	return total
}

// Share returns the fraction of counted pixels held by the entry at index.
// Returns 0 for an out of range index or an empty palette.
func (p *Palette) Share(index int) float64 {
	if index < 0 || index >= len(p.Entries) {
		return 0
	}
	total := p.TotalPixels()
	if total == 0 {
		return 0
	}
	return float64(p.Entries[index].Count) / float64(total)
}

// All returns an iterator over all entries in the palette.
func (p *Palette) All() func(func(int, Entry) bool) {
	return func(yield func(int, Entry) bool) {
		for i, e := range p.Entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Document is the serialised form of an extracted palette.
type Document struct {
	Image  string  `json:"image" yaml:"image"`
	Count  int     `json:"count" yaml:"count"`
	Total  int64   `json:"total_pixels" yaml:"total_pixels"`
	Colors []Entry `json:"colors" yaml:"colors"`
}

// Document returns the serialisable form of the palette for the given source image.
func (p *Palette) Document(image string) Document {
	colors := p.Entries
	if colors == nil {
		colors = []Entry{}
	}
	return Document{
		Image:  image,
		Count:  len(p.Entries),
		Total:  p.TotalPixels(),
		Colors: colors,
	}
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON(image string) ([]byte, error) {
	return json.MarshalIndent(p.Document(image), "", "  ")
}

// ToYAML converts the palette to YAML.
func (p *Palette) ToYAML(image string) ([]byte, error) {
	return yaml.Marshal(p.Document(image))
}
