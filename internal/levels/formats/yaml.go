// Package formats provides alternate level file representations.
package formats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hnjm/2DTileMapLevelEditor/internal/tilemap"
	"gopkg.in/yaml.v3"
)

// EmptyToken marks an empty cell in YAML rows.
const EmptyToken = "."

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	Name     string            `yaml:"name"`
	Size     YAMLSize          `yaml:"size"`
	Layers   []YAMLLayer       `yaml:"layers"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
	L int `yaml:"l"`
}

// YAMLLayer is one non-empty layer. Rows are listed top row first and
// hold space-separated tile ids, with EmptyToken for empty cells.
type YAMLLayer struct {
	Index int      `yaml:"index"`
	Rows  []string `yaml:"rows"`
}

// Level represents a parsed level ready for use.
type Level struct {
	Name     string
	Grid     *tilemap.Grid
	Metadata map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	g, err := tilemap.NewGrid(yl.Size.W, yl.Size.H, yl.Size.L)
	if err != nil {
		return Level{}, fmt.Errorf("yaml size %dx%dx%d: %w", yl.Size.W, yl.Size.H, yl.Size.L, err)
	}

	for _, layer := range yl.Layers {
		for i, row := range layer.Rows {
			y := len(layer.Rows) - i - 1
			for x, tok := range strings.Fields(row) {
				if tok == EmptyToken {
					continue
				}
				v, err := strconv.Atoi(tok)
				if err != nil {
					return Level{}, fmt.Errorf("yaml layer %d row %d: invalid tile %q: %w", layer.Index, i, tok, err)
				}
				if v < tilemap.Empty {
					return Level{}, fmt.Errorf("yaml layer %d row %d: tile %d below empty", layer.Index, i, v)
				}
				g.Set(x, y, layer.Index, v)
			}
		}
	}

	return Level{
		Name:     yl.Name,
		Grid:     g,
		Metadata: yl.Metadata,
	}, nil
}

// MarshalYAML renders a level as YAML, skipping empty layers.
func MarshalYAML(l Level) ([]byte, error) {
	g := l.Grid
	yl := YAMLLevel{
		Name:     l.Name,
		Size:     YAMLSize{W: g.Width(), H: g.Height(), L: g.Layers()},
		Metadata: l.Metadata,
	}

	for layer := 0; layer < g.Layers(); layer++ {
		if g.IsLayerEmpty(layer) {
			continue
		}
		yLayer := YAMLLayer{Index: layer}
		for y := g.Height() - 1; y >= 0; y-- {
			tokens := make([]string, 0, g.Width())
			for _, v := range g.Row(y, layer) {
				if v == tilemap.Empty {
					tokens = append(tokens, EmptyToken)
				} else {
					tokens = append(tokens, strconv.Itoa(v))
				}
			}
			yLayer.Rows = append(yLayer.Rows, strings.Join(tokens, " "))
		}
		yl.Layers = append(yl.Layers, yLayer)
	}

	data, err := yaml.Marshal(&yl)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
