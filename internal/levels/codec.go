package levels

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hnjm/2DTileMapLevelEditor/internal/tilemap"
)

const (
	layerSep = "\t"
	rowSep   = "\n"
	cellSep  = ","
)

// MaxEncodableLayer is the highest layer index the text format can carry.
// The layer marker is a single digit.
const MaxEncodableLayer = 9

// ErrLayerIndexTooWide is returned by Encode when a non-empty layer has an
// index above MaxEncodableLayer.
var ErrLayerIndexTooWide = errors.New("levels: layer index does not fit in one digit")

// ParseError describes malformed level text.
type ParseError struct {
	Chunk int    // Layer block index in file order, 0-based
	Row   int    // Row within the block, -1 if not applicable
	Col   int    // Column within the row, -1 if not applicable
	Msg   string // What was wrong
	Err   error  // Underlying conversion error, if any
}

func (e *ParseError) Error() string {
	loc := fmt.Sprintf("block %d", e.Chunk)
	if e.Row >= 0 {
		loc += fmt.Sprintf(" row %d", e.Row)
	}
	if e.Col >= 0 {
		loc += fmt.Sprintf(" col %d", e.Col)
	}
	if e.Err != nil {
		return fmt.Sprintf("levels: parse %s: %s: %v", loc, e.Msg, e.Err)
	}
	return fmt.Sprintf("levels: parse %s: %s", loc, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Encode serializes every non-empty layer of g.
//
// Layer blocks are written from the highest layer down. Each block is a
// "\t<layer>" marker followed by the layer's rows from the top row
// (y = height-1) to the bottom row (y = 0). A row is the tile ids for
// x ascending, each followed by a comma, and every row except y = 0 ends
// with a newline.
func Encode(g *tilemap.Grid) (string, error) {
	var sb strings.Builder

	for layer := g.Layers() - 1; layer >= 0; layer-- {
		if g.IsLayerEmpty(layer) {
			continue
		}
		if layer > MaxEncodableLayer {
			return "", fmt.Errorf("%w: layer %d", ErrLayerIndexTooWide, layer)
		}

		sb.WriteString(layerSep)
		sb.WriteString(strconv.Itoa(layer))

		for y := g.Height() - 1; y >= 0; y-- {
			for _, v := range g.Row(y, layer) {
				sb.WriteString(strconv.Itoa(v))
				sb.WriteString(cellSep)
			}
			if y != 0 {
				sb.WriteString(rowSep)
			}
		}
	}

	return sb.String(), nil
}

// Decode parses level text into a new empty grid of the given size.
// Cells that fall outside the grid are ignored. On error no grid is
// returned.
func Decode(text string, width, height, layers int) (*tilemap.Grid, error) {
	g, err := tilemap.NewGrid(width, height, layers)
	if err != nil {
		return nil, err
	}

	chunks := strings.Split(text, layerSep)
	if strings.TrimSpace(chunks[0]) != "" {
		return nil, &ParseError{Chunk: 0, Row: -1, Col: -1, Msg: "data before first layer marker"}
	}

	block := 0
	for _, chunk := range chunks[1:] {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		if err := decodeLayer(g, block, chunk); err != nil {
			return nil, err
		}
		block++
	}

	return g, nil
}

// decodeLayer places one "<digit><rows>" block into g.
func decodeLayer(g *tilemap.Grid, block int, chunk string) error {
	digit := chunk[0]
	if digit < '0' || digit > '9' {
		return &ParseError{Chunk: block, Row: -1, Col: -1, Msg: fmt.Sprintf("invalid layer marker %q", digit)}
	}
	layer := int(digit - '0')

	lines := strings.Split(chunk[1:], rowSep)
	for i, line := range lines {
		tokens := strings.Split(line, cellSep)
		// Every row ends with a comma, so the last token must be blank
		last := len(tokens) - 1
		if strings.TrimSpace(tokens[last]) != "" {
			return &ParseError{Chunk: block, Row: i, Col: last, Msg: "row missing trailing comma"}
		}
		for j := 0; j < last; j++ {
			tok := strings.TrimSpace(tokens[j])
			v, err := strconv.Atoi(tok)
			if err != nil {
				return &ParseError{Chunk: block, Row: i, Col: j, Msg: fmt.Sprintf("invalid tile %q", tok), Err: err}
			}
			if v < tilemap.Empty {
				return &ParseError{Chunk: block, Row: i, Col: j, Msg: fmt.Sprintf("tile %d below empty", v)}
			}
			g.Set(j, len(lines)-i-1, layer, v)
		}
	}
	return nil
}
