package levels

import (
	"errors"
	"strings"
	"testing"

	"github.com/hnjm/2DTileMapLevelEditor/internal/tilemap"
)

func newGrid(t *testing.T, w, h, l int) *tilemap.Grid {
	t.Helper()
	g, err := tilemap.NewGrid(w, h, l)
	if err != nil {
		t.Fatalf("NewGrid() failed: %v", err)
	}
	return g
}

func TestEncodeFilledLayer(t *testing.T) {
	g := newGrid(t, 3, 3, 1)
	tilemap.Fill(g, nil, tilemap.C(1, 1, 0), 2)

	got, err := Encode(g)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	expected := "\t02,2,2,\n2,2,2,\n2,2,2,"
	if got != expected {
		t.Errorf("Encode() = %q, expected %q", got, expected)
	}

	decoded, err := Decode(got, 3, 3, 1)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if !decoded.Equal(g) {
		t.Error("Decode(Encode(g)) should equal g")
	}
}

func TestEncodeRowOrderAndLayers(t *testing.T) {
	// Layer 0: bottom-left 1, top-right 2. Layer 1 empty. Layer 2: one tile.
	g := newGrid(t, 2, 2, 3)
	g.Set(0, 0, 0, 1)
	g.Set(1, 1, 0, 2)
	g.Set(1, 0, 2, 7)

	got, err := Encode(g)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	expected := "\t2-1,-1,\n-1,7," + "\t0-1,2,\n1,-1,"
	if got != expected {
		t.Errorf("Encode() = %q, expected %q", got, expected)
	}
}

func TestEncodeEmptyGrid(t *testing.T) {
	g := newGrid(t, 4, 4, 2)
	got, err := Encode(g)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	if got != "" {
		t.Errorf("Encode() of empty grid = %q, expected empty string", got)
	}

	decoded, err := Decode(got, 4, 4, 2)
	if err != nil {
		t.Fatalf("Decode(\"\") failed: %v", err)
	}
	if decoded.FilledCount() != 0 {
		t.Error("decoding empty text should give an empty grid")
	}
}

func TestEncodeLayerIndexTooWide(t *testing.T) {
	g := newGrid(t, 1, 1, 11)

	// Empty high layers are skipped, so this still encodes
	g.Set(0, 0, 9, 1)
	if _, err := Encode(g); err != nil {
		t.Fatalf("Encode() with layer 9 failed: %v", err)
	}

	g.Set(0, 0, 10, 1)
	if _, err := Encode(g); !errors.Is(err, ErrLayerIndexTooWide) {
		t.Errorf("Encode() error = %v, expected ErrLayerIndexTooWide", err)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		w, h, l int
		cells   []tilemap.Coord
	}{
		{"single cell", 1, 1, 1, []tilemap.Coord{tilemap.C(0, 0, 0)}},
		{"single row", 5, 1, 1, []tilemap.Coord{tilemap.C(0, 0, 0), tilemap.C(4, 0, 0)}},
		{"single column", 1, 5, 1, []tilemap.Coord{tilemap.C(0, 1, 0), tilemap.C(0, 4, 0)}},
		{"sparse layers", 4, 3, 10, []tilemap.Coord{tilemap.C(3, 2, 0), tilemap.C(0, 0, 5), tilemap.C(2, 1, 9)}},
		{"default editor size", 16, 14, 10, []tilemap.Coord{tilemap.C(15, 13, 3), tilemap.C(0, 0, 3), tilemap.C(7, 7, 8)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newGrid(t, tc.w, tc.h, tc.l)
			for i, c := range tc.cells {
				g.SetAt(c, i%10)
			}

			text, err := Encode(g)
			if err != nil {
				t.Fatalf("Encode() failed: %v", err)
			}
			decoded, err := Decode(text, tc.w, tc.h, tc.l)
			if err != nil {
				t.Fatalf("Decode() failed: %v", err)
			}
			if !decoded.Equal(g) {
				t.Errorf("round trip mismatch for %q", text)
			}
		})
	}
}

func TestRoundTripMultiDigitTiles(t *testing.T) {
	g := newGrid(t, 3, 2, 1)
	g.Set(0, 0, 0, 12)
	g.Set(2, 1, 0, 345)

	text, err := Encode(g)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	decoded, err := Decode(text, 3, 2, 1)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if !decoded.Equal(g) {
		t.Errorf("round trip mismatch for %q", text)
	}
}

func TestDecodeIgnoresOutOfRange(t *testing.T) {
	// 3x3 text into a 2x2 grid: the extra column and the top row are dropped
	text := "\t01,2,3,\n4,5,6,\n7,8,9,"
	g, err := Decode(text, 2, 2, 1)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}

	tests := []struct {
		x, y     int
		expected int
	}{
		{0, 0, 7},
		{1, 0, 8},
		{0, 1, 4},
		{1, 1, 5},
	}
	for _, tc := range tests {
		if v, _ := g.Get(tc.x, tc.y, 0); v != tc.expected {
			t.Errorf("Get(%d, %d, 0) = %d, expected %d", tc.x, tc.y, v, tc.expected)
		}
	}

	// Layer marker beyond the grid's layers is ignored too
	g, err = Decode("\t51,", 1, 1, 1)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if g.FilledCount() != 0 {
		t.Error("cells on layers outside the grid should be ignored")
	}
}

func TestDecodeToleratesWhitespace(t *testing.T) {
	g, err := Decode("\t0 3, 4,\r\n5,6, ", 2, 2, 1)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if v, _ := g.Get(0, 1, 0); v != 3 {
		t.Errorf("Get(0, 1, 0) = %d, expected 3", v)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"missing layer marker", "1,2,\n3,4,"},
		{"non-digit layer", "\tx1,2,"},
		{"non-numeric tile", "\t01,a,"},
		{"empty token", "\t01,,"},
		{"below empty", "\t0-2,"},
		{"token without comma", "\t0abc"},
		{"row missing trailing comma", "\t02,2,2"},
		{"last row missing trailing comma", "\t01,2,\n3,x"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := Decode(tc.text, 2, 2, 1)
			if err == nil {
				t.Fatalf("Decode(%q) should fail", tc.text)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("Decode() error = %T, expected *ParseError", err)
			}
			if g != nil {
				t.Error("Decode() should not return a partial grid on error")
			}
			if !strings.HasPrefix(err.Error(), "levels: parse") {
				t.Errorf("unexpected error text %q", err.Error())
			}
		})
	}
}

func TestDecodeInvalidDimension(t *testing.T) {
	if _, err := Decode("", 0, 1, 1); !errors.Is(err, tilemap.ErrInvalidDimension) {
		t.Errorf("Decode() error = %v, expected ErrInvalidDimension", err)
	}
}
