package tilemap_test

import (
	"reflect"
	"testing"

	"github.com/hnjm/2DTileMapLevelEditor/internal/tilemap"
)

func TestVisibilityLayerUpDownClamp(t *testing.T) {
	v := tilemap.NewVisibility(3)

	if v.LayerDown() {
		t.Error("LayerDown() at layer 0 should report no change")
	}
	if !v.LayerUp() || !v.LayerUp() {
		t.Fatal("LayerUp() should move to layer 2")
	}
	if v.LayerUp() {
		t.Error("LayerUp() at the top layer should report no change")
	}
	if v.Selected() != 2 {
		t.Errorf("Selected() = %d, expected 2", v.Selected())
	}

	v.SetSelected(10)
	if v.Selected() != 2 {
		t.Errorf("SetSelected(10) = %d, expected clamp to 2", v.Selected())
	}
	v.SetSelected(-4)
	if v.Selected() != 0 {
		t.Errorf("SetSelected(-4) = %d, expected clamp to 0", v.Selected())
	}
}

func TestVisibilityVisibleLayers(t *testing.T) {
	v := tilemap.NewVisibility(4)
	v.SetSelected(2)

	tests := []struct {
		name     string
		only     bool
		expected []int
	}{
		{"all layers", false, []int{0, 1, 2, 3}},
		{"only selected", true, []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v.SetOnlyShowSelected(tt.only)
			if got := v.VisibleLayers(); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("VisibleLayers() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestVisibilityIsVisible(t *testing.T) {
	v := tilemap.NewVisibility(3)
	v.SetSelected(1)

	if !v.IsVisible(0) || !v.IsVisible(2) {
		t.Error("all layers should be visible by default")
	}
	if v.IsVisible(3) || v.IsVisible(-1) {
		t.Error("layers outside the grid are never visible")
	}

	if !v.ToggleOnlyShowSelected() {
		t.Fatal("ToggleOnlyShowSelected() should turn isolation on")
	}
	if v.IsVisible(0) || !v.IsVisible(1) {
		t.Error("only the selected layer should be visible when isolated")
	}
}

func TestVisibilityResize(t *testing.T) {
	v := tilemap.NewVisibility(10)
	v.SetSelected(9)

	v.Resize(4)
	if v.Layers() != 4 || v.Selected() != 3 {
		t.Errorf("after Resize(4): layers %d selected %d, expected 4 and 3", v.Layers(), v.Selected())
	}

	v.Resize(0)
	if v.Layers() != 1 || v.Selected() != 0 {
		t.Errorf("after Resize(0): layers %d selected %d, expected 1 and 0", v.Layers(), v.Selected())
	}
}
