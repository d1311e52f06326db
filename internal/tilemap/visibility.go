package tilemap

// Visibility tracks the selected layer and whether only that layer
// should be shown. It never touches grid contents.
type Visibility struct {
	layers           int
	selected         int
	onlyShowSelected bool
}

// NewVisibility creates a policy for a grid with the given layer count.
// Layer 0 starts selected and all layers are visible.
func NewVisibility(layers int) *Visibility {
	if layers < 1 {
		layers = 1
	}
	return &Visibility{layers: layers}
}

// Selected returns the selected layer.
func (v *Visibility) Selected() int { return v.selected }

// OnlyShowSelected reports whether only the selected layer is visible.
func (v *Visibility) OnlyShowSelected() bool { return v.onlyShowSelected }

// Layers returns the number of layers the policy covers.
func (v *Visibility) Layers() int { return v.layers }

// SetSelected selects a layer, clamped to [0, layers-1].
func (v *Visibility) SetSelected(layer int) {
	v.selected = clamp(layer, 0, v.layers-1)
}

// LayerUp selects the next layer. Returns false at the top layer.
func (v *Visibility) LayerUp() bool {
	if v.selected >= v.layers-1 {
		return false
	}
	v.selected++
	return true
}

// LayerDown selects the previous layer. Returns false at layer 0.
func (v *Visibility) LayerDown() bool {
	if v.selected <= 0 {
		return false
	}
	v.selected--
	return true
}

// SetOnlyShowSelected sets the only-show-selected flag.
func (v *Visibility) SetOnlyShowSelected(only bool) {
	v.onlyShowSelected = only
}

// ToggleOnlyShowSelected flips the flag and returns the new value.
func (v *Visibility) ToggleOnlyShowSelected() bool {
	v.onlyShowSelected = !v.onlyShowSelected
	return v.onlyShowSelected
}

// VisibleLayers returns the layers to draw in ascending order.
func (v *Visibility) VisibleLayers() []int {
	if v.onlyShowSelected {
		return []int{v.selected}
	}
	layers := make([]int, v.layers)
	for i := range layers {
		layers[i] = i
	}
	return layers
}

// IsVisible reports whether layer should be drawn.
func (v *Visibility) IsVisible(layer int) bool {
	if layer < 0 || layer >= v.layers {
		return false
	}
	return !v.onlyShowSelected || layer == v.selected
}

// Resize adapts the policy to a new layer count, keeping the selection
// in range.
func (v *Visibility) Resize(layers int) {
	if layers < 1 {
		layers = 1
	}
	v.layers = layers
	v.selected = clamp(v.selected, 0, layers-1)
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
