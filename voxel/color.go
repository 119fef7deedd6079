package voxel

import (
	"fmt"
	"strconv"
)

var kindColors = [kindCount]string{
	Air:   "#00000000",
	Rock:  "#33B21A",
	Dirt:  "#7A5230",
	Grass: "#4CAF50",
	Sand:  "#E2C987",
	Water: "#2E6FD8B3",
}

// Color returns the display color of k as "#RRGGBB" or "#RRGGBBAA".
func (k Kind) Color() string {
	if k.Valid() {
		return kindColors[k]
	}
	return "#FF00FF"
}

// ParseHexColor converts "#RRGGBB" or "#RRGGBBAA" to normalized RGBA.
func ParseHexColor(hex string) ([4]float32, error) {
	if len(hex) == 0 || hex[0] != '#' {
		return [4]float32{}, fmt.Errorf("invalid hex color %q", hex)
	}
	h := hex[1:]
	if len(h) != 6 && len(h) != 8 {
		return [4]float32{}, fmt.Errorf("invalid hex color length %q", hex)
	}
	rgba := [4]float32{0, 0, 0, 1}
	for i := 0; i < len(h)/2; i++ {
		v, err := strconv.ParseUint(h[2*i:2*i+2], 16, 8)
		if err != nil {
			return [4]float32{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
		}
		rgba[i] = float32(v) / 255
	}
	return rgba, nil
}

// Dominant returns the most common solid kind of c, or Air when c is empty.
// Ties go to the lower kind.
func (c *Chunk) Dominant() Kind {
	var counts [kindCount]int
	for _, v := range c.voxels {
		counts[v.Kind]++
	}
	best := Air
	for k := Rock; k < kindCount; k++ {
		if counts[k] > counts[best] || (best == Air && counts[k] > 0) {
			best = k
		}
	}
	return best
}
