package utils

import (
	"fmt"
	"os"
	"path/filepath"

	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/voxelsplace/chunkmesh/voxel"
)

// Generator decides the kind of the voxel at a world position.
type Generator func(world voxel.Position) voxel.Kind

const (
	terrainScale = 1.0 / 24
	caveScale    = 1.0 / 8
	caveCutoff   = 0.35
	terrainDepth = 16
)

// NewGenerator returns the generator for mode:
//
//	solid    every voxel Rock (the default chunk contents)
//	empty    every voxel Air
//	terrain  opensimplex heightmap, Grass over Dirt over Rock, Air above
//	caves    Rock with opensimplex caves carved out
func NewGenerator(mode string, seed int64) (Generator, error) {
	switch mode {
	case "", "solid":
		return func(voxel.Position) voxel.Kind { return voxel.Rock }, nil
	case "empty":
		return func(voxel.Position) voxel.Kind { return voxel.Air }, nil
	case "terrain":
		noise := opensimplex.New(seed)
		return func(p voxel.Position) voxel.Kind {
			n := noise.Eval2(float64(p.X)*terrainScale, float64(p.Z)*terrainScale)
			h := int((n + 1) / 2 * terrainDepth)
			switch {
			case p.Y >= h:
				return voxel.Air
			case p.Y == h-1:
				return voxel.Grass
			case p.Y >= h-3:
				return voxel.Dirt
			default:
				return voxel.Rock
			}
		}, nil
	case "caves":
		noise := opensimplex.New(seed)
		return func(p voxel.Position) voxel.Kind {
			n := noise.Eval3(float64(p.X)*caveScale, float64(p.Y)*caveScale, float64(p.Z)*caveScale)
			if n > caveCutoff {
				return voxel.Air
			}
			return voxel.Rock
		}, nil
	}
	return nil, fmt.Errorf("unknown generator mode %q", mode)
}

// FillChunk builds the chunk at chunk coordinate coord by sampling gen at
// world positions coord*size + local.
func FillChunk(size int, coord voxel.Position, gen Generator) (*voxel.Chunk, error) {
	c, err := voxel.NewChunkFilled(size, voxel.Air)
	if err != nil {
		return nil, err
	}
	base := voxel.Position{X: coord.X * size, Y: coord.Y * size, Z: coord.Z * size}
	for i := 0; i < c.Len(); i++ {
		p, err := c.IndexToPosition(i)
		if err != nil {
			return nil, err
		}
		if err := c.SetIndex(i, gen(base.Add(p))); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RunGenerate writes amount chunks of edge length size to outDir as
// 0.vchk..(amount-1).vchk. Chunk i sits at chunk coordinate (i,0,0), so
// terrain continues across consecutive files.
func RunGenerate(mode string, size, amount int, seed int64, outDir string) error {
	gen, err := NewGenerator(mode, seed)
	if err != nil {
		return err
	}
	if amount < 0 {
		amount = 0
	}
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	for i := 0; i < amount; i++ {
		c, err := FillChunk(size, voxel.Position{X: i}, gen)
		if err != nil {
			return err
		}
		path := filepath.Join(outDir, fmt.Sprintf("%d.vchk", i))
		if err := voxel.SaveChunk(c, path); err != nil {
			return fmt.Errorf("failed to save %s: %w", path, err)
		}
	}
	fmt.Printf("%d %s chunks of size %d written to %s\n", amount, mode, size, outDir)
	return nil
}
