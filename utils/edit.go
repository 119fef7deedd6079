package utils

import (
	"fmt"
	"os"

	"github.com/voxelsplace/chunkmesh/voxel"
)

// RunUpdate applies the edit stream in editsPath to the chunk in inputPath
// and writes the result to outputPath.
func RunUpdate(editsPath, inputPath, outputPath string) error {
	edits, err := os.ReadFile(editsPath)
	if err != nil {
		return fmt.Errorf("read edits: %w", err)
	}
	c, err := voxel.LoadChunk(inputPath)
	if err != nil {
		return fmt.Errorf("failed to load input chunk: %w", err)
	}
	if err := voxel.ApplyEdits(c, edits); err != nil {
		return fmt.Errorf("apply edits: %w", err)
	}
	return saveReport(c, outputPath, "updated")
}

// RunEdits2Chunk builds a chunk of edge length size from an edit stream
// applied over Air.
func RunEdits2Chunk(size int, editsPath, outputPath string) error {
	edits, err := os.ReadFile(editsPath)
	if err != nil {
		return fmt.Errorf("read edits: %w", err)
	}
	c, err := voxel.DecodeEditsToChunk(size, edits)
	if err != nil {
		return fmt.Errorf("decode edits: %w", err)
	}
	return saveReport(c, outputPath, "saved")
}

// RunChunk2Edits writes the edit stream that rebuilds a chunk from Air.
func RunChunk2Edits(inputPath, outputPath string) error {
	c, err := voxel.LoadChunk(inputPath)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, voxel.EncodeChunkEdits(c), 0o644)
}

func saveReport(c *voxel.Chunk, path, verb string) error {
	if err := voxel.SaveChunk(c, path); err != nil {
		return fmt.Errorf("failed to save chunk: %w", err)
	}
	if fi, err := os.Stat(path); err == nil {
		fmt.Printf(".vchk %s (%d bytes)\n", verb, fi.Size())
	} else {
		fmt.Printf(".vchk %s.\n", verb)
	}
	return nil
}
