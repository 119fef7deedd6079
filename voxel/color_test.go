package voxel

import "testing"

func TestParseHexColor(t *testing.T) {
	got, err := ParseHexColor("#FF000080")
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 1 || got[1] != 0 || got[2] != 0 || got[3] != float32(0x80)/255 {
		t.Fatalf("got %v", got)
	}
	got, err = ParseHexColor("#00ff00")
	if err != nil || got != [4]float32{0, 1, 0, 1} {
		t.Fatalf("got %v, %v", got, err)
	}
	for _, bad := range []string{"", "FF0000", "#FF00", "#GG0000", "#FF0000FF00"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Fatalf("ParseHexColor(%q) accepted", bad)
		}
	}
	for k := Air; k < kindCount; k++ {
		if _, err := ParseHexColor(k.Color()); err != nil {
			t.Fatalf("%v color %q: %v", k, k.Color(), err)
		}
	}
}

func TestChunk_Dominant(t *testing.T) {
	c := must(NewChunkFilled(3, Air))
	if got := c.Dominant(); got != Air {
		t.Fatalf("empty chunk dominant = %v", got)
	}
	_ = c.SetIndex(0, Sand)
	if got := c.Dominant(); got != Sand {
		t.Fatalf("dominant = %v, want sand", got)
	}
	_ = c.SetIndex(1, Dirt)
	if got := c.Dominant(); got != Dirt {
		t.Fatalf("tie should go to the lower kind, got %v", got)
	}
	_ = c.SetIndex(2, Sand)
	if got := c.Dominant(); got != Sand {
		t.Fatalf("dominant = %v, want sand", got)
	}
}
