package svf

import (
	"fmt"
	"os"
	"testing"

	cube "github.com/rmera/gocube"
)

//TestRoundTrip writes a two-file batch into a container and reads it
//back, checking names, dimensions, data and transforms survive.
func TestRoundTrip(Te *testing.T) {
	var batch []*cube.Grid
	for _, f := range []string{"../test/water.cub", "../test/mo.cub"} {
		grids, err := cube.Read(f, 2.0, cube.ByIndices)
		if err != nil {
			Te.Error(err)
			return
		}
		batch = append(batch, grids...)
	}
	if len(batch) != 3 {
		Te.Errorf("expected 3 grids in the batch, got %d", len(batch))
		return
	}
	out := "../test/test_batch.vdb"
	if err := WriteBatch(out, batch); err != nil {
		Te.Error(err)
		return
	}
	r, err := New(out)
	if err != nil {
		Te.Error(err)
		return
	}
	defer r.Close()
	read := 0
	for {
		g, err := r.Next()
		if err != nil {
			if _, ok := err.(cube.LastGridError); ok {
				break
			}
			Te.Error(err)
			break
		}
		want := batch[read]
		if g.Name != want.Name {
			Te.Errorf("grid %d: expected name %s, got %s", read, want.Name, g.Name)
		}
		n1, n2, n3 := g.Field.Dims()
		w1, w2, w3 := want.Field.Dims()
		if n1 != w1 || n2 != w2 || n3 != w3 {
			Te.Errorf("grid %d: expected dims %d %d %d, got %d %d %d", read, w1, w2, w3, n1, n2, n3)
		}
		for i, v := range g.Field.Data() {
			if v != want.Field.Data()[i] {
				Te.Errorf("grid %d, voxel %d: expected %f, got %f", read, i, want.Field.Data()[i], v)
			}
		}
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				if g.Transform.At(i, j) != want.Transform.At(i, j) {
					Te.Errorf("grid %d: transform[%d][%d] %f vs %f", read, i, j, g.Transform.At(i, j), want.Transform.At(i, j))
				}
			}
		}
		read++
	}
	if read != len(batch) {
		Te.Errorf("expected to read %d grids back, got %d", len(batch), read)
	}
	fmt.Println("Round trip over!", read, "grids")
}

//TestGzipContainer exercises the gzip branch of the compression switch.
func TestGzipContainer(Te *testing.T) {
	grids, err := cube.Read("../test/water.cub", 1.0, cube.ByIndices)
	if err != nil {
		Te.Error(err)
		return
	}
	out := "../test/test_batch.svz"
	if err := WriteBatch(out, grids); err != nil {
		Te.Error(err)
		return
	}
	r, err := New(out)
	if err != nil {
		Te.Error(err)
		return
	}
	defer r.Close()
	g, err := r.Next()
	if err != nil {
		Te.Error(err)
		return
	}
	if g.Name != "Density" || g.Field.Len() != 8 {
		Te.Errorf("unexpected grid %s with %d voxels", g.Name, g.Field.Len())
	}
}

//TestCorruptContainer: a stream that breaks at a grid boundary is an
//actual error, not a normal end of the container.
func TestCorruptContainer(Te *testing.T) {
	grids, err := cube.Read("../test/water.cub", 1.0, cube.ByIndices)
	if err != nil {
		Te.Error(err)
		return
	}
	out := "../test/test_corrupt.svz"
	if err := WriteBatch(out, grids); err != nil {
		Te.Error(err)
		return
	}
	//garbage after the gzip member: the decompressor chokes on it right
	//where a clean container would just end.
	f, err := os.OpenFile(out, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		Te.Error(err)
		return
	}
	if _, err := f.Write([]byte("this is not a gzip member")); err != nil {
		Te.Error(err)
		return
	}
	f.Close()
	r, err := New(out)
	if err != nil {
		Te.Error(err)
		return
	}
	defer r.Close()
	if _, err := r.Next(); err != nil {
		Te.Error(err)
		return
	}
	_, err = r.Next()
	if err == nil {
		Te.Error("expected an error from the corrupt container tail")
		return
	}
	if _, ok := err.(cube.LastGridError); ok {
		Te.Error("a corrupt tail must not look like a normal termination")
	}
}

//TestWriteEmptyBatch: an empty batch is refused, the container writer
//should never be called with one.
func TestWriteEmptyBatch(Te *testing.T) {
	if err := WriteBatch("../test/should_not_exist.vdb", nil); err == nil {
		Te.Error("expected an error writing an empty batch")
	}
}

//TestWriterMisuse: writing to a closed container and writing a nil grid
//are errors, not panics.
func TestWriterMisuse(Te *testing.T) {
	w, err := NewWriter("../test/test_misuse.vdb")
	if err != nil {
		Te.Error(err)
		return
	}
	if err := w.WGrid(nil); err == nil {
		Te.Error("expected an error writing a nil grid")
	}
	w.Close()
	grids, _ := cube.Read("../test/water.cub", 1.0, cube.ByIndices)
	if err := w.WGrid(grids[0]); err == nil {
		Te.Error("expected an error writing to a closed container")
	}
}
