/*
 * batch_test.go, part of gocube.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package cube

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

//TestLoadSequence imports a whole numbered run from one of its members
//and checks plan order and forced names end to end.
func TestLoadSequence(Te *testing.T) {
	B, err := Load(filepath.Join("test", "seq", "wave2.cub"), &Options{Scale: 1.0, Sequence: true})
	if err != nil {
		Te.Error(err)
		return
	}
	if len(B.Grids) != 3 {
		Te.Errorf("expected 3 grids, got %d", len(B.Grids))
		return
	}
	wantnames := []string{"1", "2", "10"}
	wantvals := []float32{1.5, 2.5, 10.5}
	for i, g := range B.Grids {
		if g.Name != wantnames[i] {
			Te.Errorf("grid %d: expected name %s, got %s", i, wantnames[i], g.Name)
		}
		if g.Field.Data()[0] != wantvals[i] {
			Te.Errorf("grid %d: expected value %f, got %f", i, wantvals[i], g.Field.Data()[0])
		}
	}
	if filepath.Base(B.Output) != "wave_all.vdb" {
		Te.Errorf("expected wave_all.vdb, got %s", B.Output)
	}
	if len(B.Failed()) != 0 {
		Te.Errorf("no file should have failed, got %v", B.Failed())
	}
	fmt.Println("Batch loaded:", len(B.Grids), "grids ->", B.Output)
}

//TestLoadDefaults: a nil Options means scale 1.0, no sequence, naming by
//indices.
func TestLoadDefaults(Te *testing.T) {
	B, err := Load(filepath.Join("test", "mo.cub"), nil)
	if err != nil {
		Te.Error(err)
		return
	}
	if len(B.Grids) != 2 || B.Grids[0].Name != "5" {
		Te.Errorf("unexpected batch: %d grids, first name %s", len(B.Grids), B.Grids[0].Name)
	}
	if B.Grids[0].Transform.At(0, 0) != 1.0 {
		Te.Errorf("default scale should be 1.0, got %f", B.Grids[0].Transform.At(0, 0))
	}
}

//TestLoadPartialFailure: a bad file inside a sequence is recorded and
//skipped, and the rest of the batch survives.
func TestLoadPartialFailure(Te *testing.T) {
	B, err := Load(filepath.Join("test", "seq2", "frame1.cub"), &Options{Sequence: true})
	if err != nil {
		Te.Error(err)
		return
	}
	if len(B.Grids) != 1 || B.Grids[0].Name != "1" {
		Te.Errorf("expected the one good grid named 1, got %d grids", len(B.Grids))
	}
	failed := B.Failed()
	if len(failed) != 1 || filepath.Base(failed[0].Path) != "frame2.cub" {
		Te.Errorf("expected frame2.cub to fail, got %v", failed)
	}
	if len(B.Results) != 2 {
		Te.Errorf("expected 2 per-file results, got %d", len(B.Results))
	}
}

//TestLoadEmptyBatch: when every candidate fails, the batch itself fails,
//and nothing should be handed to a container writer.
func TestLoadEmptyBatch(Te *testing.T) {
	_, err := Load(filepath.Join("test", "empty", "bad7.cub"), &Options{Sequence: true})
	if err == nil {
		Te.Error("expected a no-grids error")
		return
	}
	if !strings.Contains(err.Error(), NoGrids) {
		Te.Errorf("expected a '%s' error, got: %v", NoGrids, err)
	}
	_, err = Load(filepath.Join("test", "bad.cub"), nil)
	if err == nil {
		Te.Error("expected a no-grids error for a single bad file")
	}
}
