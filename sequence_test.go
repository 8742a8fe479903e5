/*
 * sequence_test.go, part of gocube.
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
	"testing"
)

//TestResolveSequence checks numbered-run discovery: numeric order (2
//before 10), leading-zero collapse in the grid names, and the derived
//aggregate output name.
func TestResolveSequence(Te *testing.T) {
	S, err := ResolveSequence(filepath.Join("test", "seq", "wave001.cub"), true)
	if err != nil {
		Te.Error(err)
		return
	}
	if len(S.Entries) != 3 {
		Te.Errorf("expected 3 entries, got %d", len(S.Entries))
		return
	}
	wantpaths := []string{"wave001.cub", "wave2.cub", "wave010.cub"}
	wantnames := []string{"1", "2", "10"}
	for i, e := range S.Entries {
		if filepath.Base(e.Path) != wantpaths[i] {
			Te.Errorf("entry %d: expected %s, got %s", i, wantpaths[i], filepath.Base(e.Path))
		}
		if e.Name != wantnames[i] {
			Te.Errorf("entry %d: expected name %s, got %s", i, wantnames[i], e.Name)
		}
	}
	if filepath.Base(S.Output) != "wave_all.vdb" {
		Te.Errorf("expected wave_all.vdb, got %s", filepath.Base(S.Output))
	}
	fmt.Println("Sequence plan:", S.Entries)
}

//TestResolveSequenceOff: with the flag off the plan is just the file, no
//override, and the output name is the file's own.
func TestResolveSequenceOff(Te *testing.T) {
	S, err := ResolveSequence(filepath.Join("test", "seq", "wave001.cub"), false)
	if err != nil {
		Te.Error(err)
		return
	}
	if len(S.Entries) != 1 || S.Entries[0].Name != "" {
		Te.Errorf("expected a single plain entry, got %v", S.Entries)
	}
	if filepath.Base(S.Output) != "wave001.vdb" {
		Te.Errorf("expected wave001.vdb, got %s", filepath.Base(S.Output))
	}
}

//TestResolveNoDigits: a filename without a trailing digit run degrades
//gracefully to a single-file plan.
func TestResolveNoDigits(Te *testing.T) {
	S, err := ResolveSequence(filepath.Join("test", "water.cub"), true)
	if err != nil {
		Te.Error(err)
		return
	}
	if len(S.Entries) != 1 || S.Entries[0].Name != "" {
		Te.Errorf("expected a single plain entry, got %v", S.Entries)
	}
}

//TestSplitNumbered goes over the filename splitting corner cases.
func TestSplitNumbered(Te *testing.T) {
	cases := []struct {
		in      string
		prefix  string
		digits  string
		suffix  string
		ok      bool
	}{
		{"wave001.cub", "wave", "001", ".cub", true},
		{"001.cub", "", "001", ".cub", true},
		{"a.2.cub", "a.", "2", ".cub", true},
		{"wave2_a.cub", "", "", "", false},
		{"wave.cub", "", "", "", false},
		{"wave001", "", "", "", false},
	}
	for _, c := range cases {
		prefix, digits, suffix, ok := splitNumbered(c.in)
		if ok != c.ok || prefix != c.prefix || digits != c.digits || suffix != c.suffix {
			Te.Errorf("%s: got %q %q %q %v", c.in, prefix, digits, suffix, ok)
		}
	}
}
