/*
 * cube.go, part of gocube.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package cube

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

//Framing tells apart the two framings of the cube format: plain
//single-density files, and multi-orbital files, which are flagged by a
//negative atom count and carry an extra orbital-index block after the
//atom records.
type Framing struct {
	Multi   bool
	NFields int   //how many scalar fields the payload interleaves. 1 for single-density.
	Indices []int //the orbital indices declared in the file, or nil.
}

//Header holds the metadata read from the fixed-structure text header of a
//cube file: the two free-text title lines, the atom count, the grid
//origin, and one (voxel count, basis vector) pair per axis, in X,Y,Z
//order. Atom records themselves are skipped, not kept.
type Header struct {
	Titles [2]string
	Atoms  int //always the absolute value; the sign went into Fr.Multi
	Origin [3]float64
	N      [3]int
	Basis  [3][3]float64
	Fr     Framing
}

//readLine gets the next line from buf. A line with content but no final
//newline (the last line of many hand-edited files) is still a line.
func readLine(buf *bufio.Reader) (string, error) {
	line, err := buf.ReadString('\n')
	if err != nil && len(strings.TrimSpace(line)) > 0 {
		return line, nil
	}
	return line, err
}

//parses n floats from fields starting at the token offset. Returns an
//error naming the section on missing or unparseable tokens.
func floatTokens(fields []string, offset, n int, section string) ([]float64, error) {
	if len(fields) < offset+n {
		return nil, fmt.Errorf("%s: expected %d numeric fields, got %d", section, offset+n, len(fields))
	}
	ret := make([]float64, n)
	var err error
	for i := 0; i < n; i++ {
		ret[i], err = strconv.ParseFloat(fields[offset+i], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: can't parse '%s'", section, fields[offset+i])
		}
	}
	return ret, nil
}

//ReadHeader reads the header of a cube file from buf, leaving buf
//positioned at the first byte of the numeric payload. The filename is
//only used to report errors. It deals with both framings: for
//multi-orbital files it reads the orbital count and keeps accumulating
//index tokens over continuation lines until the declared count is
//satisfied, then truncates the list to exactly that count.
func ReadHeader(buf *bufio.Reader, filename string) (*Header, error) {
	H := new(Header)
	for i := 0; i < 2; i++ {
		title, err := readLine(buf)
		if err != nil {
			return nil, Error{EmptyFile, filename, []string{"ReadHeader"}, true}
		}
		H.Titles[i] = strings.TrimSpace(title)
	}
	line, err := readLine(buf)
	fields := strings.Fields(line)
	if err != nil || len(fields) == 0 {
		return nil, Error{EmptyFile, filename, []string{"ReadHeader"}, true}
	}
	natoms, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, Error{fmt.Sprintf("atom count line: can't parse '%s'", fields[0]), filename, []string{"ReadHeader"}, true}
	}
	origin, err := floatTokens(fields, 1, 3, "origin")
	if err != nil {
		return nil, Error{err.Error(), filename, []string{"ReadHeader"}, true}
	}
	copy(H.Origin[:], origin)
	if natoms < 0 {
		H.Fr.Multi = true
		natoms = -natoms
	}
	H.Atoms = natoms
	for i := 0; i < 3; i++ {
		line, err := readLine(buf)
		fields := strings.Fields(line)
		if err != nil || len(fields) == 0 {
			return nil, Error{fmt.Sprintf("axis %d line missing", i+1), filename, []string{"ReadHeader"}, true}
		}
		H.N[i], err = strconv.Atoi(fields[0])
		if err != nil || H.N[i] <= 0 {
			return nil, Error{fmt.Sprintf("axis %d: bad voxel count '%s'", i+1, fields[0]), filename, []string{"ReadHeader"}, true}
		}
		v, err := floatTokens(fields, 1, 3, fmt.Sprintf("axis %d vector", i+1))
		if err != nil {
			return nil, Error{err.Error(), filename, []string{"ReadHeader"}, true}
		}
		copy(H.Basis[i][:], v)
	}
	//The atom records. We only care that they are all there.
	for i := 0; i < H.Atoms; i++ {
		if _, err := readLine(buf); err != nil {
			return nil, Error{TruncatedAtoms, filename, []string{"ReadHeader"}, true}
		}
	}
	H.Fr.NFields = 1
	if H.Fr.Multi {
		if err := readFraming(buf, &H.Fr, filename); err != nil {
			return nil, errDecorate(err, "ReadHeader")
		}
	}
	return H, nil
}

//readFraming reads the orbital block of a multi-orbital cube file. The
//first token is the field count; if it doesn't parse, the count stays 1
//and the remaining tokens of the line are still taken as indices, which
//mirrors what other cube readers do with these (rare) files.
func readFraming(buf *bufio.Reader, fr *Framing, filename string) error {
	line, err := readLine(buf)
	if err != nil {
		return Error{"orbital block missing", filename, []string{"readFraming"}, true}
	}
	fields := strings.Fields(line)
	nmo := 1
	var rest []string
	if len(fields) > 0 {
		//an unparseable count falls back to 1, but the rest of the
		//line is still an index list.
		if n, err := strconv.Atoi(fields[0]); err == nil {
			nmo = n
		}
		rest = fields[1:]
	}
	if nmo < 1 {
		nmo = 1
	}
	indices := make([]int, 0, nmo)
	for _, tok := range rest {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return Error{fmt.Sprintf("orbital index block: can't parse '%s'", tok), filename, []string{"readFraming"}, true}
		}
		indices = append(indices, v)
	}
	if nmo > 1 {
		for len(indices) < nmo {
			line, err := readLine(buf)
			if err != nil {
				return Error{fmt.Sprintf("orbital index block: file ends with %d of %d indices", len(indices), nmo), filename, []string{"readFraming"}, true}
			}
			for _, tok := range strings.Fields(line) {
				v, err := strconv.Atoi(tok)
				if err != nil {
					return Error{fmt.Sprintf("orbital index block: can't parse '%s'", tok), filename, []string{"readFraming"}, true}
				}
				indices = append(indices, v)
			}
		}
		fr.Indices = indices[:nmo]
	} else if nmo == 1 && len(indices) > 0 {
		fr.Indices = indices[:1]
	}
	//nmo==1 with no indices: a multi-framed file with a single unnamed
	//orbital. No indices recorded.
	fr.NFields = nmo
	return nil
}

//readPayload reads the whole rest of the stream as whitespace-separated
//floats and reshapes them into nfields dense fields of n[0]*n[1]*n[2]
//voxels. The on-disk order is X slowest, Z fastest, and when nfields>1
//the per-voxel field values are interleaved innermost. Tokenizing stops
//at the first non-numeric token, and a payload whose length doesn't
//match the header is reconciled (truncated or zero-padded), not
//rejected: cut-short, concatenated and trailer-carrying files are too
//common in the wild to let them abort a batch.
func readPayload(r io.Reader, n [3]int, nfields int, filename string) ([]*Field, error) {
	blob, err := io.ReadAll(r)
	if err != nil {
		return nil, Error{"payload: " + err.Error(), filename, []string{"readPayload"}, true}
	}
	toks := strings.Fields(string(blob))
	expected := n[0] * n[1] * n[2] * nfields
	vals := make([]float32, 0, expected)
	for _, tok := range toks {
		v, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			log.Printf("goCube: %s: payload stops at non-numeric token '%s'", filename, tok)
			break
		}
		vals = append(vals, float32(v))
	}
	if len(vals) != expected {
		log.Printf("goCube: %s: expected %d values, got %d. Adjusting.", filename, expected, len(vals))
		if len(vals) > expected {
			vals = vals[:expected]
		} else {
			vals = append(vals, make([]float32, expected-len(vals))...)
		}
	}
	fields := make([]*Field, nfields)
	if nfields == 1 {
		fields[0] = NewField(n[0], n[1], n[2], vals)
		return fields, nil
	}
	nvox := n[0] * n[1] * n[2]
	for m := 0; m < nfields; m++ {
		data := make([]float32, nvox)
		for i := 0; i < nvox; i++ {
			data[i] = vals[i*nfields+m]
		}
		fields[m] = NewField(n[0], n[1], n[2], data)
	}
	return fields, nil
}

//Read parses the cube file in path and returns one grid per scalar field
//in it, all sharing the transform built from the file's basis vectors and
//origin, scaled by scale. Grid names follow mode, except that a basename,
//if given, overrides the whole naming policy (that is what sequence
//imports use to keep names unique across files).
func Read(path string, scale float64, mode NamingMode, basename ...string) ([]*Grid, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), path, []string{"Read"}, true}
	}
	defer fin.Close()
	buf := bufio.NewReader(fin)
	H, err := ReadHeader(buf, path)
	if err != nil {
		return nil, errDecorate(err, "Read")
	}
	fields, err := readPayload(buf, H.N, H.Fr.NFields, path)
	if err != nil {
		return nil, errDecorate(err, "Read")
	}
	T := Transform(H.Basis, H.Origin, scale)
	base := ""
	if len(basename) > 0 {
		base = basename[0]
	}
	return assemble(fields, T, H.Fr, mode, base), nil
}
