/*
 * batch.go, part of gocube.
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
	"log"
)

//Options is the caller-facing configuration for a batch import. The zero
//value is usable: scale 1.0 (a zero Scale means "unset", as a zero scale
//would collapse every transform), naming by declared orbital indices,
//sequence detection off.
type Options struct {
	Scale    float64
	Naming   NamingMode
	Sequence bool
}

//DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{Scale: 1.0, Naming: ByIndices}
}

//FileResult is the outcome of one file of a batch: how many grids it
//contributed, or why it failed. A failed file doesn't fail the batch.
type FileResult struct {
	Path  string
	Grids int
	Err   error
}

//Batch is the aggregate result of a batch import: every grid from every
//file that could be read, in plan order, the name the aggregate container
//should be written under, and the per-file outcomes for diagnostics.
type Batch struct {
	Grids   []*Grid
	Output  string
	Results []FileResult
}

//Failed returns the results of the files that could not be read.
func (B *Batch) Failed() []FileResult {
	var ret []FileResult
	for _, r := range B.Results {
		if r.Err != nil {
			ret = append(ret, r)
		}
	}
	return ret
}

//Load imports the cube file in path, or, with opts.Sequence, the whole
//numbered sequence it belongs to, into one batch of grids. Files that
//fail to parse are logged and recorded in the batch's Results but don't
//abort the rest; only an entirely empty result is an error. A nil opts
//means defaults.
func Load(path string, opts *Options) (*Batch, error) {
	o := Options{Scale: 1.0}
	if opts != nil {
		o = *opts
		if o.Scale == 0 {
			o.Scale = 1.0
		}
	}
	plan, err := ResolveSequence(path, o.Sequence)
	if err != nil {
		return nil, errDecorate(err, "Load")
	}
	B := &Batch{Output: plan.Output, Results: make([]FileResult, 0, len(plan.Entries))}
	for _, e := range plan.Entries {
		var grids []*Grid
		var err error
		if e.Name != "" {
			grids, err = Read(e.Path, o.Scale, o.Naming, e.Name)
		} else {
			grids, err = Read(e.Path, o.Scale, o.Naming)
		}
		if err != nil {
			log.Printf("goCube: error reading %s: %v", e.Path, err)
			B.Results = append(B.Results, FileResult{Path: e.Path, Err: err})
			continue
		}
		B.Grids = append(B.Grids, grids...)
		B.Results = append(B.Results, FileResult{Path: e.Path, Grids: len(grids)})
	}
	if len(B.Grids) == 0 {
		return nil, Error{NoGrids, path, []string{"Load"}, true}
	}
	return B, nil
}
