/*
 * sequence.go, part of gocube.
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
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

//Entry is one file of a sequence plan. A non-empty Name forces the base
//grid name for that file.
type Entry struct {
	Path string
	Name string
}

//Sequence is an ordered plan of cube files to import as one batch, plus
//the name the aggregate container should be written under.
type Sequence struct {
	Entries []Entry
	Output  string
}

//the last run of digits anchored right before the final extension, e.g.
//the "001" of dens001.cub. Not the "2" of dens2_a.cub.
func splitNumbered(filename string) (prefix, digits, suffix string, ok bool) {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	if ext == "" || base == "" {
		return "", "", "", false
	}
	i := len(base)
	for i > 0 && base[i-1] >= '0' && base[i-1] <= '9' {
		i--
	}
	if i == len(base) {
		return "", "", "", false
	}
	return base[:i], base[i:], ext, true
}

//ResolveSequence builds the import plan for path. With seq false (or when
//no numbered pattern can be found, or no sibling matches it) the plan
//degrades to just path itself with no name override. Otherwise every file
//in path's directory matching prefix+digits+suffix joins the plan, sorted
//by the numeric value of its digit run, named after that value. Leading
//zeros collapse, so dens001.cub and dens1.cub are the same frame "1".
func ResolveSequence(path string, seq bool) (*Sequence, error) {
	single := &Sequence{
		Entries: []Entry{{Path: path}},
		Output:  strings.TrimSuffix(path, filepath.Ext(path)) + ".vdb",
	}
	if !seq {
		return single, nil
	}
	dir := filepath.Dir(path)
	prefix, _, suffix, ok := splitNumbered(filepath.Base(path))
	if !ok {
		log.Printf("goCube: no digits found in %s for sequence import", path)
		return single, nil
	}
	pattern, err := regexp.Compile("^" + regexp.QuoteMeta(prefix) + `(\d+)` + regexp.QuoteMeta(suffix) + "$")
	if err != nil {
		return nil, Error{"sequence pattern: " + err.Error(), path, []string{"ResolveSequence"}, true}
	}
	siblings, err := os.ReadDir(dir)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), dir, []string{"ResolveSequence"}, true}
	}
	type found struct {
		path string
		name string
		num  int
	}
	var run []found
	for _, f := range siblings {
		m := pattern.FindStringSubmatch(f.Name())
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue //a digit run too long for an int. Not a frame number.
		}
		run = append(run, found{filepath.Join(dir, f.Name()), strconv.Itoa(num), num})
	}
	if len(run) == 0 {
		log.Printf("goCube: no sequence files found matching %s", pattern)
		return single, nil
	}
	sort.Slice(run, func(i, j int) bool { return run[i].num < run[j].num })
	S := new(Sequence)
	for _, f := range run {
		S.Entries = append(S.Entries, Entry{Path: f.path, Name: f.name})
	}
	namebase := prefix
	if !strings.HasSuffix(namebase, "_") && !strings.HasSuffix(namebase, ".") {
		namebase += "_"
	}
	S.Output = filepath.Join(dir, namebase+"all.vdb")
	return S, nil
}
