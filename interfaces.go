/*
 * interfaces.go, part of gocube.
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

import "fmt"

//Errors

//This error predates the "wrapping" error system of Go (i.e. the "%w" directive and the errors package),
//as it is inherited from goChem. We should avoid using the Decorate method and/or make it use the "%w"
//directive internally.

// VError is the interface for errors that all packages in this library implement. The Decorate method
// allows to add and retrieve info from the error, without changing it's type or wrapping it around
// something else. The decorate slice should contain a list of functions in the calling stack, plus,
// for each function, any relevant information, or nothing. If information is to be added to an element
// of the slice, it should be in this format: "FunctionName: Extra info". If passed an empty string,
// Decorate should just return the current value, not add the empty string to the slice.
type VError interface {
	Error() string
	Decorate(string) []string
}

// FileError is the interface for errors concerning one input file.
type FileError interface {
	VError
	Critical() bool
	FileName() string
	Format() string
}

// LastGridError has a useless function to distinguish the harmless errors (i.e. the container just
// ended) so they can be filtered in a typeswitch that looks for this interface.
type LastGridError interface {
	FileError
	NormalLastGridTermination() //does nothing, just to separate this interface from other FileError's
}

//errDecorate is a helper function that asserts that the error implements VError and decorates
//the error with the caller's name before returning it. If used with a non-VError error, it will
//cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(VError)
	err2.Decorate(caller)
	return err2
}

//Error is the general structure for cube file errors. It fullfills VError and FileError.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("cube file %s error: %s", err.filename, err.message)
}

//Decorate Adds new information to the error
func (E Error) Decorate(deco string) []string {
	//Even thought this method does not use a pointer as a receiver, and tries to alter the received,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file to which the failing read was associated
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file (always "cube") associated to the error
func (err Error) Format() string { return "cube" }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	EmptyFile      = "empty or malformed file"
	UnableToOpen   = "Unable to open file"
	WrongFormat    = "Wrong format in the cube file"
	TruncatedAtoms = "atom block: file ends before all atom records"
	NoGrids        = "no grids loaded"
)
