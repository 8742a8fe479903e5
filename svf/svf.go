//Package svf implements a simple volume format: a compressed text
//container for batches of named voxel grids, as produced by the cube
//package. It is the goCube sibling of goChem's stf trajectory format;
//like stf, the compression behind the text stream is chosen from the
//file name, with zstd as the default.
package svf

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	cube "github.com/rmera/gocube"
	"gonum.org/v1/gonum/mat"
)

const (
	lzwLitwidth int = 8
	valsPerLine int = 6
)

//Write!
type VW struct {
	f         *os.File
	h         io.WriteCloser
	filename  string
	writeable bool
	grids     int
}

//NewWriter creates a volume container in name, ready to take grids. The
//last letter of name picks the compression: 'l' lzw, 'z' gzip, 'r'
//flate, anything else (including the usual .vdb) zstd. The optional
//level is only honored by flate and gzip.
func NewWriter(name string, compressionLevel ...int) (*VW, error) {
	var level int = 9
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	V := new(VW)
	var err error
	V.f, err = os.Create(name)
	if err != nil {
		return nil, err
	}
	format := strings.ToLower(name)[len(name)-1]
	zwriter := func(a io.Writer) (io.WriteCloser, error) {
		r, err := flate.NewWriter(a, level)
		return r, err
	}
	gzipwriter := func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, level) }
	zstdwriter := func(a io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
	var AnyNewWriter func(io.Writer) (io.WriteCloser, error)
	switch format {
	case 'l':
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return lzw.NewWriter(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		AnyNewWriter = gzipwriter
	case 'r':
		AnyNewWriter = zwriter
	default:
		AnyNewWriter = zstdwriter
	}
	V.h, err = AnyNewWriter(V.f)
	if err != nil {
		V.f.Close()
		return nil, Error{"Can't set up compression: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	V.filename = name
	V.writeable = true
	if _, err := V.h.Write([]byte("svf 1\n")); err != nil {
		V.Close()
		return nil, Error{"Can't write header: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	return V, nil
}

//WGrid appends one grid to the container.
func (V *VW) WGrid(g *cube.Grid) error {
	if !V.writeable {
		return Error{ContainerUnIniWrite, V.filename, []string{"WGrid"}, true}
	}
	if g == nil || g.Field == nil || g.Transform == nil {
		return Error{NilGrid, V.filename, []string{"WGrid"}, true}
	}
	if strings.ContainsAny(g.Name, " \t\n") || g.Name == "" {
		return Error{fmt.Sprintf("grid name '%s' can't be stored", g.Name), V.filename, []string{"WGrid"}, true}
	}
	n1, n2, n3 := g.Field.Dims()
	if _, err := fmt.Fprintf(V.h, "> %s %s %d %d %d\n", g.Name, g.Class, n1, n2, n3); err != nil {
		return Error{err.Error(), V.filename, []string{"WGrid"}, true}
	}
	t := make([]string, 0, 16)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			t = append(t, strconv.FormatFloat(g.Transform.At(i, j), 'g', 17, 64))
		}
	}
	if _, err := fmt.Fprintf(V.h, "T %s\n", strings.Join(t, " ")); err != nil {
		return Error{err.Error(), V.filename, []string{"WGrid"}, true}
	}
	data := g.Field.Data()
	for i := 0; i < len(data); i += valsPerLine {
		end := i + valsPerLine
		if end > len(data) {
			end = len(data)
		}
		line := make([]string, 0, valsPerLine)
		for _, v := range data[i:end] {
			line = append(line, strconv.FormatFloat(float64(v), 'e', 8, 32))
		}
		if _, err := fmt.Fprintf(V.h, "%s\n", strings.Join(line, " ")); err != nil {
			return Error{err.Error(), V.filename, []string{"WGrid"}, true}
		}
	}
	if _, err := V.h.Write([]byte("*\n")); err != nil {
		return Error{err.Error(), V.filename, []string{"WGrid"}, true}
	}
	V.grids++
	return nil
}

//Grids returns how many grids have been written so far.
func (V *VW) Grids() int {
	return V.grids
}

//Close flushes and closes the container. The object can't be written to
//after this call.
func (V *VW) Close() {
	if V == nil || !V.writeable {
		return
	}
	V.h.Close()
	V.f.Close()
	V.writeable = false
}

//WriteBatch writes all the given grids into a new container in name.
//This is the call a batch importer should make, exactly once, after the
//whole batch has been assembled. Writing an empty batch is an error.
func WriteBatch(name string, grids []*cube.Grid) error {
	if len(grids) == 0 {
		return Error{NilGrid, name, []string{"WriteBatch"}, true}
	}
	V, err := NewWriter(name)
	if err != nil {
		return err
	}
	defer V.Close()
	for _, g := range grids {
		if err := V.WGrid(g); err != nil {
			return errDecorate(err, "WriteBatch")
		}
	}
	return nil
}

//Read!
type VR struct {
	f        *os.File
	zr       io.ReadCloser
	h        *bufio.Reader
	filename string
	readable bool
}

//This will cause additional indirections but I suppose it won't matter.
//Also, why couldn't *zstd.Decoder implement io.ReadCloser? :-(
type stdql struct {
	closeql func()
	*zstd.Decoder
}

//Close Closes the object. It can not be used after this call
func (s stdql) Close() error {
	s.closeql()
	return nil
}

//New opens the volume container in name for reading and checks its
//header. Compression is picked from the file name the same way the
//writer picks it.
func New(name string) (*VR, error) {
	V := new(VR)
	var err error
	V.filename = name
	V.f, err = os.Open(name)
	if err != nil {
		return nil, err
	}
	zreader := func(a io.Reader) (io.ReadCloser, error) {
		return flate.NewReader(a), nil
	}
	zstdreader := func(a io.Reader) (io.ReadCloser, error) {
		r, err := zstd.NewReader(a)
		if err != nil {
			return nil, err
		}
		return &stdql{r.Close, r}, nil
	}
	gzreader := func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	var AnyNewReader func(io.Reader) (io.ReadCloser, error)
	switch strings.ToLower(name)[len(name)-1] {
	case 'l':
		AnyNewReader = func(a io.Reader) (io.ReadCloser, error) { return lzw.NewReader(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		AnyNewReader = gzreader
	case 'r':
		AnyNewReader = zreader
	default:
		AnyNewReader = zstdreader
	}
	V.zr, err = AnyNewReader(bufio.NewReader(V.f))
	if err != nil {
		V.f.Close()
		return nil, Error{"Can't set up decompression: " + err.Error(), name, []string{"New"}, true}
	}
	V.h = bufio.NewReader(V.zr)
	magic, err := V.h.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "svf 1" {
		V.zr.Close()
		V.f.Close()
		return nil, Error{WrongFormat, name, []string{"New"}, true}
	}
	V.readable = true
	return V, nil
}

//Readable returns true if it is possible to call Next on the object.
func (V *VR) Readable() bool {
	return V.readable
}

//Next reads and returns the next grid in the container. When the
//container is over, the returned error implements cube.LastGridError,
//which is a normal termination, not an actual problem.
func (V *VR) Next() (*cube.Grid, error) {
	if !V.readable {
		return nil, Error{ContainerUnIniRead, V.filename, []string{"Next"}, true}
	}
	head, err := V.h.ReadString('\n')
	if err != nil && strings.TrimSpace(head) == "" {
		//only a clean EOF at a grid boundary is a normal termination; a
		//decompression failure here must not pass for one.
		if err != io.EOF {
			return nil, Error{"container stream: " + err.Error(), V.filename, []string{"Next"}, true}
		}
		V.Close()
		return nil, newlastGridError(V.filename, "Next")
	}
	fields := strings.Fields(head)
	if len(fields) != 6 || fields[0] != ">" {
		return nil, Error{fmt.Sprintf("%s: bad grid header '%s'", WrongFormat, strings.TrimSpace(head)), V.filename, []string{"Next"}, true}
	}
	name := fields[1]
	if fields[2] != cube.FogVolume.String() {
		return nil, Error{fmt.Sprintf("unknown grid class '%s'", fields[2]), V.filename, []string{"Next"}, true}
	}
	var n [3]int
	for i := 0; i < 3; i++ {
		n[i], err = strconv.Atoi(fields[3+i])
		if err != nil || n[i] <= 0 {
			return nil, Error{fmt.Sprintf("%s: bad dimension '%s'", WrongFormat, fields[3+i]), V.filename, []string{"Next"}, true}
		}
	}
	tline, err := V.h.ReadString('\n')
	if err != nil {
		return nil, Error{"transform line: " + err.Error(), V.filename, []string{"Next"}, true}
	}
	tf := strings.Fields(tline)
	if len(tf) != 17 || tf[0] != "T" {
		return nil, Error{WrongFormat + ": bad transform line", V.filename, []string{"Next"}, true}
	}
	tvals := make([]float64, 16)
	for i, s := range tf[1:] {
		tvals[i], err = strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, Error{fmt.Sprintf("transform: can't parse '%s'", s), V.filename, []string{"Next"}, true}
		}
	}
	total := n[0] * n[1] * n[2]
	data := make([]float32, 0, total)
	for len(data) < total {
		line, err := V.h.ReadString('\n')
		if err != nil && strings.TrimSpace(line) == "" {
			return nil, Error{fmt.Sprintf("grid %s: container ends at value %d of %d", name, len(data), total), V.filename, []string{"Next"}, true}
		}
		for _, tok := range strings.Fields(line) {
			v, err := strconv.ParseFloat(tok, 32)
			if err != nil {
				return nil, Error{fmt.Sprintf("grid %s: can't parse value '%s'", name, tok), V.filename, []string{"Next"}, true}
			}
			data = append(data, float32(v))
		}
	}
	if len(data) != total {
		return nil, Error{fmt.Sprintf("grid %s: %d values for a %dx%dx%d grid", name, len(data), n[0], n[1], n[2]), V.filename, []string{"Next"}, true}
	}
	term, err := V.h.ReadString('\n')
	if err != nil && strings.TrimSpace(term) == "" {
		return nil, Error{"Can't read the grid termination mark", V.filename, []string{"Next"}, true}
	}
	if strings.TrimSpace(term) != "*" {
		return nil, Error{WrongFormat + ": missing grid termination mark", V.filename, []string{"Next"}, true}
	}
	return &cube.Grid{
		Name:      name,
		Field:     cube.NewField(n[0], n[1], n[2], data),
		Transform: mat.NewDense(4, 4, tvals),
		Class:     cube.FogVolume,
	}, nil
}

//Close closes the object and marks it as unreadable.
func (V *VR) Close() {
	if V == nil || !V.readable {
		return
	}
	V.zr.Close()
	V.f.Close()
	V.readable = false
}

//Errors

//errDecorate is a helper function that asserts that the error implements
//cube.VError and decorates the error with the caller's name before
//returning it. If used with a non-cube.VError error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(cube.VError)
	err2.Decorate(caller)
	return err2
}

//Error is the general structure for svf container errors. It fullfills
//cube.VError and cube.FileError.
type Error struct {
	message  string
	filename string //the container that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("svf file %s error: %s", err.filename, err.message)
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

//FileName returns the container associated to the error
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file (always "svf") associated to the error
func (err Error) Format() string { return "svf" }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	ContainerUnIniRead  = "Container uninitialized to read"
	ContainerUnIniWrite = "Container uninitialized to write"
	NilGrid             = "Given nil or empty grid"
	WrongFormat         = "Wrong format in the svf file"
)

//lastGridError implements cube.LastGridError
type lastGridError struct {
	deco     []string
	fileName string
}

//lastGridError does nothing
func (E lastGridError) NormalLastGridTermination() {}

func (E lastGridError) FileName() string { return E.fileName }

func (E lastGridError) Error() string { return "EOF" }

func (E lastGridError) Critical() bool { return false }

func (E lastGridError) Format() string { return "svf" }

func (E lastGridError) Decorate(deco string) []string {
	//Even thought this method does not use a pointer as a receiver, and tries to alter the received,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastGridError(filename string, caller string) *lastGridError {
	e := new(lastGridError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
