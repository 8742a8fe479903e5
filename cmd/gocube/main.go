//gocube converts Gaussian cube files into a compressed volume container,
//replacing the file-dialog front end the importer had in its previous
//life: one starting file in, one container with every grid of the batch
//out.
package main

import (
	"flag"
	"fmt"
	"os"

	cube "github.com/rmera/gocube"
	"github.com/rmera/gocube/svf"
	"github.com/rmera/gocube/vplot"
)

//CLI flags parsed from the command line.
type cliFlags struct {
	Scale      float64
	Naming     string
	Sequence   bool
	Output     string
	PlotSlices bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("gocube", flag.ContinueOnError)
	fs.Float64Var(&flags.Scale, "scale", 1.0, "global scale factor for the volume")
	fs.StringVar(&flags.Naming, "naming", "indices", "grid naming for multi-orbital files: indices or sequential")
	fs.BoolVar(&flags.Sequence, "seq", false, "import every file matching the numbered pattern of the given one")
	fs.StringVar(&flags.Output, "o", "", "output container name (default: derived from the input)")
	fs.BoolVar(&flags.PlotSlices, "plot", false, "also write a mid-slice PNG per imported grid")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: gocube [flags] file.cub")
	}

	opts := &cube.Options{Scale: flags.Scale, Sequence: flags.Sequence}
	switch flags.Naming {
	case "indices":
		opts.Naming = cube.ByIndices
	case "sequential":
		opts.Naming = cube.Sequential
	default:
		return fmt.Errorf("unknown naming mode %q", flags.Naming)
	}

	batch, err := cube.Load(fs.Arg(0), opts)
	if err != nil {
		return err
	}
	for _, r := range batch.Failed() {
		fmt.Fprintf(os.Stderr, "skipped %s: %v\n", r.Path, r.Err)
	}

	out := batch.Output
	if flags.Output != "" {
		out = flags.Output
	}
	if err := svf.WriteBatch(out, batch.Grids); err != nil {
		return err
	}
	fmt.Printf("wrote %d grids to %s\n", len(batch.Grids), out)

	if flags.PlotSlices {
		for _, g := range batch.Grids {
			if err := vplot.MidSlicePNG(g, out+"_"+g.Name); err != nil {
				return err
			}
		}
	}
	return nil
}
