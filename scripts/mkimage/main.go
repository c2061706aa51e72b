// Command mkimage writes the canned acceptance programs as raw memory
// images, ready to run with cmd/rv32sim.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sarchlab/rv32sim/benchmarks"
	"github.com/sarchlab/rv32sim/emu"
)

var outDir = flag.String("out", "images", "Directory to write the .bin files to")

func main() {
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	for _, p := range benchmarks.GetPrograms() {
		image, err := selfContainedImage(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building %s: %v\n", p.Name, err)
			os.Exit(1)
		}

		path := filepath.Join(*outDir, p.Name+".bin")
		if err := os.WriteFile(path, image, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
			os.Exit(1)
		}

		fmt.Printf("Wrote %s (%d bytes)\n", path, len(image))
	}
}

// selfContainedImage bakes any Setup data into the image so the .bin runs
// standalone. It stages the program in a scratch emulator and dumps the
// memory from the load address up to the last nonzero byte.
func selfContainedImage(p benchmarks.Program) ([]byte, error) {
	e := emu.NewEmulator()
	e.LoadProgram(emu.DefaultEntry, p.Image)
	if p.Setup != nil {
		p.Setup(e.RegFile(), e.Memory())
	}

	size := e.Memory().Size() - emu.DefaultEntry
	data, err := e.Memory().Dump(emu.DefaultEntry, size)
	if err != nil {
		return nil, err
	}

	// Memory past a loaded image reads as zero anyway, so trailing zero
	// bytes carry no information and are trimmed.
	end := len(data)
	for end > 0 && data[end-1] == 0 {
		end--
	}
	if end == 0 {
		return p.Image, nil
	}

	return data[:end], nil
}
