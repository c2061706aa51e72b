package main

import (
	"fmt"

	"github.com/jroimartin/gocui"
	"github.com/sarchlab/rv32sim/emu"
	"github.com/sarchlab/rv32sim/loader"
)

// dashboard is the interactive single-step view of a running emulator.
// It keeps the loaded image around so a reset can reload it.
type dashboard struct {
	emulator *emu.Emulator
	prog     *loader.Program
	base     uint32
	status   string
}

// runTUI opens the terminal dashboard and blocks until the user quits.
func runTUI(emulator *emu.Emulator, prog *loader.Program, base uint32) error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return err
	}
	defer g.Close()

	d := &dashboard{
		emulator: emulator,
		prog:     prog,
		base:     base,
		status:   "ready",
	}

	g.SetManagerFunc(d.layout)

	if err := d.bindKeys(g); err != nil {
		return err
	}

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}

	return nil
}

func (d *dashboard) bindKeys(g *gocui.Gui) error {
	if err := g.SetKeybinding("", 's', gocui.ModNone, d.step); err != nil {
		return err
	}
	if err := g.SetKeybinding("", 'r', gocui.ModNone, d.reset); err != nil {
		return err
	}
	if err := g.SetKeybinding("", 'q', gocui.ModNone, quit); err != nil {
		return err
	}

	return g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit)
}

// layout arranges the register, float, memory, and status views and
// repaints their contents. It runs on every main loop pass.
func (d *dashboard) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	midX := maxX / 2

	if v, err := g.SetView("registers", 0, 0, maxX-1, 10); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Integer Registers"
	}

	if v, err := g.SetView("floats", 0, 11, midX-1, maxY-4); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Float Registers"
	}

	if v, err := g.SetView("memory", midX, 11, maxX-1, maxY-4); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Memory"
	}

	if v, err := g.SetView("status", 0, maxY-3, maxX-1, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
	}

	return d.refresh(g)
}

// step executes one instruction and repaints.
func (d *dashboard) step(g *gocui.Gui, v *gocui.View) error {
	result := d.emulator.Step()
	switch {
	case result.Err != nil:
		d.status = fmt.Sprintf("error: %v", result.Err)
	case result.Unsupported && result.Word == 0:
		d.status = "halted"
	case result.Unsupported:
		d.status = fmt.Sprintf("skipped unsupported word 0x%08X", result.Word)
	default:
		d.status = fmt.Sprintf("stepped, %d instructions", d.emulator.InstructionCount())
	}

	return d.refresh(g)
}

// reset wipes the emulator and reloads the program image.
func (d *dashboard) reset(g *gocui.Gui, v *gocui.View) error {
	d.emulator.Reset()
	d.emulator.LoadProgram(d.base, d.prog.Data)
	d.status = "reset"

	return d.refresh(g)
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

// refresh redraws every view from the current emulator state.
func (d *dashboard) refresh(g *gocui.Gui) error {
	if err := d.drawRegisters(g); err != nil {
		return err
	}
	if err := d.drawFloats(g); err != nil {
		return err
	}
	if err := d.drawMemory(g); err != nil {
		return err
	}

	return d.drawStatus(g)
}

func (d *dashboard) drawRegisters(g *gocui.Gui) error {
	v, err := g.View("registers")
	if err != nil {
		return err
	}
	v.Clear()

	fmt.Fprintf(v, " PC   = 0x%08X\n", d.emulator.PC())
	regFile := d.emulator.RegFile()
	for i := 0; i < emu.NumRegs; i++ {
		fmt.Fprintf(v, " %-4s = 0x%08X", abiNames[i], regFile.X[i])
		if i%4 == 3 {
			fmt.Fprintln(v)
		}
	}

	return nil
}

func (d *dashboard) drawFloats(g *gocui.Gui) error {
	v, err := g.View("floats")
	if err != nil {
		return err
	}
	v.Clear()

	fregFile := d.emulator.FloatRegFile()
	for i := 0; i < emu.NumRegs; i++ {
		fmt.Fprintf(v, " f%-2d = %-12g", i, fregFile.F[i])
		if i%2 == 1 {
			fmt.Fprintln(v)
		}
	}

	return nil
}

// drawMemory shows the memory window starting at the load address, eight
// bytes per row, sized to fill the view.
func (d *dashboard) drawMemory(g *gocui.Gui) error {
	v, err := g.View("memory")
	if err != nil {
		return err
	}
	v.Clear()

	_, rows := v.Size()
	if rows <= 0 {
		return nil
	}

	window := uint32(rows) * 8
	if max := d.emulator.Memory().Size() - d.base; window > max {
		window = max
	}

	data, err := d.emulator.Memory().Dump(d.base, window)
	if err != nil {
		return err
	}

	for row := 0; row < len(data); row += 8 {
		end := row + 8
		if end > len(data) {
			end = len(data)
		}

		fmt.Fprintf(v, " 0x%08X:", d.base+uint32(row))
		for i := row; i < end; i++ {
			fmt.Fprintf(v, " %02X", data[i])
		}
		fmt.Fprintln(v)
	}

	return nil
}

func (d *dashboard) drawStatus(g *gocui.Gui) error {
	v, err := g.View("status")
	if err != nil {
		return err
	}
	v.Clear()

	fmt.Fprintf(v, " %s | s: step  r: reset  q: quit\n", d.status)

	return nil
}
