// Package benchmarks provides self-checking acceptance programs and a
// throughput harness for rv32sim.
package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarchlab/rv32sim/emu"
)

// Program defines a single acceptance program.
type Program struct {
	// Name identifies the program
	Name string

	// Description explains what the program exercises
	Description string

	// Setup prepares emulator state before the run (e.g. preload data)
	Setup func(regFile *emu.RegFile, memory *emu.Memory)

	// Image is the RV32 machine code to execute
	Image []byte

	// Check validates the final emulator state
	Check func(e *emu.Emulator) error
}

// Result holds the outcome of a single program run.
type Result struct {
	// Name identifies the program
	Name string `json:"name"`

	// Description explains what the program exercises
	Description string `json:"description"`

	// Instructions is the number of instructions the emulator stepped
	Instructions uint64 `json:"instructions"`

	// WallTime is the host time the run took
	WallTime time.Duration `json:"wall_time_ns"`

	// MIPS is emulated instructions per host second, in millions
	MIPS float64 `json:"mips"`

	// Pass reports whether the run completed and the final state checked out
	Pass bool `json:"pass"`

	// Error describes the failure when Pass is false
	Error string `json:"error,omitempty"`
}

// Config configures the program harness.
type Config struct {
	// Output is where to write results (default: os.Stdout)
	Output io.Writer

	// MaxInstructions caps each run so a misencoded program cannot spin
	// forever; 0 leaves the emulator uncapped
	MaxInstructions uint64
}

// DefaultConfig returns a configuration suitable for the canned programs.
func DefaultConfig() Config {
	return Config{
		Output:          os.Stdout,
		MaxInstructions: 1000000,
	}
}

// Harness runs acceptance programs and reports results.
type Harness struct {
	config   Config
	programs []Program
}

// NewHarness creates a new program harness.
func NewHarness(config Config) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &Harness{
		config:   config,
		programs: []Program{},
	}
}

// AddProgram adds a program to the harness.
func (h *Harness) AddProgram(p Program) {
	h.programs = append(h.programs, p)
}

// AddPrograms adds multiple programs to the harness.
func (h *Harness) AddPrograms(programs []Program) {
	h.programs = append(h.programs, programs...)
}

// RunAll executes all programs and returns results.
func (h *Harness) RunAll() []Result {
	results := make([]Result, 0, len(h.programs))

	for _, p := range h.programs {
		result := h.runProgram(p)
		results = append(results, result)
	}

	return results
}

// runProgram executes a single program on a fresh emulator.
func (h *Harness) runProgram(p Program) Result {
	opts := []emu.EmulatorOption{emu.WithStderr(h.config.Output)}
	if h.config.MaxInstructions > 0 {
		opts = append(opts, emu.WithMaxInstructions(h.config.MaxInstructions))
	}

	e := emu.NewEmulator(opts...)
	e.LoadProgram(emu.DefaultEntry, p.Image)
	if p.Setup != nil {
		p.Setup(e.RegFile(), e.Memory())
	}

	start := time.Now()
	err := e.Run()
	wallTime := time.Since(start)

	result := Result{
		Name:         p.Name,
		Description:  p.Description,
		Instructions: e.InstructionCount(),
		WallTime:     wallTime,
	}
	if secs := wallTime.Seconds(); secs > 0 {
		result.MIPS = float64(result.Instructions) / secs / 1e6
	}

	if err == nil && p.Check != nil {
		err = p.Check(e)
	}
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Pass = true
	return result
}

// PrintResults outputs results in a human-readable format.
func (h *Harness) PrintResults(results []Result) {
	_, _ = fmt.Fprintln(h.config.Output, "=== rv32sim Acceptance Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		status := "PASS"
		if !r.Pass {
			status = "FAIL"
		}
		_, _ = fmt.Fprintf(h.config.Output, "Program: %s [%s]\n", r.Name, status)
		_, _ = fmt.Fprintf(h.config.Output, "  Description:  %s\n", r.Description)
		_, _ = fmt.Fprintf(h.config.Output, "  Instructions: %d\n", r.Instructions)
		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time:    %v\n", r.WallTime)
		_, _ = fmt.Fprintf(h.config.Output, "  MIPS:         %.2f\n", r.MIPS)
		if r.Error != "" {
			_, _ = fmt.Fprintf(h.config.Output, "  Error:        %s\n", r.Error)
		}
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV outputs results in CSV format for easy comparison across runs.
func (h *Harness) PrintCSV(results []Result) {
	_, _ = fmt.Fprintln(h.config.Output, "name,instructions,wall_time_ns,mips,pass")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%.3f,%t\n",
			r.Name,
			r.Instructions,
			r.WallTime.Nanoseconds(),
			r.MIPS,
			r.Pass,
		)
	}
}

// Report is the complete JSON output format for a harness run.
type Report struct {
	// Results is the list of individual program results
	Results []Result `json:"results"`

	// Summary contains aggregate statistics
	Summary ReportSummary `json:"summary"`
}

// ReportSummary contains aggregate statistics across all programs.
type ReportSummary struct {
	// TotalPrograms is the number of programs run
	TotalPrograms int `json:"total_programs"`

	// Passed is the number of programs whose final state checked out
	Passed int `json:"passed"`

	// TotalInstructions is the sum of all instructions stepped
	TotalInstructions uint64 `json:"total_instructions"`

	// TotalWallTime is the total wall clock time for all runs
	TotalWallTime time.Duration `json:"total_wall_time_ns"`
}

// PrintJSON outputs results in JSON format for automated comparison.
func (h *Harness) PrintJSON(results []Result) error {
	summary := ReportSummary{TotalPrograms: len(results)}
	for _, r := range results {
		if r.Pass {
			summary.Passed++
		}
		summary.TotalInstructions += r.Instructions
		summary.TotalWallTime += r.WallTime
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(Report{Results: results, Summary: summary})
}
