package machine

import (
	"errors"
	"log"

	"github.com/nevisdale/m6502/internal/cpu"
	"github.com/nevisdale/m6502/internal/loader"
)

// DefaultCyclesPerTic is how many cycles a running machine spends per Tic.
const DefaultCyclesPerTic = 64

// Machine owns one cpu and its memory. It is not safe for concurrent use.
type Machine struct {
	cpu *cpu.CPU
	mem *cpu.Memory
	img *loader.Image

	cyclesPerTic int
	paused       bool
	stepOnce     bool
	lastErr      error
}

func New() *Machine {
	m := &Machine{
		mem:          cpu.NewMemory(),
		cyclesPerTic: DefaultCyclesPerTic,
	}
	m.cpu = cpu.NewCPU(m.mem)
	m.cpu.Reset(0)
	return m
}

// SetLogger is passed through to the cpu.
func (m *Machine) SetLogger(l *log.Logger) {
	m.cpu.SetLogger(l)
}

// SetCyclesPerTic sets the budget a running machine spends per Tic.
func (m *Machine) SetCyclesPerTic(n int) {
	if n < 1 {
		n = 1
	}
	m.cyclesPerTic = n
}

// Reset resets the cpu to vector. Memory is zeroed, so any loaded
// program is gone until Reload.
func (m *Machine) Reset(vector uint16) {
	m.cpu.Reset(vector)
	m.lastErr = nil
}

// Load resets the cpu to the image vector and copies the image into memory.
func (m *Machine) Load(img *loader.Image) {
	m.img = img
	m.Reload()
}

// Reload puts the last loaded image back after a reset.
func (m *Machine) Reload() {
	if m.img == nil {
		m.Reset(0)
		return
	}
	m.Reset(m.img.Vector)
	m.img.Apply(m.mem)
}

// Poke writes directly to memory, bypassing the cpu.
func (m *Machine) Poke(addr uint16, data ...uint8) {
	m.mem.Load(addr, data)
}

func (m *Machine) Peek(addr uint16) uint8 {
	return m.mem.Read8(addr)
}

// Result describes one call to Run.
type Result struct {
	Cycles    int
	Registers cpu.Registers
	Halted    bool
}

// Run executes for the given cycle budget.
// An unknown opcode is reported both as Halted and as the returned error.
func (m *Machine) Run(budget int) (Result, error) {
	cycles, err := m.cpu.Execute(budget)
	m.lastErr = err
	return Result{
		Cycles:    cycles,
		Registers: m.cpu.Registers(),
		Halted:    m.cpu.State() == cpu.StateHalted,
	}, err
}

// Step executes one instruction.
func (m *Machine) Step() (int, error) {
	cycles, err := m.cpu.Step()
	m.lastErr = err
	return cycles, err
}

func (m *Machine) TogglePause() {
	m.paused = !m.paused
}

func (m *Machine) Paused() bool {
	return m.paused
}

// OneStepAndStop pauses the machine after the next instruction.
func (m *Machine) OneStepAndStop() {
	m.paused = true
	m.stepOnce = true
}

// Tic advances the machine by one frame: a single instruction after
// OneStepAndStop, nothing while paused, cyclesPerTic cycles otherwise.
// A halt pauses the machine.
func (m *Machine) Tic() {
	if m.cpu.State() == cpu.StateHalted {
		m.paused = true
		return
	}

	var err error
	switch {
	case m.stepOnce:
		m.stepOnce = false
		_, err = m.Step()
	case m.paused:
		return
	default:
		_, err = m.Run(m.cyclesPerTic)
	}
	if errors.Is(err, cpu.ErrUnknownOpcode) {
		m.paused = true
	}
}

// DebugInfo is a snapshot for monitors.
type DebugInfo struct {
	cpu.Registers
	State       cpu.State
	TotalCycles uint64
	Paused      bool
	Err         error
}

func (d DebugInfo) StatusString() string {
	return d.P.String()
}

func (m *Machine) DebugInfo() DebugInfo {
	return DebugInfo{
		Registers:   m.cpu.Registers(),
		State:       m.cpu.State(),
		TotalCycles: m.cpu.TotalCycles(),
		Paused:      m.paused,
		Err:         m.lastErr,
	}
}

// Disassemble decodes memory from `from` to `to` inclusive.
func (m *Machine) Disassemble(from, to uint16) map[uint16]string {
	return cpu.Disassemble(m.mem, from, to)
}

// DisassembleAround decodes the current memory around pc: up to `before`
// instructions ahead of it, the instruction at pc and `after` more.
// cur is the index of the line at pc.
func (m *Machine) DisassembleAround(pc uint16, before, after int) (lines []string, cur int) {
	start := max(int(pc)-3*before, 0)

	var prev []string
	for addr := start; addr < int(pc); {
		text, n := cpu.DisassembleOne(m.mem, uint16(addr))
		prev = append(prev, text)
		addr += n
	}
	if len(prev) > before {
		prev = prev[len(prev)-before:]
	}

	lines = append(lines, prev...)
	cur = len(lines)
	for i, addr := 0, int(pc); i <= after && addr <= 0xffff; i++ {
		text, n := cpu.DisassembleOne(m.mem, uint16(addr))
		lines = append(lines, text)
		addr += n
	}
	return lines, cur
}
